package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

type sampleRoute struct {
	basePrice float64
	minutes   int
}

// sampleRoutes are rough economy fares used when no live provider answers.
var sampleRoutes = map[string]sampleRoute{
	"BOM-CDG": {620, 590}, "BOM-LHR": {580, 575}, "BOM-DXB": {210, 205},
	"DEL-LHR": {600, 560}, "DEL-DXB": {220, 215}, "DEL-SIN": {330, 335},
	"TAS-IST": {280, 300}, "TAS-DXB": {320, 210}, "TAS-FRA": {450, 420},
	"TAS-CDG": {480, 450}, "BER-CDG": {120, 105}, "LHR-JFK": {450, 480},
	"LHR-CDG": {80, 75}, "FRA-IST": {150, 165}, "IST-DXB": {250, 240},
}

type sampleAirline struct {
	code     string
	priceMod float64
	stops    int
}

var sampleAirlines = []sampleAirline{
	{"AF", 1.00, 0},
	{"LH", 1.10, 1},
	{"EK", 1.25, 1},
	{"AI", 0.90, 0},
	{"TK", 0.80, 1},
}

func lookupSampleRoute(from, to string) sampleRoute {
	if r, ok := sampleRoutes[from+"-"+to]; ok {
		return r
	}
	if r, ok := sampleRoutes[to+"-"+from]; ok {
		return r
	}
	return sampleRoute{350, 240}
}

// SampleFlights builds a deterministic degraded-mode listing for a route.
func SampleFlights(q FlightQuery) []response_models.FlightResult {
	from := orDefault(q.FromCode, fallbackCode(q.FromCity))
	to := orDefault(q.ToCode, fallbackCode(q.ToCity))
	route := lookupSampleRoute(from, to)

	day, err := utils.ParseDate(q.DepartureDate)
	if err != nil {
		day = time.Now().UTC().Truncate(24 * time.Hour)
	}

	flights := make([]response_models.FlightResult, 0, len(sampleAirlines))
	for i, a := range sampleAirlines {
		minutes := route.minutes + a.stops*90
		dep := day.Add(time.Duration(6+i*3) * time.Hour).Add(time.Duration(i*10) * time.Minute)
		arr := dep.Add(time.Duration(minutes) * time.Minute)
		number := fmt.Sprintf("%s%d", a.code, 100+i*37)

		rec := map[string]any{
			"id":             fmt.Sprintf("sample-%s-%s-%d", from, to, i),
			"airline_code":   a.code,
			"flight_number":  number,
			"departure_time": dep.Format("15:04"),
			"arrival_time":   arr.Format("15:04"),
			"duration":       formatMinutes(minutes),
			"stops":          float64(a.stops),
			"price":          math.Round(route.basePrice*a.priceMod/5) * 5,
		}
		f := NormalizeFlightRecord(rec, FlightQuery{
			FromCity:      q.FromCity,
			ToCity:        q.ToCity,
			FromCode:      from,
			ToCode:        to,
			DepartureDate: utils.FormatDate(day),
			Passengers:    q.Passengers,
		}, "sample", i)
		flights = append(flights, f)
	}
	return flights
}

type sampleHotel struct {
	name   string
	area   string
	price  float64
	rating float64
}

var sampleHotelsByCity = map[string][]sampleHotel{
	"paris": {
		{"Hotel Le Marais", "Le Marais", 220, 4.6},
		{"Pullman Paris Tour Eiffel", "7th Arr.", 280, 4.5},
		{"Ibis Paris Montmartre", "Montmartre", 95, 4.0},
		{"Hotel des Arts Montmartre", "18th Arr.", 130, 4.3},
		{"Generator Paris", "10th Arr.", 55, 3.8},
	},
	"mumbai": {
		{"The Taj Mahal Palace", "Colaba", 310, 4.8},
		{"Trident Nariman Point", "Nariman Point", 190, 4.5},
		{"Ibis Mumbai Airport", "Andheri East", 60, 4.0},
		{"Abode Bombay", "Colaba", 120, 4.4},
		{"Zostel Mumbai", "Andheri West", 25, 4.1},
	},
	"london": {
		{"Hilton London Tower Bridge", "Tower Bridge", 180, 4.4},
		{"Premier Inn London City", "City of London", 95, 4.1},
		{"The Hoxton Shoreditch", "Shoreditch", 165, 4.5},
		{"citizenM London Bankside", "Bankside", 145, 4.4},
		{"Generator London", "Russell Square", 50, 3.8},
	},
	"dubai": {
		{"JW Marriott Marquis", "Business Bay", 220, 4.6},
		{"Rove Downtown", "Downtown Dubai", 95, 4.3},
		{"Atlantis The Palm", "Palm Jumeirah", 380, 4.7},
		{"Premier Inn Dubai", "Ibn Battuta", 65, 4.0},
	},
}

var genericSampleHotels = []sampleHotel{
	{"Grand City Hotel", "City Center", 150, 4.5},
	{"Boutique Residence", "Old Town", 120, 4.4},
	{"Business Inn", "Business District", 95, 4.2},
	{"Economy Suites", "Near Airport", 65, 3.9},
}

// SampleHotels builds a deterministic degraded-mode listing for a city.
func SampleHotels(q HotelQuery) []response_models.HotelResult {
	city := orDefault(q.City, UnknownCity)

	entries, ok := sampleHotelsByCity[normalizeCityKey(city)]
	if !ok {
		entries = genericSampleHotels
	}

	hotels := make([]response_models.HotelResult, 0, len(entries))
	for i, e := range entries {
		rec := map[string]any{
			"id":              fmt.Sprintf("sample-hotel-%s-%d", normalizeCityKey(city), i),
			"name":            e.name,
			"address":         e.area + ", " + city,
			"city":            city,
			"price_per_night": e.price,
			"rating":          e.rating,
		}
		hotels = append(hotels, NormalizeHotelRecord(rec, q, "sample", i))
	}
	return hotels
}

func normalizeCityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
