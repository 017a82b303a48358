package services

import (
	"context"
	"fmt"
	"strings"

	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

type FlightQuery struct {
	FromCity      string
	ToCity        string
	FromCode      string
	ToCode        string
	DepartureDate string
	ReturnDate    string
	Passengers    int
}

type HotelQuery struct {
	City     string
	CityCode string
	CheckIn  string
	CheckOut string
	Guests   int
	Rooms    int
}

// TravelProvider is a live flight/hotel source. Implementations return
// *utils.ProviderError for transport failures and unreadable payloads.
type TravelProvider interface {
	Name() string
	SearchFlights(ctx context.Context, q FlightQuery) ([]response_models.FlightResult, error)
	SearchHotels(ctx context.Context, q HotelQuery) ([]response_models.HotelResult, error)
}

var (
	airlineNameFields   = []string{"airline", "airline_name", "airlineName", "carrier", "carrierName", "carrier_name", "operating_airline", "airline.name", "carrier.name"}
	airlineCodeFields   = []string{"airline_code", "airlineCode", "carrier_code", "carrierCode", "iata", "airline.code", "airline.iata", "carrier.code"}
	flightNumberFields  = []string{"flight_number", "flightNumber", "flight_no", "flightNo", "number", "flight"}
	departureTimeFields = []string{"departure_time", "departureTime", "dep_time", "depart_time", "departure.time", "departure.at", "departure", "depart"}
	arrivalTimeFields   = []string{"arrival_time", "arrivalTime", "arr_time", "arrive_time", "arrival.time", "arrival.at", "arrival", "arrive"}
	departureCityFields = []string{"departure_city", "departureCity", "from_city", "origin_city", "departure.city", "origin.city", "from", "origin"}
	arrivalCityFields   = []string{"arrival_city", "arrivalCity", "to_city", "destination_city", "arrival.city", "destination.city", "to", "destination"}
	departureCodeFields = []string{"departure_airport", "from_code", "origin_code", "departure.iataCode", "departure.airport", "origin.code"}
	arrivalCodeFields   = []string{"arrival_airport", "to_code", "destination_code", "arrival.iataCode", "arrival.airport", "destination.code"}
	flightPriceFields   = []string{"price", "total_price", "totalPrice", "fare", "amount", "price.amount", "price.total", "price.grandTotal"}
	currencyFields      = []string{"currency", "currency_code", "price.currency", "price.currencyCode"}
	bookingURLFields    = []string{"booking_url", "bookingUrl", "booking_link", "deep_link", "deeplink", "deepLink", "link", "url"}
	durationFields      = []string{"duration", "flight_duration", "total_duration"}
	stopsFields         = []string{"stops", "num_stops", "stopovers", "stop_count"}

	hotelNameFields    = []string{"name", "hotel_name", "hotelName", "title", "property_name", "hotel.name"}
	hotelAddressFields = []string{"address", "location", "address.line", "address.street", "address.full", "hotel.address"}
	hotelCityFields    = []string{"city", "city_name", "cityName", "address.city", "address.cityName", "hotel.city"}
	hotelPriceFields   = []string{"price_per_night", "pricePerNight", "nightly_rate", "nightlyRate", "rate", "price", "price.amount", "price.per_night", "price.total"}
	hotelRatingFields  = []string{"rating", "stars", "star_rating", "review_score", "reviewScore", "score"}
	hotelImageFields   = []string{"image", "image_url", "imageUrl", "thumbnail", "photo", "photo_url"}
)

// NormalizeFlightRecord turns one upstream flight object of any known shape
// into a fully populated FlightResult. It never fails.
func NormalizeFlightRecord(rec map[string]any, q FlightQuery, provider string, index int) response_models.FlightResult {
	if rec == nil {
		rec = map[string]any{}
	}

	flightNumber := firstString(rec, flightNumberFields...)
	airline, code := resolveAirline(
		firstString(rec, airlineCodeFields...),
		firstString(rec, airlineNameFields...),
		flightNumber,
	)
	if flightNumber == "" {
		flightNumber = fmt.Sprintf("%s%03d", orDefault(code, "XX"), 100+index)
	}

	depCode := strings.ToUpper(orDefault(firstString(rec, departureCodeFields...), q.FromCode))
	arrCode := strings.ToUpper(orDefault(firstString(rec, arrivalCodeFields...), q.ToCode))

	stops := 0
	if n, ok := firstNumber(rec, stopsFields...); ok && n > 0 {
		stops = int(n)
	}

	bookingURL := firstString(rec, bookingURLFields...)
	if !strings.HasPrefix(bookingURL, "http") {
		bookingURL = BuildFlightSearchURL(orDefault(depCode, q.FromCity), orDefault(arrCode, q.ToCity), q.DepartureDate, q.Passengers)
	}

	id := firstString(rec, "id", "offer_id", "offerId")
	if id == "" {
		id = fmt.Sprintf("%s-%s-%d", provider, flightNumber, index)
	}

	return response_models.FlightResult{
		ID:               id,
		Airline:          airline,
		AirlineCode:      code,
		FlightNumber:     flightNumber,
		DepartureCity:    orDefault(cityName(firstString(rec, departureCityFields...)), orDefault(q.FromCity, UnknownCity)),
		ArrivalCity:      orDefault(cityName(firstString(rec, arrivalCityFields...)), orDefault(q.ToCity, UnknownCity)),
		DepartureAirport: depCode,
		ArrivalAirport:   arrCode,
		DepartureDate:    orDefault(dateFrom(firstString(rec, "departure_date", "departureDate", "date", "departure.at")), q.DepartureDate),
		DepartureTime:    utils.NormalizeClock(firstString(rec, departureTimeFields...)),
		ArrivalTime:      utils.NormalizeClock(firstString(rec, arrivalTimeFields...)),
		Duration:         firstString(rec, durationFields...),
		Stops:            stops,
		Price:            firstPrice(rec, flightPriceFields...),
		Currency:         strings.ToUpper(orDefault(firstString(rec, currencyFields...), defaultCurrency)),
		BookingURL:       bookingURL,
	}
}

// NormalizeHotelRecord is the hotel counterpart of NormalizeFlightRecord.
func NormalizeHotelRecord(rec map[string]any, q HotelQuery, provider string, index int) response_models.HotelResult {
	if rec == nil {
		rec = map[string]any{}
	}

	city := orDefault(firstString(rec, hotelCityFields...), orDefault(q.City, UnknownCity))
	name := orDefault(firstString(rec, hotelNameFields...), UnknownHotel)

	rating := 0.0
	if r, ok := firstNumber(rec, hotelRatingFields...); ok && r > 0 {
		// 10-point review scores are folded onto the 5-star scale
		if r > 5 && r <= 10 {
			r = r / 2
		}
		if r > 5 {
			r = 5
		}
		rating = r
	}

	bookingURL := firstString(rec, bookingURLFields...)
	if !strings.HasPrefix(bookingURL, "http") {
		bookingURL = BuildHotelSearchURL(city, q.CheckIn, q.CheckOut, q.Guests)
	}

	id := firstString(rec, "id", "hotel_id", "hotelId", "property_id")
	if id == "" {
		id = fmt.Sprintf("%s-hotel-%d", provider, index)
	}

	return response_models.HotelResult{
		ID:            id,
		Name:          name,
		Address:       orDefault(firstString(rec, hotelAddressFields...), city),
		City:          city,
		PricePerNight: firstPrice(rec, hotelPriceFields...),
		Rating:        rating,
		Currency:      strings.ToUpper(orDefault(firstString(rec, currencyFields...), defaultCurrency)),
		ImageURL:      firstString(rec, hotelImageFields...),
		BookingURL:    bookingURL,
	}
}

// cityName ignores values that are obviously timestamps rather than places.
func cityName(s string) string {
	if s == "" || strings.ContainsAny(s[:1], "0123456789") {
		return ""
	}
	return s
}

func dateFrom(s string) string {
	if len(s) >= 10 {
		if _, err := utils.ParseDate(s[:10]); err == nil {
			return s[:10]
		}
	}
	return ""
}
