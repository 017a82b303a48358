package response_models

const (
	SourceLive      = "live"
	SourceEstimated = "estimated"

	DegradedNotice = "Unable to fetch live data, using sample data"
)

// FlightResult is the canonical flight listing. Every field carries a usable
// default so partial upstream records still render.
type FlightResult struct {
	ID               string  `json:"id"`
	Airline          string  `json:"airline"`
	AirlineCode      string  `json:"airline_code,omitempty"`
	FlightNumber     string  `json:"flight_number"`
	DepartureCity    string  `json:"departure_city"`
	ArrivalCity      string  `json:"arrival_city"`
	DepartureAirport string  `json:"departure_airport,omitempty"`
	ArrivalAirport   string  `json:"arrival_airport,omitempty"`
	DepartureDate    string  `json:"departure_date"`
	DepartureTime    string  `json:"departure_time"`
	ArrivalTime      string  `json:"arrival_time"`
	Duration         string  `json:"duration,omitempty"`
	Stops            int     `json:"stops"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	BookingURL       string  `json:"booking_url"`
}

type HotelResult struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	PricePerNight float64 `json:"price_per_night"`
	Rating        float64 `json:"rating"`
	Currency      string  `json:"currency"`
	ImageURL      string  `json:"image_url,omitempty"`
	BookingURL    string  `json:"booking_url"`
}

type FlightSearchResponse struct {
	Flights []FlightResult `json:"flights"`
	Source  string         `json:"source"`
	Notice  string         `json:"notice,omitempty"`
}

type HotelSearchResponse struct {
	Hotels []HotelResult `json:"hotels"`
	Source string        `json:"source"`
	Notice string        `json:"notice,omitempty"`
}

type TripSearchResponse struct {
	Flights FlightSearchResponse `json:"flights"`
	Hotels  HotelSearchResponse  `json:"hotels"`
}
