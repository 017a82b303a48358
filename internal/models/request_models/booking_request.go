package request_models

type BookFlightRequest struct {
	FlightNumber  string  `json:"flight_number" binding:"required"`
	Airline       string  `json:"airline"`
	DepartureCity string  `json:"departure_city" binding:"required"`
	ArrivalCity   string  `json:"arrival_city" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Passengers    int     `json:"passengers"`
}

type BookHotelRequest struct {
	HotelName     string   `json:"hotel_name" binding:"required"`
	Address       string   `json:"address"`
	City          string   `json:"city" binding:"required"`
	CheckIn       string   `json:"check_in" binding:"required"`
	CheckOut      string   `json:"check_out" binding:"required"`
	RoomType      string   `json:"room_type"`
	Rooms         int      `json:"rooms"`
	PricePerNight float64  `json:"price_per_night"`
	Guests        int      `json:"guests"`
	Rating        *float64 `json:"rating,omitempty"`
}
