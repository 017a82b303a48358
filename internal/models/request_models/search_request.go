package request_models

type FlightSearchRequest struct {
	From          string `json:"from" binding:"required"`
	To            string `json:"to" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers,omitempty"`
}

type HotelSearchRequest struct {
	City     string `json:"city" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests,omitempty"`
	Rooms    int    `json:"rooms,omitempty"`
}

type TripSearchRequest struct {
	Flights FlightSearchRequest `json:"flights"`
	Hotels  HotelSearchRequest  `json:"hotels"`
}
