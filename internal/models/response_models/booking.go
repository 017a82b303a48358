package response_models

import "voyago/internal/models/db_models"

// BookingList is always the result of a fresh load, newest first.
type BookingList struct {
	Flights []db_models.FlightBooking `json:"flights"`
	Hotels  []db_models.HotelBooking  `json:"hotels"`
}
