package response_models

import "voyago/internal/models/db_models"

type DashboardSummary struct {
	FlightCount     int                       `json:"flight_count"`
	HotelCount      int                       `json:"hotel_count"`
	TripPlanCount   int                       `json:"trip_plan_count"`
	TotalSpend      float64                   `json:"total_spend"`
	UpcomingFlights []db_models.FlightBooking `json:"upcoming_flights"`
	UpcomingHotels  []db_models.HotelBooking  `json:"upcoming_hotels"`
	RecentTrips     []TripPlanResponse        `json:"recent_trips"`
}
