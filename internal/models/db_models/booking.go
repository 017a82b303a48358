package db_models

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCancelled:
		return true
	}
	return false
}

type FlightBooking struct {
	BaseModel
	UserID        uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	FlightNumber  string        `json:"flight_number"`
	Airline       string        `json:"airline"`
	DepartureCity string        `json:"departure_city"`
	ArrivalCity   string        `json:"arrival_city"`
	DepartureDate string        `gorm:"size:10" json:"departure_date"`
	DepartureTime string        `gorm:"size:5" json:"departure_time"`
	ArrivalTime   string        `gorm:"size:5" json:"arrival_time"`
	Price         float64       `gorm:"type:numeric(12,2)" json:"price"`
	Passengers    int           `json:"passengers"`
	Status        BookingStatus `gorm:"size:16;default:confirmed" json:"status"`
}

type HotelBooking struct {
	BaseModel
	UserID        uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	HotelName     string        `json:"hotel_name"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	CheckIn       string        `gorm:"size:10" json:"check_in"`
	CheckOut      string        `gorm:"size:10" json:"check_out"`
	RoomType      string        `json:"room_type"`
	Rooms         int           `json:"rooms"`
	PricePerNight float64       `gorm:"type:numeric(12,2)" json:"price_per_night"`
	TotalPrice    float64       `gorm:"type:numeric(12,2)" json:"total_price"`
	Guests        int           `json:"guests"`
	Rating        *float64      `json:"rating,omitempty"`
	Status        BookingStatus `gorm:"size:16;default:confirmed" json:"status"`
}
