package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

const (
	BookingKindFlight = "flight"
	BookingKindHotel  = "hotel"
)

type BookingServiceInterface interface {
	Load(ctx context.Context, userID string) (*response_models.BookingList, error)
	BookFlight(ctx context.Context, userID string, req request_models.BookFlightRequest) (*response_models.BookingList, error)
	BookHotel(ctx context.Context, userID string, req request_models.BookHotelRequest) (*response_models.BookingList, error)
	Delete(ctx context.Context, userID, kind, id string) (*response_models.BookingList, error)
}

type BookingService struct {
	repo     repositories.BookingRepository
	notifier BookingNotifier
	logger   *zap.Logger
}

func NewBookingService(repo repositories.BookingRepository, notifier BookingNotifier, logger *zap.Logger) BookingServiceInterface {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, notifier: notifier, logger: logger}
}

// ComputeHotelTotal prices a stay: nights are rounded up and must be at least one,
// rooms below one count as one.
func ComputeHotelTotal(checkIn, checkOut string, pricePerNight float64, rooms int) (int, float64, error) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return 0, 0, err
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return 0, 0, err
	}
	nights := utils.NightsBetween(in, out)
	if nights < 1 {
		return 0, 0, fmt.Errorf("%w: check-out must be after check-in", utils.ErrInvalidInput)
	}
	if pricePerNight < 0 {
		return 0, 0, fmt.Errorf("%w: price per night cannot be negative", utils.ErrInvalidInput)
	}
	return nights, roundCents(pricePerNight * float64(nights) * float64(max(1, rooms))), nil
}

func (s *BookingService) Load(ctx context.Context, userID string) (*response_models.BookingList, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, uid)
}

func (s *BookingService) reload(ctx context.Context, userID uuid.UUID) (*response_models.BookingList, error) {
	flights, err := s.repo.ListFlightsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load flight bookings", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, dbError("load flight bookings", err)
	}
	hotels, err := s.repo.ListHotelsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load hotel bookings", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, dbError("load hotel bookings", err)
	}

	if flights == nil {
		flights = []db_models.FlightBooking{}
	}
	if hotels == nil {
		hotels = []db_models.HotelBooking{}
	}
	return &response_models.BookingList{Flights: flights, Hotels: hotels}, nil
}

func (s *BookingService) BookFlight(ctx context.Context, userID string, req request_models.BookFlightRequest) (*response_models.BookingList, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	booking, err := newFlightBooking(uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateFlight(ctx, booking); err != nil {
		s.logger.Error("failed to store flight booking", zap.String("user_id", userID), zap.Error(err))
		return nil, dbError("create flight booking", err)
	}

	go s.notifier.FlightBooked(context.WithoutCancel(ctx), *booking)
	return s.reload(ctx, uid)
}

func newFlightBooking(userID uuid.UUID, req request_models.BookFlightRequest) (*db_models.FlightBooking, error) {
	flightNumber := strings.ToUpper(strings.TrimSpace(req.FlightNumber))
	from := strings.TrimSpace(req.DepartureCity)
	to := strings.TrimSpace(req.ArrivalCity)
	if flightNumber == "" || from == "" || to == "" {
		return nil, fmt.Errorf("%w: flight number, departure and arrival city are required", utils.ErrInvalidInput)
	}
	if _, err := utils.ParseDate(req.DepartureDate); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", utils.ErrInvalidInput)
	}
	if req.Passengers > 9 {
		return nil, fmt.Errorf("%w: at most 9 passengers", utils.ErrInvalidInput)
	}

	airline := strings.TrimSpace(req.Airline)
	if airline == "" {
		airline, _ = resolveAirline("", "", flightNumber)
	}

	return &db_models.FlightBooking{
		UserID:        userID,
		FlightNumber:  flightNumber,
		Airline:       airline,
		DepartureCity: from,
		ArrivalCity:   to,
		DepartureDate: strings.TrimSpace(req.DepartureDate),
		DepartureTime: utils.NormalizeClock(req.DepartureTime),
		ArrivalTime:   utils.NormalizeClock(req.ArrivalTime),
		Price:         roundCents(req.Price),
		Passengers:    max(1, req.Passengers),
		Status:        db_models.BookingConfirmed,
	}, nil
}

func (s *BookingService) BookHotel(ctx context.Context, userID string, req request_models.BookHotelRequest) (*response_models.BookingList, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	booking, err := newHotelBooking(uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateHotel(ctx, booking); err != nil {
		s.logger.Error("failed to store hotel booking", zap.String("user_id", userID), zap.Error(err))
		return nil, dbError("create hotel booking", err)
	}

	go s.notifier.HotelBooked(context.WithoutCancel(ctx), *booking)
	return s.reload(ctx, uid)
}

func newHotelBooking(userID uuid.UUID, req request_models.BookHotelRequest) (*db_models.HotelBooking, error) {
	name := strings.TrimSpace(req.HotelName)
	city := strings.TrimSpace(req.City)
	if name == "" || city == "" {
		return nil, fmt.Errorf("%w: hotel name and city are required", utils.ErrInvalidInput)
	}
	if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", utils.ErrInvalidInput)
	}

	rooms := max(1, req.Rooms)
	_, total, err := ComputeHotelTotal(req.CheckIn, req.CheckOut, req.PricePerNight, rooms)
	if err != nil {
		return nil, err
	}

	roomType := strings.TrimSpace(req.RoomType)
	if roomType == "" {
		roomType = "Standard"
	}

	return &db_models.HotelBooking{
		UserID:        userID,
		HotelName:     name,
		Address:       strings.TrimSpace(req.Address),
		City:          city,
		CheckIn:       strings.TrimSpace(req.CheckIn),
		CheckOut:      strings.TrimSpace(req.CheckOut),
		RoomType:      roomType,
		Rooms:         rooms,
		PricePerNight: roundCents(req.PricePerNight),
		TotalPrice:    total,
		Guests:        max(1, req.Guests),
		Rating:        req.Rating,
		Status:        db_models.BookingConfirmed,
	}, nil
}

func (s *BookingService) Delete(ctx context.Context, userID, kind, id string) (*response_models.BookingList, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	bookingID, err := parseResourceID(id, "booking")
	if err != nil {
		return nil, err
	}

	var deleted bool
	switch strings.TrimSuffix(strings.ToLower(kind), "s") {
	case BookingKindFlight:
		deleted, err = s.repo.DeleteFlight(ctx, uid, bookingID)
	case BookingKindHotel:
		deleted, err = s.repo.DeleteHotel(ctx, uid, bookingID)
	default:
		return nil, fmt.Errorf("%w: unknown booking kind %q", utils.ErrInvalidInput, kind)
	}
	if err != nil {
		s.logger.Error("failed to delete booking", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
		return nil, dbError("delete booking", err)
	}
	if !deleted {
		return nil, utils.ErrBookingNotFound
	}
	return s.reload(ctx, uid)
}
