package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"voyago/internal/models/db_models"
)

type BookingRepository interface {
	ListFlightsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.FlightBooking, error)
	ListHotelsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.HotelBooking, error)
	CreateFlight(ctx context.Context, booking *db_models.FlightBooking) error
	CreateHotel(ctx context.Context, booking *db_models.HotelBooking) error
	// DeleteFlight and DeleteHotel report false when no row owned by userID matched.
	DeleteFlight(ctx context.Context, userID, id uuid.UUID) (bool, error)
	DeleteHotel(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) ListFlightsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.FlightBooking, error) {
	var flights []db_models.FlightBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&flights).Error
	if err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *bookingRepository) ListHotelsByUser(ctx context.Context, userID uuid.UUID) ([]db_models.HotelBooking, error) {
	var hotels []db_models.HotelBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&hotels).Error
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *bookingRepository) CreateFlight(ctx context.Context, booking *db_models.FlightBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) CreateHotel(ctx context.Context, booking *db_models.HotelBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) DeleteFlight(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.FlightBooking{})
	return res.RowsAffected > 0, res.Error
}

func (r *bookingRepository) DeleteHotel(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&db_models.HotelBooking{})
	return res.RowsAffected > 0, res.Error
}
