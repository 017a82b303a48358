package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "voyago/internal/models/db_models"
)

type DashboardRepository interface {
	CountFlights(ctx context.Context, userID uuid.UUID) (int64, error)
	CountHotels(ctx context.Context, userID uuid.UUID) (int64, error)
	CountTripPlans(ctx context.Context, userID uuid.UUID) (int64, error)
	// TotalSpend sums non-cancelled flight prices and hotel totals.
	TotalSpend(ctx context.Context, userID uuid.UUID) (float64, error)
	UpcomingFlights(ctx context.Context, userID uuid.UUID, fromDate string, limit int) ([]dbm.FlightBooking, error)
	UpcomingHotels(ctx context.Context, userID uuid.UUID, fromDate string, limit int) ([]dbm.HotelBooking, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) count(ctx context.Context, model any, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(model).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountFlights(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, &dbm.FlightBooking{}, userID)
}

func (r *dashboardRepository) CountHotels(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, &dbm.HotelBooking{}, userID)
}

func (r *dashboardRepository) CountTripPlans(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.count(ctx, &dbm.TripPlan{}, userID)
}

type sumRow struct {
	Total float64 `gorm:"column:total"`
}

func (r *dashboardRepository) TotalSpend(ctx context.Context, userID uuid.UUID) (float64, error) {
	var flights, hotels sumRow

	if err := r.db.WithContext(ctx).Model(&dbm.FlightBooking{}).
		Select("COALESCE(SUM(price), 0) AS total").
		Where("user_id = ? AND status <> ?", userID, dbm.BookingCancelled).
		Scan(&flights).Error; err != nil {
		return 0, err
	}

	if err := r.db.WithContext(ctx).Model(&dbm.HotelBooking{}).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Where("user_id = ? AND status <> ?", userID, dbm.BookingCancelled).
		Scan(&hotels).Error; err != nil {
		return 0, err
	}

	return flights.Total + hotels.Total, nil
}

func (r *dashboardRepository) UpcomingFlights(ctx context.Context, userID uuid.UUID, fromDate string, limit int) ([]dbm.FlightBooking, error) {
	var flights []dbm.FlightBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND departure_date >= ? AND status <> ?", userID, fromDate, dbm.BookingCancelled).
		Order("departure_date ASC, departure_time ASC").
		Limit(limit).
		Find(&flights).Error
	return flights, err
}

func (r *dashboardRepository) UpcomingHotels(ctx context.Context, userID uuid.UUID, fromDate string, limit int) ([]dbm.HotelBooking, error) {
	var hotels []dbm.HotelBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_in >= ? AND status <> ?", userID, fromDate, dbm.BookingCancelled).
		Order("check_in ASC").
		Limit(limit).
		Find(&hotels).Error
	return hotels, err
}
