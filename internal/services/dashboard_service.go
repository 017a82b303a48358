package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"voyago/internal/models/db_models"
	resp "voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

const dashboardListLimit = 5

type DashboardServiceInterface interface {
	Summary(ctx context.Context, userID string) (*resp.DashboardSummary, error)
}

type dashboardService struct {
	repo  repositories.DashboardRepository
	trips repositories.TripPlanRepository
	now   func() time.Time
	log   *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepository, trips repositories.TripPlanRepository, logger *zap.Logger) DashboardServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dashboardService{repo: repo, trips: trips, now: time.Now, log: logger}
}

func (s *dashboardService) Summary(ctx context.Context, userID string) (*resp.DashboardSummary, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	today := utils.FormatDate(s.now())

	// ---------- Counts ----------
	flights, err := s.repo.CountFlights(ctx, uid)
	if err != nil {
		return nil, dbError("count flights", err)
	}
	hotels, err := s.repo.CountHotels(ctx, uid)
	if err != nil {
		return nil, dbError("count hotels", err)
	}
	trips, err := s.repo.CountTripPlans(ctx, uid)
	if err != nil {
		return nil, dbError("count trip plans", err)
	}
	spend, err := s.repo.TotalSpend(ctx, uid)
	if err != nil {
		return nil, dbError("total spend", err)
	}

	// ---------- Upcoming ----------
	upcomingFlights, err := s.repo.UpcomingFlights(ctx, uid, today, dashboardListLimit)
	if err != nil {
		return nil, dbError("upcoming flights", err)
	}
	upcomingHotels, err := s.repo.UpcomingHotels(ctx, uid, today, dashboardListLimit)
	if err != nil {
		return nil, dbError("upcoming hotels", err)
	}

	// ---------- Recent trips ----------
	plans, err := s.trips.ListByUser(ctx, uid, dashboardListLimit)
	if err != nil {
		return nil, dbError("recent trip plans", err)
	}
	recent := make([]resp.TripPlanResponse, 0, len(plans))
	for _, p := range plans {
		r := resp.NewTripPlanResponse(p)
		r.Itinerary = nil
		recent = append(recent, r)
	}

	if upcomingFlights == nil {
		upcomingFlights = []db_models.FlightBooking{}
	}
	if upcomingHotels == nil {
		upcomingHotels = []db_models.HotelBooking{}
	}

	return &resp.DashboardSummary{
		FlightCount:     int(flights),
		HotelCount:      int(hotels),
		TripPlanCount:   int(trips),
		TotalSpend:      roundCents(spend),
		UpcomingFlights: upcomingFlights,
		UpcomingHotels:  upcomingHotels,
		RecentTrips:     recent,
	}, nil
}
