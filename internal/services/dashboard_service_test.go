package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"voyago/internal/models/db_models"
	"voyago/pkg/utils"
)

type fakeDashboardRepo struct {
	flights  []db_models.FlightBooking
	hotels   []db_models.HotelBooking
	trips    int64
	failSum  bool
	fromSeen string
}

func (r *fakeDashboardRepo) CountFlights(context.Context, uuid.UUID) (int64, error) {
	return int64(len(r.flights)), nil
}

func (r *fakeDashboardRepo) CountHotels(context.Context, uuid.UUID) (int64, error) {
	return int64(len(r.hotels)), nil
}

func (r *fakeDashboardRepo) CountTripPlans(context.Context, uuid.UUID) (int64, error) {
	return r.trips, nil
}

func (r *fakeDashboardRepo) TotalSpend(context.Context, uuid.UUID) (float64, error) {
	if r.failSum {
		return 0, errStoreDown
	}
	var total float64
	for _, f := range r.flights {
		total += f.Price
	}
	for _, h := range r.hotels {
		total += h.TotalPrice
	}
	return total, nil
}

func (r *fakeDashboardRepo) UpcomingFlights(_ context.Context, _ uuid.UUID, from string, limit int) ([]db_models.FlightBooking, error) {
	r.fromSeen = from
	var out []db_models.FlightBooking
	for _, f := range r.flights {
		if f.DepartureDate >= from && len(out) < limit {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeDashboardRepo) UpcomingHotels(_ context.Context, _ uuid.UUID, from string, limit int) ([]db_models.HotelBooking, error) {
	var out []db_models.HotelBooking
	for _, h := range r.hotels {
		if h.CheckIn >= from && len(out) < limit {
			out = append(out, h)
		}
	}
	return out, nil
}

func TestDashboardService_Summary(t *testing.T) {
	userID := uuid.New()
	repo := &fakeDashboardRepo{
		flights: []db_models.FlightBooking{
			{FlightNumber: "AI131", DepartureDate: "2025-01-10", Price: 100.10},
			{FlightNumber: "AF217", DepartureDate: "2025-03-01", Price: 200.20},
		},
		hotels: []db_models.HotelBooking{
			{HotelName: "Le Marais", CheckIn: "2025-03-02", TotalPrice: 300.30},
		},
		trips: 6,
	}
	tripRepo := &fakeTripPlanRepo{}
	for range 6 {
		require.NoError(t, tripRepo.Create(context.Background(), &db_models.TripPlan{
			UserID:    userID,
			Name:      "Trip",
			Cities:    []string{"Paris"},
			Itinerary: datatypes.JSON(`{"days":[]}`),
		}))
	}

	svc := NewDashboardService(repo, tripRepo, nil).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2025, 2, 15, 9, 0, 0, 0, time.UTC) }

	got, err := svc.Summary(context.Background(), userID.String())
	require.NoError(t, err)

	assert.Equal(t, "2025-02-15", repo.fromSeen)
	assert.Equal(t, 2, got.FlightCount)
	assert.Equal(t, 1, got.HotelCount)
	assert.Equal(t, 6, got.TripPlanCount)
	assert.InDelta(t, 600.60, got.TotalSpend, 0.001)
	require.Len(t, got.UpcomingFlights, 1)
	assert.Equal(t, "AF217", got.UpcomingFlights[0].FlightNumber)
	assert.Len(t, got.UpcomingHotels, 1)
	require.Len(t, got.RecentTrips, dashboardListLimit)
	assert.Nil(t, got.RecentTrips[0].Itinerary)
}

func TestDashboardService_Errors(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{failSum: true}, &fakeTripPlanRepo{}, nil)

	_, err := svc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.Summary(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestDashboardService_EmptyListsAreNotNull(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{}, &fakeTripPlanRepo{}, nil)

	got, err := svc.Summary(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.NotNil(t, got.UpcomingFlights)
	assert.NotNil(t, got.UpcomingHotels)
	assert.NotNil(t, got.RecentTrips)
}
