package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/memcache"
	"voyago/pkg/utils"
)

type fakeTravelProvider struct {
	mu          sync.Mutex
	flights     []response_models.FlightResult
	hotels      []response_models.HotelResult
	failFlights bool
	failHotels  bool
	lastFlight  FlightQuery
	lastHotel   HotelQuery
}

func (p *fakeTravelProvider) Name() string { return "fake" }

func (p *fakeTravelProvider) SearchFlights(_ context.Context, q FlightQuery) ([]response_models.FlightResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastFlight = q
	if p.failFlights {
		return nil, utils.NewProviderError("fake", 503, errStoreDown)
	}
	return p.flights, nil
}

func (p *fakeTravelProvider) SearchHotels(_ context.Context, q HotelQuery) ([]response_models.HotelResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastHotel = q
	if p.failHotels {
		return nil, utils.NewProviderError("fake", 0, errStoreDown)
	}
	return p.hotels, nil
}

func newSearchFixture(provider TravelProvider) SearchServiceInterface {
	resolver := NewAirportCodeResolver(nil, memcache.NewTTLStore(), 0, nil)
	return NewSearchService(provider, resolver, nil)
}

var mumbaiParis = request_models.FlightSearchRequest{
	From:          "Mumbai",
	To:            "Paris",
	DepartureDate: "2025-03-01",
}

func TestSearchFlights_DegradesWithoutProvider(t *testing.T) {
	svc := newSearchFixture(nil)

	got, err := svc.SearchFlights(context.Background(), mumbaiParis)
	require.NoError(t, err)

	assert.Equal(t, response_models.SourceEstimated, got.Source)
	assert.Equal(t, response_models.DegradedNotice, got.Notice)
	require.Len(t, got.Flights, len(sampleAirlines))
	first := got.Flights[0]
	assert.Equal(t, "Air France", first.Airline)
	assert.Equal(t, "BOM", first.DepartureAirport)
	assert.Equal(t, "CDG", first.ArrivalAirport)
	assert.Equal(t, "Mumbai", first.DepartureCity)
	assert.Equal(t, "2025-03-01", first.DepartureDate)
	for _, f := range got.Flights {
		assert.Regexp(t, clockPattern, f.DepartureTime)
		assert.Regexp(t, clockPattern, f.ArrivalTime)
		assert.Positive(t, f.Price)
	}
}

func TestSearchFlights_DegradesOnProviderFailure(t *testing.T) {
	provider := &fakeTravelProvider{failFlights: true}
	svc := newSearchFixture(provider)

	got, err := svc.SearchFlights(context.Background(), mumbaiParis)
	require.NoError(t, err)
	assert.Equal(t, response_models.SourceEstimated, got.Source)
	assert.Equal(t, "BOM", provider.lastFlight.FromCode)
	assert.Equal(t, "CDG", provider.lastFlight.ToCode)
	assert.Equal(t, 1, provider.lastFlight.Passengers)
}

func TestSearchFlights_DegradesOnEmptyOrUnresolved(t *testing.T) {
	provider := &fakeTravelProvider{}
	svc := newSearchFixture(provider)

	got, err := svc.SearchFlights(context.Background(), mumbaiParis)
	require.NoError(t, err)
	assert.Equal(t, response_models.SourceEstimated, got.Source)

	got, err = svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{
		From: "Mumbai", To: "Atlantis", DepartureDate: "2025-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.SourceEstimated, got.Source)
	assert.Equal(t, "ATL", got.Flights[0].ArrivalAirport)
}

func TestSearchFlights_Live(t *testing.T) {
	provider := &fakeTravelProvider{flights: []response_models.FlightResult{{ID: "x", FlightNumber: "AF217", Price: 610}}}
	svc := newSearchFixture(provider)

	got, err := svc.SearchFlights(context.Background(), mumbaiParis)
	require.NoError(t, err)
	assert.Equal(t, response_models.SourceLive, got.Source)
	assert.Empty(t, got.Notice)
	assert.Len(t, got.Flights, 1)
}

func TestSearchFlights_Validation(t *testing.T) {
	svc := newSearchFixture(nil)

	tests := []struct {
		name string
		req  request_models.FlightSearchRequest
	}{
		{"missing origin", request_models.FlightSearchRequest{To: "Paris", DepartureDate: "2025-03-01"}},
		{"same city", request_models.FlightSearchRequest{From: "Paris", To: " paris ", DepartureDate: "2025-03-01"}},
		{"bad date", request_models.FlightSearchRequest{From: "Mumbai", To: "Paris", DepartureDate: "01/03/2025"}},
		{"return before departure", request_models.FlightSearchRequest{From: "Mumbai", To: "Paris", DepartureDate: "2025-03-01", ReturnDate: "2025-02-20"}},
		{"too many passengers", request_models.FlightSearchRequest{From: "Mumbai", To: "Paris", DepartureDate: "2025-03-01", Passengers: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SearchFlights(context.Background(), tt.req)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}
}

func TestSearchHotels(t *testing.T) {
	svc := newSearchFixture(nil)

	got, err := svc.SearchHotels(context.Background(), request_models.HotelSearchRequest{
		City: "Paris", CheckIn: "2025-03-01", CheckOut: "2025-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.SourceEstimated, got.Source)
	require.Len(t, got.Hotels, 5)
	assert.Equal(t, "Hotel Le Marais", got.Hotels[0].Name)
	assert.Contains(t, got.Hotels[0].BookingURL, "booking.com")

	_, err = svc.SearchHotels(context.Background(), request_models.HotelSearchRequest{
		City: "Paris", CheckIn: "2025-03-04", CheckOut: "2025-03-04",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestSearchTrip_DegradesEachSideIndependently(t *testing.T) {
	provider := &fakeTravelProvider{
		failFlights: true,
		hotels:      []response_models.HotelResult{{ID: "h1", Name: "Live Hotel", City: "Paris"}},
	}
	svc := newSearchFixture(provider)

	got, err := svc.SearchTrip(context.Background(), request_models.TripSearchRequest{
		Flights: mumbaiParis,
		Hotels:  request_models.HotelSearchRequest{City: "Paris", CheckIn: "2025-03-01", CheckOut: "2025-03-03", Guests: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, response_models.SourceEstimated, got.Flights.Source)
	assert.Equal(t, response_models.SourceLive, got.Hotels.Source)
	assert.Equal(t, "CDG", provider.lastHotel.CityCode)
	assert.Equal(t, 2, provider.lastHotel.Guests)

	_, err = svc.SearchTrip(context.Background(), request_models.TripSearchRequest{Flights: mumbaiParis})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
