package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

type SearchServiceInterface interface {
	SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) (*response_models.FlightSearchResponse, error)
	SearchHotels(ctx context.Context, req request_models.HotelSearchRequest) (*response_models.HotelSearchResponse, error)
	// SearchTrip runs both searches concurrently; either may degrade on its own.
	SearchTrip(ctx context.Context, req request_models.TripSearchRequest) (*response_models.TripSearchResponse, error)
}

type SearchService struct {
	provider TravelProvider
	resolver AirportCodeResolver
	logger   *zap.Logger
}

// NewSearchService accepts a nil provider, in which case every search is served from sample data.
func NewSearchService(provider TravelProvider, resolver AirportCodeResolver, logger *zap.Logger) SearchServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{provider: provider, resolver: resolver, logger: logger}
}

func flightQueryFrom(req request_models.FlightSearchRequest) (FlightQuery, error) {
	q := FlightQuery{
		FromCity:      strings.TrimSpace(req.From),
		ToCity:        strings.TrimSpace(req.To),
		DepartureDate: strings.TrimSpace(req.DepartureDate),
		ReturnDate:    strings.TrimSpace(req.ReturnDate),
		Passengers:    req.Passengers,
	}
	if q.FromCity == "" || q.ToCity == "" {
		return q, fmt.Errorf("%w: origin and destination are required", utils.ErrInvalidInput)
	}
	if strings.EqualFold(q.FromCity, q.ToCity) {
		return q, fmt.Errorf("%w: origin and destination must differ", utils.ErrInvalidInput)
	}
	dep, err := utils.ParseDate(q.DepartureDate)
	if err != nil {
		return q, err
	}
	if q.ReturnDate != "" {
		ret, err := utils.ParseDate(q.ReturnDate)
		if err != nil {
			return q, err
		}
		if ret.Before(dep) {
			return q, fmt.Errorf("%w: return date is before departure", utils.ErrInvalidInput)
		}
	}
	if q.Passengers < 1 {
		q.Passengers = 1
	}
	if q.Passengers > 9 {
		return q, fmt.Errorf("%w: at most 9 passengers", utils.ErrInvalidInput)
	}
	return q, nil
}

func hotelQueryFrom(req request_models.HotelSearchRequest) (HotelQuery, error) {
	q := HotelQuery{
		City:     strings.TrimSpace(req.City),
		CheckIn:  strings.TrimSpace(req.CheckIn),
		CheckOut: strings.TrimSpace(req.CheckOut),
		Guests:   max(1, req.Guests),
		Rooms:    max(1, req.Rooms),
	}
	if q.City == "" {
		return q, fmt.Errorf("%w: city is required", utils.ErrInvalidInput)
	}
	in, err := utils.ParseDate(q.CheckIn)
	if err != nil {
		return q, err
	}
	out, err := utils.ParseDate(q.CheckOut)
	if err != nil {
		return q, err
	}
	if utils.NightsBetween(in, out) < 1 {
		return q, fmt.Errorf("%w: check-out must be after check-in", utils.ErrInvalidInput)
	}
	return q, nil
}

func (s *SearchService) SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) (*response_models.FlightSearchResponse, error) {
	q, err := flightQueryFrom(req)
	if err != nil {
		return nil, err
	}
	return s.searchFlights(ctx, q), nil
}

func (s *SearchService) searchFlights(ctx context.Context, q FlightQuery) *response_models.FlightSearchResponse {
	if s.provider == nil {
		return degradedFlights(q)
	}

	var err error
	if q.FromCode, err = s.resolver.Resolve(ctx, q.FromCity); err != nil {
		s.logger.Warn("flight search degraded: origin unresolved", zap.String("city", q.FromCity), zap.Error(err))
		return degradedFlights(q)
	}
	if q.ToCode, err = s.resolver.Resolve(ctx, q.ToCity); err != nil {
		s.logger.Warn("flight search degraded: destination unresolved", zap.String("city", q.ToCity), zap.Error(err))
		return degradedFlights(q)
	}

	flights, err := s.provider.SearchFlights(ctx, q)
	if err != nil {
		s.logger.Warn("flight search degraded: provider failed",
			zap.String("provider", s.provider.Name()),
			zap.String("route", q.FromCode+"-"+q.ToCode),
			zap.Error(err))
		return degradedFlights(q)
	}
	if len(flights) == 0 {
		s.logger.Info("flight search degraded: no live results", zap.String("route", q.FromCode+"-"+q.ToCode))
		return degradedFlights(q)
	}

	return &response_models.FlightSearchResponse{
		Flights: flights,
		Source:  response_models.SourceLive,
	}
}

func degradedFlights(q FlightQuery) *response_models.FlightSearchResponse {
	return &response_models.FlightSearchResponse{
		Flights: SampleFlights(q),
		Source:  response_models.SourceEstimated,
		Notice:  response_models.DegradedNotice,
	}
}

func (s *SearchService) SearchHotels(ctx context.Context, req request_models.HotelSearchRequest) (*response_models.HotelSearchResponse, error) {
	q, err := hotelQueryFrom(req)
	if err != nil {
		return nil, err
	}
	return s.searchHotels(ctx, q), nil
}

func (s *SearchService) searchHotels(ctx context.Context, q HotelQuery) *response_models.HotelSearchResponse {
	if s.provider == nil {
		return degradedHotels(q)
	}

	code, err := s.resolver.Resolve(ctx, q.City)
	if err != nil {
		s.logger.Warn("hotel search degraded: city unresolved", zap.String("city", q.City), zap.Error(err))
		return degradedHotels(q)
	}
	q.CityCode = code

	hotels, err := s.provider.SearchHotels(ctx, q)
	if err != nil {
		s.logger.Warn("hotel search degraded: provider failed",
			zap.String("provider", s.provider.Name()),
			zap.String("city", q.City),
			zap.Error(err))
		return degradedHotels(q)
	}
	if len(hotels) == 0 {
		s.logger.Info("hotel search degraded: no live results", zap.String("city", q.City))
		return degradedHotels(q)
	}

	return &response_models.HotelSearchResponse{
		Hotels: hotels,
		Source: response_models.SourceLive,
	}
}

func degradedHotels(q HotelQuery) *response_models.HotelSearchResponse {
	return &response_models.HotelSearchResponse{
		Hotels: SampleHotels(q),
		Source: response_models.SourceEstimated,
		Notice: response_models.DegradedNotice,
	}
}

func (s *SearchService) SearchTrip(ctx context.Context, req request_models.TripSearchRequest) (*response_models.TripSearchResponse, error) {
	fq, err := flightQueryFrom(req.Flights)
	if err != nil {
		return nil, err
	}
	hq, err := hotelQueryFrom(req.Hotels)
	if err != nil {
		return nil, err
	}

	var (
		flights *response_models.FlightSearchResponse
		hotels  *response_models.HotelSearchResponse
	)

	// neither branch returns an error: failures degrade in place
	var g errgroup.Group
	g.Go(func() error {
		flights = s.searchFlights(ctx, fq)
		return nil
	})
	g.Go(func() error {
		hotels = s.searchHotels(ctx, hq)
		return nil
	})
	_ = g.Wait()

	return &response_models.TripSearchResponse{
		Flights: *flights,
		Hotels:  *hotels,
	}, nil
}
