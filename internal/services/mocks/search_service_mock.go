package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) (*response_models.FlightSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.FlightSearchResponse), args.Error(1)
}

func (m *MockSearchService) SearchHotels(ctx context.Context, req request_models.HotelSearchRequest) (*response_models.HotelSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.HotelSearchResponse), args.Error(1)
}

func (m *MockSearchService) SearchTrip(ctx context.Context, req request_models.TripSearchRequest) (*response_models.TripSearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.TripSearchResponse), args.Error(1)
}
