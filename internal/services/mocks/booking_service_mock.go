package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Load(ctx context.Context, userID string) (*response_models.BookingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.BookingList), args.Error(1)
}

func (m *MockBookingService) BookFlight(ctx context.Context, userID string, req request_models.BookFlightRequest) (*response_models.BookingList, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.BookingList), args.Error(1)
}

func (m *MockBookingService) BookHotel(ctx context.Context, userID string, req request_models.BookHotelRequest) (*response_models.BookingList, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.BookingList), args.Error(1)
}

func (m *MockBookingService) Delete(ctx context.Context, userID, kind, id string) (*response_models.BookingList, error) {
	args := m.Called(ctx, userID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.BookingList), args.Error(1)
}
