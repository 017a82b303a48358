package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

type MockTripPlanService struct {
	mock.Mock
}

func (m *MockTripPlanService) Save(ctx context.Context, userID string, req request_models.SaveTripPlanRequest) (*response_models.TripPlanResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.TripPlanResponse), args.Error(1)
}

func (m *MockTripPlanService) List(ctx context.Context, userID string) ([]response_models.TripPlanResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response_models.TripPlanResponse), args.Error(1)
}

func (m *MockTripPlanService) Get(ctx context.Context, userID, id string) (*response_models.TripPlanResponse, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.TripPlanResponse), args.Error(1)
}

func (m *MockTripPlanService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTripPlanService) UpdateItem(ctx context.Context, userID, id, itemID string, req request_models.UpdateItemRequest) (*response_models.TripPlanResponse, error) {
	args := m.Called(ctx, userID, id, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.TripPlanResponse), args.Error(1)
}

func (m *MockTripPlanService) ExportPDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
