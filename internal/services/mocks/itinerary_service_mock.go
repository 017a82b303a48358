package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

type MockItineraryService struct {
	mock.Mock
	// Events are sent on the progress channel by GenerateWithProgress before it returns.
	Events []response_models.ProgressEvent
}

func (m *MockItineraryService) Generate(ctx context.Context, params request_models.TripParams) (*response_models.ItineraryResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.ItineraryResult), args.Error(1)
}

func (m *MockItineraryService) GenerateWithProgress(ctx context.Context, params request_models.TripParams, progress chan<- response_models.ProgressEvent) (*response_models.ItineraryResult, error) {
	defer close(progress)
	for _, ev := range m.Events {
		select {
		case progress <- ev:
		case <-ctx.Done():
		}
	}

	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.ItineraryResult), args.Error(1)
}

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Generate(ctx context.Context, kind string, req request_models.ContentRequest) (*response_models.ContentResponse, error) {
	args := m.Called(ctx, kind, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.ContentResponse), args.Error(1)
}
