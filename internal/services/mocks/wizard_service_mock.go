package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
)

type MockWizardService struct {
	mock.Mock
}

func (m *MockWizardService) view(args mock.Arguments) (*response_models.WizardView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*response_models.WizardView), args.Error(1)
}

func (m *MockWizardService) Get(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockWizardService) UpdatePersona(ctx context.Context, userID string, req request_models.PersonaRequest) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID, req))
}

func (m *MockWizardService) UpdateQuestionnaire(ctx context.Context, userID string, req request_models.QuestionnaireRequest) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID, req))
}

func (m *MockWizardService) UpdateDates(ctx context.Context, userID string, req request_models.DatesRequest) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID, req))
}

func (m *MockWizardService) Advance(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockWizardService) Back(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockWizardService) GenerateImage(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockWizardService) GenerateItinerary(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockWizardService) UpdateItineraryItem(ctx context.Context, userID, itemID string, req request_models.UpdateItemRequest) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID, itemID, req))
}

func (m *MockWizardService) Reset(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return m.view(m.Called(ctx, userID))
}
