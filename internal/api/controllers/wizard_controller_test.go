package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/services/mocks"
	"voyago/pkg/utils"
)

func setupWizardRouter(svc *mocks.MockWizardService) http.Handler {
	h := NewWizardController(svc)
	r := newTestRouter()
	r.GET("/wizard", h.GetWizard)
	r.PUT("/wizard/persona", h.UpdatePersona)
	r.PUT("/wizard/dates", h.UpdateDates)
	r.POST("/wizard/advance", h.Advance)
	r.POST("/wizard/image", h.GenerateImage)
	r.PATCH("/wizard/itinerary/items/:itemId", h.UpdateItineraryItem)
	return r
}

func TestWizardController_GetAndPersona(t *testing.T) {
	svc := new(mocks.MockWizardService)
	view := &response_models.WizardView{
		State:      response_models.NewWizardDocument(),
		CanProceed: true,
	}
	svc.On("Get", mock.Anything, testUserID).Return(view, nil)
	svc.On("UpdatePersona", mock.Anything, testUserID, request_models.PersonaRequest{Seed: "a quiet bookworm"}).Return(view, nil)

	router := setupWizardRouter(svc)

	rec := doJSON(router, http.MethodGet, "/wizard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.(map[string]any)
	assert.Equal(t, true, data["can_proceed"])
	assert.Equal(t, string(response_models.StagePersona), data["state"].(map[string]any)["stage"])

	rec = doJSON(router, http.MethodPut, "/wizard/persona", request_models.PersonaRequest{Seed: "a quiet bookworm"})
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestWizardController_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		setup      func(svc *mocks.MockWizardService)
		wantStatus int
		wantRetry  string
	}{
		{
			name:   "image quota exhausted",
			method: http.MethodPost,
			path:   "/wizard/image",
			setup: func(svc *mocks.MockWizardService) {
				svc.On("GenerateImage", mock.Anything, testUserID).
					Return(nil, &utils.RateLimitError{Kind: "image", Limit: 10, RetryAfter: 30 * time.Minute})
			},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "1800",
		},
		{
			name:   "image generation failed",
			method: http.MethodPost,
			path:   "/wizard/image",
			setup: func(svc *mocks.MockWizardService) {
				svc.On("GenerateImage", mock.Anything, testUserID).Return(nil, utils.ErrGenerationFailed)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "dates before reaching the stage",
			method: http.MethodPut,
			path:   "/wizard/dates",
			body:   request_models.DatesRequest{Destination: "Paris"},
			setup: func(svc *mocks.MockWizardService) {
				svc.On("UpdateDates", mock.Anything, testUserID, mock.Anything).Return(nil, utils.ErrStageLocked)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "advance incomplete stage",
			method: http.MethodPost,
			path:   "/wizard/advance",
			setup: func(svc *mocks.MockWizardService) {
				svc.On("Advance", mock.Anything, testUserID).Return(nil, utils.ErrInvalidInput)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown item",
			method: http.MethodPatch,
			path:   "/wizard/itinerary/items/ghost",
			setup: func(svc *mocks.MockWizardService) {
				svc.On("UpdateItineraryItem", mock.Anything, testUserID, "ghost", request_models.UpdateItemRequest{}).
					Return(nil, utils.ErrItemNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockWizardService)
			tt.setup(svc)

			rec := doJSON(setupWizardRouter(svc), tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRetry, rec.Header().Get("Retry-After"))
			svc.AssertExpectations(t)
		})
	}
}
