package response_models

import (
	"encoding/json"

	"voyago/internal/models/db_models"
)

type TripPlanResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Cities      []string        `json:"cities"`
	Interests   []string        `json:"interests"`
	Itinerary   json.RawMessage `json:"itinerary,omitempty"`
	CreatedAt   int64           `json:"created_at"`
}

func NewTripPlanResponse(p db_models.TripPlan) TripPlanResponse {
	resp := TripPlanResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Cities:      []string(p.Cities),
		Interests:   []string(p.Interests),
		CreatedAt:   p.CreatedAt,
	}
	if len(p.Itinerary) > 0 {
		resp.Itinerary = json.RawMessage(p.Itinerary)
	}
	if resp.Cities == nil {
		resp.Cities = []string{}
	}
	if resp.Interests == nil {
		resp.Interests = []string{}
	}
	return resp
}
