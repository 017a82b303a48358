package request_models

import "encoding/json"

type SaveTripPlanRequest struct {
	Name        string          `json:"name"`
	Destination string          `json:"destination"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Cities      []string        `json:"cities"`
	Interests   []string        `json:"interests"`
	Itinerary   json.RawMessage `json:"itinerary"`
}

// UpdateItemRequest toggles and/or renames one itinerary leaf.
type UpdateItemRequest struct {
	Done  *bool   `json:"done,omitempty"`
	Title *string `json:"title,omitempty"`
}
