package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

// CityStay is the slice of the trip spent in one city. StartDay is 1-based.
type CityStay struct {
	City      string
	Days      int
	StartDay  int
	StartDate string
}

// TripOutline is a validated trip: deduplicated cities with their day allocation.
type TripOutline struct {
	Cities    []string
	Interests []string
	Budget    string
	Persona   string
	StartDate string
	TotalDays int
	Stays     []CityStay
}

type ItineraryGenerator interface {
	GenerateTrip(ctx context.Context, outline TripOutline) (*response_models.ItineraryData, error)
	GenerateCity(ctx context.Context, outline TripOutline, stay CityStay) (*response_models.ItineraryData, error)
}

type aiItineraryGenerator struct {
	gen utils.ContentGenerator
}

func NewItineraryGenerator(gen utils.ContentGenerator) ItineraryGenerator {
	return &aiItineraryGenerator{gen: gen}
}

func (g *aiItineraryGenerator) GenerateTrip(ctx context.Context, outline TripOutline) (*response_models.ItineraryData, error) {
	return g.generate(ctx, buildTripPrompt(outline))
}

func (g *aiItineraryGenerator) GenerateCity(ctx context.Context, outline TripOutline, stay CityStay) (*response_models.ItineraryData, error) {
	return g.generate(ctx, buildCityPrompt(outline, stay))
}

func (g *aiItineraryGenerator) generate(ctx context.Context, prompt string) (*response_models.ItineraryData, error) {
	raw, err := g.gen.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return decodeItinerary(raw)
}

// decodeItinerary accepts the document with or without an "itinerary" wrapper.
func decodeItinerary(raw string) (*response_models.ItineraryData, error) {
	cleaned := utils.CleanJSONResponse(raw)

	var wrapped struct {
		Itinerary *response_models.ItineraryData `json:"itinerary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapped); err == nil && wrapped.Itinerary != nil {
		return checkDecoded(wrapped.Itinerary)
	}

	var data response_models.ItineraryData
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: undecodable itinerary: %w", utils.ErrGenerationFailed, err)
	}
	return checkDecoded(&data)
}

func checkDecoded(data *response_models.ItineraryData) (*response_models.ItineraryData, error) {
	data.Prune()
	if len(data.Days) == 0 || data.IsEmpty() {
		return nil, fmt.Errorf("%w: itinerary has no days", utils.ErrGenerationFailed)
	}
	return data, nil
}

const itinerarySchema = `{
  "must_do": [{"title": "...", "description": "...", "city": "..."}],
  "food": [{"title": "...", "description": "...", "city": "..."}],
  "days": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "city": "...",
      "morning": {"activities": [{"title": "...", "description": "..."}], "meal": {"title": "...", "description": "..."}},
      "afternoon": {"activities": [{"title": "...", "description": "..."}], "meal": {"title": "...", "description": "..."}},
      "evening": {"activities": [{"title": "...", "description": "..."}], "meal": {"title": "...", "description": "..."}}
    }
  ],
  "transport": [{"title": "...", "description": "..."}],
  "local_tips": [{"title": "...", "description": "..."}]
}`

func writeTraveller(b *strings.Builder, outline TripOutline) {
	if len(outline.Interests) > 0 {
		fmt.Fprintf(b, "Traveller interests: %s.\n", strings.Join(outline.Interests, ", "))
	}
	if outline.Budget != "" {
		fmt.Fprintf(b, "Budget level: %s.\n", outline.Budget)
	}
	if outline.Persona != "" {
		fmt.Fprintf(b, "Traveller persona: %s\n", outline.Persona)
	}
}

func buildTripPrompt(outline TripOutline) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You must create exactly a %d-day travel itinerary covering: %s.\n",
		outline.TotalDays, strings.Join(outline.Cities, ", "))
	b.WriteString("Day allocation:\n")
	for _, s := range outline.Stays {
		fmt.Fprintf(&b, "- %s: days %d to %d", s.City, s.StartDay, s.StartDay+s.Days-1)
		if s.StartDate != "" {
			fmt.Fprintf(&b, " (from %s)", s.StartDate)
		}
		b.WriteString("\n")
	}
	writeTraveller(&b, outline)
	if len(outline.Cities) > 1 {
		b.WriteString("Include transport between consecutive cities in \"transport\".\n")
	}
	fmt.Fprintf(&b, "IMPORTANT: Return only JSON with exactly %d objects in \"days\", in this format:\n", outline.TotalDays)
	b.WriteString(itinerarySchema)
	return b.String()
}

func buildCityPrompt(outline TripOutline, stay CityStay) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You must create exactly a %d-day travel itinerary for %s only.\n", stay.Days, stay.City)
	if stay.StartDate != "" {
		fmt.Fprintf(&b, "The first day is %s.\n", stay.StartDate)
	}
	writeTraveller(&b, outline)
	b.WriteString("\"transport\" lists ways of getting around inside the city.\n")
	fmt.Fprintf(&b, "IMPORTANT: Return only JSON with exactly %d objects in \"days\", numbered from 1, in this format:\n", stay.Days)
	b.WriteString(itinerarySchema)
	return b.String()
}
