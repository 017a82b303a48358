package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

func sampleItineraryJSON(t *testing.T) json.RawMessage {
	t.Helper()
	data := response_models.ItineraryData{
		MustDo: []response_models.ItineraryItem{{Title: "Louvre"}},
		Days: []response_models.DayPlan{{
			Day:  1,
			City: "Paris",
			Morning: response_models.TimeSlot{
				Activities: []response_models.ItineraryItem{{Title: "Seine walk", Description: "Start at Pont Neuf"}},
				Meal:       &response_models.ItineraryItem{Title: "Croissant"},
			},
		}},
	}
	data.AssignIDs()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return raw
}

func TestTripPlanService_SaveRejectsEmptyCitiesBeforePersisting(t *testing.T) {
	repo := &fakeTripPlanRepo{}
	svc := NewTripPlanService(repo, nil)

	for _, cities := range [][]string{nil, {}, {"  ", ""}} {
		_, err := svc.Save(context.Background(), uuid.NewString(), request_models.SaveTripPlanRequest{
			Name:   "Spring trip",
			Cities: cities,
		})
		assert.ErrorIs(t, err, utils.ErrNoCities)
	}
	assert.Zero(t, repo.creates)
}

func TestTripPlanService_SaveValidation(t *testing.T) {
	svc := NewTripPlanService(&fakeTripPlanRepo{}, nil)
	user := uuid.NewString()

	tests := []struct {
		name string
		req  request_models.SaveTripPlanRequest
	}{
		{"missing name", request_models.SaveTripPlanRequest{Cities: []string{"Paris"}}},
		{"end before start", request_models.SaveTripPlanRequest{Name: "x", Cities: []string{"Paris"}, StartDate: "2025-03-10", EndDate: "2025-03-01"}},
		{"only one date", request_models.SaveTripPlanRequest{Name: "x", Cities: []string{"Paris"}, StartDate: "2025-03-10"}},
		{"broken itinerary", request_models.SaveTripPlanRequest{Name: "x", Cities: []string{"Paris"}, Itinerary: json.RawMessage(`{"days": [`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), user, tt.req)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}

	_, err := svc.Save(context.Background(), "", request_models.SaveTripPlanRequest{Name: "x", Cities: []string{"Paris"}})
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestTripPlanService_SaveListGetDelete(t *testing.T) {
	svc := NewTripPlanService(&fakeTripPlanRepo{}, nil)
	ctx := context.Background()
	user := uuid.NewString()

	first, err := svc.Save(ctx, user, request_models.SaveTripPlanRequest{
		Name:      "  Europe  ",
		Cities:    []string{"Paris", " paris ", "Rome"},
		Interests: []string{"art", "art", "food"},
		StartDate: "2025-02-15",
		EndDate:   "2025-02-18",
		Itinerary: sampleItineraryJSON(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "Europe", first.Name)
	assert.Equal(t, "Paris", first.Destination, "defaults to the first city")
	assert.Equal(t, []string{"Paris", "Rome"}, first.Cities)
	assert.Equal(t, []string{"art", "food"}, first.Interests)

	second, err := svc.Save(ctx, user, request_models.SaveTripPlanRequest{Name: "Weekend", Cities: []string{"Lisbon"}})
	require.NoError(t, err)
	assert.Empty(t, second.Itinerary)

	plans, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, second.ID, plans[0].ID, "newest first")

	others, err := svc.List(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, others)

	got, err := svc.Get(ctx, user, first.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(first.Itinerary), string(got.Itinerary))

	_, err = svc.Get(ctx, uuid.NewString(), first.ID)
	assert.ErrorIs(t, err, utils.ErrTripPlanNotFound)

	require.NoError(t, svc.Delete(ctx, user, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user, first.ID), utils.ErrTripPlanNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, user, "bogus"), utils.ErrInvalidInput)
}

func TestTripPlanService_UpdateItem(t *testing.T) {
	svc := NewTripPlanService(&fakeTripPlanRepo{}, nil)
	ctx := context.Background()
	user := uuid.NewString()

	plan, err := svc.Save(ctx, user, request_models.SaveTripPlanRequest{
		Name: "Paris", Cities: []string{"Paris"}, Itinerary: sampleItineraryJSON(t),
	})
	require.NoError(t, err)

	decode := func(raw json.RawMessage) response_models.ItineraryData {
		var d response_models.ItineraryData
		require.NoError(t, json.Unmarshal(raw, &d))
		return d
	}

	updated, err := svc.UpdateItem(ctx, user, plan.ID, "d1-morning-1", request_models.UpdateItemRequest{})
	require.NoError(t, err)
	assert.True(t, decode(updated.Itinerary).Days[0].Morning.Activities[0].Done, "empty request toggles")

	title := "  Sunrise walk  "
	updated, err = svc.UpdateItem(ctx, user, plan.ID, "d1-morning-1", request_models.UpdateItemRequest{Title: &title})
	require.NoError(t, err)
	item := decode(updated.Itinerary).Days[0].Morning.Activities[0]
	assert.Equal(t, "Sunrise walk", item.Title)
	assert.True(t, item.Done, "rename keeps done")
	assert.Equal(t, "Start at Pont Neuf", item.Description)

	done := false
	updated, err = svc.UpdateItem(ctx, user, plan.ID, "d1-morning-meal-1", request_models.UpdateItemRequest{Done: &done})
	require.NoError(t, err)
	assert.False(t, decode(updated.Itinerary).Days[0].Morning.Meal.Done)

	persisted, err := svc.Get(ctx, user, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise walk", decode(persisted.Itinerary).Days[0].Morning.Activities[0].Title)

	_, err = svc.UpdateItem(ctx, user, plan.ID, "nope", request_models.UpdateItemRequest{})
	assert.ErrorIs(t, err, utils.ErrItemNotFound)

	blank := " "
	_, err = svc.UpdateItem(ctx, user, plan.ID, "must-1", request_models.UpdateItemRequest{Title: &blank})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestEditItineraryItem_LeavesUnknownShapeAlone(t *testing.T) {
	doc := []byte(`{"custom":{"deep":[{"id":"x1","title":"Old","budget":1200.50,"tags":["a"]}]},"version":3}`)
	title := "New"

	out, err := EditItineraryItem(doc, "x1", request_models.UpdateItemRequest{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"custom":{"deep":[{"id":"x1","title":"New","budget":1200.50,"tags":["a"]}]},"version":3}`, string(out))
}

func TestTripPlanService_ExportPDF(t *testing.T) {
	svc := NewTripPlanService(&fakeTripPlanRepo{}, nil)
	ctx := context.Background()
	user := uuid.NewString()

	plan, err := svc.Save(ctx, user, request_models.SaveTripPlanRequest{
		Name: "Café crawl: Paris!", Cities: []string{"Paris"},
		StartDate: "2025-02-15", EndDate: "2025-02-16",
		Itinerary: sampleItineraryJSON(t),
	})
	require.NoError(t, err)

	data, filename, err := svc.ExportPDF(ctx, user, plan.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "caf-crawl-paris.pdf", filename)

	_, _, err = svc.ExportPDF(ctx, uuid.NewString(), plan.ID)
	assert.ErrorIs(t, err, utils.ErrTripPlanNotFound)
}
