package response_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/pkg/utils"
)

func sampleItinerary() ItineraryData {
	return ItineraryData{
		MustDo: []ItineraryItem{{Title: "Eiffel Tower"}, {Title: "  "}, {ID: "keep", Title: "Louvre"}},
		Food:   []ItineraryItem{{Title: "Croissant"}},
		Days: []DayPlan{{
			Day:  1,
			City: "Paris",
			Morning: TimeSlot{
				Activities: []ItineraryItem{{Title: "Walk along the Seine"}},
				Meal:       &ItineraryItem{Title: "Cafe breakfast"},
			},
			Evening: TimeSlot{Meal: &ItineraryItem{Title: ""}},
		}},
		LocalTips: []ItineraryItem{{ID: "keep", Title: "Duplicate id"}},
	}
}

func TestItineraryData_PruneAndAssignIDs(t *testing.T) {
	d := sampleItinerary()
	d.Prune()
	d.AssignIDs()

	require.Len(t, d.MustDo, 2)
	assert.Nil(t, d.Days[0].Evening.Meal)
	assert.Equal(t, 6, d.ItemCount())

	ids := map[string]bool{}
	d.walk(func(_ string, item *ItineraryItem) bool {
		assert.NotEmpty(t, item.ID)
		assert.False(t, ids[item.ID], "duplicate id %s", item.ID)
		ids[item.ID] = true
		return true
	})
	assert.Equal(t, "keep", d.MustDo[1].ID)
	assert.Equal(t, "must-1", d.MustDo[0].ID)
	assert.Equal(t, "d1-morning-meal-1", d.Days[0].Morning.Meal.ID)
	assert.NotEqual(t, "keep", d.LocalTips[0].ID)
}

func TestItineraryData_ToggleAndRename(t *testing.T) {
	d := sampleItinerary()
	d.Prune()
	d.AssignIDs()

	done, err := d.Toggle("d1-morning-1")
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, d.Days[0].Morning.Activities[0].Done)

	done, err = d.Toggle("d1-morning-1")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, d.Rename("d1-morning-meal-1", "  Bakery stop "))
	assert.Equal(t, "Bakery stop", d.Days[0].Morning.Meal.Title)

	_, err = d.Toggle("missing")
	assert.ErrorIs(t, err, utils.ErrItemNotFound)
	assert.ErrorIs(t, d.Rename("must-1", " "), utils.ErrInvalidInput)
}

func TestItineraryData_IsEmpty(t *testing.T) {
	var nilData *ItineraryData
	assert.True(t, nilData.IsEmpty())
	assert.True(t, (&ItineraryData{}).IsEmpty())

	d := sampleItinerary()
	assert.False(t, d.IsEmpty())
}
