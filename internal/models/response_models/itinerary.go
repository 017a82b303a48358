package response_models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"voyago/pkg/utils"
)

type ItineraryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	Done        bool   `json:"done"`
}

// UnmarshalJSON also accepts a bare string, which generators emit for short lists.
func (it *ItineraryItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return err
		}
		*it = ItineraryItem{Title: title}
		return nil
	}

	type plain ItineraryItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*it = ItineraryItem(p)
	return nil
}

type TimeSlot struct {
	Activities []ItineraryItem `json:"activities"`
	Meal       *ItineraryItem  `json:"meal,omitempty"`
}

type DayPlan struct {
	Day       int      `json:"day"`
	Date      string   `json:"date,omitempty"`
	City      string   `json:"city"`
	Morning   TimeSlot `json:"morning"`
	Afternoon TimeSlot `json:"afternoon"`
	Evening   TimeSlot `json:"evening"`
}

// ItineraryData is the canonical generated itinerary. The shape is only a
// contract at generation time; once saved it is edited as an opaque document.
type ItineraryData struct {
	MustDo    []ItineraryItem `json:"must_do"`
	Food      []ItineraryItem `json:"food"`
	Days      []DayPlan       `json:"days"`
	Transport []ItineraryItem `json:"transport"`
	LocalTips []ItineraryItem `json:"local_tips"`
}

// walk visits every leaf with a section label; returning false stops the walk.
func (d *ItineraryData) walk(fn func(section string, item *ItineraryItem) bool) {
	lists := []struct {
		section string
		items   []ItineraryItem
	}{
		{"must", d.MustDo},
		{"food", d.Food},
		{"transport", d.Transport},
		{"tip", d.LocalTips},
	}
	for _, l := range lists {
		for i := range l.items {
			if !fn(l.section, &l.items[i]) {
				return
			}
		}
	}

	for di := range d.Days {
		day := &d.Days[di]
		slots := []struct {
			name string
			slot *TimeSlot
		}{
			{"morning", &day.Morning},
			{"afternoon", &day.Afternoon},
			{"evening", &day.Evening},
		}
		for _, s := range slots {
			prefix := fmt.Sprintf("d%d-%s", day.Day, s.name)
			for i := range s.slot.Activities {
				if !fn(prefix, &s.slot.Activities[i]) {
					return
				}
			}
			if s.slot.Meal != nil {
				if !fn(prefix+"-meal", s.slot.Meal) {
					return
				}
			}
		}
	}
}

func (d *ItineraryData) find(id string) *ItineraryItem {
	var found *ItineraryItem
	d.walk(func(_ string, item *ItineraryItem) bool {
		if item.ID == id {
			found = item
			return false
		}
		return true
	})
	return found
}

// Toggle flips the done flag of an item and returns the new value.
func (d *ItineraryData) Toggle(id string) (bool, error) {
	item := d.find(id)
	if item == nil {
		return false, fmt.Errorf("%w: %s", utils.ErrItemNotFound, id)
	}
	item.Done = !item.Done
	return item.Done, nil
}

func (d *ItineraryData) SetDone(id string, done bool) error {
	item := d.find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", utils.ErrItemNotFound, id)
	}
	item.Done = done
	return nil
}

func (d *ItineraryData) Rename(id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", utils.ErrInvalidInput)
	}
	item := d.find(id)
	if item == nil {
		return fmt.Errorf("%w: %s", utils.ErrItemNotFound, id)
	}
	item.Title = title
	return nil
}

// Prune drops leaves without a title. Generated content sometimes carries them.
func (d *ItineraryData) Prune() {
	d.MustDo = pruneItems(d.MustDo)
	d.Food = pruneItems(d.Food)
	d.Transport = pruneItems(d.Transport)
	d.LocalTips = pruneItems(d.LocalTips)

	for i := range d.Days {
		for _, slot := range []*TimeSlot{&d.Days[i].Morning, &d.Days[i].Afternoon, &d.Days[i].Evening} {
			slot.Activities = pruneItems(slot.Activities)
			if slot.Meal != nil && strings.TrimSpace(slot.Meal.Title) == "" {
				slot.Meal = nil
			}
		}
	}
}

func pruneItems(items []ItineraryItem) []ItineraryItem {
	out := make([]ItineraryItem, 0, len(items))
	for _, it := range items {
		it.Title = strings.TrimSpace(it.Title)
		if it.Title == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// AssignIDs gives every leaf a unique, stable id. Existing unique ids are kept.
func (d *ItineraryData) AssignIDs() {
	seen := make(map[string]bool)
	counters := make(map[string]int)

	d.walk(func(section string, item *ItineraryItem) bool {
		if item.ID != "" && !seen[item.ID] {
			seen[item.ID] = true
			return true
		}
		for {
			counters[section]++
			id := fmt.Sprintf("%s-%d", section, counters[section])
			if !seen[id] {
				item.ID = id
				seen[id] = true
				break
			}
		}
		return true
	})
}

func (d *ItineraryData) ItemCount() int {
	n := 0
	d.walk(func(string, *ItineraryItem) bool {
		n++
		return true
	})
	return n
}

func (d *ItineraryData) IsEmpty() bool {
	return d == nil || d.ItemCount() == 0
}

const (
	ItinerarySourcePrimary  = "primary"
	ItinerarySourcePerCity  = "per_city"
	ItinerarySourceTemplate = "template"
)

type ItineraryResult struct {
	Itinerary ItineraryData `json:"itinerary"`
	Source    string        `json:"source"`
}

// ProgressEvent is a simulated progress tick. It is cosmetic and does not
// reflect how far generation has actually got.
type ProgressEvent struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

type ContentResponse struct {
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
