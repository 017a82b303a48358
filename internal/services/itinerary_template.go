package services

import (
	"fmt"
	"strings"

	"voyago/internal/models/response_models"
)

type interestBucket struct {
	name       string
	keywords   []string
	activities []string
	evenings   []string
	mustDo     []string
}

var (
	museumsBucket = interestBucket{
		name:     "museums",
		keywords: []string{"museum", "art", "histor", "culture", "cultural", "architecture", "heritage", "gallery"},
		activities: []string{
			"Visit the flagship art museum of %s",
			"Guided walk through the historic quarter of %s",
			"Explore a local history museum in %s",
			"Architecture tour of %s landmarks",
		},
		evenings: []string{"Late opening at a gallery in %s"},
		mustDo:   []string{"See the best-known museum collection in %s", "Walk the old town of %s with a guide"},
	}
	foodBucket = interestBucket{
		name:     "food",
		keywords: []string{"food", "cuisine", "culinary", "wine", "restaurant", "street food", "cooking", "gastronomy", "coffee"},
		activities: []string{
			"Food market tour in %s",
			"Cooking class featuring dishes from %s",
			"Street food crawl through %s",
			"Tasting session at a local producer near %s",
		},
		evenings: []string{"Tasting menu at a well-reviewed restaurant in %s"},
		mustDo:   []string{"Eat at the main food market of %s", "Try the signature dish of %s"},
	}
	natureBucket = interestBucket{
		name:     "nature",
		keywords: []string{"nature", "hiking", "hike", "park", "outdoor", "beach", "mountain", "garden", "wildlife"},
		activities: []string{
			"Morning walk in the largest park of %s",
			"Half-day hike on the outskirts of %s",
			"Botanical garden visit in %s",
			"Viewpoint walk over %s",
		},
		evenings: []string{"Sunset from the best viewpoint in %s"},
		mustDo:   []string{"Spend time in the main green space of %s", "Catch the sunset over %s"},
	}
	nightlifeBucket = interestBucket{
		name:     "nightlife",
		keywords: []string{"nightlife", "bar", "club", "music", "party", "concert", "jazz", "cocktail"},
		activities: []string{
			"Record shops and music venues of %s",
			"Neighbourhood walk through the lively district of %s",
		},
		evenings: []string{"Live music evening in %s", "Rooftop bar with a view of %s", "Night walk through %s"},
		mustDo:   []string{"See a live show in %s"},
	}
	genericBucket = interestBucket{
		name: "generic",
		activities: []string{
			"Orientation walk through central %s",
			"Visit the main square of %s",
			"Explore a local neighbourhood of %s",
			"Browse the shops and markets of %s",
		},
		evenings: []string{"Evening stroll through %s", "Dinner in a lively part of %s"},
		mustDo:   []string{"See the most iconic landmark of %s"},
	}

	allBuckets = []interestBucket{museumsBucket, foodBucket, natureBucket, nightlifeBucket}
)

// matchBuckets keyword-matches interests; generic is always last.
func matchBuckets(interests []string) []interestBucket {
	var matched []interestBucket
	for _, b := range allBuckets {
		if bucketMatches(b, interests) {
			matched = append(matched, b)
		}
	}
	return append(matched, genericBucket)
}

func bucketMatches(b interestBucket, interests []string) bool {
	for _, interest := range interests {
		in := strings.ToLower(interest)
		for _, kw := range b.keywords {
			if strings.Contains(in, kw) {
				return true
			}
		}
	}
	return false
}

var (
	breakfastTemplate = "Breakfast at a neighbourhood café in %s"
	lunchTemplates    = []string{"Lunch at a local bistro in %s", "Lunch at a market stall in %s", "Picnic lunch in %s"}
	dinnerTemplates   = []string{"Dinner featuring regional cuisine of %s", "Dinner at a family-run restaurant in %s"}
	cityTips          = []string{
		"Buy a public transport day pass in %s",
		"Carry some cash for small vendors in %s",
		"Book popular sights in %s ahead of time",
	}
)

func cityItem(format, city string) response_models.ItineraryItem {
	return response_models.ItineraryItem{Title: fmt.Sprintf(format, city), City: city}
}

// templateDay fills one day of a stay. offset counts days spent in the city so far.
func templateDay(buckets []interestBucket, frame dayFrame, offset int) response_models.DayPlan {
	pick := func(slot int) string {
		b := buckets[(offset*2+slot)%len(buckets)]
		return b.activities[(offset+slot)%len(b.activities)]
	}
	evening := buckets[offset%len(buckets)]
	for _, b := range buckets {
		if b.name == nightlifeBucket.name {
			evening = b
		}
	}
	breakfast := cityItem(breakfastTemplate, frame.City)
	lunch := cityItem(lunchTemplates[offset%len(lunchTemplates)], frame.City)
	dinner := cityItem(dinnerTemplates[offset%len(dinnerTemplates)], frame.City)

	return response_models.DayPlan{
		Day:  frame.Day,
		Date: frame.Date,
		City: frame.City,
		Morning: response_models.TimeSlot{
			Activities: []response_models.ItineraryItem{cityItem(pick(0), frame.City)},
			Meal:       &breakfast,
		},
		Afternoon: response_models.TimeSlot{
			Activities: []response_models.ItineraryItem{cityItem(pick(1), frame.City)},
			Meal:       &lunch,
		},
		Evening: response_models.TimeSlot{
			Activities: []response_models.ItineraryItem{cityItem(evening.evenings[offset%len(evening.evenings)], frame.City)},
			Meal:       &dinner,
		},
	}
}

// templateCity builds the static plan for one stay.
func templateCity(outline TripOutline, stay CityStay) *response_models.ItineraryData {
	buckets := matchBuckets(outline.Interests)
	data := &response_models.ItineraryData{}

	for _, b := range buckets {
		for _, m := range b.mustDo {
			data.MustDo = append(data.MustDo, cityItem(m, stay.City))
		}
	}
	data.Food = append(data.Food,
		cityItem(foodBucket.mustDo[1], stay.City),
		cityItem(foodBucket.activities[0], stay.City),
	)
	for i, frame := range framesFor(outline, stay) {
		data.Days = append(data.Days, templateDay(buckets, frame, i))
	}
	data.Transport = append(data.Transport, cityItem("Use public transport to get around %s", stay.City))
	for _, tip := range cityTips {
		data.LocalTips = append(data.LocalTips, cityItem(tip, stay.City))
	}
	return data
}

// BuildTemplateItinerary never fails and always covers every day of the outline.
func BuildTemplateItinerary(outline TripOutline) *response_models.ItineraryData {
	parts := make([]*response_models.ItineraryData, len(outline.Stays))
	for i, stay := range outline.Stays {
		parts[i] = templateCity(outline, stay)
	}
	return mergeCityItineraries(outline, parts)
}

func transportLegs(cities []string) []response_models.ItineraryItem {
	var legs []response_models.ItineraryItem
	for i := 1; i < len(cities); i++ {
		legs = append(legs, response_models.ItineraryItem{
			Title:       fmt.Sprintf("Travel from %s to %s", cities[i-1], cities[i]),
			Description: "Compare train and flight options; book in advance for better fares.",
			City:        cities[i],
		})
	}
	return legs
}
