package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"voyago/internal/models/db_models"
	"voyago/internal/models/response_models"
)

// RenderTripPlanPDF lays out a saved plan. An itinerary that no longer decodes
// into the generated shape still yields a PDF with the trip header.
func RenderTripPlanPDF(plan db_models.TripPlan) ([]byte, error) {
	var itinerary *response_models.ItineraryData
	if len(plan.Itinerary) > 0 {
		var data response_models.ItineraryData
		if err := json.Unmarshal(plan.Itinerary, &data); err == nil {
			itinerary = &data
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8, fmt.Sprintf("Voyago trip plan - page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, tr(plan.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, tr(plan.Destination), "", 1, "L", false, 0, "")
	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(125, 7, tr(value), "", 1, "L", false, 0, "")
	}
	bullet := func(it response_models.ItineraryItem) {
		mark := "-"
		if it.Done {
			mark = "x"
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		text := fmt.Sprintf("[%s] %s", mark, it.Title)
		if it.Description != "" {
			text += ": " + it.Description
		}
		pdf.MultiCell(170, 5, tr(text), "", "L", false)
	}
	list := func(title string, items []response_models.ItineraryItem) {
		if len(items) == 0 {
			return
		}
		sectionHeader(title)
		for _, it := range items {
			bullet(it)
		}
		pdf.Ln(4)
	}

	sectionHeader("Trip Overview")
	row("Cities", strings.Join(plan.Cities, ", "))
	if plan.StartDate != "" {
		row("Dates", fmt.Sprintf("%s to %s", readableDate(plan.StartDate), readableDate(plan.EndDate)))
	}
	if len(plan.Interests) > 0 {
		row("Interests", strings.Join(plan.Interests, ", "))
	}
	row("Generated", time.Now().UTC().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	if itinerary == nil {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(170, 5, "No itinerary details are attached to this trip.", "", "L", false)
	} else {
		list("Must Do", itinerary.MustDo)
		list("Food", itinerary.Food)

		for _, day := range itinerary.Days {
			title := fmt.Sprintf("Day %d - %s", day.Day, day.City)
			if day.Date != "" {
				title += " (" + readableDate(day.Date) + ")"
			}
			sectionHeader(title)
			for _, slot := range []struct {
				name string
				slot response_models.TimeSlot
			}{{"Morning", day.Morning}, {"Afternoon", day.Afternoon}, {"Evening", day.Evening}} {
				if len(slot.slot.Activities) == 0 && slot.slot.Meal == nil {
					continue
				}
				pdf.SetFont("Helvetica", "B", 10)
				pdf.CellFormat(170, 6, slot.name, "", 1, "L", false, 0, "")
				for _, a := range slot.slot.Activities {
					bullet(a)
				}
				if slot.slot.Meal != nil {
					bullet(*slot.slot.Meal)
				}
			}
			pdf.Ln(3)
		}

		list("Transport", itinerary.Transport)
		list("Local Tips", itinerary.LocalTips)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func readableDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
