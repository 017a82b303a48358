package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

const (
	MaxTripDays            = 14
	defaultCityConcurrency = 4
)

type ItineraryServiceInterface interface {
	// Generate walks primary -> per_city -> template and always returns an
	// itinerary unless no city was given.
	Generate(ctx context.Context, params request_models.TripParams) (*response_models.ItineraryResult, error)
	// GenerateWithProgress also emits simulated progress on progress and closes it before returning.
	GenerateWithProgress(ctx context.Context, params request_models.TripParams, progress chan<- response_models.ProgressEvent) (*response_models.ItineraryResult, error)
}

type ItineraryService struct {
	generator   ItineraryGenerator
	progress    SimulatedProgress
	concurrency int
	logger      *zap.Logger
}

func NewItineraryService(generator ItineraryGenerator, progress SimulatedProgress, concurrency int, logger *zap.Logger) ItineraryServiceInterface {
	if concurrency <= 0 {
		concurrency = defaultCityConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryService{
		generator:   generator,
		progress:    progress,
		concurrency: concurrency,
		logger:      logger,
	}
}

// PlanTrip validates params and allocates days to cities. Unusable dates
// are ignored rather than rejected: the trip then gets one day per city.
func PlanTrip(params request_models.TripParams) (TripOutline, error) {
	cities := cleanCities(params.Cities)
	if len(cities) == 0 {
		return TripOutline{}, utils.ErrNoCities
	}
	if len(cities) > MaxTripDays {
		cities = cities[:MaxTripDays]
	}

	outline := TripOutline{
		Cities:    cities,
		Interests: cleanList(params.Interests),
		Budget:    strings.TrimSpace(params.Budget),
		Persona:   strings.TrimSpace(params.Persona),
		TotalDays: len(cities),
	}

	var start time.Time
	if s, err := utils.ParseDate(params.StartDate); err == nil {
		if e, err := utils.ParseDate(params.EndDate); err == nil && !e.Before(s) {
			start = s
			outline.StartDate = utils.FormatDate(s)
			outline.TotalDays = min(max(utils.InclusiveDays(s, e), 1, len(cities)), MaxTripDays)
		}
	}

	base, extra := outline.TotalDays/len(cities), outline.TotalDays%len(cities)
	day := 1
	for i, c := range cities {
		stay := CityStay{City: c, Days: base, StartDay: day}
		if i < extra {
			stay.Days++
		}
		if !start.IsZero() {
			stay.StartDate = utils.FormatDate(start.AddDate(0, 0, day-1))
		}
		outline.Stays = append(outline.Stays, stay)
		day += stay.Days
	}
	return outline, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

type dayFrame struct {
	Day  int
	Date string
	City string
}

func framesFor(outline TripOutline, stay CityStay) []dayFrame {
	frames := make([]dayFrame, stay.Days)
	for i := range frames {
		frames[i] = dayFrame{Day: stay.StartDay + i, City: stay.City}
		if stay.StartDate != "" {
			if d, err := utils.ParseDate(stay.StartDate); err == nil {
				frames[i].Date = utils.FormatDate(d.AddDate(0, 0, i))
			}
		}
	}
	return frames
}

func (s *ItineraryService) Generate(ctx context.Context, params request_models.TripParams) (*response_models.ItineraryResult, error) {
	outline, err := PlanTrip(params)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, outline), nil
}

func (s *ItineraryService) GenerateWithProgress(ctx context.Context, params request_models.TripParams, progress chan<- response_models.ProgressEvent) (*response_models.ItineraryResult, error) {
	defer close(progress)

	outline, err := PlanTrip(params)
	if err != nil {
		return nil, err
	}

	pctx, stop := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.progress.Run(pctx, progress)
	}()

	result := s.run(ctx, outline)
	stop()
	wg.Wait()
	return result, nil
}

func (s *ItineraryService) run(ctx context.Context, outline TripOutline) *response_models.ItineraryResult {
	data, err := s.primary(ctx, outline)
	if err == nil {
		return finish(data, response_models.ItinerarySourcePrimary)
	}
	s.logger.Warn("primary itinerary generation failed", zap.Strings("cities", outline.Cities), zap.Error(err))

	data, err = s.perCity(ctx, outline)
	if err == nil {
		return finish(data, response_models.ItinerarySourcePerCity)
	}
	s.logger.Warn("per-city itinerary generation failed", zap.Strings("cities", outline.Cities), zap.Error(err))

	return finish(BuildTemplateItinerary(outline), response_models.ItinerarySourceTemplate)
}

func finish(data *response_models.ItineraryData, source string) *response_models.ItineraryResult {
	data.Prune()
	data.AssignIDs()
	return &response_models.ItineraryResult{Itinerary: *data, Source: source}
}

func (s *ItineraryService) primary(ctx context.Context, outline TripOutline) (*response_models.ItineraryData, error) {
	if s.generator == nil {
		return nil, utils.ErrGenerationFailed
	}
	data, err := s.generator.GenerateTrip(ctx, outline)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, utils.ErrGenerationFailed
	}

	buckets := matchBuckets(outline.Interests)
	var frames []dayFrame
	for _, stay := range outline.Stays {
		frames = append(frames, framesFor(outline, stay)...)
	}
	data.Days = alignDays(data.Days, frames, buckets)
	return data, nil
}

// perCity asks for each city on its own. A city that fails gets template
// content; the tier fails only when every city failed.
func (s *ItineraryService) perCity(ctx context.Context, outline TripOutline) (*response_models.ItineraryData, error) {
	if s.generator == nil {
		return nil, utils.ErrGenerationFailed
	}

	parts := make([]*response_models.ItineraryData, len(outline.Stays))
	errs := make([]error, len(outline.Stays))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, stay := range outline.Stays {
		g.Go(func() error {
			data, err := s.generator.GenerateCity(gctx, outline, stay)
			if err == nil && data == nil {
				err = utils.ErrGenerationFailed
			}
			if err != nil {
				errs[i] = err
				return nil
			}
			parts[i] = data
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for i, stay := range outline.Stays {
		if parts[i] != nil {
			succeeded++
			continue
		}
		s.logger.Warn("city generation failed, using template", zap.String("city", stay.City), zap.Error(errs[i]))
		parts[i] = templateCity(outline, stay)
	}
	if succeeded == 0 {
		return nil, fmt.Errorf("%w: every city failed: %w", utils.ErrGenerationFailed, errors.Join(errs...))
	}
	return mergeCityItineraries(outline, parts), nil
}

// mergeCityItineraries concatenates per-city parts in trip order, renumbers
// days and adds the legs between consecutive cities.
func mergeCityItineraries(outline TripOutline, parts []*response_models.ItineraryData) *response_models.ItineraryData {
	merged := &response_models.ItineraryData{}
	buckets := matchBuckets(outline.Interests)

	for i, stay := range outline.Stays {
		part := parts[i]
		merged.MustDo = append(merged.MustDo, withCity(part.MustDo, stay.City)...)
		merged.Food = append(merged.Food, withCity(part.Food, stay.City)...)
		merged.Days = append(merged.Days, alignDays(part.Days, framesFor(outline, stay), buckets)...)
		merged.LocalTips = append(merged.LocalTips, withCity(part.LocalTips, stay.City)...)
	}

	merged.Transport = transportLegs(outline.Cities)
	for i, stay := range outline.Stays {
		merged.Transport = append(merged.Transport, withCity(parts[i].Transport, stay.City)...)
	}
	return merged
}

func withCity(items []response_models.ItineraryItem, city string) []response_models.ItineraryItem {
	out := make([]response_models.ItineraryItem, len(items))
	for i, it := range items {
		if it.City == "" {
			it.City = city
		}
		out[i] = it
	}
	return out
}

// alignDays forces generated days onto the planned frames: surplus days are
// dropped and missing ones are filled from the template.
func alignDays(days []response_models.DayPlan, frames []dayFrame, buckets []interestBucket) []response_models.DayPlan {
	out := make([]response_models.DayPlan, len(frames))
	offsets := make(map[string]int)
	for i, f := range frames {
		if i < len(days) {
			d := days[i]
			d.Day = f.Day
			d.Date = f.Date
			if strings.TrimSpace(d.City) == "" {
				d.City = f.City
			}
			out[i] = d
		} else {
			out[i] = templateDay(buckets, f, offsets[f.City])
		}
		offsets[f.City]++
	}
	return out
}

var DefaultProgressSteps = []string{
	"Analyzing your preferences",
	"Finding must-see attractions",
	"Discovering local cuisine",
	"Planning daily activities",
	"Arranging transportation",
	"Adding local tips",
}

// SimulatedProgress emits a fixed sequence of named steps on a timer. It is
// cosmetic: it knows nothing about how far generation has actually got, and
// it never reports more than 95 percent.
type SimulatedProgress struct {
	Steps    []string
	Interval time.Duration
}

func NewSimulatedProgress(interval time.Duration) SimulatedProgress {
	return SimulatedProgress{Steps: DefaultProgressSteps, Interval: interval}
}

// Run returns after the last step or when ctx is done. It does not close out.
func (p SimulatedProgress) Run(ctx context.Context, out chan<- response_models.ProgressEvent) {
	total := len(p.Steps)
	for i, label := range p.Steps {
		ev := response_models.ProgressEvent{
			Step:    i + 1,
			Total:   total,
			Label:   label,
			Percent: min(95, (i+1)*100/total),
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
		if i == total-1 {
			return
		}

		timer := time.NewTimer(p.Interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
