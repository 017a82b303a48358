package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

type TripPlanServiceInterface interface {
	Save(ctx context.Context, userID string, req request_models.SaveTripPlanRequest) (*response_models.TripPlanResponse, error)
	List(ctx context.Context, userID string) ([]response_models.TripPlanResponse, error)
	Get(ctx context.Context, userID, id string) (*response_models.TripPlanResponse, error)
	Delete(ctx context.Context, userID, id string) error
	// UpdateItem edits one leaf of the stored itinerary. With neither field set it toggles done.
	UpdateItem(ctx context.Context, userID, id, itemID string, req request_models.UpdateItemRequest) (*response_models.TripPlanResponse, error)
	ExportPDF(ctx context.Context, userID, id string) ([]byte, string, error)
}

type TripPlanService struct {
	repo   repositories.TripPlanRepository
	logger *zap.Logger
}

func NewTripPlanService(repo repositories.TripPlanRepository, logger *zap.Logger) TripPlanServiceInterface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TripPlanService{repo: repo, logger: logger}
}

func (s *TripPlanService) Save(ctx context.Context, userID string, req request_models.SaveTripPlanRequest) (*response_models.TripPlanResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	plan, err := newTripPlan(uid, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		s.logger.Error("failed to save trip plan", zap.String("user_id", userID), zap.Error(err))
		return nil, dbError("create trip plan", err)
	}

	resp := response_models.NewTripPlanResponse(*plan)
	return &resp, nil
}

func newTripPlan(userID uuid.UUID, req request_models.SaveTripPlanRequest) (*db_models.TripPlan, error) {
	cities := cleanCities(req.Cities)
	if len(cities) == 0 {
		return nil, utils.ErrNoCities
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: trip name is required", utils.ErrInvalidInput)
	}

	start, end := strings.TrimSpace(req.StartDate), strings.TrimSpace(req.EndDate)
	if start != "" || end != "" {
		s, err := utils.ParseDate(start)
		if err != nil {
			return nil, err
		}
		e, err := utils.ParseDate(end)
		if err != nil {
			return nil, err
		}
		if e.Before(s) {
			return nil, fmt.Errorf("%w: end date is before start date", utils.ErrInvalidInput)
		}
	}

	var itinerary datatypes.JSON
	if raw := bytes.TrimSpace(req.Itinerary); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: itinerary is not valid JSON", utils.ErrInvalidInput)
		}
		itinerary = datatypes.JSON(raw)
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		destination = cities[0]
	}

	return &db_models.TripPlan{
		UserID:      userID,
		Name:        name,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Cities:      pq.StringArray(cities),
		Interests:   pq.StringArray(cleanList(req.Interests)),
		Itinerary:   itinerary,
	}, nil
}

func cleanCities(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	return out
}

func (s *TripPlanService) List(ctx context.Context, userID string) ([]response_models.TripPlanResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	plans, err := s.repo.ListByUser(ctx, uid, 0)
	if err != nil {
		s.logger.Error("failed to list trip plans", zap.String("user_id", userID), zap.Error(err))
		return nil, dbError("list trip plans", err)
	}

	out := make([]response_models.TripPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, response_models.NewTripPlanResponse(p))
	}
	return out, nil
}

func (s *TripPlanService) find(ctx context.Context, userID, id string) (*db_models.TripPlan, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	planID, err := parseResourceID(id, "trip plan")
	if err != nil {
		return nil, err
	}
	plan, err := s.repo.FindByIDForUser(ctx, uid, planID)
	if err != nil {
		s.logger.Error("failed to load trip plan", zap.String("id", id), zap.Error(err))
		return nil, dbError("find trip plan", err)
	}
	if plan == nil {
		return nil, utils.ErrTripPlanNotFound
	}
	return plan, nil
}

func (s *TripPlanService) Get(ctx context.Context, userID, id string) (*response_models.TripPlanResponse, error) {
	plan, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := response_models.NewTripPlanResponse(*plan)
	return &resp, nil
}

func (s *TripPlanService) Delete(ctx context.Context, userID, id string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	planID, err := parseResourceID(id, "trip plan")
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, uid, planID)
	if err != nil {
		s.logger.Error("failed to delete trip plan", zap.String("id", id), zap.Error(err))
		return dbError("delete trip plan", err)
	}
	if !deleted {
		return utils.ErrTripPlanNotFound
	}
	return nil
}

func (s *TripPlanService) UpdateItem(ctx context.Context, userID, id, itemID string, req request_models.UpdateItemRequest) (*response_models.TripPlanResponse, error) {
	plan, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if len(plan.Itinerary) == 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrItemNotFound, itemID)
	}

	updated, err := EditItineraryItem(plan.Itinerary, itemID, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItinerary(ctx, plan.UserID, plan.ID, updated); err != nil {
		s.logger.Error("failed to update trip itinerary", zap.String("id", id), zap.Error(err))
		return nil, dbError("update trip itinerary", err)
	}

	plan.Itinerary = updated
	resp := response_models.NewTripPlanResponse(*plan)
	return &resp, nil
}

// EditItineraryItem finds the object whose "id" equals itemID anywhere in the
// document and edits it. Nothing else about the document is checked or touched.
func EditItineraryItem(doc []byte, itemID string, req request_models.UpdateItemRequest) ([]byte, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", utils.ErrInvalidInput)
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: stored itinerary is unreadable", utils.ErrInvalidInput)
	}

	item := findByID(root, itemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrItemNotFound, itemID)
	}

	switch {
	case req.Done == nil && req.Title == nil:
		done, _ := item["done"].(bool)
		item["done"] = !done
	default:
		if req.Done != nil {
			item["done"] = *req.Done
		}
		if req.Title != nil {
			item["title"] = strings.TrimSpace(*req.Title)
		}
	}

	return json.Marshal(root)
}

func findByID(node any, id string) map[string]any {
	switch v := node.(type) {
	case map[string]any:
		if s, ok := v["id"].(string); ok && s == id {
			return v
		}
		for _, child := range v {
			if found := findByID(child, id); found != nil {
				return found
			}
		}
	case []any:
		for _, child := range v {
			if found := findByID(child, id); found != nil {
				return found
			}
		}
	}
	return nil
}

func (s *TripPlanService) ExportPDF(ctx context.Context, userID, id string) ([]byte, string, error) {
	plan, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	data, err := RenderTripPlanPDF(*plan)
	if err != nil {
		s.logger.Error("pdf render failed", zap.String("id", id), zap.Error(err))
		return nil, "", err
	}
	return data, tripPlanFilename(plan.Name), nil
}

func tripPlanFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "trip"
	}
	return slug + ".pdf"
}
