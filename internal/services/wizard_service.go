package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

const (
	minPersonaSeedRunes      = 10
	minAnonymityIdeaRunes    = 20
	DefaultImagesPerHour     = 10
	DefaultItinerariesPerDay = 5
)

var budgetLevels = []string{"budget", "moderate", "luxury"}

type WizardServiceInterface interface {
	Get(ctx context.Context, userID string) (*response_models.WizardView, error)
	UpdatePersona(ctx context.Context, userID string, req request_models.PersonaRequest) (*response_models.WizardView, error)
	UpdateQuestionnaire(ctx context.Context, userID string, req request_models.QuestionnaireRequest) (*response_models.WizardView, error)
	UpdateDates(ctx context.Context, userID string, req request_models.DatesRequest) (*response_models.WizardView, error)
	Advance(ctx context.Context, userID string) (*response_models.WizardView, error)
	Back(ctx context.Context, userID string) (*response_models.WizardView, error)
	GenerateImage(ctx context.Context, userID string) (*response_models.WizardView, error)
	GenerateItinerary(ctx context.Context, userID string) (*response_models.WizardView, error)
	UpdateItineraryItem(ctx context.Context, userID, itemID string, req request_models.UpdateItemRequest) (*response_models.WizardView, error)
	// Reset starts the wizard over. Generation quotas are not touched.
	Reset(ctx context.Context, userID string) (*response_models.WizardView, error)
}

type WizardLimits struct {
	ImagesPerHour     int
	ItinerariesPerDay int
}

type WizardService struct {
	states      repositories.WizardRepository
	quotas      repositories.QuotaRepository
	itineraries ItineraryServiceInterface
	images      utils.ImageGenerator
	store       ObjectStore
	imagePolicy QuotaPolicy
	tripPolicy  QuotaPolicy
	logger      *zap.Logger
	now         func() time.Time
}

func NewWizardService(
	states repositories.WizardRepository,
	quotas repositories.QuotaRepository,
	itineraries ItineraryServiceInterface,
	images utils.ImageGenerator,
	store ObjectStore,
	limits WizardLimits,
	logger *zap.Logger,
) WizardServiceInterface {
	if limits.ImagesPerHour <= 0 {
		limits.ImagesPerHour = DefaultImagesPerHour
	}
	if limits.ItinerariesPerDay <= 0 {
		limits.ItinerariesPerDay = DefaultItinerariesPerDay
	}
	if images == nil {
		images = utils.UnavailableGenerator{}
	}
	if store == nil {
		store = disabledObjectStore{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardService{
		states:      states,
		quotas:      quotas,
		itineraries: itineraries,
		images:      images,
		store:       store,
		imagePolicy: QuotaPolicy{Kind: QuotaKindImage, Limit: limits.ImagesPerHour, Window: time.Hour},
		tripPolicy:  QuotaPolicy{Kind: QuotaKindItinerary, Limit: limits.ItinerariesPerDay, Window: 24 * time.Hour},
		logger:      logger,
		now:         time.Now,
	}
}

// CanProceed reports whether stage is complete enough to move past it.
func CanProceed(doc response_models.WizardDocument, stage response_models.WizardStage) bool {
	switch stage {
	case response_models.StagePersona:
		return utf8.RuneCountInString(strings.TrimSpace(doc.Persona.Seed)) >= minPersonaSeedRunes
	case response_models.StageQuestions:
		q := doc.Questionnaire
		return len(cleanList(q.Interests)) > 0 &&
			strings.TrimSpace(q.Budget) != "" &&
			utf8.RuneCountInString(strings.TrimSpace(q.AnonymityIdea)) >= minAnonymityIdeaRunes
	case response_models.StageDates:
		d := doc.Dates
		if strings.TrimSpace(d.Destination) == "" {
			return false
		}
		start, err := utils.ParseDate(d.StartDate)
		if err != nil {
			return false
		}
		end, err := utils.ParseDate(d.EndDate)
		if err != nil {
			return false
		}
		return !end.Before(start)
	case response_models.StageImage:
		return doc.ImageURL != ""
	case response_models.StageItinerary:
		return doc.Itinerary != nil && !doc.Itinerary.Itinerary.IsEmpty()
	}
	return false
}

func (s *WizardService) load(ctx context.Context, uid uuid.UUID) (response_models.WizardDocument, error) {
	row, err := s.states.Get(ctx, uid)
	if err != nil {
		s.logger.Error("failed to load wizard state", zap.String("user_id", uid.String()), zap.Error(err))
		return response_models.WizardDocument{}, dbError("load wizard state", err)
	}
	if row == nil || row.Version != response_models.WizardDocumentVersion {
		return response_models.NewWizardDocument(), nil
	}

	var doc response_models.WizardDocument
	if err := json.Unmarshal(row.Document, &doc); err != nil || doc.Version != response_models.WizardDocumentVersion || doc.Stage.Index() < 0 {
		s.logger.Warn("discarding unreadable wizard state", zap.String("user_id", uid.String()), zap.Error(err))
		return response_models.NewWizardDocument(), nil
	}
	if doc.Questionnaire.Interests == nil {
		doc.Questionnaire.Interests = []string{}
	}
	return doc, nil
}

func (s *WizardService) save(ctx context.Context, uid uuid.UUID, doc response_models.WizardDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode wizard state: %w", err)
	}
	row := &db_models.WizardState{
		UserID:    uid,
		Version:   doc.Version,
		Document:  datatypes.JSON(raw),
		UpdatedAt: s.now().UnixMilli(),
	}
	if err := s.states.Save(ctx, row); err != nil {
		s.logger.Error("failed to save wizard state", zap.String("user_id", uid.String()), zap.Error(err))
		return dbError("save wizard state", err)
	}
	return nil
}

func (s *WizardService) view(ctx context.Context, uid uuid.UUID, doc response_models.WizardDocument) (*response_models.WizardView, error) {
	now := s.now()
	imageQuota, err := s.quotas.Get(ctx, uid, QuotaKindImage)
	if err != nil {
		return nil, dbError("load image quota", err)
	}
	tripQuota, err := s.quotas.Get(ctx, uid, QuotaKindItinerary)
	if err != nil {
		return nil, dbError("load itinerary quota", err)
	}
	return &response_models.WizardView{
		State:          doc,
		CanProceed:     CanProceed(doc, doc.Stage),
		ImageQuota:     s.imagePolicy.Status(imageQuota, now),
		ItineraryQuota: s.tripPolicy.Status(tripQuota, now),
	}, nil
}

// mutate loads, edits and saves the document, then renders the view.
func (s *WizardService) mutate(ctx context.Context, userID string, edit func(doc *response_models.WizardDocument) error) (*response_models.WizardView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := edit(&doc); err != nil {
		return nil, err
	}
	if err := s.save(ctx, uid, doc); err != nil {
		return nil, err
	}
	return s.view(ctx, uid, doc)
}

func (s *WizardService) Get(ctx context.Context, userID string) (*response_models.WizardView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, uid, doc)
}

// editStage guards edits to stages the user has not reached and rolls the
// current stage back when an earlier edit leaves that stage incomplete.
func editStage(doc *response_models.WizardDocument, stage response_models.WizardStage, edit func()) error {
	if stage.Index() > doc.Stage.Index() {
		return fmt.Errorf("%w: %s", utils.ErrStageLocked, stage)
	}
	edit()
	if stage.Index() < doc.Stage.Index() && !CanProceed(*doc, stage) {
		doc.Stage = stage
	}
	return nil
}

func (s *WizardService) UpdatePersona(ctx context.Context, userID string, req request_models.PersonaRequest) (*response_models.WizardView, error) {
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		return editStage(doc, response_models.StagePersona, func() {
			doc.Persona.Seed = strings.TrimSpace(req.Seed)
		})
	})
}

func (s *WizardService) UpdateQuestionnaire(ctx context.Context, userID string, req request_models.QuestionnaireRequest) (*response_models.WizardView, error) {
	budget := strings.ToLower(strings.TrimSpace(req.Budget))
	if budget != "" && !slices.Contains(budgetLevels, budget) {
		return nil, fmt.Errorf("%w: budget must be one of %s", utils.ErrInvalidInput, strings.Join(budgetLevels, ", "))
	}
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		return editStage(doc, response_models.StageQuestions, func() {
			doc.Questionnaire = response_models.WizardQuestionnaire{
				Interests:     cleanList(req.Interests),
				Budget:        budget,
				AnonymityIdea: strings.TrimSpace(req.AnonymityIdea),
				TravelPace:    strings.TrimSpace(req.TravelPace),
			}
		})
	})
}

func (s *WizardService) UpdateDates(ctx context.Context, userID string, req request_models.DatesRequest) (*response_models.WizardView, error) {
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		return editStage(doc, response_models.StageDates, func() {
			doc.Dates = response_models.WizardDates{
				Destination: strings.TrimSpace(req.Destination),
				StartDate:   strings.TrimSpace(req.StartDate),
				EndDate:     strings.TrimSpace(req.EndDate),
			}
		})
	})
}

func (s *WizardService) Advance(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		idx := doc.Stage.Index()
		if !CanProceed(*doc, doc.Stage) {
			return fmt.Errorf("%w: complete the %s step first", utils.ErrInvalidInput, doc.Stage)
		}
		if idx == len(response_models.WizardStages)-1 {
			return fmt.Errorf("%w: already at the last step", utils.ErrInvalidInput)
		}
		doc.Stage = response_models.WizardStages[idx+1]
		return nil
	})
}

func (s *WizardService) Back(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		if idx := doc.Stage.Index(); idx > 0 {
			doc.Stage = response_models.WizardStages[idx-1]
		}
		return nil
	})
}

func (s *WizardService) Reset(ctx context.Context, userID string) (*response_models.WizardView, error) {
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		*doc = response_models.NewWizardDocument()
		return nil
	})
}

func requireStage(doc response_models.WizardDocument, stage response_models.WizardStage) error {
	if doc.Stage.Index() < stage.Index() {
		return fmt.Errorf("%w: %s", utils.ErrStageLocked, stage)
	}
	return nil
}

func (s *WizardService) consume(ctx context.Context, uid uuid.UUID, policy QuotaPolicy) error {
	_, err := s.quotas.Consume(ctx, uid, policy.Kind, policy.apply(s.now()))
	if err == nil {
		return nil
	}
	var rateErr *utils.RateLimitError
	if errors.As(err, &rateErr) {
		return err
	}
	s.logger.Error("failed to update quota", zap.String("kind", policy.Kind), zap.Error(err))
	return dbError("consume quota", err)
}

// GenerateImage spends one image credit before calling the model, so failed
// generations still count against the hourly limit.
func (s *WizardService) GenerateImage(ctx context.Context, userID string) (*response_models.WizardView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := requireStage(doc, response_models.StageImage); err != nil {
		return nil, err
	}
	if err := s.consume(ctx, uid, s.imagePolicy); err != nil {
		return nil, err
	}

	png, err := s.images.GenerateImage(ctx, portraitPrompt(doc))
	if err != nil {
		s.logger.Warn("portrait generation failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("generate portrait: %w", err)
	}
	url, err := s.store.Put(ctx, fmt.Sprintf("portraits/%s.png", uid), "image/png", png)
	if err != nil {
		return nil, err
	}

	// the key is overwritten on every generation; the query busts caches
	doc.ImageURL = fmt.Sprintf("%s?v=%d", url, s.now().UnixMilli())
	if err := s.save(ctx, uid, doc); err != nil {
		return nil, err
	}
	return s.view(ctx, uid, doc)
}

func portraitPrompt(doc response_models.WizardDocument) string {
	var b strings.Builder
	b.WriteString("A stylised illustrated portrait of an anonymous traveller, face not recognisable, no text. ")
	fmt.Fprintf(&b, "Persona: %s. ", doc.Persona.Seed)
	if idea := doc.Questionnaire.AnonymityIdea; idea != "" {
		fmt.Fprintf(&b, "Keep them anonymous this way: %s. ", idea)
	}
	if len(doc.Questionnaire.Interests) > 0 {
		fmt.Fprintf(&b, "Hint at these interests: %s. ", strings.Join(doc.Questionnaire.Interests, ", "))
	}
	if doc.Dates.Destination != "" {
		fmt.Fprintf(&b, "Background evokes %s.", doc.Dates.Destination)
	}
	return b.String()
}

func (s *WizardService) GenerateItinerary(ctx context.Context, userID string) (*response_models.WizardView, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	doc, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := requireStage(doc, response_models.StageItinerary); err != nil {
		return nil, err
	}
	if err := s.consume(ctx, uid, s.tripPolicy); err != nil {
		return nil, err
	}

	result, err := s.itineraries.Generate(ctx, request_models.TripParams{
		Cities:    []string{doc.Dates.Destination},
		Interests: doc.Questionnaire.Interests,
		StartDate: doc.Dates.StartDate,
		EndDate:   doc.Dates.EndDate,
		Budget:    doc.Questionnaire.Budget,
		Persona:   doc.Persona.Seed,
	})
	if err != nil {
		return nil, err
	}

	doc.Itinerary = result
	if err := s.save(ctx, uid, doc); err != nil {
		return nil, err
	}
	return s.view(ctx, uid, doc)
}

func (s *WizardService) UpdateItineraryItem(ctx context.Context, userID, itemID string, req request_models.UpdateItemRequest) (*response_models.WizardView, error) {
	return s.mutate(ctx, userID, func(doc *response_models.WizardDocument) error {
		if doc.Itinerary == nil {
			return fmt.Errorf("%w: %s", utils.ErrItemNotFound, itemID)
		}
		it := &doc.Itinerary.Itinerary
		if req.Done == nil && req.Title == nil {
			_, err := it.Toggle(itemID)
			return err
		}
		if req.Title != nil {
			if err := it.Rename(itemID, *req.Title); err != nil {
				return err
			}
		}
		if req.Done != nil {
			return it.SetDone(itemID, *req.Done)
		}
		return nil
	})
}
