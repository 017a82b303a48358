package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

const (
	ContentVisa            = "visa"
	ContentCurrency        = "currency"
	ContentRecommendations = "recommendations"
)

type ContentServiceInterface interface {
	Generate(ctx context.Context, kind string, req request_models.ContentRequest) (*response_models.ContentResponse, error)
}

type ContentService struct {
	gen    utils.ContentGenerator
	logger *zap.Logger
}

func NewContentService(gen utils.ContentGenerator, logger *zap.Logger) ContentServiceInterface {
	if gen == nil {
		gen = utils.UnavailableGenerator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{gen: gen, logger: logger}
}

func (s *ContentService) Generate(ctx context.Context, kind string, req request_models.ContentRequest) (*response_models.ContentResponse, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" {
		return nil, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}

	var prompt, fallback string
	switch kind {
	case ContentVisa:
		prompt, fallback = visaPrompt(req), visaFallback(req)
	case ContentCurrency:
		from, to := strings.ToUpper(strings.TrimSpace(req.FromCurrency)), strings.ToUpper(strings.TrimSpace(req.ToCurrency))
		if len(from) != 3 || len(to) != 3 {
			return nil, fmt.Errorf("%w: currencies must be 3-letter codes", utils.ErrInvalidInput)
		}
		if req.Amount < 0 {
			return nil, fmt.Errorf("%w: amount cannot be negative", utils.ErrInvalidInput)
		}
		req.FromCurrency, req.ToCurrency = from, to
		prompt, fallback = currencyPrompt(req), currencyFallback(req)
	case ContentRecommendations:
		prompt, fallback = recommendationsPrompt(req), recommendationsFallback(req)
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", utils.ErrInvalidInput, kind)
	}

	text, err := s.gen.GenerateText(ctx, prompt)
	if err == nil {
		text = strings.TrimSpace(text)
	}
	if err != nil || text == "" {
		s.logger.Warn("content generation failed, serving fallback",
			zap.String("kind", kind),
			zap.String("destination", req.Destination),
			zap.Error(err))
		return &response_models.ContentResponse{Kind: kind, Text: fallback, Fallback: true}, nil
	}
	return &response_models.ContentResponse{Kind: kind, Text: text}, nil
}

func visaPrompt(req request_models.ContentRequest) string {
	nationality := req.Nationality
	if nationality == "" {
		nationality = "an international"
	}
	return fmt.Sprintf(`You are a helpful travel assistant. In 150 words or fewer, summarise the visa and entry
requirements for %s travellers visiting %s: whether a visa is needed, typical processing time,
passport validity and any arrival formalities. Advise checking the official embassy website.
Answer in plain text without markdown.`, nationality, req.Destination)
}

func visaFallback(req request_models.ContentRequest) string {
	return fmt.Sprintf("Entry rules for %s depend on your nationality and can change at short notice. "+
		"Check the official embassy or immigration website for %s before booking, make sure your passport "+
		"is valid for at least six months after arrival, and keep copies of your bookings handy.",
		req.Destination, req.Destination)
}

func currencyPrompt(req request_models.ContentRequest) string {
	return fmt.Sprintf(`You are a helpful travel assistant. A traveller going to %s wants to convert %.2f %s to %s.
In 120 words or fewer, give an approximate conversion, say that rates move daily, and share practical tips
on cards, cash and exchange fees there. Answer in plain text without markdown.`,
		req.Destination, req.Amount, req.FromCurrency, req.ToCurrency)
}

func currencyFallback(req request_models.ContentRequest) string {
	return fmt.Sprintf("Live exchange rates are unavailable right now. To convert %.2f %s to %s, check your bank "+
		"or a current rate service before you travel to %s. Cards are widely accepted in most cities, but carry "+
		"some local cash and avoid airport exchange counters, which usually charge the highest fees.",
		req.Amount, req.FromCurrency, req.ToCurrency, req.Destination)
}

func recommendationsPrompt(req request_models.ContentRequest) string {
	interests := "general travel"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}
	return fmt.Sprintf(`You are a helpful travel assistant. Recommend three books and three movies that help a
traveller get to know %s before visiting. The traveller is interested in: %s.
Give one short line per title explaining why. Answer in plain text without markdown.`, req.Destination, interests)
}

func recommendationsFallback(req request_models.ContentRequest) string {
	return fmt.Sprintf("Recommendations are unavailable right now. Before visiting %s, look for a recent "+
		"travel guide, a novel set in the city and a documentary about its history to get a feel for the place.",
		req.Destination)
}
