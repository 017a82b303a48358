package utils

import (
	"context"
	"fmt"
	"strings"
)

// ContentGenerator is the generative text endpoint used for itineraries,
// airport codes and free-text travel content.
type ContentGenerator interface {
	// GenerateJSON returns a cleaned JSON document (object or array).
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator returns encoded PNG bytes for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

type AIConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	ImageModel   string
}

// NewContentGenerator picks the configured backend. With no usable key it
// returns an unavailable generator so callers fall through to their fallbacks.
func NewContentGenerator(ctx context.Context, cfg AIConfig) (ContentGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return UnavailableGenerator{}, nil
		}
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.ImageModel), nil
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return UnavailableGenerator{}, nil
		}
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unsupported generative provider: %s", cfg.Provider)
	}
}

// UnavailableGenerator fails every call with ErrGenerationFailed.
type UnavailableGenerator struct{}

func (UnavailableGenerator) GenerateJSON(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no generative provider configured", ErrGenerationFailed)
}

func (UnavailableGenerator) GenerateText(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no generative provider configured", ErrGenerationFailed)
}

func (UnavailableGenerator) GenerateImage(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("%w: no image provider configured", ErrGenerationFailed)
}

// NewImageGenerator always uses OpenAI images, whatever the text provider is.
func NewImageGenerator(cfg AIConfig) ImageGenerator {
	if cfg.OpenAIAPIKey == "" {
		return UnavailableGenerator{}
	}
	return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.ImageModel)
}
