package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voyago/internal/models/request_models"
	"voyago/pkg/utils"
)

func TestContentService_Generate(t *testing.T) {
	gen := &stubGenerator{replies: map[string]string{
		"visa and entry": "  Indian citizens need a Schengen visa.  ",
		"convert":        "",
	}}
	svc := NewContentService(gen, nil)
	ctx := context.Background()

	tests := []struct {
		name         string
		kind         string
		req          request_models.ContentRequest
		wantText     string
		wantFallback bool
		wantErr      error
	}{
		{
			name:     "generated visa text",
			kind:     "Visa",
			req:      request_models.ContentRequest{Destination: "France", Nationality: "Indian"},
			wantText: "Indian citizens need a Schengen visa.",
		},
		{
			name:         "empty reply falls back",
			kind:         "currency",
			req:          request_models.ContentRequest{Destination: "Japan", FromCurrency: "usd", ToCurrency: "jpy", Amount: 100},
			wantFallback: true,
		},
		{
			name:         "generator failure falls back",
			kind:         "recommendations",
			req:          request_models.ContentRequest{Destination: "Lisbon"},
			wantFallback: true,
		},
		{
			name:    "unknown kind",
			kind:    "weather",
			req:     request_models.ContentRequest{Destination: "Lisbon"},
			wantErr: utils.ErrInvalidInput,
		},
		{
			name:    "missing destination",
			kind:    "visa",
			wantErr: utils.ErrInvalidInput,
		},
		{
			name:    "bad currency code",
			kind:    "currency",
			req:     request_models.ContentRequest{Destination: "Japan", FromCurrency: "dollars", ToCurrency: "JPY"},
			wantErr: utils.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Generate(ctx, tt.kind, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFallback, res.Fallback)
			assert.NotEmpty(t, res.Text)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, res.Text)
			}
		})
	}
}

func TestContentService_CurrencyFallbackMentionsAmounts(t *testing.T) {
	svc := NewContentService(nil, nil)

	res, err := svc.Generate(context.Background(), ContentCurrency, request_models.ContentRequest{
		Destination: "Japan", FromCurrency: "usd", ToCurrency: "jpy", Amount: 100,
	})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Contains(t, res.Text, "100.00 USD to JPY")
}
