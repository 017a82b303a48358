package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"voyago/pkg/utils"
)

// parseUserID turns the authenticated subject into a uuid; anything unusable means no session.
func parseUserID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, utils.ErrUnauthenticated
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, utils.ErrUnauthenticated
	}
	return id, nil
}

func parseResourceID(raw string, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed %s id", utils.ErrInvalidInput, what)
	}
	return id, nil
}

func dbError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, utils.ErrDatabaseError, err)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
