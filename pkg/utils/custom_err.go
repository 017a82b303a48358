package utils

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrTripPlanNotFound    = errors.New("trip plan not found")
	ErrItemNotFound        = errors.New("itinerary item not found")
	ErrNoCities            = errors.New("at least one city is required")
	ErrStageLocked         = errors.New("wizard stage is not reachable yet")
	ErrRateLimited         = errors.New("generation limit reached")
	ErrDatabaseError       = errors.New("database error")
	ErrProviderUnavailable = errors.New("upstream provider unavailable")
	ErrAirportUnresolved   = errors.New("airport code could not be resolved")
	ErrGenerationFailed    = errors.New("content generation failed")
	ErrStorageUnavailable  = errors.New("object storage unavailable")
)

// ProviderError is returned by search and content adapters when the remote call
// itself failed (transport error, non-2xx status or an unreadable payload).
type ProviderError struct {
	Provider string
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderUnavailable, e.Err}
}

func NewProviderError(provider string, status int, err error) *ProviderError {
	return &ProviderError{Provider: provider, Status: status, Err: err}
}

// RateLimitError carries the quota kind and how long until the next generation is allowed.
type RateLimitError struct {
	Kind       string
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s generation limit of %d reached, retry in %s", e.Kind, e.Limit, e.RetryAfter.Round(time.Minute))
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }
