package services

import (
	"time"

	"voyago/internal/models/db_models"
	"voyago/internal/models/response_models"
	"voyago/pkg/utils"
)

const (
	QuotaKindImage     = "image"
	QuotaKindItinerary = "itinerary"
)

// QuotaPolicy is a counter that resets once its last increment is older than Window.
type QuotaPolicy struct {
	Kind   string
	Limit  int
	Window time.Duration
}

func (p QuotaPolicy) expired(q *db_models.GenerationQuota, now time.Time) bool {
	return q.LastAt == 0 || now.Sub(time.UnixMilli(q.LastAt)) > p.Window
}

// apply is handed to QuotaRepository.Consume, which runs it under a row lock.
func (p QuotaPolicy) apply(now time.Time) func(q *db_models.GenerationQuota) error {
	return func(q *db_models.GenerationQuota) error {
		if p.expired(q, now) {
			q.Count = 0
		}
		if q.Count >= p.Limit {
			return &utils.RateLimitError{
				Kind:       p.Kind,
				Limit:      p.Limit,
				RetryAfter: p.Window - now.Sub(time.UnixMilli(q.LastAt)),
			}
		}
		q.Count++
		q.LastAt = now.UnixMilli()
		return nil
	}
}

func (p QuotaPolicy) Status(q *db_models.GenerationQuota, now time.Time) response_models.QuotaStatus {
	st := response_models.QuotaStatus{Kind: p.Kind, Limit: p.Limit, Remaining: p.Limit}
	if q == nil || p.expired(q, now) {
		return st
	}
	st.Used = min(q.Count, p.Limit)
	st.Remaining = p.Limit - st.Used
	st.ResetsAt = time.UnixMilli(q.LastAt).Add(p.Window).UnixMilli()
	return st
}
