package memcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLStore(t *testing.T) {
	now := time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC)
	s := NewTTLStore()
	s.now = func() time.Time { return now }

	s.Set(" Mumbai ", "BOM", time.Hour)

	v, ok := s.Get("mumbai")
	assert.True(t, ok)
	assert.Equal(t, "BOM", v)

	now = now.Add(2 * time.Hour)
	_, ok = s.Get("mumbai")
	assert.False(t, ok)

	s.Set("paris", "CDG", time.Hour)
	s.Delete("PARIS")
	_, ok = s.Get("paris")
	assert.False(t, ok)
}
