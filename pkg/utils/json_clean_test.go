package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here is the itinerary: {\"days\":[]} hope you enjoy", `{"days":[]}`},
		{"array", "Sure!\n[1,2,3]\nDone", `[1,2,3]`},
		{"braces inside strings", `{"tip":"use } and { freely","n":2} trailing`, `{"tip":"use } and { freely","n":2}`},
		{"escaped quote", `{"q":"say \"hi\" }"} x`, `{"q":"say \"hi\" }"}`},
		{"object before array", `{"list":[1,2]}`, `{"list":[1,2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONResponse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestCleanJSONResponse_Truncated(t *testing.T) {
	got := CleanJSONResponse(`{"days":[{"day":1}`)
	assert.False(t, json.Valid([]byte(got)))
}
