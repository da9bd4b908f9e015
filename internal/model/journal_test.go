package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegEntryGroup(t *testing.T) {
	tests := []struct {
		legID string
		want  string
	}{
		{"2025-01-001a", "2025-01-001"},
		{"2025-01-001b", "2025-01-001"},
		{"2025-12-042", "2025-12-042"},
		{"", ""},
	}
	for _, tt := range tests {
		leg := Leg{EntryID: tt.legID}
		assert.Equal(t, tt.want, leg.EntryGroup())
	}
}
