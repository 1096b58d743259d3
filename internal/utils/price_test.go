package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"4.99", 4.99, true},
		{"$4.99", 4.99, true},
		{" 12 ", 12, true},
		{"1,234.50", 1234.5, true},
		{"4,99", 4.99, true},
		{"1,234", 1234, true},
		{" 24.5", 24.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.InDelta(t, tt.want, got, 0.0001, tt.in)
	}
}
