package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name     string
		ratings  []int
		expected float64
		ok       bool
	}{
		{"single rating", []int{4}, 4.0, true},
		{"mean of five and four", []int{5, 4}, 4.5, true},
		{"repeating mean rounds to one decimal", []int{5, 5, 4}, 4.7, true},
		{"no ratings leaves the aggregate undefined", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			average, ok := AverageRating(tt.ratings)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, average)
			}
		})
	}
}
