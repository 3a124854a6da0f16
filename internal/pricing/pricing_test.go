package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name               string
		originalPrice      float64
		isUrgent           bool
		discountPercentage int
		expected           float64
	}{
		{
			name:          "plain fare is unchanged",
			originalPrice: 100.0,
			expected:      100.0,
		},
		{
			name:          "urgent fare gets the surge multiplier",
			originalPrice: 10.0,
			isUrgent:      true,
			expected:      15.0,
		},
		{
			name:               "promo discount is applied",
			originalPrice:      100.0,
			discountPercentage: 10,
			expected:           90.0,
		},
		{
			name:               "unknown promo resolves to zero discount",
			originalPrice:      100.0,
			discountPercentage: 0,
			expected:           100.0,
		},
		{
			name:               "surge is applied before the discount",
			originalPrice:      100.0,
			isUrgent:           true,
			discountPercentage: 10,
			expected:           135.0,
		},
		{
			name:               "full discount zeroes the fare",
			originalPrice:      42.0,
			discountPercentage: 100,
			expected:           0.0,
		},
		{
			name:          "result is rounded to two decimals",
			originalPrice: 9.99,
			isUrgent:      true,
			expected:      14.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(tt.originalPrice, tt.isUrgent, tt.discountPercentage)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.35, Round2(12.3456))
	assert.Equal(t, 12.34, Round2(12.341))
	assert.Equal(t, 0.0, Round2(0))
}
