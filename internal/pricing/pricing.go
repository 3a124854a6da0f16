// Package pricing holds the fare math for trip requests: the urgency
// surge multiplier and promo-code percentage discounts.
package pricing

import "math"

// SurgeMultiplier is applied to the fare when a trip is marked urgent.
const SurgeMultiplier = 1.5

// Calculate returns the final price for a trip. The surge multiplier is
// applied before the discount, so a promo code also discounts the surge
// portion. discountPercentage is ignored when zero. The result is
// rounded to two decimals.
func Calculate(originalPrice float64, isUrgent bool, discountPercentage int) float64 {
	finalPrice := originalPrice

	if isUrgent {
		finalPrice *= SurgeMultiplier
	}

	if discountPercentage > 0 {
		finalPrice -= float64(discountPercentage) / 100 * finalPrice
	}

	return Round2(finalPrice)
}

// Round2 rounds to two decimal places, the precision used for all
// monetary amounts.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
