package endpoints

import "math"

// Pricing rules carried over from the sales sheet: a flat base rate per
// display-week, a surcharge for the 10s tier, and an optional custom price
// recorded with the discount it implies.
const baseWeeklyRate = 5000

type pricing struct {
	Calculated      float64
	Final           float64
	Discount        float64
	DiscountPercent float64
}

// computePricing derives the campaign price. numDisplays is the sum of the
// bearing groups' census counts; nested bearing groups overlap, which keeps
// the quote aligned with the capacity pools actually booked.
func computePricing(tier string, weeks, numDisplays int, customPrice *float64) pricing {
	if weeks < 1 {
		weeks = 1
	}
	if numDisplays < 1 {
		numDisplays = 1
	}
	multiplier := 1.0
	if tier == "10s" {
		multiplier = 1.5
	}
	p := pricing{Calculated: baseWeeklyRate * float64(weeks) * float64(numDisplays) * multiplier}
	p.Final = p.Calculated
	if customPrice != nil {
		p.Final = *customPrice
		p.Discount = p.Calculated - *customPrice
		if p.Calculated > 0 {
			// two decimals, as the quotes are rendered
			p.DiscountPercent = math.Round(p.Discount/p.Calculated*10000) / 100
		}
	}
	return p
}
