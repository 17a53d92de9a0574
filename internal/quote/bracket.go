package quote

import "github.com/aifuge/freightquote/internal/refdata"

// RateSelection is the outcome of a bracket lookup. When Found is false,
// MaxCoveredKg distinguishes "weight exceeds table coverage" (> 0) from
// "the zone has no brackets at all" (== 0).
type RateSelection struct {
	Price        float64
	Found        bool
	MaxCoveredKg float64
}

// bracketContains applies the boundary convention: a bracket starting at 0
// is closed on both ends, every other bracket is open at its lower bound and
// closed at its upper bound. Weight 100 therefore belongs to [0,100], not to
// (100,200].
func bracketContains(b refdata.RateBracket, weightKg float64) bool {
	if b.WeightFrom == 0 {
		return weightKg >= 0 && weightKg <= b.WeightTo
	}
	return weightKg > b.WeightFrom && weightKg <= b.WeightTo
}

// SelectRate picks the base price for a weight within one zone. Overlapping
// brackets are a data-quality defect: the narrowest interval wins, ties
// broken by ascending lower bound.
func SelectRate(brackets []refdata.RateBracket, scope refdata.Scope, countryKey string, zone int, weightKg float64) RateSelection {
	sel := RateSelection{}
	var best *refdata.RateBracket

	for i := range brackets {
		b := &brackets[i]
		if b.Scope != scope || b.CountryKey != countryKey || b.Zone != zone {
			continue
		}
		if b.WeightTo > sel.MaxCoveredKg {
			sel.MaxCoveredKg = b.WeightTo
		}
		if !bracketContains(*b, weightKg) {
			continue
		}
		if best == nil {
			best = b
			continue
		}
		width, bestWidth := b.WeightTo-b.WeightFrom, best.WeightTo-best.WeightFrom
		if width < bestWidth || (width == bestWidth && b.WeightFrom < best.WeightFrom) {
			best = b
		}
	}

	if best == nil {
		return sel
	}
	return RateSelection{Price: best.Price, Found: true, MaxCoveredKg: sel.MaxCoveredKg}
}
