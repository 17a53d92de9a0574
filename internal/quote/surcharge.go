package quote

import (
	"math"

	"github.com/aifuge/freightquote/internal/refdata"
)

// round2 rounds to cents. Every line item and the total are rounded
// independently; the total is the sum of the rounded items.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComposeParcel applies the parcel carrier's surcharge chain. Each surcharge
// is computed on the base price, never on prior surcharges.
func ComposeParcel(base float64, p refdata.Params) ([]Surcharge, float64) {
	items := []Surcharge{
		{Name: "fuel", Amount: round2(base * p.FuelPct)},
		{Name: "security", Amount: round2(base * p.SecurityPct)},
	}
	return items, sumWithBase(base, items)
}

// ComposeLTL applies the LTL carrier's surcharge chain: three percentage
// surcharges on the base price plus up to three flat fees. Insurance is a
// flat minimum whenever any insurance value was supplied; it is not prorated
// by the declared value. Untriggered items stay in the breakdown at 0.00.
func ComposeLTL(base, dieselPct float64, p refdata.Params, adr, avis bool, insuranceValue float64) ([]Surcharge, float64) {
	var adrFee, avisFee, insFee float64
	if adr {
		adrFee = p.ADRFee
	}
	if avis {
		avisFee = p.AvisFee
	}
	if insuranceValue > 0 {
		insFee = p.InsuranceMin
	}
	items := []Surcharge{
		{Name: "diesel", Amount: round2(base * dieselPct)},
		{Name: "daf", Amount: round2(base * p.DAFPct)},
		{Name: "mobility", Amount: round2(base * p.MobilityPct)},
		{Name: "adr", Amount: round2(adrFee)},
		{Name: "avis", Amount: round2(avisFee)},
		{Name: "insurance", Amount: round2(insFee)},
	}
	return items, sumWithBase(base, items)
}

func sumWithBase(base float64, items []Surcharge) float64 {
	total := round2(base)
	for _, it := range items {
		total += it.Amount
	}
	return round2(total)
}
