package quote

import (
	"math"
	"testing"

	"github.com/aifuge/freightquote/internal/refdata"
)

func approx(t *testing.T, got, want float64, label string) {
	t.Helper()
	if math.Abs(got-want) > 0.005 {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}

func TestComposeParcel(t *testing.T) {
	p := refdata.Params{FuelPct: 0.12, SecurityPct: 0.00}
	items, total := ComposeParcel(45.00, p)

	// 45.00 * 1.12 = 50.40, itemized base + fuel + security.
	approx(t, total, 50.40, "total")
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	if items[0].Name != "fuel" {
		t.Fatalf("first item = %q, want fuel", items[0].Name)
	}
	approx(t, items[0].Amount, 5.40, "fuel")
	if items[1].Name != "security" || items[1].Amount != 0 {
		t.Fatalf("security item should be present at 0.00, got %+v", items[1])
	}
}

func TestComposeLTL_NoCompounding(t *testing.T) {
	p := refdata.Params{DAFPct: 0.10, MobilityPct: 0.029}
	items, total := ComposeLTL(100.00, 0.03, p, false, false, 0)

	// Each percentage applies to the base independently.
	approx(t, total, 100+3+10+2.90, "total")

	byName := map[string]float64{}
	for _, it := range items {
		byName[it.Name] = it.Amount
	}
	approx(t, byName["diesel"], 3.00, "diesel")
	approx(t, byName["daf"], 10.00, "daf")
	approx(t, byName["mobility"], 2.90, "mobility")
}

func TestComposeLTL_FlatFees(t *testing.T) {
	p := refdata.Params{ADRFee: 12.50, AvisFee: 12.00, InsuranceMin: 5.95}
	items, total := ComposeLTL(100.00, 0, p, true, true, 500)

	approx(t, total, 100+12.50+12+5.95, "total")

	// All six line items are always present.
	if len(items) != 6 {
		t.Fatalf("expected 6 line items, got %d", len(items))
	}
}

func TestComposeLTL_InsuranceFlatMinimum(t *testing.T) {
	p := refdata.Params{InsuranceMin: 5.95}

	// The fee is a flat minimum, not prorated by the declared value.
	_, withSmall := ComposeLTL(100.00, 0, p, false, false, 50)
	_, withLarge := ComposeLTL(100.00, 0, p, false, false, 50000)
	approx(t, withSmall, withLarge, "insurance flat fee")
	approx(t, withSmall, 105.95, "total with insurance")

	// Without insurance the line item stays in the breakdown at 0.00.
	items, total := ComposeLTL(100.00, 0, p, false, false, 0)
	approx(t, total, 100.00, "total without insurance")
	found := false
	for _, it := range items {
		if it.Name == "insurance" {
			found = true
			if it.Amount != 0 {
				t.Fatalf("insurance amount = %v, want 0", it.Amount)
			}
		}
	}
	if !found {
		t.Fatal("insurance line item missing from breakdown")
	}
}
