package quote

import (
	"testing"

	"github.com/aifuge/freightquote/internal/refdata"
)

func dieselTable() []refdata.DieselFloaterEntry {
	return []refdata.DieselFloaterEntry{
		{CeilingCentPerL: 120, SurchargePct: 0},
		{CeilingCentPerL: 140, SurchargePct: 0.03},
		{CeilingCentPerL: 9999, SurchargePct: 0.06},
	}
}

func TestDieselSurchargePct_StepSelection(t *testing.T) {
	// Smallest ceiling >= 130 is 140.
	if pct := DieselSurchargePct(dieselTable(), 130); pct != 0.03 {
		t.Fatalf("pct at 130 = %v, want 0.03", pct)
	}
	if pct := DieselSurchargePct(dieselTable(), 100); pct != 0 {
		t.Fatalf("pct at 100 = %v, want 0", pct)
	}
	// Boundary is inclusive.
	if pct := DieselSurchargePct(dieselTable(), 120); pct != 0 {
		t.Fatalf("pct at 120 = %v, want 0", pct)
	}
	if pct := DieselSurchargePct(dieselTable(), 120.5); pct != 0.03 {
		t.Fatalf("pct at 120.5 = %v, want 0.03", pct)
	}
}

func TestDieselSurchargePct_ClampHigh(t *testing.T) {
	table := []refdata.DieselFloaterEntry{
		{CeilingCentPerL: 120, SurchargePct: 0},
		{CeilingCentPerL: 140, SurchargePct: 0.03},
	}
	if pct := DieselSurchargePct(table, 500); pct != 0.03 {
		t.Fatalf("pct above all ceilings = %v, want clamp to 0.03", pct)
	}
}

func TestDieselSurchargePct_Monotonic(t *testing.T) {
	table := dieselTable()
	prev := -1.0
	for price := 80.0; price <= 300; price += 5 {
		pct := DieselSurchargePct(table, price)
		if pct < prev {
			t.Fatalf("surcharge decreased at price %v: %v < %v", price, pct, prev)
		}
		prev = pct
	}
}

func TestDieselSurchargePct_EmptyTable(t *testing.T) {
	if pct := DieselSurchargePct(nil, 130); pct != 0 {
		t.Fatalf("empty table pct = %v, want 0", pct)
	}
}
