package quote

import (
	"testing"

	"github.com/aifuge/freightquote/internal/refdata"
)

func testBrackets() []refdata.RateBracket {
	return []refdata.RateBracket{
		{Scope: refdata.ScopeDomestic, Zone: 2, WeightFrom: 0, WeightTo: 100, Price: 35.00},
		{Scope: refdata.ScopeDomestic, Zone: 2, WeightFrom: 100, WeightTo: 200, Price: 45.00},
		{Scope: refdata.ScopeDomestic, Zone: 2, WeightFrom: 200, WeightTo: 500, Price: 74.00},
		{Scope: refdata.ScopeDomestic, Zone: 3, WeightFrom: 0, WeightTo: 100, Price: 38.50},
	}
}

func TestSelectRate_BoundaryLaw(t *testing.T) {
	b := testBrackets()

	// Weight 100 belongs to the bracket ending at 100, not the one starting there.
	sel := SelectRate(b, refdata.ScopeDomestic, "", 2, 100)
	if !sel.Found || sel.Price != 35.00 {
		t.Fatalf("weight 100: got %+v, want price 35.00", sel)
	}

	sel = SelectRate(b, refdata.ScopeDomestic, "", 2, 100.01)
	if !sel.Found || sel.Price != 45.00 {
		t.Fatalf("weight 100.01: got %+v, want price 45.00", sel)
	}
}

func TestSelectRate_SameBracketSamePrice(t *testing.T) {
	b := testBrackets()
	p1 := SelectRate(b, refdata.ScopeDomestic, "", 2, 101)
	p2 := SelectRate(b, refdata.ScopeDomestic, "", 2, 199.5)
	if !p1.Found || !p2.Found || p1.Price != p2.Price {
		t.Fatalf("weights in the same bracket priced differently: %v vs %v", p1.Price, p2.Price)
	}
}

func TestSelectRate_ZeroBracketClosedBothEnds(t *testing.T) {
	sel := SelectRate(testBrackets(), refdata.ScopeDomestic, "", 2, 0.5)
	if !sel.Found || sel.Price != 35.00 {
		t.Fatalf("weight 0.5: got %+v, want price 35.00", sel)
	}
}

func TestSelectRate_ExceedsCoverage(t *testing.T) {
	sel := SelectRate(testBrackets(), refdata.ScopeDomestic, "", 2, 6000)
	if sel.Found {
		t.Fatalf("expected no match for 6000kg, got price %v", sel.Price)
	}
	if sel.MaxCoveredKg != 500 {
		t.Fatalf("max covered = %v, want 500", sel.MaxCoveredKg)
	}
}

func TestSelectRate_UnknownZone(t *testing.T) {
	sel := SelectRate(testBrackets(), refdata.ScopeDomestic, "", 9, 50)
	if sel.Found {
		t.Fatalf("expected no match for unknown zone")
	}
	if sel.MaxCoveredKg != 0 {
		t.Fatalf("unknown zone should report zero coverage, got %v", sel.MaxCoveredKg)
	}
}

func TestSelectRate_OverlapNarrowestWins(t *testing.T) {
	// Overlapping brackets are a data defect; the narrowest interval wins.
	b := []refdata.RateBracket{
		{Scope: refdata.ScopeDomestic, Zone: 1, WeightFrom: 0, WeightTo: 1000, Price: 99.00},
		{Scope: refdata.ScopeDomestic, Zone: 1, WeightFrom: 100, WeightTo: 200, Price: 45.00},
	}
	sel := SelectRate(b, refdata.ScopeDomestic, "", 1, 150)
	if !sel.Found || sel.Price != 45.00 {
		t.Fatalf("overlap: got %+v, want narrowest bracket price 45.00", sel)
	}
}

func TestSelectRate_CountryPartition(t *testing.T) {
	b := []refdata.RateBracket{
		{Scope: refdata.ScopeCrossBorder, CountryKey: "PL", Zone: 1, WeightFrom: 0, WeightTo: 100, Price: 58.00},
		{Scope: refdata.ScopeCrossBorder, CountryKey: "AT", Zone: 1, WeightFrom: 0, WeightTo: 100, Price: 52.00},
	}
	sel := SelectRate(b, refdata.ScopeCrossBorder, "AT", 1, 50)
	if !sel.Found || sel.Price != 52.00 {
		t.Fatalf("country partition: got %+v, want 52.00", sel)
	}
}

func TestResolveZone(t *testing.T) {
	entries := []refdata.ZoneMapEntry{
		{Scope: refdata.ScopeDomestic, PostalPrefix: "38", Zone: 2},
		{Scope: refdata.ScopeCrossBorder, CountryKey: "PL", PostalPrefix: "30", Zone: 2},
	}

	zone, ok := ResolveZone(entries, refdata.ScopeDomestic, "", "38")
	if !ok || zone != 2 {
		t.Fatalf("domestic resolve = (%d, %t), want (2, true)", zone, ok)
	}

	if _, ok := ResolveZone(entries, refdata.ScopeDomestic, "", "99"); ok {
		t.Fatal("expected no zone for unknown prefix")
	}

	// Scope partitions are strict: the PL entry is not visible domestically.
	if _, ok := ResolveZone(entries, refdata.ScopeDomestic, "PL", "30"); ok {
		t.Fatal("cross-border entry leaked into domestic scope")
	}
}

func TestResolveZone_FirstMatchWins(t *testing.T) {
	entries := []refdata.ZoneMapEntry{
		{Scope: refdata.ScopeDomestic, PostalPrefix: "38", Zone: 2},
		{Scope: refdata.ScopeDomestic, PostalPrefix: "38", Zone: 7},
	}
	zone, ok := ResolveZone(entries, refdata.ScopeDomestic, "", "38")
	if !ok || zone != 2 {
		t.Fatalf("duplicate entries: got zone %d, want first match 2", zone)
	}
}
