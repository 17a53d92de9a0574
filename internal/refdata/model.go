package refdata

import (
	"errors"
	"fmt"
	"sort"
)

// ErrStructural marks reference-data problems that make quoting impossible:
// a missing table, a missing required column, an unparsable row. Callers
// must treat it as fatal at load time, never as a per-request condition.
var ErrStructural = errors.New("reference data structural error")

// Scope selects which zone map and rate table apply to a shipment.
// The values are the ones used in the reference data files.
type Scope string

const (
	ScopeDomestic    Scope = "DE"
	ScopeCrossBorder Scope = "EU"
)

// ZoneMapEntry maps a destination to a pricing zone. CountryKey is empty for
// the parcel carrier's domestic map, an ISO code for its cross-border map,
// and the LTL carrier's native country name for both of its scopes.
type ZoneMapEntry struct {
	Scope        Scope
	CountryKey   string
	PostalPrefix string
	Zone         int
}

// RateBracket is a weight interval with a base price in EUR. A bracket with
// WeightFrom == 0 is closed on both ends; every other bracket is open at
// WeightFrom and closed at WeightTo.
type RateBracket struct {
	Scope      Scope
	CountryKey string
	Zone       int
	WeightFrom float64
	WeightTo   float64
	Price      float64
}

// DieselFloaterEntry is one step of the LTL carrier's fuel surcharge table:
// the surcharge percent applies up to and including the given diesel price.
type DieselFloaterEntry struct {
	CeilingCentPerL float64
	SurchargePct    float64
}

// Tables is one immutable snapshot of all reference data. A snapshot is
// never mutated after load; reloads build a fresh one and swap it in.
type Tables struct {
	ParcelDomesticZones []ZoneMapEntry
	ParcelDomesticRates []RateBracket
	ParcelCrossZones    []ZoneMapEntry
	ParcelCrossRates    []RateBracket
	LTLZones            []ZoneMapEntry
	LTLRates            []RateBracket
	DieselFloater       []DieselFloaterEntry
	Params              Params
}

// Validate checks the structural invariants a snapshot must satisfy before
// it may serve quotes. It also sorts the diesel floater ascending by
// ceiling, which the lookup relies on.
func (t *Tables) Validate() error {
	checks := []struct {
		name  string
		empty bool
	}{
		{"parcel domestic zone map", len(t.ParcelDomesticZones) == 0},
		{"parcel domestic rates", len(t.ParcelDomesticRates) == 0},
		{"parcel cross-border zone map", len(t.ParcelCrossZones) == 0},
		{"parcel cross-border rates", len(t.ParcelCrossRates) == 0},
		{"ltl zone map", len(t.LTLZones) == 0},
		{"ltl rates", len(t.LTLRates) == 0},
		{"diesel floater table", len(t.DieselFloater) == 0},
	}
	for _, c := range checks {
		if c.empty {
			return fmt.Errorf("%w: %s is empty", ErrStructural, c.name)
		}
	}

	for _, b := range [][]RateBracket{t.ParcelDomesticRates, t.ParcelCrossRates, t.LTLRates} {
		for _, rb := range b {
			if rb.WeightFrom < 0 || rb.WeightTo < rb.WeightFrom {
				return fmt.Errorf("%w: bracket zone %d has invalid interval [%g, %g]",
					ErrStructural, rb.Zone, rb.WeightFrom, rb.WeightTo)
			}
		}
	}

	sort.SliceStable(t.DieselFloater, func(i, j int) bool {
		return t.DieselFloater[i].CeilingCentPerL < t.DieselFloater[j].CeilingCentPerL
	})
	return nil
}
