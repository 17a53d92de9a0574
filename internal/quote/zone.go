package quote

import "github.com/aifuge/freightquote/internal/refdata"

// ResolveZone looks up the pricing zone for a destination within one
// carrier's zone map partition. countryKey is the ISO code for the parcel
// carrier's cross-border map, empty for its domestic map, and the carrier's
// native country name for the LTL map. Duplicate entries are a data-quality
// defect; the first match in table order wins deterministically.
func ResolveZone(entries []refdata.ZoneMapEntry, scope refdata.Scope, countryKey, postalPrefix string) (int, bool) {
	for _, e := range entries {
		if e.Scope != scope {
			continue
		}
		if e.CountryKey != countryKey {
			continue
		}
		if e.PostalPrefix != postalPrefix {
			continue
		}
		return e.Zone, true
	}
	return 0, false
}
