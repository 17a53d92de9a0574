package quote

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidPostalCode is returned when a postal code contains no digits.
var ErrInvalidPostalCode = errors.New("postal code contains no digits")

// NormalizePostalPrefix canonicalizes a free-form postal code to the 2-digit
// prefix the zone maps are keyed on. Non-digits are stripped; a single
// remaining digit is left-padded with zero.
func NormalizePostalPrefix(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
		if digits.Len() == 2 {
			break
		}
	}
	switch digits.Len() {
	case 0:
		return "", ErrInvalidPostalCode
	case 1:
		return "0" + digits.String(), nil
	default:
		return digits.String(), nil
	}
}

// CountryRef is the two canonical forms of a destination country: the ISO
// code the parcel carrier keys its cross-border tables on, and the German
// name the LTL carrier uses in both scopes.
type CountryRef struct {
	ISO       string
	RabenName string
}

// countryAliases maps case-folded ISO codes, English names and German names
// onto one CountryRef each. The set matches the LTL carrier's network.
var countryAliases = buildCountryAliases([]struct {
	iso     string
	english string
	german  string
}{
	{"DE", "Germany", "Deutschland"},
	{"AT", "Austria", "Österreich"},
	{"PL", "Poland", "Polen"},
	{"BG", "Bulgaria", "Bulgarien"},
	{"LV", "Latvia", "Lettland"},
	{"LT", "Lithuania", "Litauen"},
	{"EE", "Estonia", "Estland"},
	{"CZ", "Czechia", "Tschechien"},
	{"HU", "Hungary", "Ungarn"},
	{"RO", "Romania", "Rumänien"},
	{"NL", "Netherlands", "Niederlande"},
	{"BE", "Belgium", "Belgien"},
	{"FR", "France", "Frankreich"},
	{"IT", "Italy", "Italien"},
	{"ES", "Spain", "Spanien"},
	{"PT", "Portugal", "Portugal"},
	{"DK", "Denmark", "Dänemark"},
	{"SE", "Sweden", "Schweden"},
	{"FI", "Finland", "Finnland"},
	{"IE", "Ireland", "Irland"},
	{"GR", "Greece", "Griechenland"},
	{"SK", "Slovakia", "Slowakei"},
	{"SI", "Slovenia", "Slowenien"},
	{"HR", "Croatia", "Kroatien"},
	{"LU", "Luxembourg", "Luxemburg"},
})

func buildCountryAliases(rows []struct {
	iso     string
	english string
	german  string
}) map[string]CountryRef {
	m := make(map[string]CountryRef, len(rows)*3)
	for _, r := range rows {
		ref := CountryRef{ISO: r.iso, RabenName: r.german}
		m[foldCountry(r.iso)] = ref
		m[foldCountry(r.english)] = ref
		m[foldCountry(r.german)] = ref
	}
	return m
}

func foldCountry(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeCountry resolves a free-form country string. Unknown input yields
// an empty ISO code and the trimmed raw value as best-effort LTL name; the
// zone resolver then simply finds no match, which is the designed failure
// path rather than a hard error here.
func NormalizeCountry(raw string) CountryRef {
	if ref, ok := countryAliases[foldCountry(raw)]; ok {
		return ref
	}
	return CountryRef{RabenName: strings.TrimSpace(raw)}
}
