package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File names expected inside the data directory. The column names inside
// each file are a contract with the external data-preparation process.
const (
	FileParcelDomesticZones = "dhl_de_plz2_zone.csv"
	FileParcelDomesticRates = "dhl_de_rates.csv"
	FileParcelCrossZones    = "dhl_eu_zone_map.csv"
	FileParcelCrossRates    = "dhl_eu_rates_long.csv"
	FileLTLZones            = "raben_zone_map.csv"
	FileLTLRates            = "raben_rates_long.csv"
	FileDieselFloater       = "raben_diesel_floater.csv"
	FileParams              = "params_default.json"
)

// LoadTablesFromDir loads and validates a full reference-data snapshot from
// a directory of CSV files plus the optional params JSON.
func LoadTablesFromDir(dir string) (*Tables, error) {
	t := &Tables{}
	var err error

	if t.ParcelDomesticZones, err = loadParcelDomesticZones(filepath.Join(dir, FileParcelDomesticZones)); err != nil {
		return nil, err
	}
	if t.ParcelDomesticRates, err = loadParcelDomesticRates(filepath.Join(dir, FileParcelDomesticRates)); err != nil {
		return nil, err
	}
	if t.ParcelCrossZones, err = loadParcelCrossZones(filepath.Join(dir, FileParcelCrossZones)); err != nil {
		return nil, err
	}
	if t.ParcelCrossRates, err = loadParcelCrossRates(filepath.Join(dir, FileParcelCrossRates)); err != nil {
		return nil, err
	}
	if t.LTLZones, err = loadLTLZones(filepath.Join(dir, FileLTLZones)); err != nil {
		return nil, err
	}
	if t.LTLRates, err = loadLTLRates(filepath.Join(dir, FileLTLRates)); err != nil {
		return nil, err
	}
	if t.DieselFloater, err = loadDieselFloater(filepath.Join(dir, FileDieselFloater)); err != nil {
		return nil, err
	}
	if t.Params, err = LoadParams(filepath.Join(dir, FileParams)); err != nil {
		return nil, err
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// csvTable is one parsed CSV file with a header index.
type csvTable struct {
	file string
	cols map[string]int
	rows [][]string
}

func readCSVTable(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStructural, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrStructural, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrStructural, path)
	}

	t := &csvTable{
		file: filepath.Base(path),
		cols: make(map[string]int, len(records[0])),
		rows: records[1:],
	}
	for i, name := range records[0] {
		// Strip a UTF-8 BOM that spreadsheet exports like to prepend.
		name = strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")
		t.cols[name] = i
	}
	return t, nil
}

// require returns the column indexes for the given names, or a structural
// error naming the first missing one.
func (t *csvTable) require(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		col, ok := t.cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s is missing required column %q", ErrStructural, t.file, name)
		}
		idx[i] = col
	}
	return idx, nil
}

func (t *csvTable) str(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func (t *csvTable) float(row []string, col int, rowNum int) (float64, error) {
	s := t.str(row, col)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d: bad number %q", ErrStructural, t.file, rowNum, s)
	}
	return v, nil
}

func (t *csvTable) int(row []string, col int, rowNum int) (int, error) {
	s := t.str(row, col)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d: bad integer %q", ErrStructural, t.file, rowNum, s)
	}
	return v, nil
}

func loadParcelDomesticZones(path string) ([]ZoneMapEntry, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("plz2", "zone")
	if err != nil {
		return nil, err
	}
	out := make([]ZoneMapEntry, 0, len(t.rows))
	for i, row := range t.rows {
		zone, err := t.int(row, idx[1], i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, ZoneMapEntry{
			Scope:        ScopeDomestic,
			PostalPrefix: t.str(row, idx[0]),
			Zone:         zone,
		})
	}
	return out, nil
}

func loadParcelCrossZones(path string) ([]ZoneMapEntry, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("country_code", "plz2", "zone")
	if err != nil {
		return nil, err
	}
	out := make([]ZoneMapEntry, 0, len(t.rows))
	for i, row := range t.rows {
		zone, err := t.int(row, idx[2], i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, ZoneMapEntry{
			Scope:        ScopeCrossBorder,
			CountryKey:   strings.ToUpper(t.str(row, idx[0])),
			PostalPrefix: t.str(row, idx[1]),
			Zone:         zone,
		})
	}
	return out, nil
}

func loadLTLZones(path string) ([]ZoneMapEntry, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("scope", "country", "plz2", "zone")
	if err != nil {
		return nil, err
	}
	out := make([]ZoneMapEntry, 0, len(t.rows))
	for i, row := range t.rows {
		zone, err := t.int(row, idx[3], i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, ZoneMapEntry{
			Scope:        Scope(t.str(row, idx[0])),
			CountryKey:   t.str(row, idx[1]),
			PostalPrefix: t.str(row, idx[2]),
			Zone:         zone,
		})
	}
	return out, nil
}

func loadParcelDomesticRates(path string) ([]RateBracket, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("zone", "w_from", "w_to", "price")
	if err != nil {
		return nil, err
	}
	return t.readBrackets(idx, -1, -1, ScopeDomestic)
}

func loadParcelCrossRates(path string) ([]RateBracket, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("zone", "w_from", "w_to", "price", "country_code")
	if err != nil {
		return nil, err
	}
	return t.readBrackets(idx[:4], idx[4], -1, ScopeCrossBorder)
}

func loadLTLRates(path string) ([]RateBracket, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("zone", "w_from", "w_to", "price", "country", "scope")
	if err != nil {
		return nil, err
	}
	return t.readBrackets(idx[:4], idx[4], idx[5], "")
}

// readBrackets parses bracket rows. countryCol and scopeCol are -1 when the
// table does not carry that column; fixedScope applies when scopeCol is -1.
func (t *csvTable) readBrackets(idx []int, countryCol, scopeCol int, fixedScope Scope) ([]RateBracket, error) {
	out := make([]RateBracket, 0, len(t.rows))
	for i, row := range t.rows {
		zone, err := t.int(row, idx[0], i+2)
		if err != nil {
			return nil, err
		}
		from, err := t.float(row, idx[1], i+2)
		if err != nil {
			return nil, err
		}
		to, err := t.float(row, idx[2], i+2)
		if err != nil {
			return nil, err
		}
		price, err := t.float(row, idx[3], i+2)
		if err != nil {
			return nil, err
		}
		b := RateBracket{
			Scope:      fixedScope,
			Zone:       zone,
			WeightFrom: from,
			WeightTo:   to,
			Price:      price,
		}
		if countryCol >= 0 {
			b.CountryKey = t.str(row, countryCol)
			if fixedScope == ScopeCrossBorder {
				b.CountryKey = strings.ToUpper(b.CountryKey)
			}
		}
		if scopeCol >= 0 {
			b.Scope = Scope(t.str(row, scopeCol))
		}
		out = append(out, b)
	}
	return out, nil
}

func loadDieselFloater(path string) ([]DieselFloaterEntry, error) {
	t, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	idx, err := t.require("diesel_cent_per_l_max", "surcharge_pct")
	if err != nil {
		return nil, err
	}
	out := make([]DieselFloaterEntry, 0, len(t.rows))
	for i, row := range t.rows {
		ceiling, err := t.float(row, idx[0], i+2)
		if err != nil {
			return nil, err
		}
		pct, err := t.float(row, idx[1], i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, DieselFloaterEntry{CeilingCentPerL: ceiling, SurchargePct: pct})
	}
	return out, nil
}
