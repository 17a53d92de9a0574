package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTablesFromDir(t *testing.T) {
	tables, err := LoadTablesFromDir("testdata")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(tables.ParcelDomesticZones) != 2 {
		t.Errorf("parcel domestic zones = %d, want 2", len(tables.ParcelDomesticZones))
	}
	e := tables.ParcelDomesticZones[0]
	if e.PostalPrefix != "38" || e.Zone != 2 || e.Scope != ScopeDomestic {
		t.Errorf("unexpected first zone entry: %+v", e)
	}

	b := tables.ParcelDomesticRates[1]
	if b.Zone != 1 || b.WeightFrom != 100 || b.WeightTo != 200 || b.Price != 41.00 {
		t.Errorf("unexpected bracket: %+v", b)
	}

	if tables.ParcelCrossZones[0].CountryKey != "PL" {
		t.Errorf("cross-border country key = %q, want PL", tables.ParcelCrossZones[0].CountryKey)
	}

	ltl := tables.LTLRates[0]
	if ltl.Scope != ScopeDomestic || ltl.CountryKey != "Deutschland" {
		t.Errorf("unexpected ltl bracket: %+v", ltl)
	}

	// Validate sorts the diesel table even when the file is out of order.
	for i := 1; i < len(tables.DieselFloater); i++ {
		if tables.DieselFloater[i].CeilingCentPerL < tables.DieselFloater[i-1].CeilingCentPerL {
			t.Fatalf("diesel table not sorted: %+v", tables.DieselFloater)
		}
	}

	// Params file overrides two keys, the rest keep defaults.
	if tables.Params.FuelPct != 0.15 {
		t.Errorf("fuel pct = %v, want 0.15", tables.Params.FuelPct)
	}
	if tables.Params.ADRFee != 20.00 {
		t.Errorf("adr fee = %v, want 20.00", tables.Params.ADRFee)
	}
	if tables.Params.AvisFee != 12.00 {
		t.Errorf("avis fee = %v, want default 12.00", tables.Params.AvisFee)
	}
}

// copyTestdata clones the fixture directory so cases can corrupt one file.
func copyTestdata(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join("testdata", e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadTablesFromDir_MissingFile(t *testing.T) {
	dir := copyTestdata(t)
	if err := os.Remove(filepath.Join(dir, FileLTLRates)); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTablesFromDir(dir)
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected structural error for missing file, got %v", err)
	}
}

func TestLoadTablesFromDir_MissingColumn(t *testing.T) {
	dir := copyTestdata(t)
	bad := "plz,zone\n38,2\n" // wrong column name
	if err := os.WriteFile(filepath.Join(dir, FileParcelDomesticZones), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTablesFromDir(dir)
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected structural error for missing column, got %v", err)
	}
}

func TestLoadTablesFromDir_BadNumber(t *testing.T) {
	dir := copyTestdata(t)
	bad := "diesel_cent_per_l_max,surcharge_pct\nabc,0.03\n"
	if err := os.WriteFile(filepath.Join(dir, FileDieselFloater), []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTablesFromDir(dir)
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected structural error for bad number, got %v", err)
	}
}

func TestLoadTablesFromDir_EmptyTable(t *testing.T) {
	dir := copyTestdata(t)
	headerOnly := "plz2,zone\n"
	if err := os.WriteFile(filepath.Join(dir, FileParcelDomesticZones), []byte(headerOnly), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTablesFromDir(dir)
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected structural error for empty table, got %v", err)
	}
}
