package refdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParams_MissingFileUsesDefaults(t *testing.T) {
	p, err := LoadParams(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing params file must not error: %v", err)
	}
	if p != DefaultParams() {
		t.Fatalf("got %+v, want defaults", p)
	}
}

func TestLoadParams_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{"raben_diesel_cent": 155, "unknown_key": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.DieselCentPerL != 155 {
		t.Errorf("diesel cent = %v, want 155", p.DieselCentPerL)
	}
	// Unknown keys are ignored, untouched fields keep defaults.
	if p.FuelPct != DefaultParams().FuelPct {
		t.Errorf("fuel pct = %v, want default", p.FuelPct)
	}
}

func TestLoadParams_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte(`{broken`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadParams(path); !errors.Is(err, ErrStructural) {
		t.Fatalf("expected structural error, got %v", err)
	}
}

func TestOverridesApply(t *testing.T) {
	fuel := 0.2
	adr := 15.0
	o := Overrides{FuelPct: &fuel, ADRFee: &adr}

	p := o.Apply(DefaultParams())
	if p.FuelPct != 0.2 || p.ADRFee != 15.0 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.DAFPct != DefaultParams().DAFPct {
		t.Fatalf("nil override must keep value, got %v", p.DAFPct)
	}
}
