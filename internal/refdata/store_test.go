package refdata

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	tables *Tables
	err    error
}

func (f *fakeSource) LoadTables(ctx context.Context) (*Tables, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := *f.tables
	return &t, nil
}
func (f *fakeSource) Ping(ctx context.Context) error { return nil }
func (f *fakeSource) Close() error                   { return nil }

func minimalTables() *Tables {
	return &Tables{
		ParcelDomesticZones: []ZoneMapEntry{{Scope: ScopeDomestic, PostalPrefix: "38", Zone: 2}},
		ParcelDomesticRates: []RateBracket{{Scope: ScopeDomestic, Zone: 2, WeightTo: 100, Price: 35}},
		ParcelCrossZones:    []ZoneMapEntry{{Scope: ScopeCrossBorder, CountryKey: "PL", PostalPrefix: "30", Zone: 1}},
		ParcelCrossRates:    []RateBracket{{Scope: ScopeCrossBorder, CountryKey: "PL", Zone: 1, WeightTo: 100, Price: 64}},
		LTLZones:            []ZoneMapEntry{{Scope: ScopeDomestic, CountryKey: "Deutschland", PostalPrefix: "38", Zone: 2}},
		LTLRates:            []RateBracket{{Scope: ScopeDomestic, CountryKey: "Deutschland", Zone: 2, WeightTo: 100, Price: 43}},
		DieselFloater:       []DieselFloaterEntry{{CeilingCentPerL: 9999, SurchargePct: 0.06}},
		Params:              DefaultParams(),
	}
}

func TestStore_LoadAndSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore(&fakeSource{tables: minimalTables()})

	if store.Snapshot() != nil {
		t.Fatal("snapshot before load should be nil")
	}
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if store.Snapshot() == nil {
		t.Fatal("snapshot after load should not be nil")
	}
}

func TestStore_ReloadSwapsSnapshot(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{tables: minimalTables()}
	store := NewStore(src)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	first := store.Snapshot()
	src.tables.ParcelDomesticZones[0].Zone = 5
	if err := store.Reload(ctx); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	second := store.Snapshot()
	if first == second {
		t.Fatal("reload must install a fresh snapshot pointer")
	}
	// The snapshot handed out before the reload is untouched by the swap.
	if second.ParcelDomesticZones[0].Zone != 5 {
		t.Fatalf("reload did not pick up new data: %+v", second.ParcelDomesticZones[0])
	}
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{tables: minimalTables()}
	store := NewStore(src)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	src.err = errors.New("source gone")
	if err := store.Reload(ctx); err == nil {
		t.Fatal("expected reload error")
	}
	if store.Snapshot() == nil {
		t.Fatal("failed reload must keep the previous snapshot")
	}
}

func TestStore_LoadRejectsInvalidTables(t *testing.T) {
	bad := minimalTables()
	bad.DieselFloater = nil

	store := NewStore(&fakeSource{tables: bad})
	err := store.Load(context.Background())
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("expected structural error, got %v", err)
	}
}
