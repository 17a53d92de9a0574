package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aifuge/freightquote/internal/quote"
	"github.com/aifuge/freightquote/internal/refdata"
)

// PgxPoolSource reads reference tables through a pgx pool. The reload worker
// prefers it because it exposes PostgreSQL advisory locks, so that in a
// multi-instance deployment only one worker validates and reloads at a time.
type PgxPoolSource struct {
	pool *pgxpool.Pool
}

func OpenPgxPool(ctx context.Context, dsn string) (*PgxPoolSource, error) {
	if dsn == "" {
		dsn = "postgres://localhost:5432/freightquote?sslmode=disable"
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &PgxPoolSource{pool: pool}, nil
}

func (s *PgxPoolSource) LoadTables(ctx context.Context) (*refdata.Tables, error) {
	t := &refdata.Tables{}

	rows, err := s.pool.Query(ctx,
		`SELECT carrier, scope, country_key, postal_prefix, zone FROM zone_map_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: load zone_map_entries: %v", refdata.ErrStructural, err)
	}
	defer rows.Close()
	for rows.Next() {
		var carrier string
		var e refdata.ZoneMapEntry
		var scope string
		if err := rows.Scan(&carrier, &scope, &e.CountryKey, &e.PostalPrefix, &e.Zone); err != nil {
			return nil, fmt.Errorf("%w: scan zone_map_entries: %v", refdata.ErrStructural, err)
		}
		e.Scope = refdata.Scope(scope)
		switch {
		case carrier == quote.CarrierLTL:
			t.LTLZones = append(t.LTLZones, e)
		case e.Scope == refdata.ScopeCrossBorder:
			t.ParcelCrossZones = append(t.ParcelCrossZones, e)
		default:
			t.ParcelDomesticZones = append(t.ParcelDomesticZones, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = s.pool.Query(ctx,
		`SELECT carrier, scope, country_key, zone, weight_from, weight_to, price FROM rate_brackets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: load rate_brackets: %v", refdata.ErrStructural, err)
	}
	defer rows.Close()
	for rows.Next() {
		var carrier, scope string
		var b refdata.RateBracket
		if err := rows.Scan(&carrier, &scope, &b.CountryKey, &b.Zone, &b.WeightFrom, &b.WeightTo, &b.Price); err != nil {
			return nil, fmt.Errorf("%w: scan rate_brackets: %v", refdata.ErrStructural, err)
		}
		b.Scope = refdata.Scope(scope)
		switch {
		case carrier == quote.CarrierLTL:
			t.LTLRates = append(t.LTLRates, b)
		case b.Scope == refdata.ScopeCrossBorder:
			t.ParcelCrossRates = append(t.ParcelCrossRates, b)
		default:
			t.ParcelDomesticRates = append(t.ParcelDomesticRates, b)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = s.pool.Query(ctx,
		`SELECT ceiling_cent_per_l, surcharge_pct FROM diesel_floater_entries ORDER BY ceiling_cent_per_l`)
	if err != nil {
		return nil, fmt.Errorf("%w: load diesel_floater_entries: %v", refdata.ErrStructural, err)
	}
	defer rows.Close()
	for rows.Next() {
		var e refdata.DieselFloaterEntry
		if err := rows.Scan(&e.CeilingCentPerL, &e.SurchargePct); err != nil {
			return nil, fmt.Errorf("%w: scan diesel_floater_entries: %v", refdata.ErrStructural, err)
		}
		t.DieselFloater = append(t.DieselFloater, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	prows, err := s.pool.Query(ctx, `SELECT key, value FROM param_entries`)
	if err != nil {
		return nil, fmt.Errorf("%w: load param_entries: %v", refdata.ErrStructural, err)
	}
	defer prows.Close()
	overrides := make(map[string]float64)
	for prows.Next() {
		var key string
		var value float64
		if err := prows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: scan param_entries: %v", refdata.ErrStructural, err)
		}
		overrides[key] = value
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	t.Params = refdata.DefaultParams().ApplyOverrides(overrides)

	return t, nil
}

func (s *PgxPoolSource) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PgxPoolSource) Close() error {
	s.pool.Close()
	return nil
}

// AcquireAdvisoryLock attempts a session advisory lock without blocking.
func (s *PgxPoolSource) AcquireAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var got bool
	err := s.pool.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&got)
	return got, err
}

// ReleaseAdvisoryLock releases a lock taken by AcquireAdvisoryLock.
func (s *PgxPoolSource) ReleaseAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var released bool
	err := s.pool.QueryRow(ctx, `SELECT pg_advisory_unlock($1)`, key).Scan(&released)
	return released, err
}
