package storage

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aifuge/freightquote/internal/quote"
	"github.com/aifuge/freightquote/internal/refdata"
)

// GormSource reads reference tables from a sqlite or postgres database.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(driver, dsn string) (*GormSource, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "freightquote.db"
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported gorm driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return &GormSource{db: db}, nil
}

// Migrate creates the reference tables when they do not exist yet. The goose
// migrations in internal/migrate are the canonical schema; this is the
// convenience path for local sqlite use.
func (s *GormSource) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&ZoneMapRow{},
		&RateBracketRow{},
		&DieselFloaterRow{},
		&ParamRow{},
	)
}

func (s *GormSource) LoadTables(ctx context.Context) (*refdata.Tables, error) {
	db := s.db.WithContext(ctx)
	t := &refdata.Tables{}

	var zoneRows []ZoneMapRow
	if err := db.Order("id").Find(&zoneRows).Error; err != nil {
		return nil, fmt.Errorf("%w: load zone_map_entries: %v", refdata.ErrStructural, err)
	}
	for _, r := range zoneRows {
		e := refdata.ZoneMapEntry{
			Scope:        refdata.Scope(r.Scope),
			CountryKey:   r.CountryKey,
			PostalPrefix: r.PostalPrefix,
			Zone:         r.Zone,
		}
		switch {
		case r.Carrier == quote.CarrierLTL:
			t.LTLZones = append(t.LTLZones, e)
		case e.Scope == refdata.ScopeCrossBorder:
			t.ParcelCrossZones = append(t.ParcelCrossZones, e)
		default:
			t.ParcelDomesticZones = append(t.ParcelDomesticZones, e)
		}
	}

	var bracketRows []RateBracketRow
	if err := db.Order("id").Find(&bracketRows).Error; err != nil {
		return nil, fmt.Errorf("%w: load rate_brackets: %v", refdata.ErrStructural, err)
	}
	for _, r := range bracketRows {
		b := refdata.RateBracket{
			Scope:      refdata.Scope(r.Scope),
			CountryKey: r.CountryKey,
			Zone:       r.Zone,
			WeightFrom: r.WeightFrom,
			WeightTo:   r.WeightTo,
			Price:      r.Price,
		}
		switch {
		case r.Carrier == quote.CarrierLTL:
			t.LTLRates = append(t.LTLRates, b)
		case b.Scope == refdata.ScopeCrossBorder:
			t.ParcelCrossRates = append(t.ParcelCrossRates, b)
		default:
			t.ParcelDomesticRates = append(t.ParcelDomesticRates, b)
		}
	}

	var dieselRows []DieselFloaterRow
	if err := db.Order("ceiling_cent_per_l").Find(&dieselRows).Error; err != nil {
		return nil, fmt.Errorf("%w: load diesel_floater_entries: %v", refdata.ErrStructural, err)
	}
	for _, r := range dieselRows {
		t.DieselFloater = append(t.DieselFloater, refdata.DieselFloaterEntry{
			CeilingCentPerL: r.CeilingCentPerL,
			SurchargePct:    r.SurchargePct,
		})
	}

	var paramRows []ParamRow
	if err := db.Find(&paramRows).Error; err != nil {
		return nil, fmt.Errorf("%w: load param_entries: %v", refdata.ErrStructural, err)
	}
	overrides := make(map[string]float64, len(paramRows))
	for _, r := range paramRows {
		overrides[r.Key] = r.Value
	}
	t.Params = refdata.DefaultParams().ApplyOverrides(overrides)

	return t, nil
}

func (s *GormSource) Ping(ctx context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (s *GormSource) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
