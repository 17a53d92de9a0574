package storage

// DB row models for the database-backed sources. The carrier column
// partitions the shared tables: "dhl" rows feed the parcel tables, "raben"
// rows the LTL tables.

type ZoneMapRow struct {
	ID           uint   `json:"-" gorm:"primaryKey;column:id"`
	Carrier      string `json:"carrier" gorm:"column:carrier;index"`
	Scope        string `json:"scope" gorm:"column:scope"`
	CountryKey   string `json:"country_key" gorm:"column:country_key"`
	PostalPrefix string `json:"postal_prefix" gorm:"column:postal_prefix"`
	Zone         int    `json:"zone" gorm:"column:zone"`
}

func (ZoneMapRow) TableName() string { return "zone_map_entries" }

type RateBracketRow struct {
	ID         uint    `json:"-" gorm:"primaryKey;column:id"`
	Carrier    string  `json:"carrier" gorm:"column:carrier;index"`
	Scope      string  `json:"scope" gorm:"column:scope"`
	CountryKey string  `json:"country_key" gorm:"column:country_key"`
	Zone       int     `json:"zone" gorm:"column:zone"`
	WeightFrom float64 `json:"weight_from" gorm:"column:weight_from"`
	WeightTo   float64 `json:"weight_to" gorm:"column:weight_to"`
	Price      float64 `json:"price" gorm:"column:price"`
}

func (RateBracketRow) TableName() string { return "rate_brackets" }

type DieselFloaterRow struct {
	ID              uint    `json:"-" gorm:"primaryKey;column:id"`
	CeilingCentPerL float64 `json:"ceiling_cent_per_l" gorm:"column:ceiling_cent_per_l"`
	SurchargePct    float64 `json:"surcharge_pct" gorm:"column:surcharge_pct"`
}

func (DieselFloaterRow) TableName() string { return "diesel_floater_entries" }

type ParamRow struct {
	Key   string  `json:"key" gorm:"primaryKey;column:key"`
	Value float64 `json:"value" gorm:"column:value"`
}

func (ParamRow) TableName() string { return "param_entries" }
