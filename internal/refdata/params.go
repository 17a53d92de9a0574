package refdata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Params holds the surcharge percentages and flat fees used by the quote
// composer. Percentages are fractions (0.12 means 12%), fees are EUR.
type Params struct {
	FuelPct        float64 `json:"dhl_fuel_pct"`
	SecurityPct    float64 `json:"dhl_security_pct"`
	DAFPct         float64 `json:"raben_daf_pct"`
	MobilityPct    float64 `json:"raben_mobility_pct"`
	ADRFee         float64 `json:"raben_adr_fee"`
	AvisFee        float64 `json:"raben_avis_fee"`
	InsuranceMin   float64 `json:"raben_ins_min"`
	DieselCentPerL float64 `json:"raben_diesel_cent"`
}

// DefaultParams returns the hardcoded fallback values. Every field can be
// overridden by the params file or per request.
func DefaultParams() Params {
	return Params{
		FuelPct:        0.12,
		SecurityPct:    0.00,
		DAFPct:         0.10,
		MobilityPct:    0.029,
		ADRFee:         12.50,
		AvisFee:        12.00,
		InsuranceMin:   5.95,
		DieselCentPerL: 130.00,
	}
}

// ApplyOverrides returns a copy of p with the known keys from the given flat
// key/value mapping applied. Unknown keys are ignored.
func (p Params) ApplyOverrides(overrides map[string]float64) Params {
	for key, v := range overrides {
		switch key {
		case "dhl_fuel_pct":
			p.FuelPct = v
		case "dhl_security_pct":
			p.SecurityPct = v
		case "raben_daf_pct":
			p.DAFPct = v
		case "raben_mobility_pct":
			p.MobilityPct = v
		case "raben_adr_fee":
			p.ADRFee = v
		case "raben_avis_fee":
			p.AvisFee = v
		case "raben_ins_min":
			p.InsuranceMin = v
		case "raben_diesel_cent":
			p.DieselCentPerL = v
		}
	}
	return p
}

// LoadParams reads the optional params override file. A missing file is not
// an error: the defaults apply. A present but unreadable file is structural.
func LoadParams(path string) (Params, error) {
	params := DefaultParams()
	if path == "" {
		return params, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return params, nil
	}
	if err != nil {
		return params, fmt.Errorf("%w: read params %s: %v", ErrStructural, path, err)
	}

	var overrides map[string]float64
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return params, fmt.Errorf("%w: parse params %s: %v", ErrStructural, path, err)
	}
	return params.ApplyOverrides(overrides), nil
}

// Overrides carries optional per-request parameter values. Nil fields keep
// the configured value.
type Overrides struct {
	FuelPct        *float64 `json:"dhl_fuel_pct,omitempty"`
	SecurityPct    *float64 `json:"dhl_security_pct,omitempty"`
	DAFPct         *float64 `json:"raben_daf_pct,omitempty"`
	MobilityPct    *float64 `json:"raben_mobility_pct,omitempty"`
	ADRFee         *float64 `json:"raben_adr_fee,omitempty"`
	AvisFee        *float64 `json:"raben_avis_fee,omitempty"`
	InsuranceMin   *float64 `json:"raben_ins_min,omitempty"`
	DieselCentPerL *float64 `json:"raben_diesel_cent,omitempty"`
}

// Apply returns a copy of p with the non-nil override fields applied.
func (o Overrides) Apply(p Params) Params {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FuelPct, o.FuelPct)
	set(&p.SecurityPct, o.SecurityPct)
	set(&p.DAFPct, o.DAFPct)
	set(&p.MobilityPct, o.MobilityPct)
	set(&p.ADRFee, o.ADRFee)
	set(&p.AvisFee, o.AvisFee)
	set(&p.InsuranceMin, o.InsuranceMin)
	set(&p.DieselCentPerL, o.DieselCentPerL)
	return p
}
