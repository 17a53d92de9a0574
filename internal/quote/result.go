package quote

import "github.com/aifuge/freightquote/internal/refdata"

// FailureReason classifies the expected, recoverable ways a single carrier's
// quote can fail. These are result values, never errors: one carrier failing
// must not affect the other.
type FailureReason string

const (
	FailInvalidInput FailureReason = "invalid_input"
	FailZoneNotFound FailureReason = "zone_not_found"
	FailRateNotFound FailureReason = "rate_not_found"
)

// Failure is a per-carrier quote failure with a human-readable detail.
type Failure struct {
	Reason FailureReason `json:"reason"`
	Detail string        `json:"detail"`
}

// Surcharge is one line of the itemized breakdown. Lines that did not
// trigger are kept at 0.00 so callers can render the full computation.
type Surcharge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CarrierQuote is one carrier's successful quote.
type CarrierQuote struct {
	Carrier      string      `json:"carrier"`
	Zone         int         `json:"zone"`
	ChargeableKg float64     `json:"chargeable_kg,omitempty"`
	Base         float64     `json:"base"`
	Surcharges   []Surcharge `json:"surcharges"`
	Total        float64     `json:"total"`
	Currency     string      `json:"currency"`
}

// Result is quote-or-failure for one carrier.
type Result struct {
	Quote   *CarrierQuote `json:"quote,omitempty"`
	Failure *Failure      `json:"failure,omitempty"`
}

func (r Result) OK() bool { return r.Quote != nil }

func failed(reason FailureReason, detail string) Result {
	return Result{Failure: &Failure{Reason: reason, Detail: detail}}
}

// Response aggregates both carriers' results. Cheaper names the carrier with
// the lower total and is set only when both carriers succeeded; ties go to
// the parcel carrier.
type Response struct {
	Parcel  Result `json:"dhl"`
	LTL     Result `json:"raben"`
	Cheaper string `json:"cheaper,omitempty"`
}

// Request is one validated quote request as supplied by the UI shell.
type Request struct {
	Scope          refdata.Scope `json:"scope"`
	Country        string        `json:"country"`
	PostalCode     string        `json:"postal_code"`
	WeightKg       float64       `json:"weight_kg"`
	VolumeM3       float64       `json:"volume_m3,omitempty"`
	LoadingMeters  float64       `json:"loading_meters,omitempty"`
	Packaging      Packaging     `json:"packaging,omitempty"`
	ADR            bool          `json:"adr,omitempty"`
	Avis           bool          `json:"avis,omitempty"`
	InsuranceValue float64       `json:"insurance_value,omitempty"`
}

// Validate rejects structurally invalid requests before any lookup. It
// returns a Failure naming the offending field, or nil.
func (r Request) Validate() *Failure {
	if r.Scope != refdata.ScopeDomestic && r.Scope != refdata.ScopeCrossBorder {
		return &Failure{Reason: FailInvalidInput, Detail: "scope must be DE or EU"}
	}
	if r.WeightKg <= 0 {
		return &Failure{Reason: FailInvalidInput, Detail: "weight_kg must be positive"}
	}
	if r.VolumeM3 < 0 {
		return &Failure{Reason: FailInvalidInput, Detail: "volume_m3 must not be negative"}
	}
	if r.LoadingMeters < 0 {
		return &Failure{Reason: FailInvalidInput, Detail: "loading_meters must not be negative"}
	}
	if r.InsuranceValue < 0 {
		return &Failure{Reason: FailInvalidInput, Detail: "insurance_value must not be negative"}
	}
	return nil
}
