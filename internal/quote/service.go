package quote

import (
	"context"
	"fmt"

	"github.com/aifuge/freightquote/internal/refdata"
)

const currency = "EUR"

// Service runs the quote pipeline against the current reference-data
// snapshot. A Service is safe for concurrent use: the snapshot is read-only
// and every quote is a pure function of (request, snapshot, params).
type Service struct {
	store *refdata.Store
}

func NewService(store *refdata.Store) *Service {
	return &Service{store: store}
}

// Params returns the parameter set of the current snapshot, falling back to
// the hardcoded defaults before the first load.
func (s *Service) Params() refdata.Params {
	if t := s.store.Snapshot(); t != nil {
		return t.Params
	}
	return refdata.DefaultParams()
}

// Quote computes both carriers' quotes independently. A failure on one side
// never prevents the other side's result. The context is accepted for
// interface symmetry with the data sources; the computation itself is
// in-memory and bounded.
func (s *Service) Quote(ctx context.Context, req Request, params refdata.Params) (Response, error) {
	tables := s.store.Snapshot()
	if tables == nil {
		return Response{}, fmt.Errorf("%w: reference data not loaded", refdata.ErrStructural)
	}
	_ = ctx

	var resp Response
	if f := req.Validate(); f != nil {
		resp.Parcel = Result{Failure: f}
		resp.LTL = Result{Failure: f}
		return resp, nil
	}

	country := NormalizeCountry(req.Country)
	resp.Parcel = quoteParcel(tables, req, country, params)
	resp.LTL = quoteLTL(tables, req, country, params)
	resp.Cheaper = cheaperCarrier(resp.Parcel, resp.LTL)
	return resp, nil
}

// cheaperCarrier compares totals when both carriers succeeded. Ties go to
// the parcel carrier.
func cheaperCarrier(parcel, ltl Result) string {
	if !parcel.OK() || !ltl.OK() {
		return ""
	}
	if ltl.Quote.Total < parcel.Quote.Total {
		return CarrierLTL
	}
	return CarrierParcel
}

func quoteParcel(t *refdata.Tables, req Request, country CountryRef, params refdata.Params) Result {
	prefix, err := NormalizePostalPrefix(req.PostalCode)
	if err != nil {
		return failed(FailInvalidInput, "postal_code: "+err.Error())
	}

	zones := t.ParcelDomesticZones
	brackets := t.ParcelDomesticRates
	countryKey := ""
	if req.Scope == refdata.ScopeCrossBorder {
		zones = t.ParcelCrossZones
		brackets = t.ParcelCrossRates
		countryKey = country.ISO
	}

	zone, ok := ResolveZone(zones, req.Scope, countryKey, prefix)
	if !ok {
		return failed(FailZoneNotFound,
			fmt.Sprintf("no zone for country %q prefix %q", countryKey, prefix))
	}

	sel := SelectRate(brackets, req.Scope, countryKey, zone, req.WeightKg)
	if !sel.Found {
		return failed(FailRateNotFound, rateNotFoundDetail(zone, sel.MaxCoveredKg))
	}

	items, total := ComposeParcel(sel.Price, params)
	return Result{Quote: &CarrierQuote{
		Carrier:    CarrierParcel,
		Zone:       zone,
		Base:       round2(sel.Price),
		Surcharges: items,
		Total:      total,
		Currency:   currency,
	}}
}

func quoteLTL(t *refdata.Tables, req Request, country CountryRef, params refdata.Params) Result {
	prefix, err := NormalizePostalPrefix(req.PostalCode)
	if err != nil {
		return failed(FailInvalidInput, "postal_code: "+err.Error())
	}

	zone, ok := ResolveZone(t.LTLZones, req.Scope, country.RabenName, prefix)
	if !ok {
		return failed(FailZoneNotFound,
			fmt.Sprintf("no zone for country %q prefix %q", country.RabenName, prefix))
	}

	cw := ChargeableWeight(req.WeightKg, req.VolumeM3, req.LoadingMeters, req.Packaging)

	sel := SelectRate(t.LTLRates, req.Scope, country.RabenName, zone, cw)
	if !sel.Found {
		return failed(FailRateNotFound, rateNotFoundDetail(zone, sel.MaxCoveredKg))
	}

	dieselPct := DieselSurchargePct(t.DieselFloater, params.DieselCentPerL)
	items, total := ComposeLTL(sel.Price, dieselPct, params, req.ADR, req.Avis, req.InsuranceValue)
	return Result{Quote: &CarrierQuote{
		Carrier:      CarrierLTL,
		Zone:         zone,
		ChargeableKg: cw,
		Base:         round2(sel.Price),
		Surcharges:   items,
		Total:        total,
		Currency:     currency,
	}}
}

func rateNotFoundDetail(zone int, maxCoveredKg float64) string {
	if maxCoveredKg > 0 {
		return fmt.Sprintf("exceeds table coverage, max %gkg", maxCoveredKg)
	}
	return fmt.Sprintf("no rate brackets for zone %d", zone)
}
