package quote

// Packaging is the packaging type of an LTL shipment. The values are the
// ones used by the rate-card source.
type Packaging string

const (
	PackCartons     Packaging = "Cartons"
	PackHalfPallet  Packaging = "Halfpallet"
	PackFullPallet  Packaging = "Europalette"
	PackOtherPallet Packaging = "OtherPallet"
)

// Conversion factors of the LTL carrier: kg per cubic meter and kg per
// loading meter.
const (
	volumetricKgPerM3   = 200.0
	loadingMeterKgPerLM = 1000.0
)

// minBillableKg is the packaging-dependent minimum billable weight.
var minBillableKg = map[Packaging]float64{
	PackCartons:     15,
	PackHalfPallet:  100,
	PackFullPallet:  200,
	PackOtherPallet: 300,
}

// ChargeableWeight derives the LTL billable weight: the maximum of actual
// weight, the packaging minimum, volumetric weight and deck-length weight.
// Unknown packaging types fall back to the OtherPallet minimum. The parcel
// carrier prices on actual weight and never calls this.
func ChargeableWeight(actualKg, volumeM3, loadingMeters float64, packaging Packaging) float64 {
	minw, ok := minBillableKg[packaging]
	if !ok {
		minw = minBillableKg[PackOtherPallet]
	}
	w := actualKg
	if minw > w {
		w = minw
	}
	if v := volumeM3 * volumetricKgPerM3; v > w {
		w = v
	}
	if l := loadingMeters * loadingMeterKgPerLM; l > w {
		w = l
	}
	return w
}
