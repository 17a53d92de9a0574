package quote

import "github.com/aifuge/freightquote/internal/refdata"

// DieselSurchargePct returns the LTL fuel surcharge for the current diesel
// price in cent per liter. The table is a step function ordered ascending by
// ceiling: the smallest ceiling at or above the price applies. A price above
// every ceiling clamps to the highest tier; the carrier's top surcharge
// stays in effect at excessive fuel prices rather than dropping to zero.
func DieselSurchargePct(table []refdata.DieselFloaterEntry, dieselCentPerL float64) float64 {
	if len(table) == 0 {
		return 0
	}
	for _, e := range table {
		if e.CeilingCentPerL >= dieselCentPerL {
			return e.SurchargePct
		}
	}
	return table[len(table)-1].SurchargePct
}
