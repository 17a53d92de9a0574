package quote

import (
	"encoding/json"
	"os"
)

// Carrier keys used throughout the engine and in API responses.
const (
	CarrierParcel = "dhl"
	CarrierLTL    = "raben"
)

// CarrierDescriptor describes one carrier for listings and the CLI.
type CarrierDescriptor struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	Notes string `json:"notes,omitempty"`
}

const carriersEnv = "FREIGHTQUOTE_CARRIERS_JSON"

func defaultCarriers() []CarrierDescriptor {
	return []CarrierDescriptor{
		{
			Key:   CarrierParcel,
			Name:  "DHL Freight",
			Mode:  "parcel",
			Notes: "domestic and cross-border parcel, actual weight",
		},
		{
			Key:   CarrierLTL,
			Name:  "Raben",
			Mode:  "ltl",
			Notes: "less-than-truckload, chargeable weight with volumetric and loading-meter minimums",
		},
	}
}

// Carriers returns the carrier descriptors, overridable for display purposes
// via a JSON array in FREIGHTQUOTE_CARRIERS_JSON.
func Carriers() []CarrierDescriptor {
	raw := os.Getenv(carriersEnv)
	if raw == "" {
		return defaultCarriers()
	}
	var out []CarrierDescriptor
	if err := json.Unmarshal([]byte(raw), &out); err != nil || len(out) == 0 {
		return defaultCarriers()
	}
	return out
}

func GetCarrier(key string) (CarrierDescriptor, bool) {
	for _, c := range Carriers() {
		if c.Key == key {
			return c, true
		}
	}
	return CarrierDescriptor{}, false
}
