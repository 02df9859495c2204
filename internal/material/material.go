// Package material holds the sheet-goods catalog and the structural
// engineering formulas used to size bookshelf panels. All structural
// calculations (deflection, stress, load capacity) live here so the
// optimizer, the model builder and the manufacturability checks agree.
package material

import "strings"

// Spec is a complete material specification: sheet dimensions and pricing
// plus the mechanical properties needed for beam calculations. Catalog
// entries are never mutated after load.
type Spec struct {
	Name string `json:"name"`

	// Sheet dimensions and pricing
	SheetLengthMM float64 `json:"sheet_len_mm"`
	SheetWidthMM  float64 `json:"sheet_wid_mm"`
	ThicknessMM   float64 `json:"thickness_mm"`
	PricePerSheet float64 `json:"price_per_sheet"`
	WasteFactor   float64 `json:"waste_factor"`

	// Structural properties
	YoungsModulus        float64 `json:"E"`         // Pa
	SigmaMax             float64 `json:"sigma_max"` // Pa, maximum allowable bending stress
	Density              float64 `json:"density"`   // kg/m³
	DeflectionLimitRatio float64 `json:"deflection_limit_ratio"`
}

// DefaultMaterial is the catalog key returned for unrecognized lookups.
const DefaultMaterial = "melamine_pb"

// catalog is keyed by lowercase material id.
var catalog = map[string]Spec{
	"melamine_pb": {
		Name:                 "Melamine Particleboard",
		SheetLengthMM:        2440.0,
		SheetWidthMM:         1220.0,
		ThicknessMM:          18.0,
		PricePerSheet:        30.0,
		WasteFactor:          0.12,
		YoungsModulus:        3.0e9,
		SigmaMax:             15e6,
		Density:              680,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
	"plywood": {
		Name:                 "Plywood",
		SheetLengthMM:        2440.0,
		SheetWidthMM:         1220.0,
		ThicknessMM:          18.0,
		PricePerSheet:        42.0,
		WasteFactor:          0.12,
		YoungsModulus:        8.0e9,
		SigmaMax:             30e6,
		Density:              600,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
	"mdf": {
		Name:                 "MDF",
		SheetLengthMM:        2440.0,
		SheetWidthMM:         1220.0,
		ThicknessMM:          18.0,
		PricePerSheet:        26.0,
		WasteFactor:          0.12,
		YoungsModulus:        3.5e9,
		SigmaMax:             18e6,
		Density:              750,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
	"solid_wood": {
		Name:                 "Solid Wood",
		SheetLengthMM:        2440.0,
		SheetWidthMM:         1220.0,
		ThicknessMM:          18.0,
		PricePerSheet:        60.0,
		WasteFactor:          0.15,
		YoungsModulus:        10.0e9,
		SigmaMax:             40e6,
		Density:              600,
		DeflectionLimitRatio: 1.0 / 250.0,
	},
}

// Get returns the material spec for the given id (case-insensitive).
// Unknown ids resolve to the melamine_pb default rather than failing.
// Note this silently masks caller typos; use Lookup when the caller
// needs to know whether the key was recognized.
func Get(name string) Spec {
	spec, _ := Lookup(name)
	return spec
}

// Lookup returns the material spec for the given id and whether the id
// was present in the catalog. Unknown ids still return the default spec.
func Lookup(name string) (Spec, bool) {
	if spec, ok := catalog[strings.ToLower(name)]; ok {
		return spec, true
	}
	return catalog[DefaultMaterial], false
}

// Names returns all catalog ids in no particular order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for k := range catalog {
		names = append(names, k)
	}
	return names
}
