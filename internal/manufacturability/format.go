package manufacturability

import (
	"fmt"
	"strings"
)

// String renders the warning as the human-readable advisory text shown in
// reports and CLI output.
func (w Warning) String() string {
	switch w.Code {
	case CodePanelOversize:
		limit := "length"
		if w.Component == "panel_depth" {
			limit = "width"
		}
		return fmt.Sprintf("%s %.0fmm exceeds standard sheet %s %.0fmm → requires splicing or special order material",
			componentLabel(w.Component), w.ValueMM, limit, w.LimitMM)

	case CodeWeightExceeded:
		switch w.Component {
		case "heaviest_panel":
			return fmt.Sprintf("Heaviest panel weighs %.1fkg (exceeds %.0fkg single-person limit) → requires two people to handle individual panels",
				w.ValueKg, w.LimitKg)
		case "assembly_equipment":
			return fmt.Sprintf("Total assembly weight %.1fkg (exceeds %.0fkg) → requires lifting equipment or mechanical assistance",
				w.ValueKg, w.LimitKg)
		default:
			return fmt.Sprintf("Total assembly weight %.1fkg (exceeds %.0fkg single-person limit) → requires two people for assembly",
				w.ValueKg, w.LimitKg)
		}

	case CodeShippingOversize:
		parts := make([]string, len(w.Overruns))
		for i, o := range w.Overruns {
			parts[i] = fmt.Sprintf("%s %.0fmm > %.0fmm", o.Dimension, o.ValueMM, o.LimitMM)
		}
		return fmt.Sprintf("Assembled dimensions exceed standard shipping limits (%s) → requires freight shipping, cannot ship via standard parcel carriers",
			strings.Join(parts, ", "))

	case CodeOverEngineered:
		return fmt.Sprintf("Design is over-engineered: estimated capacity %.0fkg/bay is %.1f× target load %.0fkg/bay → consider reducing thickness to ~%.0fmm to save ~$%.2f in material costs",
			w.CapacityKg, w.Factor, w.TargetLoadKg, w.RecommendedThicknessMM, w.EstimatedSavings)

	case CodeNarrowBay:
		return fmt.Sprintf("Bay width %.0fmm is quite narrow with %d dividers → consider reducing dividers to save material and hardware costs (estimated savings: ~$%.2f)",
			w.BayWidthMM, w.NumDividers, w.EstimatedSavings)
	}
	return string(w.Code)
}

func componentLabel(component string) string {
	switch component {
	case "side_panel_height":
		return "Side panel height"
	case "panel_depth":
		return "Panel depth"
	case "width":
		return "Bookshelf width"
	case "divider_height":
		return "Divider height"
	}
	return component
}

// FormatAll renders every warning on its own line.
func FormatAll(warnings []Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}
