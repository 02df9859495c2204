package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Joint methods and shelf-pin modes accepted in requirements. Invalid
// values fall back to the defaults at parse time.
const (
	JointGlueDowels    = "glue_dowels"
	JointCamlockDowels = "camlock_dowels"

	PinsNone           = "none"
	PinsFixedAtShelves = "fixed_at_shelves"
	PinsModularGrid    = "modular_grid"
)

// Auto marks a count field the builder should derive instead of using
// an explicit value.
const Auto = -1

// Requirements is the single resolved requirement structure. External
// callers may use several key spellings; ParseRequirements resolves them
// once at the boundary (see requirementAliases), after which only this
// struct is consulted.
type Requirements struct {
	Width     float64 `json:"width"`     // mm
	Depth     float64 `json:"depth"`     // mm
	Height    float64 `json:"height"`    // mm
	Thickness float64 `json:"thickness"` // mm
	AddTop    bool    `json:"add_top"`

	Material   string  `json:"material"`
	TargetLoad float64 `json:"target_load"` // kg per bay

	// Auto means derive from structural capacity / spacing hint.
	NumShelves  int `json:"num_shelves"`
	NumDividers int `json:"num_dividers"`

	// Explicit placements override counts entirely when non-empty.
	ShelfZPositions   []float64 `json:"shelf_z_positions,omitempty"`
	DividerXPositions []float64 `json:"divider_x_positions,omitempty"`

	ShelfSpacingHint float64 `json:"shelf_spacing_hint"` // mm

	JointMethod   string `json:"joint_method"`
	ShelfPinsMode string `json:"shelf_pins_mode"`

	Drilling Drilling `json:"drilling"`
}

// Drilling describes the hole pattern parameters shared by the cost
// estimator and the downstream CAD collaborator.
type Drilling struct {
	RowFrontOffset   float64 `json:"row_front_offset"`   // mm from front edge
	RowBackOffset    float64 `json:"row_back_offset"`    // mm from back edge
	GridPitchZ       float64 `json:"grid_pitch_z"`       // mm between pin levels
	GridBottomMargin float64 `json:"grid_bottom_margin"` // mm above bottom panel
	GridTopMargin    float64 `json:"grid_top_margin"`    // mm below top panel
}

// DefaultRequirements returns the baseline requirement set: an 800×300×2000mm
// melamine shelf with system-32 style drilling.
func DefaultRequirements() Requirements {
	return Requirements{
		Width:            800.0,
		Depth:            300.0,
		Height:           2000.0,
		Thickness:        18.0,
		AddTop:           true,
		Material:         "melamine_pb",
		TargetLoad:       50.0,
		NumShelves:       Auto,
		NumDividers:      Auto,
		ShelfSpacingHint: 320.0,
		JointMethod:      JointCamlockDowels,
		ShelfPinsMode:    PinsModularGrid,
		Drilling: Drilling{
			RowFrontOffset:   37.0,
			RowBackOffset:    37.0,
			GridPitchZ:       32.0,
			GridBottomMargin: 64.0,
			GridTopMargin:    96.0,
		},
	}
}

// requirementAliases maps every accepted external key spelling to its
// canonical field. The first matching key wins.
var requirementAliases = map[string][]string{
	"width":               {"width", "Width", "width_mm"},
	"depth":               {"depth", "Depth", "depth_mm"},
	"height":              {"height", "Height", "height_mm"},
	"thickness":           {"thickness", "Thickness", "thickness_mm"},
	"add_top":             {"add_top", "AddTopPanel", "add_top_panel"},
	"material":            {"material"},
	"target_load":         {"target_load", "target_load_kg", "target_load_per_bay_kg"},
	"num_shelves":         {"num_shelves", "NumShelves"},
	"num_dividers":        {"num_dividers", "dividers", "Dividers"},
	"shelf_spacing_hint":  {"shelf_spacing_hint", "ShelfSpacing", "shelf_spacing_hint_mm"},
	"shelf_z_positions":   {"shelf_z_positions"},
	"divider_x_positions": {"divider_x_positions"},
	"joint_method":        {"joint_method"},
	"shelf_pins_mode":     {"shelf_pins_mode"},
	"row_front_offset":    {"row_front_offset", "row_front_offset_mm"},
	"row_back_offset":     {"row_back_offset", "row_back_offset_mm"},
	"grid_pitch_z":        {"grid_pitch_z", "grid_pitch_z_mm"},
	"grid_bottom_margin":  {"grid_bottom_margin", "grid_bottom_margin_mm"},
	"grid_top_margin":     {"grid_top_margin", "grid_top_margin_mm"},
}

// ParseRequirements decodes a raw JSON requirement document, resolving all
// accepted key spellings and applying defaults for absent or non-numeric
// values. Unknown joint methods and pin modes fall back to the defaults.
func ParseRequirements(data []byte) (Requirements, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Requirements{}, fmt.Errorf("decoding requirements: %w", err)
	}
	return ResolveRequirements(raw), nil
}

// ResolveRequirements maps a loosely-typed requirement document onto the
// canonical Requirements structure.
func ResolveRequirements(raw map[string]any) Requirements {
	req := DefaultRequirements()

	req.Width = lookupFloat(raw, "width", req.Width)
	req.Depth = lookupFloat(raw, "depth", req.Depth)
	req.Height = lookupFloat(raw, "height", req.Height)
	req.Thickness = lookupFloat(raw, "thickness", req.Thickness)
	req.AddTop = lookupBool(raw, "add_top", req.AddTop)
	req.TargetLoad = lookupFloat(raw, "target_load", req.TargetLoad)
	req.NumShelves = lookupInt(raw, "num_shelves", req.NumShelves)
	req.NumDividers = lookupInt(raw, "num_dividers", req.NumDividers)
	req.ShelfSpacingHint = lookupFloat(raw, "shelf_spacing_hint", req.ShelfSpacingHint)
	req.ShelfZPositions = lookupFloats(raw, "shelf_z_positions")
	req.DividerXPositions = lookupFloats(raw, "divider_x_positions")

	if s, ok := lookupString(raw, "material"); ok {
		req.Material = strings.ToLower(s)
	}
	if s, ok := lookupString(raw, "joint_method"); ok {
		if s == JointGlueDowels || s == JointCamlockDowels {
			req.JointMethod = s
		}
	}
	if s, ok := lookupString(raw, "shelf_pins_mode"); ok {
		if s == PinsNone || s == PinsFixedAtShelves || s == PinsModularGrid {
			req.ShelfPinsMode = s
		}
	}

	req.Drilling.RowFrontOffset = lookupFloat(raw, "row_front_offset", req.Drilling.RowFrontOffset)
	req.Drilling.RowBackOffset = lookupFloat(raw, "row_back_offset", req.Drilling.RowBackOffset)
	req.Drilling.GridPitchZ = lookupFloat(raw, "grid_pitch_z", req.Drilling.GridPitchZ)
	req.Drilling.GridBottomMargin = lookupFloat(raw, "grid_bottom_margin", req.Drilling.GridBottomMargin)
	req.Drilling.GridTopMargin = lookupFloat(raw, "grid_top_margin", req.Drilling.GridTopMargin)

	return req
}

func lookupRaw(raw map[string]any, field string) (any, bool) {
	for _, key := range requirementAliases[field] {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupFloat(raw map[string]any, field string, def float64) float64 {
	v, ok := lookupRaw(raw, field)
	if !ok {
		return def
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return def
}

func lookupInt(raw map[string]any, field string, def int) int {
	if f, ok := toFloat(mustRaw(raw, field)); ok {
		return int(f)
	}
	return def
}

func lookupBool(raw map[string]any, field string, def bool) bool {
	v, ok := lookupRaw(raw, field)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
	}
	return def
}

func lookupString(raw map[string]any, field string) (string, bool) {
	v, ok := lookupRaw(raw, field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func lookupFloats(raw map[string]any, field string) []float64 {
	v, ok := lookupRaw(raw, field)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []float64
	for _, item := range list {
		if f, ok := toFloat(item); ok {
			out = append(out, f)
		}
	}
	return out
}

func mustRaw(raw map[string]any, field string) any {
	v, _ := lookupRaw(raw, field)
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
