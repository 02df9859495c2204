package model

import "testing"

func TestParseRequirementsDefaults(t *testing.T) {
	req, err := ParseRequirements([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}
	def := DefaultRequirements()
	if req.Width != def.Width || req.Height != def.Height || req.Depth != def.Depth {
		t.Errorf("empty document should yield the defaults, got %+v", req)
	}
	if req.NumShelves != Auto || req.NumDividers != Auto {
		t.Errorf("counts should default to Auto, got %d/%d", req.NumShelves, req.NumDividers)
	}
	if req.JointMethod != JointCamlockDowels || req.ShelfPinsMode != PinsModularGrid {
		t.Errorf("unexpected joinery defaults: %s/%s", req.JointMethod, req.ShelfPinsMode)
	}
}

func TestParseRequirementsRejectsBadJSON(t *testing.T) {
	if _, err := ParseRequirements([]byte(`{`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseRequirementsAliasSpellings(t *testing.T) {
	doc := []byte(`{
		"width_mm": 900,
		"Height": 1800,
		"thickness_mm": 22,
		"AddTopPanel": false,
		"target_load_kg": 75,
		"Dividers": 2,
		"ShelfSpacing": 400
	}`)
	req, err := ParseRequirements(doc)
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}
	if req.Width != 900 {
		t.Errorf("width_mm alias not resolved, got %g", req.Width)
	}
	if req.Height != 1800 {
		t.Errorf("Height alias not resolved, got %g", req.Height)
	}
	if req.Thickness != 22 {
		t.Errorf("thickness_mm alias not resolved, got %g", req.Thickness)
	}
	if req.AddTop {
		t.Error("AddTopPanel alias not resolved")
	}
	if req.TargetLoad != 75 {
		t.Errorf("target_load_kg alias not resolved, got %g", req.TargetLoad)
	}
	if req.NumDividers != 2 {
		t.Errorf("Dividers alias not resolved, got %d", req.NumDividers)
	}
	if req.ShelfSpacingHint != 400 {
		t.Errorf("ShelfSpacing alias not resolved, got %g", req.ShelfSpacingHint)
	}
}

func TestParseRequirementsCanonicalKeyWinsOverAlias(t *testing.T) {
	req, err := ParseRequirements([]byte(`{"width": 700, "width_mm": 1200}`))
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}
	if req.Width != 700 {
		t.Errorf("canonical key should win, got %g", req.Width)
	}
}

func TestParseRequirementsCoercions(t *testing.T) {
	doc := []byte(`{
		"width": "850",
		"add_top": "yes",
		"num_shelves": 3.0,
		"shelf_z_positions": [400, "800", 1200]
	}`)
	req, err := ParseRequirements(doc)
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}
	if req.Width != 850 {
		t.Errorf("numeric string should coerce, got %g", req.Width)
	}
	if !req.AddTop {
		t.Error("\"yes\" should coerce to true")
	}
	if req.NumShelves != 3 {
		t.Errorf("expected 3 shelves, got %d", req.NumShelves)
	}
	if len(req.ShelfZPositions) != 3 || req.ShelfZPositions[1] != 800 {
		t.Errorf("unexpected shelf positions %v", req.ShelfZPositions)
	}
}

func TestParseRequirementsInvalidEnumFallsBack(t *testing.T) {
	doc := []byte(`{"joint_method": "nails", "shelf_pins_mode": "lasers", "material": "Plywood"}`)
	req, err := ParseRequirements(doc)
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}
	if req.JointMethod != JointCamlockDowels {
		t.Errorf("unknown joint method should fall back, got %s", req.JointMethod)
	}
	if req.ShelfPinsMode != PinsModularGrid {
		t.Errorf("unknown pin mode should fall back, got %s", req.ShelfPinsMode)
	}
	if req.Material != "plywood" {
		t.Errorf("material should lowercase, got %s", req.Material)
	}
}

func TestParseRequirementsDrillingOverrides(t *testing.T) {
	doc := []byte(`{"row_front_offset": 50, "grid_pitch_z_mm": 25}`)
	req, err := ParseRequirements(doc)
	if err != nil {
		t.Fatalf("ParseRequirements failed: %v", err)
	}
	if req.Drilling.RowFrontOffset != 50 {
		t.Errorf("expected front offset 50, got %g", req.Drilling.RowFrontOffset)
	}
	if req.Drilling.GridPitchZ != 25 {
		t.Errorf("expected pitch 25, got %g", req.Drilling.GridPitchZ)
	}
	if req.Drilling.RowBackOffset != 37 {
		t.Errorf("untouched drilling fields should keep defaults, got %g", req.Drilling.RowBackOffset)
	}
}
