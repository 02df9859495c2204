package manufacturability

import (
	"math"
	"strings"
	"testing"

	"github.com/piwi3910/shelfforge/internal/costing"
)

func breakdownWithMaterial(cost float64) costing.Breakdown {
	return costing.Breakdown{Cost: costing.Cost{Material: cost}}
}

func byCode(warnings []Warning, code Code) []Warning {
	var out []Warning
	for _, w := range warnings {
		if w.Code == code {
			out = append(out, w)
		}
	}
	return out
}

func TestAnalyzeCleanDesign(t *testing.T) {
	d := DesignData{
		W: 800, D: 300, H: 500, T: 18,
		AddTop: true, NumShelves: 2,
		Material: "melamine_pb", TargetLoad: 100,
	}
	warnings := Analyze(d, breakdownWithMaterial(30))
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestPanelOversizeWarnings(t *testing.T) {
	d := DesignData{
		W: 2500, D: 1300, H: 2500, T: 18,
		AddTop: true, NumShelves: 2, NumDividers: 1,
		Material: "melamine_pb", TargetLoad: 100,
	}
	oversize := byCode(Analyze(d, breakdownWithMaterial(60)), CodePanelOversize)
	if len(oversize) != 4 {
		t.Fatalf("expected 4 oversize warnings, got %d: %v", len(oversize), oversize)
	}

	components := map[string]bool{}
	for _, w := range oversize {
		components[w.Component] = true
	}
	for _, want := range []string{"side_panel_height", "panel_depth", "width", "divider_height"} {
		if !components[want] {
			t.Errorf("missing oversize warning for %s", want)
		}
	}
}

func TestWeightsReport(t *testing.T) {
	d := DesignData{
		W: 800, D: 300, H: 2000, T: 18,
		AddTop: true, NumShelves: 6,
		Material: "melamine_pb", TargetLoad: 50,
	}
	r := Weights(d)
	if math.Abs(r.SidePanel-7.344) > 0.01 {
		t.Errorf("side panel = %.3fkg, want 7.344", r.SidePanel)
	}
	if math.Abs(r.BottomPanel-2.805) > 0.01 {
		t.Errorf("bottom panel = %.3fkg, want 2.805", r.BottomPanel)
	}
	if r.TopPanel != r.BottomPanel {
		t.Errorf("top %.3f should match bottom %.3f", r.TopPanel, r.BottomPanel)
	}
	if r.HeaviestPanel != r.SidePanel {
		t.Errorf("heaviest = %.3f, want side panel %.3f", r.HeaviestPanel, r.SidePanel)
	}
	want := 2*r.SidePanel + r.BottomPanel + r.TopPanel + 6*r.ShelfPanel + r.Hardware
	if math.Abs(r.Total-want) > 1e-9 {
		t.Errorf("total = %.3f, want %.3f", r.Total, want)
	}
}

func TestWeightsUnknownMaterialDensity(t *testing.T) {
	d := DesignData{W: 800, D: 300, H: 2000, T: 18, Material: "granite"}
	r := Weights(d)
	// 650 kg/m³ default.
	if math.Abs(r.SidePanel-300*2000*18/1e9*650) > 1e-9 {
		t.Errorf("unexpected side panel weight %.3f for unknown material", r.SidePanel)
	}
}

func TestWeightWarningTwoPerson(t *testing.T) {
	d := DesignData{
		W: 800, D: 400, H: 1800, T: 25,
		AddTop: true, NumShelves: 5,
		Material: "melamine_pb", TargetLoad: 200,
	}
	weight := byCode(Analyze(d, breakdownWithMaterial(60)), CodeWeightExceeded)
	if len(weight) != 1 {
		t.Fatalf("expected 1 weight warning, got %v", weight)
	}
	if weight[0].Component != "assembly" {
		t.Errorf("component = %s, want assembly", weight[0].Component)
	}
}

func TestWeightWarningEquipmentPrecedence(t *testing.T) {
	d := DesignData{
		W: 1200, D: 600, H: 2400, T: 30,
		AddTop: true, NumShelves: 5, NumDividers: 1,
		Material: "mdf", TargetLoad: 200,
	}
	weight := byCode(Analyze(d, breakdownWithMaterial(120)), CodeWeightExceeded)

	var components []string
	for _, w := range weight {
		components = append(components, w.Component)
	}
	joined := strings.Join(components, ",")
	if !strings.Contains(joined, "assembly_equipment") {
		t.Errorf("expected lifting-equipment warning, got %v", components)
	}
	if !strings.Contains(joined, "heaviest_panel") {
		t.Errorf("expected heaviest-panel warning, got %v", components)
	}
	for _, c := range components {
		if c == "assembly" {
			t.Error("equipment warning should replace the two-person one")
		}
	}
}

func TestShippingSingleWarningListsOverruns(t *testing.T) {
	d := DesignData{
		W: 2500, D: 1300, H: 700, T: 18,
		Material: "melamine_pb", TargetLoad: 500,
	}
	shipping := byCode(Analyze(d, breakdownWithMaterial(60)), CodeShippingOversize)
	if len(shipping) != 1 {
		t.Fatalf("expected a single shipping warning, got %d", len(shipping))
	}
	if len(shipping[0].Overruns) != 3 {
		t.Errorf("expected width, depth and height overruns, got %v", shipping[0].Overruns)
	}
}

func TestOverEngineeredRecommendation(t *testing.T) {
	d := DesignData{
		W: 800, D: 300, H: 500, T: 18,
		AddTop: true, NumShelves: 2,
		Material: "melamine_pb", TargetLoad: 50,
	}
	over := byCode(Analyze(d, breakdownWithMaterial(30)), CodeOverEngineered)
	if len(over) != 1 {
		t.Fatalf("expected over-engineering warning, got %v", over)
	}
	w := over[0]
	if math.Abs(w.Factor-5.19) > 0.05 {
		t.Errorf("factor = %.2f, want ~5.19", w.Factor)
	}
	if w.RecommendedThicknessMM != 12 {
		t.Errorf("recommended thickness = %g, want the 12mm floor", w.RecommendedThicknessMM)
	}
	// 1 - 12/18 of the material cost.
	if math.Abs(w.EstimatedSavings-10.0) > 0.01 {
		t.Errorf("savings = %.2f, want 10.00", w.EstimatedSavings)
	}
}

func TestNarrowBayWarning(t *testing.T) {
	d := DesignData{
		W: 800, D: 300, H: 500, T: 18,
		AddTop: true, NumShelves: 2, NumDividers: 1,
		Material: "melamine_pb", TargetLoad: 200,
	}
	warnings := Analyze(d, breakdownWithMaterial(30))
	narrow := byCode(warnings, CodeNarrowBay)
	if len(narrow) != 1 {
		t.Fatalf("expected narrow-bay warning, got %v", warnings)
	}
	w := narrow[0]
	if w.BayWidthMM != 382 || w.NumDividers != 1 {
		t.Errorf("bay = %gmm with %d dividers, want 382 and 1", w.BayWidthMM, w.NumDividers)
	}
	if math.Abs(w.EstimatedSavings-4.50) > 0.01 {
		t.Errorf("savings = %.2f, want 15%% of material", w.EstimatedSavings)
	}
}

func TestWarningStrings(t *testing.T) {
	depth := Warning{Code: CodePanelOversize, Component: "panel_depth", ValueMM: 1300, LimitMM: 1220}
	if !strings.Contains(depth.String(), "sheet width") {
		t.Errorf("depth oversize should mention sheet width: %s", depth)
	}

	shipping := Warning{Code: CodeShippingOversize, Overruns: []Overrun{
		{Dimension: "height", ValueMM: 2000, LimitMM: 600},
	}}
	if !strings.Contains(shipping.String(), "freight") {
		t.Errorf("shipping warning should mention freight: %s", shipping)
	}

	over := Warning{Code: CodeOverEngineered, CapacityKg: 260, TargetLoadKg: 50, Factor: 5.2, RecommendedThicknessMM: 12, EstimatedSavings: 10}
	if !strings.Contains(over.String(), "reducing thickness") {
		t.Errorf("over-engineering warning should suggest a thinner panel: %s", over)
	}
}
