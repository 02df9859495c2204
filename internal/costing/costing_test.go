package costing

import (
	"math"
	"reflect"
	"testing"

	"github.com/piwi3910/shelfforge/internal/material"
	"github.com/piwi3910/shelfforge/internal/model"
)

func referenceModel(t *testing.T) model.Model {
	t.Helper()
	m, err := model.New(800, 300, 2000, 18, true, []model.Shelf{{Z: 1000}}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func glueOptions() Options {
	opts := DefaultOptions()
	opts.Method = model.JointGlueDowels
	opts.ShelfPinsMode = model.PinsNone
	return opts
}

func TestEstimateReferenceScenario(t *testing.T) {
	m := referenceModel(t)
	b := Estimate(m, material.Get("melamine_pb"), DefaultHardware(), DefaultRates(), glueOptions())

	if b.PanelAreaM2 != 1.909 {
		t.Errorf("panel area = %g, want 1.909", b.PanelAreaM2)
	}
	if b.SheetCount != 1 {
		t.Errorf("sheet count = %d, want 1", b.SheetCount)
	}
	if b.Counts.DowelHoles != 16 || b.Counts.CamSets != 0 {
		t.Errorf("counts = %+v, want 16 dowel holes and no cam sets", b.Counts)
	}
	if b.Counts.ShelfPinHoles != 0 || b.Counts.DrillHolesTotal != 16 {
		t.Errorf("counts = %+v, want no pin holes and 16 total", b.Counts)
	}
	if b.TimeMin.Drilling != 0.7 {
		t.Errorf("drilling time = %g min, want 0.7", b.TimeMin.Drilling)
	}

	if b.Cost.Material != 30.00 {
		t.Errorf("material cost = %.2f, want 30.00", b.Cost.Material)
	}
	if b.Cost.Machine != 6.50 {
		t.Errorf("machine cost = %.2f, want 6.50", b.Cost.Machine)
	}
	if b.Cost.Hardware != 0.32 {
		t.Errorf("hardware cost = %.2f, want 0.32", b.Cost.Hardware)
	}
	if b.Cost.Assembly != 0.93 {
		t.Errorf("assembly cost = %.2f, want 0.93", b.Cost.Assembly)
	}
	if b.Cost.Total != 37.75 {
		t.Errorf("total = %.2f, want 37.75", b.Cost.Total)
	}
}

func TestEstimateIsPure(t *testing.T) {
	m := referenceModel(t)
	opts := DefaultOptions()
	a := Estimate(m, material.Get("plywood"), DefaultHardware(), DefaultRates(), opts)
	b := Estimate(m, material.Get("plywood"), DefaultHardware(), DefaultRates(), opts)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs should yield identical breakdowns")
	}
}

func TestEstimateCamlockCarcass(t *testing.T) {
	m := referenceModel(t)
	opts := glueOptions()
	opts.Method = model.JointCamlockDowels

	b := Estimate(m, material.Get("melamine_pb"), DefaultHardware(), DefaultRates(), opts)
	if b.Counts.CamSets != 8 {
		t.Errorf("cam sets = %d, want lanes*levels*2 = 8", b.Counts.CamSets)
	}
	if b.Counts.DowelHoles != 0 {
		t.Errorf("dowel holes = %d, want 0 without dividers", b.Counts.DowelHoles)
	}

	withDiv, err := model.New(1200, 300, 2000, 18, true, nil, []model.Divider{{XCenter: 600}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b = Estimate(withDiv, material.Get("melamine_pb"), DefaultHardware(), DefaultRates(), opts)
	if b.Counts.DowelHoles != 16 {
		t.Errorf("dowel holes = %d, want 16 from one divider", b.Counts.DowelHoles)
	}
}

func TestShelfPinModes(t *testing.T) {
	m, err := model.New(800, 300, 2000, 18, true,
		[]model.Shelf{{Z: 500}, {Z: 500}, {Z: 1200}}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mat := material.Get("melamine_pb")

	opts := glueOptions()
	b := Estimate(m, mat, DefaultHardware(), DefaultRates(), opts)
	if b.Counts.ShelfPinHoles != 0 {
		t.Errorf("mode none drilled %d pin holes", b.Counts.ShelfPinHoles)
	}

	opts.ShelfPinsMode = model.PinsFixedAtShelves
	b = Estimate(m, mat, DefaultHardware(), DefaultRates(), opts)
	// Duplicate levels collapse: 2 distinct levels x 2 lanes x 2 sides.
	if b.Counts.ShelfPinHoles != 8 {
		t.Errorf("fixed pin holes = %d, want 8", b.Counts.ShelfPinHoles)
	}

	opts.ShelfPinsMode = model.PinsModularGrid
	b = Estimate(m, mat, DefaultHardware(), DefaultRates(), opts)
	// Ladder from 82mm to 1886mm at 32mm pitch is 57 levels; the two fixed
	// levels off the pitch add two more.
	if b.Counts.ShelfPinHoles != 59*2*2 {
		t.Errorf("grid pin holes = %d, want %d", b.Counts.ShelfPinHoles, 59*2*2)
	}
	if b.Counts.ShelfPinsEst != 12 {
		t.Errorf("pins estimate = %d, want 4 per shelf", b.Counts.ShelfPinsEst)
	}
}

func TestLaneCountCollapsesCoincidentRows(t *testing.T) {
	m := referenceModel(t)
	opts := glueOptions()
	// Back offset placed exactly opposite the front lane: one lane only.
	opts.Drilling.RowFrontOffset = 37
	opts.Drilling.RowBackOffset = m.D - 37

	b := Estimate(m, material.Get("melamine_pb"), DefaultHardware(), DefaultRates(), opts)
	if b.Counts.DowelHoles != 8 {
		t.Errorf("dowel holes = %d, want 8 with a single lane", b.Counts.DowelHoles)
	}
}

func TestTotalRoundedFromUnroundedParts(t *testing.T) {
	m := referenceModel(t)
	b := Estimate(m, material.Get("melamine_pb"), DefaultHardware(), DefaultRates(), glueOptions())

	parts := b.Cost.Material + b.Cost.Machine + b.Cost.Hardware + b.Cost.Assembly
	if math.Abs(b.Cost.Total-parts) > 0.02 {
		t.Errorf("total %.2f drifted from parts sum %.2f", b.Cost.Total, parts)
	}
}
