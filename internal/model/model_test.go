package model

import (
	"math"
	"strings"
	"testing"
)

func mustModel(t *testing.T, w, d, h, thick float64, addTop bool, shelves []Shelf, dividers []Divider) Model {
	t.Helper()
	m, err := New(w, d, h, thick, addTop, shelves, dividers)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return m
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	cases := []struct {
		name       string
		w, d, h, t float64
	}{
		{"zero width", 0, 300, 2000, 18},
		{"negative depth", 800, -300, 2000, 18},
		{"zero height", 800, 300, 0, 18},
		{"thin panel", 800, 300, 2000, 5},
		{"panel too thick", 90, 90, 2000, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.w, tc.d, tc.h, tc.t, true, nil, nil); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestNewRejectsNegativePositions(t *testing.T) {
	if _, err := New(800, 300, 2000, 18, true, []Shelf{{Z: -1}}, nil); err == nil {
		t.Error("expected error for negative shelf z")
	}
	if _, err := New(800, 300, 2000, 18, true, nil, []Divider{{XCenter: -5}}); err == nil {
		t.Error("expected error for negative divider x")
	}
}

func TestClearDimensions(t *testing.T) {
	m := mustModel(t, 800, 300, 2000, 18, true, nil, nil)
	if m.ClearWidth() != 764 {
		t.Errorf("expected clear width 764, got %g", m.ClearWidth())
	}
	if m.ClearHeight() != 1964 {
		t.Errorf("expected clear height 1964 with top, got %g", m.ClearHeight())
	}

	noTop := mustModel(t, 800, 300, 2000, 18, false, nil, nil)
	if noTop.ClearHeight() != 1982 {
		t.Errorf("expected clear height 1982 without top, got %g", noTop.ClearHeight())
	}
}

func TestBaysAndWidths(t *testing.T) {
	m := mustModel(t, 900, 300, 2000, 18, true, nil,
		[]Divider{{XCenter: 300}, {XCenter: 600}})

	if m.NumBays() != 3 {
		t.Errorf("expected 3 bays, got %d", m.NumBays())
	}
	if math.Abs(m.BayWidth()-288) > 1e-9 {
		t.Errorf("expected bay width 288, got %g", m.BayWidth())
	}
}

func TestPositionAccessors(t *testing.T) {
	m := mustModel(t, 800, 300, 2000, 18, true,
		[]Shelf{{Z: 500}, {Z: 1000}},
		[]Divider{{XCenter: 400}})

	zs := m.ShelfZPositions()
	if len(zs) != 2 || zs[0] != 500 || zs[1] != 1000 {
		t.Errorf("unexpected shelf positions %v", zs)
	}
	xs := m.DividerXPositions()
	if len(xs) != 1 || xs[0] != 400 {
		t.Errorf("unexpected divider positions %v", xs)
	}
}

func TestPositionWarnings(t *testing.T) {
	m := mustModel(t, 800, 300, 2000, 18, true,
		[]Shelf{{Z: 10}, {Z: 1990}, {Z: 1000}},
		[]Divider{{XCenter: 5}, {XCenter: 400}})

	warnings := m.PositionWarnings()
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "below bottom panel") {
		t.Errorf("unexpected warning: %s", warnings[0])
	}
	if !strings.Contains(warnings[1], "intersects top panel") {
		t.Errorf("unexpected warning: %s", warnings[1])
	}
	if !strings.Contains(warnings[2], "outside valid range") {
		t.Errorf("unexpected warning: %s", warnings[2])
	}
}

func TestPositionWarningsCleanDesign(t *testing.T) {
	m := mustModel(t, 800, 300, 2000, 18, true,
		[]Shelf{{Z: 650}, {Z: 1300}},
		[]Divider{{XCenter: 400}})
	if got := m.PositionWarnings(); len(got) != 0 {
		t.Errorf("expected no warnings, got %v", got)
	}
}
