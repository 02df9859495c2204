package material

import (
	"math"
	"testing"
)

func TestDeflectionMatchesBeamFormula(t *testing.T) {
	// 800mm span, 300mm deep, 18mm melamine under 30kg:
	// I = 0.3 * 0.018^3 / 12, w = 30*9.81/0.8, delta = 5wL^4/(384EI)
	got := Deflection(800, 300, 18, 30, Get("melamine_pb"))
	want := 4.486
	if math.Abs(got-want) > 0.01 {
		t.Errorf("expected deflection ~%.3fmm, got %.3fmm", want, got)
	}
}

func TestDeflectionScalesInverseCubeOfThickness(t *testing.T) {
	mat := Get("plywood")
	d12 := Deflection(800, 300, 12, 30, mat)
	d24 := Deflection(800, 300, 24, 30, mat)
	if d24 >= d12 {
		t.Fatal("thicker shelf should deflect less")
	}
	ratio := d12 / d24
	if math.Abs(ratio-8.0) > 0.01 {
		t.Errorf("doubling thickness should cut deflection 8x, got ratio %.3f", ratio)
	}
}

func TestDeflectionCappedForExtremeSpans(t *testing.T) {
	got := Deflection(2000, 300, 6, 500, Get("melamine_pb"))
	if got != 1000.0 {
		t.Errorf("extreme deflection should cap at 1000mm, got %g", got)
	}
}

func TestDeflectionSentinelForInvalidInputs(t *testing.T) {
	mat := Get("mdf")
	for _, tc := range []struct{ span, depth, thick, load float64 }{
		{0, 300, 18, 30},
		{800, 0, 18, 30},
		{800, 300, 0, 30},
		{800, 300, 18, -1},
	} {
		if got := Deflection(tc.span, tc.depth, tc.thick, tc.load, mat); got != 1e6 {
			t.Errorf("Deflection(%v) = %g, expected 1e6 sentinel", tc, got)
		}
	}
}

func TestStressMatchesBeamFormula(t *testing.T) {
	// sigma = M*c/I with M = wL^2/8; material properties do not enter.
	got := Stress(800, 300, 18, 30)
	// w = 30*9.81/0.8 = 367.875, M = 367.875*0.64/8 = 29.43
	// I = 1.458e-7, c = 0.009 -> sigma = 29.43*0.009/1.458e-7 = 1.8167e6
	want := 1.8167e6
	if math.Abs(got-want)/want > 0.001 {
		t.Errorf("expected stress ~%.4g Pa, got %.4g Pa", want, got)
	}
}

func TestStressSentinelAndCap(t *testing.T) {
	if got := Stress(0, 300, 18, 30); got != 1e9 {
		t.Errorf("invalid input should return 1e9 sentinel, got %g", got)
	}
	if got := Stress(3000, 300, 1, 900); got > 1e9 {
		t.Errorf("stress should cap at 1e9, got %g", got)
	}
}

func TestLoadCapacityScalesWithThicknessSquared(t *testing.T) {
	mat := Get("melamine_pb")
	c12 := LoadCapacity(800, 300, 12, mat)
	c24 := LoadCapacity(800, 300, 24, mat)
	if c24 <= c12 {
		t.Fatal("thicker shelf should carry more")
	}
	ratio := c24 / c12
	if math.Abs(ratio-4.0) > 0.01 {
		t.Errorf("doubling thickness should quadruple capacity, got ratio %.3f", ratio)
	}
}

func TestLoadCapacityReferenceValue(t *testing.T) {
	// 800mm melamine bay at 18mm: maxMoment = 15e6 * b*h^2/6 = 243 N*m,
	// wMax = 8*243/0.64, load = wMax*0.8/9.81 ~ 247.7kg
	got := LoadCapacity(800, 300, 18, Get("melamine_pb"))
	if math.Abs(got-247.7) > 0.5 {
		t.Errorf("expected capacity ~247.7kg, got %.1fkg", got)
	}
}

func TestLoadCapacityClampedToMax(t *testing.T) {
	got := LoadCapacity(100, 300, 32, Get("plywood"))
	if got != 1000.0 {
		t.Errorf("capacity should clamp at 1000kg, got %g", got)
	}
}

func TestLoadCapacityZeroForInvalidGeometry(t *testing.T) {
	mat := Get("plywood")
	if got := LoadCapacity(0, 300, 18, mat); got != 0 {
		t.Errorf("zero span should have zero capacity, got %g", got)
	}
	if got := LoadCapacity(800, -1, 18, mat); got != 0 {
		t.Errorf("negative depth should have zero capacity, got %g", got)
	}
}

func TestStressConsistentWithCapacity(t *testing.T) {
	// Loading a shelf at exactly its capacity should reach sigma_max.
	mat := Get("mdf")
	capacity := LoadCapacity(700, 300, 18, mat)
	sigma := Stress(700, 300, 18, capacity)
	if math.Abs(sigma-mat.SigmaMax)/mat.SigmaMax > 0.001 {
		t.Errorf("stress at capacity should equal sigma_max %g, got %g", mat.SigmaMax, sigma)
	}
}
