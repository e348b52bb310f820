// SPDX-License-Identifier: EPL-2.0

package sh

import (
	"math"
	"testing"
)

func TestNumChannels(t *testing.T) {
	cases := map[int]int{0: 1, 1: 4, 2: 9, 3: 16, 7: 64}
	for order, want := range cases {
		if got := NumChannels(order); got != want {
			t.Fatalf("NumChannels(%d) = %d, want %d", order, got, want)
		}
	}
}

func TestCoefficientsOmniSourceIsUnity(t *testing.T) {
	// The W (ACN 0) channel is direction-independent and always equals 1.
	for _, az := range []float64{0, 0.7, math.Pi, -1.3} {
		for _, el := range []float64{0, 0.5, -0.5} {
			c := Coefficients(3, az, el)
			if math.Abs(c[0]-1) > 1e-9 {
				t.Fatalf("W coefficient at az=%v el=%v = %v, want 1", az, el, c[0])
			}
		}
	}
}

// TestCoefficientsFrontSource checks the order-3 coefficients for a
// source directly in front (azimuth=0, elevation=0): only the
// zero-elevation, non-negative-order channels along the front axis
// should be non-zero, matching the SN3D/ACN real spherical harmonics
// used throughout the Ambisonic encoder.
func TestCoefficientsFrontSource(t *testing.T) {
	c := Coefficients(3, 0, 0)
	want := map[int]float64{
		0:  1.0,
		3:  1.0,
		6:  -0.5,
		8:  0.866025,
		13: -0.612372,
		15: 0.790569,
	}
	for acn, w := range want {
		if math.Abs(c[acn]-w) > 1e-4 {
			t.Fatalf("c[%d] = %v, want %v", acn, c[acn], w)
		}
	}
	zero := []int{1, 2, 4, 5, 7, 9, 10, 11, 12, 14}
	for _, acn := range zero {
		if math.Abs(c[acn]) > 1e-9 {
			t.Fatalf("c[%d] = %v, want 0", acn, c[acn])
		}
	}
}

func TestLegendreGetIndexAndNumValues(t *testing.T) {
	g := NewLegendreGenerator(3, false)
	if got := g.GetNumValues(); got != 10 {
		t.Fatalf("GetNumValues() = %d, want 10", got)
	}
	v := g.Generate(0)
	if math.Abs(v[g.GetIndex(0, 0)]-1) > 1e-9 {
		t.Fatalf("P_0^0(0) = %v, want 1", v[g.GetIndex(0, 0)])
	}
}
