// SPDX-License-Identifier: EPL-2.0

// Package sh computes real spherical harmonic coefficients (SN3D
// normalization, ACN channel ordering) used to encode a point source
// into an Ambisonic sound field, built on an associated Legendre
// polynomial recurrence.
package sh

import "math"

// LegendreGenerator computes associated Legendre polynomial values
// P_l^m(x) for all degrees 0..MaxDegree and orders 0..degree, using the
// standard three-term recurrence. The Condon-Shortley phase is
// optional; negative orders are not generated, so only entries with
// 0 <= m <= l are available.
type LegendreGenerator struct {
	maxDegree      int
	condonShortley bool
	values         []float64
}

// NewLegendreGenerator creates a generator for degrees 0..maxDegree.
func NewLegendreGenerator(maxDegree int, condonShortleyPhase bool) *LegendreGenerator {
	g := &LegendreGenerator{
		maxDegree:      maxDegree,
		condonShortley: condonShortleyPhase,
	}
	g.values = make([]float64, g.GetNumValues())
	return g
}

// GetNumValues returns the number of (degree, order) pairs generated,
// counting order 0..degree for each degree 0..MaxDegree.
func (g *LegendreGenerator) GetNumValues() int {
	return (g.maxDegree + 1) * (g.maxDegree + 2) / 2
}

// GetIndex returns the flat index of P_degree^order within the slice
// returned by Generate. order must be in [0, degree].
func (g *LegendreGenerator) GetIndex(degree, order int) int {
	return degree*(degree+1)/2 + order
}

// Generate computes P_l^m(x) for all degrees 0..MaxDegree and orders
// 0..l, returning a slice indexable via GetIndex. The returned slice
// is reused across calls; callers must not retain it across a
// subsequent Generate call.
func (g *LegendreGenerator) Generate(x float64) []float64 {
	v := g.values
	radicand := 1 - x*x
	if radicand < 0 {
		radicand = 0
	}
	sqrtTerm := math.Sqrt(radicand)

	v[g.GetIndex(0, 0)] = 1.0
	for l := 1; l <= g.maxDegree; l++ {
		// Diagonal term P_l^l from P_{l-1}^{l-1}.
		prevDiag := v[g.GetIndex(l-1, l-1)]
		sign := 1.0
		if g.condonShortley {
			sign = -1.0
		}
		v[g.GetIndex(l, l)] = sign * float64(2*l-1) * sqrtTerm * prevDiag

		// Sub-diagonal term P_l^{l-1} from P_{l-1}^{l-1}.
		if l >= 1 {
			v[g.GetIndex(l, l-1)] = x * float64(2*l-1) * prevDiag
		}
	}
	for l := 2; l <= g.maxDegree; l++ {
		for m := 0; m <= l-2; m++ {
			pPrev1 := v[g.GetIndex(l-1, m)]
			pPrev2 := v[g.GetIndex(l-2, m)]
			v[g.GetIndex(l, m)] = (x*float64(2*l-1)*pPrev1 - float64(l+m-1)*pPrev2) / float64(l-m)
		}
	}
	return v
}
