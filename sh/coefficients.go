// SPDX-License-Identifier: EPL-2.0

package sh

import "math"

// NumChannels returns the number of Ambisonic channels for a given
// order: (order+1)^2.
func NumChannels(order int) int {
	return (order + 1) * (order + 1)
}

// ACN returns the Ambisonic Channel Number for degree l and order m
// (-l <= m <= l): l^2 + l + m.
func ACN(l, m int) int {
	return l*l + l + m
}

// Coefficients computes the real, SN3D-normalized, ACN-ordered
// spherical harmonic coefficients for a source at the given azimuth
// and elevation (radians), up to the given Ambisonic order. The
// azimuth convention is counter-clockwise from the front (positive x
// axis), and elevation is measured from the horizontal plane.
func Coefficients(order int, azimuthRad, elevationRad float64) []float64 {
	out := make([]float64, NumChannels(order))
	gen := NewLegendreGenerator(order, false)
	legendre := gen.Generate(math.Sin(elevationRad))

	for l := 0; l <= order; l++ {
		for m := -l; m <= l; m++ {
			absM := m
			if absM < 0 {
				absM = -absM
			}
			p := legendre[gen.GetIndex(l, absM)]
			n := sn3dNorm(l, absM)

			var trig float64
			if m >= 0 {
				trig = math.Cos(float64(m) * azimuthRad)
			} else {
				trig = math.Sin(float64(absM) * azimuthRad)
			}
			out[ACN(l, m)] = n * p * trig
		}
	}
	return out
}

// sn3dNorm computes the SN3D normalization factor for degree l and
// non-negative order m: sqrt((2 - delta_{m,0}) * (l-m)!/(l+m)!).
func sn3dNorm(l, m int) float64 {
	factor := 2.0
	if m == 0 {
		factor = 1.0
	}
	ratio := 1.0
	for k := l - m + 1; k <= l+m; k++ {
		ratio *= float64(k)
	}
	return math.Sqrt(factor / ratio)
}
