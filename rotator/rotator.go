// SPDX-License-Identifier: EPL-2.0

// Package rotator implements head-tracked rotation of an Ambisonic
// sound field: given a listener head orientation as a quaternion, it
// rotates every spherical harmonic channel of a buffer in place. The
// degree-1 band is rotated directly from the orientation's 3x3
// rotation matrix; higher bands are built from it using the recursive
// construction of Ivanic and Ruedenberg, which expresses each band's
// rotation submatrix in terms of the degree-1 matrix and the
// previous band's submatrix.
package rotator

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/sh"
)

// AngleThresholdRadians is the minimum rotation angle, derived from
// the quaternion's scalar part, below which Process is a pass-through
// copy rather than applying a (numerically negligible) rotation.
const AngleThresholdRadians = 1e-4

// Rotator rotates an Ambisonic sound field of a fixed order according
// to a listener head orientation.
type Rotator struct {
	order int

	quat       mgl64.Quat
	identity   bool
	bandMatrix [][][]float64 // bandMatrix[l] is a (2l+1)x(2l+1) rotation submatrix, indexed [m+l][n+l]
}

// New creates a Rotator for the given Ambisonic order, initialized to
// the identity orientation.
func New(order int) *Rotator {
	r := &Rotator{order: order, quat: mgl64.QuatIdent(), identity: true}
	r.rebuild()
	return r
}

// SetRotation sets the listener head orientation from a quaternion
// (w, x, y, z); it need not be pre-normalized.
func (r *Rotator) SetRotation(w, x, y, z float64) {
	q := mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
	if q.Dot(q) == 0 {
		return
	}
	q = q.Normalize()
	if q == r.quat {
		return
	}
	r.quat = q
	r.identity = math.Abs(q.W) >= math.Cos(AngleThresholdRadians/2)
	r.rebuild()
}

func (r *Rotator) rebuild() {
	if r.identity {
		r.bandMatrix = nil
		return
	}
	m3 := r.quat.Mat3()
	// m3 is column-major 3x3; element(row, col) = m3[col*3+row].
	at := func(row, col int) float64 { return m3[col*3+row] }

	r.bandMatrix = make([][][]float64, r.order+1)
	r.bandMatrix[0] = [][]float64{{1}}
	if r.order >= 1 {
		// Real SH order-1 basis is (Y, Z, X) ~ (y, z, x); permute the
		// Cartesian rotation matrix rows/columns accordingly.
		band1 := [][]float64{
			{at(1, 1), at(1, 2), at(1, 0)},
			{at(2, 1), at(2, 2), at(2, 0)},
			{at(0, 1), at(0, 2), at(0, 0)},
		}
		r.bandMatrix[1] = band1
	}
	for l := 2; l <= r.order; l++ {
		r.bandMatrix[l] = buildBand(l, r.bandMatrix[1], r.bandMatrix[l-1])
	}
}

// Process rotates one block of Ambisonic audio in place.
func (r *Rotator) Process(buf *buffer.Buffer) {
	if r.identity {
		return
	}
	expected := sh.NumChannels(r.order)
	if buf.Channels() != expected {
		panic("rotator: buffer channel count does not match (order+1)^2")
	}
	frames := buf.Frames()
	for l := 0; l <= r.order; l++ {
		mat := r.bandMatrix[l]
		base := l * l
		size := 2*l + 1
		rotated := make([][]float32, size)
		for row := 0; row < size; row++ {
			rotated[row] = make([]float32, frames)
			for col := 0; col < size; col++ {
				w := mat[row][col]
				if w == 0 {
					continue
				}
				src := buf.Channel(base + col)
				dst := rotated[row]
				for i := 0; i < frames; i++ {
					dst[i] += float32(w) * src[i]
				}
			}
		}
		for row := 0; row < size; row++ {
			copy(buf.Channel(base+row), rotated[row])
		}
	}
}

// buildBand constructs the (2l+1)x(2l+1) rotation submatrix for degree
// l from the degree-1 matrix and the degree-(l-1) submatrix, following
// Ivanic & Ruedenberg's recursive construction for real spherical
// harmonic rotation matrices.
func buildBand(l int, band1, prev [][]float64) [][]float64 {
	size := 2*l + 1
	out := make([][]float64, size)
	for i := range out {
		out[i] = make([]float64, size)
	}
	idx := func(m int) int { return m + l }
	prevIdx := func(m int) int { return m + (l - 1) }
	b1 := func(i, j int) float64 { return band1[i+1][j+1] } // band1 indices are -1,0,1

	p := func(i, a, b int) float64 {
		if b == l {
			return b1(i, 1)*prevAt(prev, prevIdx(a), prevIdx(l-1)) -
				b1(i, -1)*prevAt(prev, prevIdx(a), prevIdx(-(l-1)))
		} else if b == -l {
			return b1(i, 1)*prevAt(prev, prevIdx(a), prevIdx(-(l-1))) +
				b1(i, -1)*prevAt(prev, prevIdx(a), prevIdx(l-1))
		}
		return b1(i, 0) * prevAt(prev, prevIdx(a), prevIdx(b))
	}

	for m := -l; m <= l; m++ {
		for n := -l; n <= l; n++ {
			var denom float64
			if n == l || n == -l {
				denom = float64(2 * l * (2*l - 1))
			} else {
				denom = float64((l + n) * (l - n))
			}

			absM := m
			if absM < 0 {
				absM = -absM
			}
			deltaM0 := 0.0
			if m == 0 {
				deltaM0 = 1.0
			}

			u := math.Sqrt(float64((l+m)*(l-m)) / denom)
			v := 0.5 * math.Sqrt((1+deltaM0)*float64((l+absM-1)*(l+absM))/denom) * (1 - 2*deltaM0)
			var w float64
			if l-absM-1 >= 0 {
				w = -0.5 * math.Sqrt(float64((l-absM-1)*(l-absM))/denom) * (1 - deltaM0)
			}

			var uTerm, vTerm, wTerm float64
			if u != 0 {
				uTerm = u * uFunc(p, m, n)
			}
			if v != 0 {
				vTerm = v * vFunc(p, m, n)
			}
			if w != 0 {
				wTerm = w * wFunc(p, m, n)
			}
			out[idx(m)][idx(n)] = uTerm + vTerm + wTerm
		}
	}
	return out
}

func prevAt(prev [][]float64, a, b int) float64 { return prev[a][b] }

func uFunc(p func(i, a, b int) float64, m, n int) float64 { return p(0, m, n) }

func vFunc(p func(i, a, b int) float64, m, n int) float64 {
	switch {
	case m == 0:
		return p(1, 1, n) + p(-1, -1, n)
	case m > 0:
		d := 0.0
		if m == 1 {
			d = 1
		}
		return p(1, m-1, n)*math.Sqrt(1+d) - p(-1, -(m-1), n)*(1-d)
	default:
		d := 0.0
		if m == -1 {
			d = 1
		}
		return p(1, m+1, n)*(1-d) + p(-1, -(m+1), n)*math.Sqrt(1+d)
	}
}

func wFunc(p func(i, a, b int) float64, m, n int) float64 {
	if m > 0 {
		return p(1, m+1, n) + p(-1, -(m+1), n)
	}
	return p(1, m-1, n) - p(-1, -(m-1), n)
}
