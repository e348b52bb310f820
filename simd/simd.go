// SPDX-License-Identifier: EPL-2.0

// Package simd implements the pointwise numeric kernels the DSP chain
// leans on: add/subtract/multiply, multiply-accumulate, scalar forms,
// and the int16/float32 conversions used at the renderer's I/O edges.
// Go has no portable SIMD intrinsics without cgo or assembly, so the
// arithmetic kernels (add, subtract, multiply, multiply-accumulate and
// their scalar forms) use a 4-wide manually unrolled main loop with a
// scalar tail, following the unrolled-loop idiom already used for
// 2/4-channel mixing in the teacher repo this module is built from.
// The magnitude, int16 conversion and stereo interleave helpers are
// plain per-element loops.
package simd

import "math"

// AddPointwise computes dst[i] = a[i] + b[i].
func AddPointwise(dst, a, b []float32) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] + b[i]
		dst[i+1] = a[i+1] + b[i+1]
		dst[i+2] = a[i+2] + b[i+2]
		dst[i+3] = a[i+3] + b[i+3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] + b[i]
	}
}

// SubtractPointwise computes dst[i] = a[i] - b[i].
func SubtractPointwise(dst, a, b []float32) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] - b[i]
		dst[i+1] = a[i+1] - b[i+1]
		dst[i+2] = a[i+2] - b[i+2]
		dst[i+3] = a[i+3] - b[i+3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

// MultiplyPointwise computes dst[i] = a[i] * b[i].
func MultiplyPointwise(dst, a, b []float32) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] * b[i]
		dst[i+1] = a[i+1] * b[i+1]
		dst[i+2] = a[i+2] * b[i+2]
		dst[i+3] = a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

// MultiplyAndAccumulatePointwise computes dst[i] += a[i] * b[i].
func MultiplyAndAccumulatePointwise(dst, a, b []float32) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] += a[i] * b[i]
		dst[i+1] += a[i+1] * b[i+1]
		dst[i+2] += a[i+2] * b[i+2]
		dst[i+3] += a[i+3] * b[i+3]
	}
	for ; i < n; i++ {
		dst[i] += a[i] * b[i]
	}
}

// ScalarMultiply computes dst[i] = a[i] * s.
func ScalarMultiply(dst, a []float32, s float32) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = a[i] * s
		dst[i+1] = a[i+1] * s
		dst[i+2] = a[i+2] * s
		dst[i+3] = a[i+3] * s
	}
	for ; i < n; i++ {
		dst[i] = a[i] * s
	}
}

// ScalarMultiplyAndAccumulate computes dst[i] += a[i] * s.
func ScalarMultiplyAndAccumulate(dst, a []float32, s float32) {
	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] += a[i] * s
		dst[i+1] += a[i+1] * s
		dst[i+2] += a[i+2] * s
		dst[i+3] += a[i+3] * s
	}
	for ; i < n; i++ {
		dst[i] += a[i] * s
	}
}

// ApproxComplexMagnitude computes dst[i] = |interleaved[2i] + interleaved[2i+1]*i|
// for each of the len(dst) complex pairs packed into interleaved.
func ApproxComplexMagnitude(dst, interleaved []float32) {
	for i := range dst {
		re := interleaved[2*i]
		im := interleaved[2*i+1]
		dst[i] = float32(math.Sqrt(float64(re*re + im*im)))
	}
}

// Int16FromFloat converts a float32 buffer in [-1, 1] to int16 PCM,
// clamping samples outside that range.
func Int16FromFloat(dst []int16, src []float32) {
	for i, s := range src {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		dst[i] = int16(s * 32767.0)
	}
}

// FloatFromInt16 converts int16 PCM into float32, the inverse of
// Int16FromFloat, using the same symmetric 32767 scale. Because
// Int16FromFloat truncates toward zero, a float round trip through
// both is accurate to within one 16-bit step (0.5 comes back as
// 16383/32767), not exact.
func FloatFromInt16(dst []float32, src []int16) {
	const scale = 1.0 / 32767.0
	for i, s := range src {
		dst[i] = float32(s) * scale
	}
}

// InterleaveStereo writes dst[2i]=l[i], dst[2i+1]=r[i].
func InterleaveStereo(dst, l, r []float32) {
	for i := range l {
		dst[2*i] = l[i]
		dst[2*i+1] = r[i]
	}
}

// DeinterleaveStereo writes l[i]=src[2i], r[i]=src[2i+1].
func DeinterleaveStereo(l, r, src []float32) {
	n := len(l)
	for i := 0; i < n; i++ {
		l[i] = src[2*i]
		r[i] = src[2*i+1]
	}
}
