// SPDX-License-Identifier: EPL-2.0

package simd

import "testing"

func TestAddPointwiseOddLength(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5}
	b := []float32{10, 20, 30, 40, 50}
	dst := make([]float32, 5)
	AddPointwise(dst, a, b)
	want := []float32{11, 22, 33, 44, 55}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("AddPointwise[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestMultiplyAndAccumulatePointwise(t *testing.T) {
	dst := []float32{1, 1, 1, 1, 1, 1}
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{2, 2, 2, 2, 2, 2}
	MultiplyAndAccumulatePointwise(dst, a, b)
	want := []float32{3, 5, 7, 9, 11, 13}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("MAC[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestInt16FloatRoundTrip(t *testing.T) {
	src := []float32{0, 0.5, -0.5, 1, -1, 2, -2}
	i16 := make([]int16, len(src))
	Int16FromFloat(i16, src)
	if i16[5] != 32767 || i16[6] != -32767 {
		t.Fatalf("clamping failed: %v", i16)
	}
	back := make([]float32, len(src))
	FloatFromInt16(back, i16)
	if back[1] < 0.49 || back[1] > 0.51 {
		t.Fatalf("round trip inaccurate: %v", back[1])
	}
}

func TestInterleaveDeinterleave(t *testing.T) {
	l := []float32{1, 2, 3}
	r := []float32{4, 5, 6}
	dst := make([]float32, 6)
	InterleaveStereo(dst, l, r)
	want := []float32{1, 4, 2, 5, 3, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("interleave[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
	l2 := make([]float32, 3)
	r2 := make([]float32, 3)
	DeinterleaveStereo(l2, r2, dst)
	for i := range l {
		if l2[i] != l[i] || r2[i] != r[i] {
			t.Fatalf("deinterleave mismatch at %d", i)
		}
	}
}
