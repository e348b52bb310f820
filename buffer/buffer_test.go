// SPDX-License-Identifier: EPL-2.0

package buffer

import "testing"

func TestNewStrideAlignment(t *testing.T) {
	b := New(2, 10)
	if b.Stride()%4 != 0 {
		t.Fatalf("stride %d not aligned to 4 elements", b.Stride())
	}
	if b.Frames() != 10 {
		t.Fatalf("frames = %d, want 10", b.Frames())
	}
}

func TestClear(t *testing.T) {
	b := New(2, 4)
	for c := 0; c < 2; c++ {
		ch := b.Channel(c)
		for i := range ch {
			ch[i] = 1
		}
	}
	b.Clear()
	for c := 0; c < 2; c++ {
		for _, v := range b.Channel(c) {
			if v != 0 {
				t.Fatalf("expected zero after Clear, got %v", v)
			}
		}
	}
}

func TestAddFrom(t *testing.T) {
	a := New(1, 4)
	b := New(1, 4)
	copy(a.Channel(0), []float32{1, 2, 3, 4})
	copy(b.Channel(0), []float32{10, 20, 30, 40})
	a.AddFrom(b)
	want := []float32{11, 22, 33, 44}
	got := a.Channel(0)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AddFrom[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	b := New(2, 3)
	interleaved := []float32{1, 2, 3, 4, 5, 6}
	b.CopyFromInterleaved(interleaved)
	if got := b.Channel(0); got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Fatalf("channel 0 = %v", got)
	}
	if got := b.Channel(1); got[0] != 2 || got[1] != 4 || got[2] != 6 {
		t.Fatalf("channel 1 = %v", got)
	}
	out := make([]float32, 6)
	b.CopyToInterleaved(out)
	for i := range interleaved {
		if out[i] != interleaved[i] {
			t.Fatalf("round trip[%d] = %v, want %v", i, out[i], interleaved[i])
		}
	}
}
