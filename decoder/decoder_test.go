// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"math"
	"testing"

	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/fft"
)

func newTestDecoder(order, block int) *BinauralDecoder {
	return NewBinauralDecoder(order, block, fft.NewManager(fft.NextPow2(2*block)))
}

// TestProcessIldByAzimuth checks that, with simple point-source-like
// per-channel HRIRs (one ear louder for a left-of-center W+Y
// combination), the decoder produces an interaural level difference
// in the direction consistent with the installed HRIRs: the ear given
// the louder impulse stays louder in the output.
func TestProcessIldByAzimuth(t *testing.T) {
	const order = 1
	const block = 8
	d := newTestDecoder(order, block)

	// W (ACN0): equal to both ears.
	d.SetShHrirs(0, []float32{1}, []float32{1})
	// Y (ACN1): louder to the left ear than the right, modeling a
	// source on the left.
	d.SetShHrirs(1, []float32{0.8}, []float32{0.2})
	// Z, X (ACN2, ACN3): silent.
	d.SetShHrirs(2, []float32{0}, []float32{0})
	d.SetShHrirs(3, []float32{0}, []float32{0})

	in := buffer.New(4, block)
	w := in.Channel(0)
	y := in.Channel(1)
	for i := range w {
		w[i] = 1
		y[i] = 1
	}

	out := buffer.New(2, block)
	d.Process(in, out)

	left := out.Channel(0)
	right := out.Channel(1)
	for i := range left {
		if left[i] <= right[i] {
			t.Fatalf("frame %d: left=%v right=%v, want left louder", i, left[i], right[i])
		}
	}
	// W(=1*1) + Y(=1*0.8) = 1.8 on the left; 1*1 + 1*0.2 = 1.2 on the right.
	if math.Abs(float64(left[0]-1.8)) > 1e-4 {
		t.Fatalf("left[0] = %v, want 1.8", left[0])
	}
	if math.Abs(float64(right[0]-1.2)) > 1e-4 {
		t.Fatalf("right[0] = %v, want 1.2", right[0])
	}
}

func TestProcessSilentInputProducesSilence(t *testing.T) {
	d := newTestDecoder(1, 8)
	d.SetShHrirs(0, []float32{1, 0.5}, []float32{1, 0.5})
	in := buffer.New(4, 8)
	out := buffer.New(2, 8)
	d.Process(in, out)
	for _, v := range out.Channel(0) {
		if v != 0 {
			t.Fatalf("expected silence, got %v", v)
		}
	}
}
