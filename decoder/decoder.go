// SPDX-License-Identifier: EPL-2.0

// Package decoder implements the Ambisonic binaural decoder: it
// convolves every channel of an Ambisonic sound field against a pair
// of spherical-harmonic-domain HRIR filter banks (one per ear) and
// sums the results into a 2-channel binaural signal.
package decoder

import (
	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/convolve"
	"github.com/trsonic/obr/fft"
)

// BinauralDecoder decodes an Ambisonic sound field of a fixed order
// into binaural stereo using 2*(order+1)^2 partitioned FIR filters,
// one pair (left, right) per spherical harmonic channel.
type BinauralDecoder struct {
	order     int
	numSH     int
	blockSize int

	left  []*convolve.PartitionedFilter
	right []*convolve.PartitionedFilter
}

// NewBinauralDecoder creates a decoder for the given Ambisonic order
// and block size, with every one of its 2*(order+1)^2 partitioned
// filters sharing mgr for all forward/inverse transforms, rather than
// each filter owning its own Manager. mgr must have been created with
// Size() == fft.NextPow2(2*blockSize). Filters start out silent; call
// SetShHrirs to install the actual HRIR set before processing audio.
func NewBinauralDecoder(order, blockSize int, mgr *fft.Manager) *BinauralDecoder {
	numSH := (order + 1) * (order + 1)
	d := &BinauralDecoder{
		order:     order,
		numSH:     numSH,
		blockSize: blockSize,
		left:      make([]*convolve.PartitionedFilter, numSH),
		right:     make([]*convolve.PartitionedFilter, numSH),
	}
	for i := 0; i < numSH; i++ {
		d.left[i] = convolve.NewPartitionedFilter(mgr, blockSize)
		d.right[i] = convolve.NewPartitionedFilter(mgr, blockSize)
	}
	return d
}

// Order returns the Ambisonic order this decoder handles.
func (d *BinauralDecoder) Order() int { return d.order }

// SetShHrirs installs the per-channel HRIR pair for spherical harmonic
// channel sh (0 <= sh < (Order()+1)^2).
func (d *BinauralDecoder) SetShHrirs(sh int, left, right []float32) {
	d.left[sh].SetKernel(left)
	d.right[sh].SetKernel(right)
}

// Process decodes one block of Ambisonic input (numSH channels,
// BlockSize() frames each) into a 2-channel binaural output buffer.
func (d *BinauralDecoder) Process(input, output *buffer.Buffer) {
	if input.Channels() != d.numSH {
		panic("decoder: input channel count does not match (order+1)^2")
	}
	if output.Channels() != 2 {
		panic("decoder: output must have exactly 2 channels")
	}
	output.Clear()
	left := output.Channel(0)
	right := output.Channel(1)
	for sh := 0; sh < d.numSH; sh++ {
		// Forward-transform each Ambisonic channel once and reuse the
		// spectrum for both ears, rather than transforming it twice.
		spectrum := d.left[sh].Spectrum(input.Channel(sh))
		l := d.left[sh].FilterSpectrum(spectrum)
		r := d.right[sh].FilterSpectrum(spectrum)
		for i := 0; i < d.blockSize; i++ {
			left[i] += l[i]
			right[i] += r[i]
		}
	}
}

// Reset clears every filter's internal overlap-add state without
// touching the installed HRIRs.
func (d *BinauralDecoder) Reset() {
	for i := 0; i < d.numSH; i++ {
		d.left[i].Reset()
		d.right[i].Reset()
	}
}
