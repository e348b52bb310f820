// SPDX-License-Identifier: EPL-2.0

// Package convolve implements uniformly-partitioned frequency-domain
// convolution: a fixed-length kernel is split into equal-length blocks,
// each transformed once at setup time, and each call to Filter
// convolves one new block of input against every kernel partition via
// a ring buffer of past input spectra, using overlap-add to stitch the
// per-call results into a continuous output stream.
package convolve

import "github.com/trsonic/obr/fft"

// PartitionedFilter performs streaming FIR convolution against a
// single fixed kernel, processing BlockSize()-frame blocks at a time.
type PartitionedFilter struct {
	blockSize int
	fftSize   int
	mgr       *fft.Manager

	kernelSpectra [][]float32 // P partitions, each fftSize long, packed freq domain
	inputRing     [][]float32 // P slots, each fftSize long, packed freq domain
	ringPos       int

	accum   []float32 // scratch accumulator, fftSize long, packed freq domain
	timeBuf []float32 // scratch time-domain buffer, fftSize long
	tail    []float32 // overlap-add carry, blockSize long
}

// NewPartitionedFilter creates a filter that processes blocks of
// blockSize frames, using mgr for every forward and inverse transform.
// mgr must have been created with Size() == NextPow2(2*blockSize); it
// is shared across every filter in a render context's decoder rather
// than owned by any one filter, so that a full SH-order filter bank
// uses a single FFT manager instead of one per channel per ear. The
// kernel is initially silence; call SetKernel to install the actual
// impulse response.
func NewPartitionedFilter(mgr *fft.Manager, blockSize int) *PartitionedFilter {
	fftSize := fft.NextPow2(2 * blockSize)
	if mgr.Size() != fftSize {
		panic("convolve: manager size does not match NextPow2(2*blockSize)")
	}
	f := &PartitionedFilter{
		blockSize: blockSize,
		fftSize:   fftSize,
		mgr:       mgr,
		accum:     make([]float32, fftSize),
		timeBuf:   make([]float32, fftSize),
		tail:      make([]float32, blockSize),
	}
	f.SetKernel(nil)
	return f
}

// BlockSize returns the number of frames Filter consumes and produces
// per call.
func (f *PartitionedFilter) BlockSize() int { return f.blockSize }

// NumPartitions returns the number of kernel partitions.
func (f *PartitionedFilter) NumPartitions() int { return len(f.kernelSpectra) }

// SetKernel installs a new time-domain impulse response, splitting it
// into BlockSize()-length partitions and transforming each. A nil or
// empty kernel is treated as a single silent partition. Resets the
// input ring and overlap-add tail, so it must only be called outside
// of an in-progress Filter stream (i.e. at DSP (re)initialization).
func (f *PartitionedFilter) SetKernel(kernel []float32) {
	numPartitions := 1
	if len(kernel) > 0 {
		numPartitions = (len(kernel) + f.blockSize - 1) / f.blockSize
	}
	f.kernelSpectra = make([][]float32, numPartitions)
	for p := 0; p < numPartitions; p++ {
		start := p * f.blockSize
		end := start + f.blockSize
		if end > len(kernel) {
			end = len(kernel)
		}
		var part []float32
		if start < len(kernel) {
			part = kernel[start:end]
		}
		spectrum := make([]float32, f.fftSize)
		f.mgr.Forward(spectrum, part)
		f.kernelSpectra[p] = spectrum
	}

	f.inputRing = make([][]float32, numPartitions)
	for p := 0; p < numPartitions; p++ {
		f.inputRing[p] = make([]float32, f.fftSize)
	}
	f.ringPos = 0
	for i := range f.tail {
		f.tail[i] = 0
	}
}

// Filter convolves one new block of input (length BlockSize()) against
// the installed kernel and returns the corresponding block of output
// (length BlockSize()), continuing the overlap-add stream from the
// previous call.
func (f *PartitionedFilter) Filter(input []float32) []float32 {
	if len(input) != f.blockSize {
		panic("convolve: input block length must equal BlockSize()")
	}
	f.mgr.Forward(f.inputRing[f.ringPos], input)
	return f.convolveCurrentRingSlot()
}

// Spectrum computes the packed frequency-domain representation of one
// new block of input, using this filter's transform size. It does not
// advance any internal state; pass the result to FilterSpectrum
// (possibly on several filters sharing the same block size) to reuse
// a single forward transform across multiple filters, which is how the
// binaural decoder avoids forward-transforming each Ambisonic channel
// twice (once per ear).
func (f *PartitionedFilter) Spectrum(input []float32) []float32 {
	if len(input) != f.blockSize {
		panic("convolve: input block length must equal BlockSize()")
	}
	spectrum := make([]float32, f.fftSize)
	f.mgr.Forward(spectrum, input)
	return spectrum
}

// FilterSpectrum behaves like Filter, except it takes an
// already-computed spectrum (from Spectrum) instead of a raw input
// block, so the forward transform can be shared across filters.
func (f *PartitionedFilter) FilterSpectrum(spectrum []float32) []float32 {
	if len(spectrum) != f.fftSize {
		panic("convolve: spectrum length must equal the filter's transform size")
	}
	copy(f.inputRing[f.ringPos], spectrum)
	return f.convolveCurrentRingSlot()
}

func (f *PartitionedFilter) convolveCurrentRingSlot() []float32 {
	for i := range f.accum {
		f.accum[i] = 0
	}
	numPartitions := len(f.kernelSpectra)
	for p := 0; p < numPartitions; p++ {
		idx := f.ringPos - p
		if idx < 0 {
			idx += numPartitions
		}
		fft.ConvolveAccumulate(f.accum, f.inputRing[idx], f.kernelSpectra[p])
	}

	f.mgr.Inverse(f.timeBuf, f.accum)

	output := make([]float32, f.blockSize)
	for i := 0; i < f.blockSize; i++ {
		output[i] = f.timeBuf[i] + f.tail[i]
	}
	copy(f.tail, f.timeBuf[f.blockSize:2*f.blockSize])

	f.ringPos = (f.ringPos + 1) % numPartitions
	return output
}

// Latency returns the algorithmic latency in frames introduced by this
// filter. The uniform block-convolution design introduces no extra
// latency beyond the block size itself.
func (f *PartitionedFilter) Latency() int { return 0 }

// Reset clears the input ring and overlap-add tail without touching
// the installed kernel, as if no audio had been processed yet.
func (f *PartitionedFilter) Reset() {
	for _, slot := range f.inputRing {
		for i := range slot {
			slot[i] = 0
		}
	}
	for i := range f.tail {
		f.tail[i] = 0
	}
	f.ringPos = 0
}
