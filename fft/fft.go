// SPDX-License-Identifier: EPL-2.0

// Package fft implements the real-FFT manager used by the partitioned
// convolution filters and the binaural decoder: a fixed-size forward
// and inverse real transform plus a packed-frequency-domain pointwise
// multiply-accumulate used to perform frequency-domain convolution.
//
// No third-party FFT library appears anywhere in the retrieval pack
// this module was built against, so the transform itself (an iterative
// radix-2 Cooley-Tukey complex FFT, wrapped for real input) is a
// documented standard-library implementation rather than a stdlib
// fallback of convenience.
package fft

import (
	"math"
	"sync"

	"github.com/trsonic/obr/simd"
)

// Manager performs fixed-size real FFTs in a packed frequency-domain
// format: index 0 holds the DC bin's real part, index 1 holds the
// Nyquist bin's real part, and indices 2..N-1 hold interleaved
// (re, im) pairs for bins 1..N/2-1. This packing keeps the frequency
// domain representation the same length as the time domain one, which
// is what every one of the pointwise kernels in this module assumes.
//
// A render context owns exactly one Manager, shared by every
// PartitionedFilter in its binaural decoder. Forward and Inverse guard
// the shared scratch buffer with mu, so concurrent callers (e.g. the
// errgroup that builds the filter bank's kernel spectra at DSP
// initialization) serialize on the transform itself rather than racing
// on scratch; the realtime Process path never calls Forward/Inverse
// concurrently, so this lock is never contended there.
type Manager struct {
	size     int
	twiddles []complex128

	mu      sync.Mutex
	scratch []complex128 // shared scratch buffer for Forward/Inverse, sized N.
}

// NewManager creates a Manager for transforms of the given size, which
// must be a power of two.
func NewManager(size int) *Manager {
	if size <= 0 || size&(size-1) != 0 {
		panic("fft: size must be a power of two")
	}
	m := &Manager{
		size:     size,
		twiddles: make([]complex128, size/2),
		scratch:  make([]complex128, size),
	}
	for k := 0; k < size/2; k++ {
		theta := -2 * math.Pi * float64(k) / float64(size)
		m.twiddles[k] = complex(math.Cos(theta), math.Sin(theta))
	}
	return m
}

// Size returns the transform size N.
func (m *Manager) Size() int { return m.size }

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Forward computes the packed-format frequency domain representation
// of timeDomain, which is zero-padded on the right up to Size() if
// shorter. dst must have length Size().
func (m *Manager) Forward(dst []float32, timeDomain []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.size
	buf := m.scratch
	for i := 0; i < n; i++ {
		if i < len(timeDomain) {
			buf[i] = complex(float64(timeDomain[i]), 0)
		} else {
			buf[i] = 0
		}
	}
	fftInPlace(buf, m.twiddles, false)
	packFromComplex(dst, buf, n)
}

// Inverse computes the time domain signal from a packed-format
// frequency domain buffer of length Size(), applying the 1/N inverse
// scaling. dst receives the first len(dst) samples, which must be
// <= Size().
func (m *Manager) Inverse(dst []float32, freqDomain []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.size
	buf := m.scratch
	unpackToComplex(buf, freqDomain, n)
	fftInPlace(buf, m.twiddles, true)
	scale := 1.0 / float64(n)
	for i := range dst {
		dst[i] = float32(real(buf[i]) * scale)
	}
}

// ConvolveAccumulate multiplies a and b, both in packed frequency
// domain format, and accumulates the pointwise complex product into
// dst (also packed format): dst += a * b. This is the core operation
// behind frequency-domain convolution: multiplying two spectra is
// equivalent to convolving their time-domain signals.
func ConvolveAccumulate(dst, a, b []float32) {
	n := len(dst)
	// DC and Nyquist bins are purely real.
	dst[0] += a[0] * b[0]
	dst[1] += a[1] * b[1]
	for i := 2; i+1 < n; i += 2 {
		ar, ai := a[i], a[i+1]
		br, bi := b[i], b[i+1]
		dst[i] += ar*br - ai*bi
		dst[i+1] += ar*bi + ai*br
	}
}

// Magnitude computes the per-bin magnitude of a packed-format
// frequency domain buffer. dst must have length Size()/2+1, ordered
// DC, bin 1, ..., Nyquist.
func Magnitude(dst, freqDomain []float32) {
	n := len(freqDomain)
	dst[0] = abs32(freqDomain[0])
	last := len(dst) - 1
	dst[last] = abs32(freqDomain[1])
	simd.ApproxComplexMagnitude(dst[1:last], freqDomain[2:n])
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func packFromComplex(dst []float32, buf []complex128, n int) {
	dst[0] = float32(real(buf[0]))
	dst[1] = float32(real(buf[n/2]))
	for k := 1; k < n/2; k++ {
		dst[2*k] = float32(real(buf[k]))
		dst[2*k+1] = float32(imag(buf[k]))
	}
}

func unpackToComplex(buf []complex128, src []float32, n int) {
	buf[0] = complex(float64(src[0]), 0)
	buf[n/2] = complex(float64(src[1]), 0)
	for k := 1; k < n/2; k++ {
		re := float64(src[2*k])
		im := float64(src[2*k+1])
		buf[k] = complex(re, im)
		// Hermitian symmetry: X[N-k] = conj(X[k]) for a real input signal.
		buf[n-k] = complex(re, -im)
	}
}

// fftInPlace runs an iterative radix-2 Cooley-Tukey FFT (or, if
// inverse is true, the inverse transform without the 1/N scaling,
// which callers apply themselves) on buf, whose length must equal
// len(twiddles)*2.
func fftInPlace(buf []complex128, twiddles []complex128, inverse bool) {
	n := len(buf)
	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := n / size
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				tw := twiddles[k*step]
				if inverse {
					tw = complex(real(tw), -imag(tw))
				}
				u := buf[start+k]
				v := buf[start+k+half] * tw
				buf[start+k] = u + v
				buf[start+k+half] = u - v
			}
		}
	}
}
