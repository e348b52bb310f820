// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio fixtures for exercising
// the decoding pipeline and the renderer's binaural path without
// needing real media files or real SH-HRIR filter sets on disk.
package audiotest

import (
	"fmt"
	"io"
	"math"

	"github.com/trsonic/obr/assets"
	"github.com/trsonic/obr/formats/wav"
)

// MockSource is a test helper generating interleaved PCM on demand.
// It implements formats.Source (without importing it, to avoid a
// test-only import cycle with packages formats itself depends on).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // total frames to generate
	generated    int // frames generated so far
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a mock source that calls waveform(frame,
// channel) to fill every sample; totalSamples is the frame count.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource generates digital silence.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0
	})
}

// NewSineSource generates a sine wave at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewImpulseSource generates a single unit impulse at frame 0 on
// every channel and silence afterwards, useful for reading back a
// filter's impulse response through the convolution path.
func NewImpulseSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, _ int) float32 {
		if sample == 0 {
			return 1
		}
		return 0
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be read again from frame 0.
func (m *MockSource) Reset() { m.generated = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesRequested := len(dst) / m.channels
	framesAvailable := m.totalSamples - m.generated
	framesToWrite := framesRequested
	if framesToWrite > framesAvailable {
		framesToWrite = framesAvailable
	}

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}
	return samplesWritten, nil
}

// FakeAssetStore is an in-memory assets.Store, keyed by asset name,
// for tests that need a Renderer without real SH-HRIR filter files.
type FakeAssetStore struct {
	data map[string][]byte
}

// NewFakeAssetStore creates an empty FakeAssetStore.
func NewFakeAssetStore() *FakeAssetStore {
	return &FakeAssetStore{data: make(map[string][]byte)}
}

// Put installs raw bytes under name.
func (s *FakeAssetStore) Put(name string, data []byte) { s.data[name] = data }

// Get implements assets.Store.
func (s *FakeAssetStore) Get(name string) ([]byte, bool) {
	b, ok := s.data[name]
	return b, ok
}

var _ assets.Store = (*FakeAssetStore)(nil)

// NewSilentShHrirStore builds a FakeAssetStore holding a silent
// (all-zero) SH-HRIR set for the given Ambisonic order: (order+1)^2
// left/right channels of length frames, at sampleRate. Tests that
// need a Renderer to initialize its binaural decoder without caring
// about the actual filter content use this.
func NewSilentShHrirStore(order, sampleRate, frames int) *FakeAssetStore {
	numSH := (order + 1) * (order + 1)
	interleaved := make([]float32, numSH*frames)
	wavBytes := encodeMultichannelWav(sampleRate, numSH, interleaved)

	store := NewFakeAssetStore()
	store.Put(fmt.Sprintf("%dOA_L", order), wavBytes)
	store.Put(fmt.Sprintf("%dOA_R", order), wavBytes)
	return store
}

func encodeMultichannelWav(sampleRate, numChannels int, interleaved []float32) []byte {
	buf := &growableWriteSeeker{}
	if err := wav.Encode(buf, sampleRate, numChannels, interleaved); err != nil {
		// Encoding a fixed-size in-memory buffer of valid PCM never
		// fails; a panic here means the wav encoder itself is broken.
		panic(fmt.Sprintf("audiotest: encoding synthetic wav: %v", err))
	}
	return buf.data
}

// growableWriteSeeker adapts a growable byte slice into an
// io.WriteSeeker, since wav.Encode seeks back to patch chunk sizes.
type growableWriteSeeker struct {
	data   []byte
	offset int64
}

func (b *growableWriteSeeker) Write(p []byte) (int, error) {
	end := b.offset + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	n := copy(b.data[b.offset:end], p)
	b.offset = end
	return n, nil
}

func (b *growableWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		b.offset = offset
	case io.SeekCurrent:
		b.offset += offset
	case io.SeekEnd:
		b.offset = int64(len(b.data)) + offset
	}
	return b.offset, nil
}
