// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/trsonic/obr/formats/wav"
)

// seekBuffer adapts a bytes.Buffer into an io.WriteSeeker backed by a
// growable byte slice, since go-audio/wav's encoder needs to seek back
// to patch chunk sizes after writing.
type seekBuffer struct {
	data   []byte
	offset int64
}

func (b *seekBuffer) Write(p []byte) (int, error) {
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

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
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

func TestEncodeDecodeRoundTrip(t *testing.T) {
	samples := []float32{0, 0.5, -0.5, 1, -1, 0.25, -0.25, 0}
	buf := &seekBuffer{}
	if err := wav.Encode(buf, 16000, 2, samples); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoder := wav.Decoder{}
	source, err := decoder.Decode(bytes.NewReader(buf.data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if source.SampleRate() != 16000 {
		t.Fatalf("SampleRate() = %d, want 16000", source.SampleRate())
	}
	if source.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", source.Channels())
	}

	got := make([]float32, len(samples))
	n, err := source.ReadSamples(got)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples: %v", err)
	}
	if n != len(samples) {
		t.Fatalf("ReadSamples returned %d samples, want %d", n, len(samples))
	}
	for i, want := range samples {
		if diff := got[i] - want; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestDecodeMultichannel(t *testing.T) {
	// 4 channels x 3 frames, interleaved.
	interleaved := []float32{
		0.1, 0.2, 0.3, 0.4,
		0.5, 0.6, 0.7, 0.8,
		-0.1, -0.2, -0.3, -0.4,
	}
	buf := &seekBuffer{}
	if err := wav.Encode(buf, 48000, 4, interleaved); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	channels, rate, err := wav.DecodeMultichannel(buf.data)
	if err != nil {
		t.Fatalf("DecodeMultichannel: %v", err)
	}
	if rate != 48000 {
		t.Fatalf("sample rate = %d, want 48000", rate)
	}
	if len(channels) != 4 {
		t.Fatalf("got %d channels, want 4", len(channels))
	}
	if len(channels[0]) != 3 {
		t.Fatalf("got %d frames, want 3", len(channels[0]))
	}
	if diff := channels[0][0] - 0.1; diff > 1e-3 || diff < -1e-3 {
		t.Fatalf("channels[0][0] = %v, want ~0.1", channels[0][0])
	}
}

func TestDecodeRejectsNonWav(t *testing.T) {
	decoder := wav.Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("not a wav file at all")))
	if err != wav.ErrNotWavFile {
		t.Fatalf("err = %v, want ErrNotWavFile", err)
	}
}
