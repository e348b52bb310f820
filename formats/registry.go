// SPDX-License-Identifier: EPL-2.0

// Package formats defines the pluggable audio-file decoding surface
// the CLI uses to read an arbitrary input file (WAV, AIFF, MP3, Ogg
// Vorbis) into interleaved float32 samples, plus sub-packages
// implementing one decoder each.
package formats

import (
	"io"
	"sync"
)

// Source streams interleaved float32 PCM samples from a decoded audio
// file.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels is the channel count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in
	// [-1,1], returning the number of float32 values written. A
	// return of n==0 with err==io.EOF means the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the decoder's preferred read chunk size, in samples.
	BufSize() int
	// Close releases any resources held by the decoder.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps a format name (file extension without the dot, e.g.
// "wav", "mp3", "ogg") to the Decoder that handles it.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register associates a Decoder with a format name.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[format] = d
}

// Get returns the Decoder registered for format, if any.
func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.codecs[format]
	return d, ok
}
