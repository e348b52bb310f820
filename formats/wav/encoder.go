// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/trsonic/obr/simd"
)

// Encode writes a 16-bit PCM WAV file containing interleaved samples
// in [-1, 1] to w, which must support Seek (go-audio/wav's encoder
// back-patches the RIFF/data chunk sizes after writing).
func Encode(w io.WriteSeeker, sampleRate, numChannels int, interleaved []float32) error {
	enc := gowav.NewEncoder(w, sampleRate, 16, numChannels, 1)

	pcm := make([]int16, len(interleaved))
	simd.Int16FromFloat(pcm, interleaved)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{SampleRate: sampleRate, NumChannels: numChannels},
		Data:   make([]int, len(pcm)),
	}
	for i, s := range pcm {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}
	return nil
}
