// SPDX-License-Identifier: EPL-2.0

// Package resample converts a signal between sample rates using
// libsamplerate, via github.com/dh1tw/gosamplerate. It is used for the
// one-shot, non-realtime path of conforming SH-HRIR assets stored at
// one sample rate to the renderer's configured output rate.
package resample

import (
	"fmt"

	"github.com/dh1tw/gosamplerate"
)

// Quality selects a libsamplerate converter algorithm, trading CPU
// cost for resampling accuracy. HRIR assets are resampled once at
// configuration time, never in the per-block render path, so Best is
// the right default.
type Quality int

const (
	Best          Quality = gosamplerate.SRC_SINC_BEST_QUALITY
	Medium        Quality = gosamplerate.SRC_SINC_MEDIUM_QUALITY
	Fastest       Quality = gosamplerate.SRC_SINC_FASTEST
	ZeroOrderHold Quality = gosamplerate.SRC_ZERO_ORDER_HOLD
	Linear        Quality = gosamplerate.SRC_LINEAR
)

// maxChannels bounds the channel count passed to gosamplerate, which
// operates on interleaved mono/multichannel buffers; a single HRIR
// channel is always mono here but the entry point is general.
const maxChannels = 1

// Rational resamples a single-channel signal from sourceRate to
// targetRate using the Best quality converter. It is a no-op copy if
// the rates already match.
func Rational(signal []float32, sourceRate, targetRate int) ([]float32, error) {
	return RationalQuality(signal, sourceRate, targetRate, Best)
}

// RationalQuality resamples a single-channel signal from sourceRate to
// targetRate using the given converter quality.
func RationalQuality(signal []float32, sourceRate, targetRate int, q Quality) ([]float32, error) {
	if sourceRate <= 0 || targetRate <= 0 {
		return nil, fmt.Errorf("resample: invalid rates %d -> %d", sourceRate, targetRate)
	}
	if sourceRate == targetRate {
		out := make([]float32, len(signal))
		copy(out, signal)
		return out, nil
	}

	ratio := float64(targetRate) / float64(sourceRate)
	if !gosamplerate.IsValidRatio(ratio) {
		return nil, fmt.Errorf("resample: invalid ratio %f for %d -> %d", ratio, sourceRate, targetRate)
	}

	out, err := gosamplerate.Simple(signal, ratio, maxChannels, int(q))
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	return out, nil
}

// Resampler wraps a stateful libsamplerate converter for streaming use,
// where a signal arrives in successive blocks rather than all at once.
type Resampler struct {
	src      gosamplerate.Src
	channels int
}

// NewResampler creates a streaming Resampler for the given channel
// count and quality. outputBufFrames bounds the largest single output
// block the converter will produce; it should comfortably exceed
// inputBlockFrames*ratio.
func NewResampler(channels int, q Quality, outputBufFrames int) (*Resampler, error) {
	src, err := gosamplerate.New(int(q), channels, outputBufFrames*channels)
	if err != nil {
		return nil, fmt.Errorf("resample: creating converter: %w", err)
	}
	return &Resampler{src: src, channels: channels}, nil
}

// Process resamples one interleaved block of input at the given ratio
// (targetRate/sourceRate). endOfInput flushes the converter's internal
// state on the final call.
func (r *Resampler) Process(interleaved []float32, ratio float64, endOfInput bool) ([]float32, error) {
	out, err := r.src.Process(interleaved, ratio, endOfInput)
	if err != nil {
		return nil, fmt.Errorf("resample: processing block: %w", err)
	}
	return out, nil
}

// Reset clears the converter's internal filter state, for reuse across
// unrelated streams.
func (r *Resampler) Reset() error {
	if err := r.src.Reset(); err != nil {
		return fmt.Errorf("resample: reset: %w", err)
	}
	return nil
}

// Close releases the underlying libsamplerate converter.
func (r *Resampler) Close() error {
	if err := gosamplerate.Delete(r.src); err != nil {
		return fmt.Errorf("resample: closing converter: %w", err)
	}
	return nil
}
