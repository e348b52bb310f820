// SPDX-License-Identifier: EPL-2.0

// Package limiter implements a simple multi-channel peak limiter: an
// instant-attack, exponential-release envelope follower applied
// uniformly across all channels of a buffer, so a loud transient on
// any one channel pulls every channel's gain down together.
package limiter

import (
	"math"

	"github.com/trsonic/obr/buffer"
)

// Limiter applies a single shared gain envelope, derived from the
// loudest sample across all channels of each frame, to every channel.
type Limiter struct {
	ceiling      float64
	releaseCoeff float64
	envelope     float64
}

// New creates a Limiter with the given ceiling in dBFS and release
// time constant in milliseconds, for audio at sampleRate Hz.
func New(ceilingDb, releaseMs float64, sampleRate int) *Limiter {
	return &Limiter{
		ceiling:      math.Pow(10, ceilingDb/20),
		releaseCoeff: math.Exp(-3 / (float64(sampleRate) * releaseMs / 1000)),
		envelope:     1.0,
	}
}

// Process applies the limiter's envelope to every channel of buf,
// in-place, advancing the envelope one frame at a time.
func (l *Limiter) Process(buf *buffer.Buffer) {
	channels := buf.Channels()
	frames := buf.Frames()
	for i := 0; i < frames; i++ {
		maxAbs := 0.0
		for c := 0; c < channels; c++ {
			v := math.Abs(float64(buf.Channel(c)[i]))
			if v > maxAbs {
				maxAbs = v
			}
		}

		requiredGain := 1.0
		if maxAbs > l.ceiling {
			requiredGain = l.ceiling / maxAbs
		}

		if requiredGain < l.envelope {
			// Instant attack: clamp down immediately to avoid overshoot.
			l.envelope = requiredGain
		} else {
			l.envelope = l.releaseCoeff*(l.envelope-requiredGain) + requiredGain
		}

		gain := float32(l.envelope)
		for c := 0; c < channels; c++ {
			ch := buf.Channel(c)
			ch[i] *= gain
		}
	}
}

// Envelope returns the limiter's current gain envelope value.
func (l *Limiter) Envelope() float64 { return l.envelope }
