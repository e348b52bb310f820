// SPDX-License-Identifier: EPL-2.0

// Package encoder implements the Ambisonic encoder: it takes one mono
// input channel per point source and produces an Ambisonic sound field
// by scaling each source's signal by its spherical harmonic
// coefficients and summing the results.
package encoder

import (
	"sort"

	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/sh"
)

// MuteThresholdAmplitude is the linear-amplitude equivalent of -120
// dBFS; sources whose effective gain falls below it are encoded as
// silence rather than through the full SH expansion.
const MuteThresholdAmplitude = 1e-6 // 10^(-120/20)

// MinDistanceMeters floors the distance attenuation denominator so a
// source sitting exactly at the listener's position doesn't produce
// unbounded gain.
const MinDistanceMeters = 0.5

type sourceParams struct {
	gain      float64
	azimuth   float64
	elevation float64
	distance  float64
}

func (p sourceParams) equals(o sourceParams) bool {
	return p == o
}

// Encoder builds an Ambisonic sound field of the given order from a
// set of mono point sources identified by caller-chosen integer IDs.
type Encoder struct {
	order         int
	numSHChannels int

	sourceIDs []int // source IDs, in column order
	params    map[int]sourceParams
	column    map[int][]float64 // source ID -> cached SH-coefficient*gain column
}

// NewEncoder creates an encoder producing an Ambisonic sound field of
// the given order.
func NewEncoder(order int) *Encoder {
	return &Encoder{
		order:         order,
		numSHChannels: sh.NumChannels(order),
		params:        make(map[int]sourceParams),
		column:        make(map[int][]float64),
	}
}

// Order returns the Ambisonic order this encoder produces.
func (e *Encoder) Order() int { return e.order }

// NumShChannels returns (Order()+1)^2.
func (e *Encoder) NumShChannels() int { return e.numSHChannels }

// NumSources returns the number of currently registered sources.
func (e *Encoder) NumSources() int { return len(e.sourceIDs) }

// SetSource registers or updates a point source. azimuth and
// elevation are in radians. If the source already exists with
// identical parameters, this is a no-op, matching the original
// renderer's avoidance of redundant SH-coefficient recomputation on
// every call from a caller that re-sends unchanged position data.
func (e *Encoder) SetSource(id int, gain, azimuthRad, elevationRad, distanceMeters float64) {
	p := sourceParams{gain: gain, azimuth: azimuthRad, elevation: elevationRad, distance: distanceMeters}
	if existing, ok := e.params[id]; ok && existing.equals(p) {
		return
	}
	if _, ok := e.params[id]; !ok {
		e.sourceIDs = append(e.sourceIDs, id)
		sort.Ints(e.sourceIDs)
	}
	e.params[id] = p
	e.column[id] = e.buildColumn(p)
}

// RemoveSource unregisters a point source. It is a no-op if the ID is
// not currently registered.
func (e *Encoder) RemoveSource(id int) {
	if _, ok := e.params[id]; !ok {
		return
	}
	delete(e.params, id)
	delete(e.column, id)
	for i, sid := range e.sourceIDs {
		if sid == id {
			e.sourceIDs = append(e.sourceIDs[:i], e.sourceIDs[i+1:]...)
			break
		}
	}
}

func (e *Encoder) buildColumn(p sourceParams) []float64 {
	effectiveDistance := p.distance
	if effectiveDistance < MinDistanceMeters {
		effectiveDistance = MinDistanceMeters
	}
	effectiveGain := p.gain / effectiveDistance
	if effectiveGain < MuteThresholdAmplitude {
		return make([]float64, e.numSHChannels)
	}
	coeffs := sh.Coefficients(e.order, p.azimuth, p.elevation)
	col := make([]float64, e.numSHChannels)
	for i, c := range coeffs {
		col[i] = c * effectiveGain
	}
	return col
}

// Process encodes input, one channel per registered source ordered by
// ascending source ID, into output, an Ambisonic buffer with
// NumShChannels() channels. input must have exactly NumSources()
// channels and the same frame count as output.
func (e *Encoder) Process(input, output *buffer.Buffer) {
	if input.Channels() != len(e.sourceIDs) {
		panic("encoder: input channel count does not match registered source count")
	}
	output.Clear()
	frames := output.Frames()
	for col, id := range e.sourceIDs {
		coeffs := e.column[id]
		src := input.Channel(col)
		for ch := 0; ch < e.numSHChannels; ch++ {
			w := float32(coeffs[ch])
			if w == 0 {
				continue
			}
			dst := output.Channel(ch)
			for i := 0; i < frames; i++ {
				dst[i] += src[i] * w
			}
		}
	}
}
