// SPDX-License-Identifier: EPL-2.0

// Package assets defines the SH-HRIR asset store collaborator: a
// pluggable name-to-bytes lookup the renderer uses to load the
// per-Ambisonic-order head-related impulse response sets it convolves
// against during binaural decoding.
package assets

import (
	"fmt"

	"github.com/trsonic/obr/formats/wav"
	"github.com/trsonic/obr/resample"
)

// Store resolves an asset name to its raw file bytes. Implementations
// might back this with an embedded filesystem, a directory on disk, or
// a network fetch; the renderer only depends on this interface.
type Store interface {
	Get(name string) ([]byte, bool)
}

// ShHrirSet holds one pair of left/right HRIR filters per spherical
// harmonic channel, all resampled to a common target sample rate.
type ShHrirSet struct {
	Order      int
	SampleRate int
	Left       [][]float32 // Left[sh] is the left-ear HRIR for SH channel sh
	Right      [][]float32
}

// Load reads the SH-HRIR set for the given Ambisonic order from store,
// using the asset key convention "{order}OA_L"/"{order}OA_R", and
// resamples it to targetSampleRate if its stored rate differs.
func Load(store Store, order, targetSampleRate int) (*ShHrirSet, error) {
	leftKey := fmt.Sprintf("%dOA_L", order)
	rightKey := fmt.Sprintf("%dOA_R", order)

	leftBytes, ok := store.Get(leftKey)
	if !ok {
		return nil, fmt.Errorf("assets: missing asset %q", leftKey)
	}
	rightBytes, ok := store.Get(rightKey)
	if !ok {
		return nil, fmt.Errorf("assets: missing asset %q", rightKey)
	}

	leftChannels, leftRate, err := wav.DecodeMultichannel(leftBytes)
	if err != nil {
		return nil, fmt.Errorf("assets: decoding %q: %w", leftKey, err)
	}
	rightChannels, rightRate, err := wav.DecodeMultichannel(rightBytes)
	if err != nil {
		return nil, fmt.Errorf("assets: decoding %q: %w", rightKey, err)
	}

	wantChannels := (order + 1) * (order + 1)
	if len(leftChannels) != wantChannels || len(rightChannels) != wantChannels {
		return nil, fmt.Errorf("assets: %q/%q have %d/%d channels, want %d for order %d",
			leftKey, rightKey, len(leftChannels), len(rightChannels), wantChannels, order)
	}

	set := &ShHrirSet{Order: order, SampleRate: targetSampleRate}
	set.Left = make([][]float32, wantChannels)
	set.Right = make([][]float32, wantChannels)

	for i := 0; i < wantChannels; i++ {
		l, err := resampleIfNeeded(leftChannels[i], leftRate, targetSampleRate)
		if err != nil {
			return nil, fmt.Errorf("assets: resampling %q channel %d: %w", leftKey, i, err)
		}
		r, err := resampleIfNeeded(rightChannels[i], rightRate, targetSampleRate)
		if err != nil {
			return nil, fmt.Errorf("assets: resampling %q channel %d: %w", rightKey, i, err)
		}
		set.Left[i] = l
		set.Right[i] = r
	}
	return set, nil
}

func resampleIfNeeded(signal []float32, sourceRate, targetRate int) ([]float32, error) {
	if sourceRate == targetRate {
		return signal, nil
	}
	return resample.Rational(signal, sourceRate, targetRate)
}
