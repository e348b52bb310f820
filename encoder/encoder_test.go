// SPDX-License-Identifier: EPL-2.0

package encoder

import (
	"math"
	"testing"

	"github.com/trsonic/obr/buffer"
)

func TestProcessSingleFrontSource(t *testing.T) {
	e := NewEncoder(1)
	e.SetSource(0, 1.0, 0, 0, 1.0)

	in := buffer.New(1, 4)
	copy(in.Channel(0), []float32{1, 1, 1, 1})

	out := buffer.New(e.NumShChannels(), 4)
	e.Process(in, out)

	// W channel should pass the source through unattenuated at unit gain/distance.
	for _, v := range out.Channel(0) {
		if math.Abs(float64(v-1)) > 1e-5 {
			t.Fatalf("W channel = %v, want 1", v)
		}
	}
}

func TestSetSourceNoOpOnUnchangedParams(t *testing.T) {
	e := NewEncoder(1)
	e.SetSource(0, 1.0, 0.5, 0.1, 2.0)
	col := e.column[0]
	e.SetSource(0, 1.0, 0.5, 0.1, 2.0)
	if &col[0] != &e.column[0][0] {
		t.Fatalf("expected identical column slice to be reused on no-op update")
	}
}

func TestMuteThresholdZeroesSource(t *testing.T) {
	e := NewEncoder(2)
	e.SetSource(0, 1e-9, 0, 0, 1.0)
	col := e.column[0]
	for _, v := range col {
		if v != 0 {
			t.Fatalf("expected muted source column to be all zero, got %v", col)
		}
	}
}

func TestRemoveSource(t *testing.T) {
	e := NewEncoder(1)
	e.SetSource(0, 1.0, 0, 0, 1.0)
	e.SetSource(1, 1.0, 0, 0, 1.0)
	if e.NumSources() != 2 {
		t.Fatalf("NumSources() = %d, want 2", e.NumSources())
	}
	e.RemoveSource(0)
	if e.NumSources() != 1 {
		t.Fatalf("NumSources() after remove = %d, want 1", e.NumSources())
	}
	if e.sourceIDs[0] != 1 {
		t.Fatalf("remaining source ID = %d, want 1", e.sourceIDs[0])
	}
}

func TestDistanceAttenuation(t *testing.T) {
	e := NewEncoder(0)
	e.SetSource(0, 1.0, 0, 0, 4.0)
	col := e.column[0]
	if math.Abs(col[0]-0.25) > 1e-9 {
		t.Fatalf("W coefficient at distance 4 = %v, want 0.25", col[0])
	}
}

// TestNegativeGainIsMuted checks that the mute threshold is a signed
// lower bound, not a magnitude check, matching the original
// ambisonic_encoder.cc comparison against kNegative120dbInAmplitude:
// a negative gain lies below the threshold and so is muted.
func TestNegativeGainIsMuted(t *testing.T) {
	e := NewEncoder(0)
	e.SetSource(0, -1.0, 0, 0, 1.0)
	col := e.column[0]
	if math.Abs(col[0]) > 1e-9 {
		t.Fatalf("W coefficient for gain -1.0 = %v, want 0 (muted)", col[0])
	}
}
