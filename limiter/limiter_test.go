// SPDX-License-Identifier: EPL-2.0

package limiter

import (
	"math"
	"testing"

	"github.com/trsonic/obr/buffer"
)

func TestProcessClampsAboveCeiling(t *testing.T) {
	l := New(-1.0, 50, 48000)
	ceiling := math.Pow(10, -1.0/20)

	buf := buffer.New(1, 1)
	buf.Channel(0)[0] = 2.0 // well above ceiling
	l.Process(buf)

	got := math.Abs(float64(buf.Channel(0)[0]))
	if got > ceiling+1e-6 {
		t.Fatalf("output sample %v exceeds ceiling %v", got, ceiling)
	}
}

func TestProcessPassesQuietSignalUnchanged(t *testing.T) {
	l := New(-1.0, 50, 48000)
	buf := buffer.New(1, 4)
	copy(buf.Channel(0), []float32{0.1, -0.1, 0.05, -0.05})
	want := []float32{0.1, -0.1, 0.05, -0.05}
	l.Process(buf)
	got := buf.Channel(0)
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReleaseRecoversTowardUnity(t *testing.T) {
	l := New(-1.0, 10, 48000)
	buf := buffer.New(1, 1)
	buf.Channel(0)[0] = 3.0
	l.Process(buf)
	envAfterAttack := l.Envelope()

	// Feed silence and confirm the envelope relaxes back up over time.
	for i := 0; i < 1000; i++ {
		quiet := buffer.New(1, 1)
		l.Process(quiet)
	}
	if l.Envelope() <= envAfterAttack {
		t.Fatalf("envelope did not recover: before=%v after=%v", envAfterAttack, l.Envelope())
	}
	if l.Envelope() > 1.0+1e-9 {
		t.Fatalf("envelope overshot unity: %v", l.Envelope())
	}
}

func TestMultiChannelSharedEnvelope(t *testing.T) {
	l := New(-1.0, 50, 48000)
	buf := buffer.New(2, 1)
	buf.Channel(0)[0] = 0.1
	buf.Channel(1)[0] = 5.0 // drives the shared envelope down
	l.Process(buf)

	ceiling := math.Pow(10, -1.0/20)
	if math.Abs(float64(buf.Channel(1)[0])) > ceiling+1e-6 {
		t.Fatalf("channel 1 exceeded ceiling: %v", buf.Channel(1)[0])
	}
	// The quiet channel should have been pulled down by the same gain.
	expectedGain := float64(buf.Channel(1)[0]) / 5.0
	if math.Abs(float64(buf.Channel(0)[0])-0.1*expectedGain) > 1e-6 {
		t.Fatalf("channel 0 not scaled by shared envelope: %v", buf.Channel(0)[0])
	}
}
