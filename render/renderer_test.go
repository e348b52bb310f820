// SPDX-License-Identifier: EPL-2.0

package render_test

import (
	"testing"

	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/internal/audiotest"
	"github.com/trsonic/obr/render"
)

func newFakeStoreForOrder(t *testing.T, order, sampleRate int) *audiotest.FakeAssetStore {
	t.Helper()
	return audiotest.NewSilentShHrirStore(order, sampleRate, 8)
}

func TestAddAmbisonicAudioElementConfiguresMixBed(t *testing.T) {
	const sampleRate = 48000
	const bufSize = 32
	store := newFakeStoreForOrder(t, 1, sampleRate)

	r, err := render.New(bufSize, sampleRate, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementType1OA); err != nil {
		t.Fatalf("AddAudioElement: %v", err)
	}
	if got := r.NumberOfInputChannels(); got != 4 {
		t.Fatalf("NumberOfInputChannels() = %d, want 4", got)
	}
	if got := r.NumberOfOutputChannels(); got != 2 {
		t.Fatalf("NumberOfOutputChannels() = %d, want 2", got)
	}
}

func TestAddMixedAudioElementTypeRejected(t *testing.T) {
	const sampleRate = 48000
	const bufSize = 32
	store := newFakeStoreForOrder(t, render.MaxSupportedAmbisonicOrder, sampleRate)

	r, err := render.New(bufSize, sampleRate, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementTypeLayoutStereo); err != nil {
		t.Fatalf("AddAudioElement: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementTypeObjectMono); err != render.ErrMixedAudioElementType {
		t.Fatalf("AddAudioElement() err = %v, want ErrMixedAudioElementType", err)
	}
}

func TestProcessObjectMonoProducesStereoOutput(t *testing.T) {
	const sampleRate = 48000
	const bufSize = 16
	store := newFakeStoreForOrder(t, render.MaxSupportedAmbisonicOrder, sampleRate)

	r, err := render.New(bufSize, sampleRate, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementTypeObjectMono); err != nil {
		t.Fatalf("AddAudioElement: %v", err)
	}
	if err := r.UpdateObjectPosition(0, 0.5, 0.0, 1.0); err != nil {
		t.Fatalf("UpdateObjectPosition: %v", err)
	}

	input := buffer.New(r.NumberOfInputChannels(), bufSize)
	in := input.Channel(0)
	for i := range in {
		in[i] = 0.1
	}
	output := buffer.New(r.NumberOfOutputChannels(), bufSize)

	r.Process(input, output)

	if output.Channels() != 2 || output.Frames() != bufSize {
		t.Fatalf("output shape = %dx%d, want 2x%d", output.Channels(), output.Frames(), bufSize)
	}
}

func TestRemoveLastAudioElementClearsState(t *testing.T) {
	const sampleRate = 48000
	const bufSize = 16
	store := newFakeStoreForOrder(t, 1, sampleRate)

	r, err := render.New(bufSize, sampleRate, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementType1OA); err != nil {
		t.Fatalf("AddAudioElement: %v", err)
	}
	if err := r.RemoveLastAudioElement(); err != nil {
		t.Fatalf("RemoveLastAudioElement: %v", err)
	}
	if got := r.NumberOfAudioElements(); got != 0 {
		t.Fatalf("NumberOfAudioElements() = %d, want 0", got)
	}
	if err := r.RemoveLastAudioElement(); err != render.ErrNoAudioElementsToRemove {
		t.Fatalf("RemoveLastAudioElement() err = %v, want ErrNoAudioElementsToRemove", err)
	}
}

func TestUpdateObjectPositionRejectsInvalidIndex(t *testing.T) {
	const sampleRate = 48000
	const bufSize = 16
	store := newFakeStoreForOrder(t, render.MaxSupportedAmbisonicOrder, sampleRate)

	r, err := render.New(bufSize, sampleRate, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementTypeObjectMono); err != nil {
		t.Fatalf("AddAudioElement: %v", err)
	}
	if err := r.UpdateObjectPosition(5, 0, 0, 1); err != render.ErrInvalidAudioElementIndex {
		t.Fatalf("UpdateObjectPosition() err = %v, want ErrInvalidAudioElementIndex", err)
	}
}

func TestConfigSummaryNotEmpty(t *testing.T) {
	const sampleRate = 48000
	const bufSize = 16
	store := newFakeStoreForOrder(t, render.MaxSupportedAmbisonicOrder, sampleRate)

	r, err := render.New(bufSize, sampleRate, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.AddAudioElement(render.AudioElementTypeLayoutStereo); err != nil {
		t.Fatalf("AddAudioElement: %v", err)
	}
	msg := r.ConfigSummary()
	if msg == "" {
		t.Fatal("ConfigSummary() returned empty string")
	}
}
