// SPDX-License-Identifier: EPL-2.0

// Package render provides the top-level renderer facade: it turns a
// configured set of audio elements (Ambisonic scenes, loudspeaker
// beds, or audio objects) into a real-time binaural rendering
// pipeline, and processes fixed-size blocks of audio through it.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/trsonic/obr/assets"
	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/decoder"
	"github.com/trsonic/obr/encoder"
	"github.com/trsonic/obr/fft"
	"github.com/trsonic/obr/limiter"
	"github.com/trsonic/obr/rotator"
)

// NumBinauralChannels is the renderer's fixed output channel count.
const NumBinauralChannels = 2

// MaxSupportedNumInputChannels bounds the total input channel count
// across all configured audio elements.
const MaxSupportedNumInputChannels = 128

// limiterReleaseMs and limiterCeilingDb configure the output peak
// limiter, matched to program-safe defaults for headphone playback.
const (
	limiterReleaseMs = 50.0
	limiterCeilingDb = -0.5
)

var (
	ErrNoAudioElements          = errors.New("render: no audio elements configured")
	ErrMixedAudioElementType    = errors.New("render: only same-typed audio elements are supported")
	ErrTooManyInputChannels     = errors.New("render: more input channels requested than supported")
	ErrNoAudioElementsToRemove  = errors.New("render: no audio elements to remove")
	ErrInvalidAudioElementIndex = errors.New("render: invalid audio element index")
	ErrNoObjectChannels         = errors.New("render: no objects in the audio element")
)

// Renderer is the stateful realtime binaural rendering pipeline. All
// exported methods are safe for concurrent use; Process is intended to
// be called from a single realtime thread while configuration methods
// are called from a control thread.
type Renderer struct {
	mu sync.Mutex

	bufferSize int
	sampleRate int
	assetStore assets.Store
	log        *slog.Logger

	// fftMgr is the single FFT manager for this render context, shared
	// by every partitioned filter in binauralDecoder's filter bank.
	fftMgr *fft.Manager

	headTrackingEnabled bool
	worldRotation       [4]float64 // w, x, y, z

	audioElements []AudioElementConfig

	// DSP graph, rebuilt whenever the audio element list changes.
	ambisonicOrder   int
	ambisonicMixBed  *buffer.Buffer
	encoderInputBuf  *buffer.Buffer
	ambisonicEncoder *encoder.Encoder
	ambisonicRotator *rotator.Rotator
	binauralDecoder  *decoder.BinauralDecoder
	peakLimiter      *limiter.Limiter
}

// New creates a Renderer that processes bufferSize-frame blocks at
// sampleRate Hz, loading SH-HRIR assets from store as audio elements
// are added.
func New(bufferSize, sampleRate int, store assets.Store) (*Renderer, error) {
	if bufferSize <= 0 {
		return nil, fmt.Errorf("render: buffer size must be positive, got %d", bufferSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("render: sample rate must be positive, got %d", sampleRate)
	}
	return &Renderer{
		bufferSize:    bufferSize,
		sampleRate:    sampleRate,
		assetStore:    store,
		fftMgr:        fft.NewManager(fft.NextPow2(2 * bufferSize)),
		log:           slog.Default().With("component", "render"),
		worldRotation: [4]float64{1, 0, 0, 0},
	}, nil
}

// BufferSize returns the fixed number of frames Process expects per
// call.
func (r *Renderer) BufferSize() int { return r.bufferSize }

// SampleRate returns the audio sample rate this renderer was
// configured for.
func (r *Renderer) SampleRate() int { return r.sampleRate }

// NumberOfOutputChannels is always NumBinauralChannels.
func (r *Renderer) NumberOfOutputChannels() int { return NumBinauralChannels }

// NumberOfInputChannels returns the total input channel count summed
// across all configured audio elements.
func (r *Renderer) NumberOfInputChannels() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.numberOfInputChannelsLocked()
}

func (r *Renderer) numberOfInputChannelsLocked() int {
	n := 0
	for i := range r.audioElements {
		n += r.audioElements[i].NumInputChannels()
	}
	return n
}

// NumberOfAudioElements returns the count of currently configured
// audio elements.
func (r *Renderer) NumberOfAudioElements() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.audioElements)
}

// AddAudioElement appends a new audio element of type t, rebuilding
// the DSP graph. All configured audio elements must share the same
// type; remove the existing one first to switch types.
func (r *Renderer) AddAudioElement(t AudioElementType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.audioElements) > 0 && r.audioElements[len(r.audioElements)-1].Type() != t {
		return ErrMixedAudioElementType
	}

	cfg, err := NewAudioElementConfig(t)
	if err != nil {
		return err
	}
	if len(r.audioElements) > 0 {
		last := r.audioElements[len(r.audioElements)-1]
		cfg.SetFirstChannelIndex(last.FirstChannelIndex() + last.NumInputChannels())
	}

	if r.numberOfInputChannelsLocked()+cfg.NumInputChannels() > MaxSupportedNumInputChannels {
		return ErrTooManyInputChannels
	}

	r.audioElements = append(r.audioElements, cfg)
	r.log.Info("added audio element", "type", t.String())

	return r.initializeDspLocked()
}

// RemoveLastAudioElement removes the most recently added audio
// element and rebuilds the DSP graph.
func (r *Renderer) RemoveLastAudioElement() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.audioElements) == 0 {
		return ErrNoAudioElementsToRemove
	}

	removed := r.audioElements[len(r.audioElements)-1]
	r.audioElements = r.audioElements[:len(r.audioElements)-1]
	r.log.Info("removed audio element", "type", removed.Type().String())

	if len(r.audioElements) == 0 {
		return r.resetDspLocked()
	}

	if err := r.initializeDspLocked(); err != nil {
		return err
	}
	return r.updateAmbisonicEncoderLocked()
}

// UpdateObjectPosition repositions every object channel of the
// audio element at index, identified by its position in the order
// elements were added. The angles are given in radians and stored in
// degrees, the unit every input channel's position is kept in.
func (r *Renderer) UpdateObjectPosition(index int, azimuthRad, elevationRad, distanceMeters float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.audioElements) {
		return ErrInvalidAudioElementIndex
	}
	objChannels := r.audioElements[index].ObjectChannels()
	if len(objChannels) == 0 {
		return ErrNoObjectChannels
	}
	for i := range objChannels {
		objChannels[i].SetAzimuth(azimuthRad * 180.0 / math.Pi)
		objChannels[i].SetElevation(elevationRad * 180.0 / math.Pi)
		objChannels[i].SetDistance(distanceMeters)
	}
	return r.updateAmbisonicEncoderLocked()
}

// EnableHeadTracking toggles whether the world rotation set via
// SetHeadRotation is applied to the Ambisonic mix bed before decoding.
func (r *Renderer) EnableHeadTracking(enable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headTrackingEnabled = enable
}

// SetHeadRotation sets the current head orientation as a quaternion.
func (r *Renderer) SetHeadRotation(w, x, y, z float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.worldRotation = [4]float64{w, x, y, z}
	if r.ambisonicRotator != nil {
		r.ambisonicRotator.SetRotation(w, x, y, z)
	}
}

// resetDspLocked releases the DSP graph. Callers must hold r.mu.
func (r *Renderer) resetDspLocked() error {
	r.log.Info("resetting DSP")
	r.ambisonicMixBed = nil
	r.encoderInputBuf = nil
	r.ambisonicEncoder = nil
	r.ambisonicRotator = nil
	r.binauralDecoder = nil
	r.peakLimiter = nil
	r.ambisonicOrder = 0
	return nil
}

// initializeDspLocked rebuilds the entire DSP graph from the current
// audio element list. Callers must hold r.mu.
func (r *Renderer) initializeDspLocked() error {
	if len(r.audioElements) == 0 {
		return ErrNoAudioElements
	}

	// Until multiple audio elements of different types can share a
	// single decode pass, the DSP is sized to the first element's
	// Ambisonic order.
	order := r.audioElements[0].BinauralFiltersAmbisonicOrder()
	if order < MinSupportedAmbisonicOrder || order > MaxSupportedAmbisonicOrder {
		return fmt.Errorf("render: unsupported ambisonic order %d", order)
	}

	if err := r.resetDspLocked(); err != nil {
		return err
	}

	numSH := (order + 1) * (order + 1)
	r.ambisonicOrder = order
	r.ambisonicMixBed = buffer.New(numSH, r.bufferSize)

	r.log.Info("initializing DSP",
		"input_channels", r.numberOfInputChannelsLocked(),
		"ambisonic_order", order,
		"mix_bed_channels", numSH,
	)

	indices := r.ambisonicEncoderSourceChannelIndicesLocked()
	if len(indices) > 0 {
		r.encoderInputBuf = buffer.New(len(indices), r.bufferSize)
		r.ambisonicEncoder = encoder.NewEncoder(order)
		if err := r.updateAmbisonicEncoderLocked(); err != nil {
			return err
		}
	}

	r.ambisonicRotator = rotator.New(order)
	r.ambisonicRotator.SetRotation(
		r.worldRotation[0], r.worldRotation[1], r.worldRotation[2], r.worldRotation[3])

	shHrirSet, err := assets.Load(r.assetStore, order, r.sampleRate)
	if err != nil {
		return fmt.Errorf("render: loading SH-HRIR assets: %w", err)
	}
	r.binauralDecoder = decoder.NewBinauralDecoder(order, r.bufferSize, r.fftMgr)

	// Building each SH channel's pair of partitioned filters means
	// forward-transforming every kernel partition; do this for all
	// channels concurrently since they are independent.
	var g errgroup.Group
	for sh := 0; sh < numSH; sh++ {
		sh := sh
		g.Go(func() error {
			r.binauralDecoder.SetShHrirs(sh, shHrirSet.Left[sh], shHrirSet.Right[sh])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("render: building binaural filter bank: %w", err)
	}

	r.peakLimiter = limiter.New(limiterCeilingDb, limiterReleaseMs, r.sampleRate)

	return nil
}

// ambisonicEncoderSourceChannelIndicesLocked returns the flattened
// input channel indices of every loudspeaker or object channel, which
// must be encoded to Ambisonics before mixing. Callers must hold r.mu.
func (r *Renderer) ambisonicEncoderSourceChannelIndicesLocked() []int {
	var indices []int
	for i := range r.audioElements {
		el := &r.audioElements[i]
		if IsLoudspeakerLayoutType(el.Type()) || IsObjectType(el.Type()) {
			for c := 0; c < el.NumInputChannels(); c++ {
				indices = append(indices, el.FirstChannelIndex()+c)
			}
		}
	}
	return indices
}

// updateAmbisonicEncoderLocked pushes every loudspeaker/object
// channel's current azimuth/elevation/distance/gain into the
// Ambisonic encoder. Callers must hold r.mu.
func (r *Renderer) updateAmbisonicEncoderLocked() error {
	if r.ambisonicEncoder == nil {
		return nil
	}
	id := 0
	for i := range r.audioElements {
		el := &r.audioElements[i]
		for _, ch := range el.LoudspeakerChannels() {
			r.ambisonicEncoder.SetSource(id, 1.0, degToRad(ch.Azimuth()), degToRad(ch.Elevation()), ch.Distance())
			id++
		}
		for _, ch := range el.ObjectChannels() {
			r.ambisonicEncoder.SetSource(id, ch.Gain(), degToRad(ch.Azimuth()), degToRad(ch.Elevation()), ch.Distance())
			id++
		}
	}
	return nil
}

// Process renders one block of input audio (NumberOfInputChannels()
// channels, BufferSize() frames) into a NumBinauralChannels-channel
// output block.
func (r *Renderer) Process(input, output *buffer.Buffer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ambisonicMixBed == nil {
		panic("render: Process called before any audio element was added")
	}
	if input.Channels() != r.numberOfInputChannelsLocked() {
		panic("render: input channel count does not match configured audio elements")
	}
	if input.Frames() != r.bufferSize {
		panic("render: input frame count does not match configured buffer size")
	}
	if output.Channels() != NumBinauralChannels || output.Frames() != r.bufferSize {
		panic("render: output must be NumBinauralChannels x BufferSize()")
	}

	indices := r.ambisonicEncoderSourceChannelIndicesLocked()
	if len(indices) > 0 {
		for i, srcCh := range indices {
			copy(r.encoderInputBuf.Channel(i), input.Channel(srcCh))
		}
		r.ambisonicEncoder.Process(r.encoderInputBuf, r.ambisonicMixBed)
	} else {
		r.ambisonicMixBed.Clear()
	}

	for i := range r.audioElements {
		el := &r.audioElements[i]
		if !IsAmbisonicsType(el.Type()) {
			continue
		}
		for ch := 0; ch < el.NumInputChannels(); ch++ {
			mix := r.ambisonicMixBed.Channel(ch)
			src := input.Channel(el.FirstChannelIndex() + ch)
			for f := range mix {
				mix[f] += src[f]
			}
		}
	}

	if r.headTrackingEnabled {
		r.ambisonicRotator.Process(r.ambisonicMixBed)
	}

	r.binauralDecoder.Process(r.ambisonicMixBed, output)
	r.peakLimiter.Process(output)
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
