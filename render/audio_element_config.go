// SPDX-License-Identifier: EPL-2.0

package render

import "fmt"

const (
	// MinSupportedAmbisonicOrder is the lowest Ambisonic order the
	// renderer's binaural decoder can be configured for.
	MinSupportedAmbisonicOrder = 1
	// MaxSupportedAmbisonicOrder is the highest Ambisonic order the
	// renderer's binaural decoder can be configured for, and the order
	// used internally to encode loudspeaker-bed and object content.
	MaxSupportedAmbisonicOrder = 7
)

// AudioElementConfig derives a ready-to-use channel layout from an
// AudioElementType: which input channels it needs, their fixed or
// default positions, and the Ambisonic order its binaural filters
// must be built at.
type AudioElementConfig struct {
	elementType          AudioElementType
	firstChannelIndex    int
	numInputChannels     int
	binauralFiltersOrder int
	ambisonicChannels    []AmbisonicSceneInputChannel
	loudspeakerChannels  []LoudspeakerLayoutInputChannel
	objectChannels       []AudioObjectInputChannel
}

// NewAudioElementConfig builds the channel layout for type t.
func NewAudioElementConfig(t AudioElementType) (AudioElementConfig, error) {
	cfg := AudioElementConfig{elementType: t}

	switch {
	case IsAmbisonicsType(t):
		order, err := GetAmbisonicOrder(t)
		if err != nil {
			return AudioElementConfig{}, err
		}
		cfg.binauralFiltersOrder = order
		cfg.numInputChannels = (order + 1) * (order + 1)
		cfg.ambisonicChannels = make([]AmbisonicSceneInputChannel, cfg.numInputChannels)
		for i := range cfg.ambisonicChannels {
			cfg.ambisonicChannels[i] = newAmbisonicSceneInputChannel(fmt.Sprintf("kACN%d", i))
		}

	case IsLoudspeakerLayoutType(t):
		cfg.loudspeakerChannels = GetLoudspeakerLayout(t)
		if cfg.loudspeakerChannels == nil {
			return AudioElementConfig{}, fmt.Errorf("render: unknown loudspeaker layout %v", t)
		}
		cfg.binauralFiltersOrder = MaxSupportedAmbisonicOrder
		cfg.numInputChannels = len(cfg.loudspeakerChannels)

	case IsObjectType(t):
		if t != AudioElementTypeObjectMono {
			return AudioElementConfig{}, fmt.Errorf("render: unsupported object type %v", t)
		}
		cfg.objectChannels = []AudioObjectInputChannel{
			newAudioObjectInputChannel("kMono", 0.0, 0.0, 1.0),
		}
		cfg.binauralFiltersOrder = MaxSupportedAmbisonicOrder
		cfg.numInputChannels = len(cfg.objectChannels)

	default:
		return AudioElementConfig{}, fmt.Errorf("render: unknown audio element type %v", t)
	}

	cfg.SetFirstChannelIndex(0)
	return cfg, nil
}

// Type returns the element's AudioElementType.
func (c *AudioElementConfig) Type() AudioElementType { return c.elementType }

// SetFirstChannelIndex repositions this element's channels within the
// renderer's flattened input buffer, starting at first.
func (c *AudioElementConfig) SetFirstChannelIndex(first int) {
	c.firstChannelIndex = first
	for i := range c.ambisonicChannels {
		c.ambisonicChannels[i].SetChannelIndex(first + i)
	}
	for i := range c.loudspeakerChannels {
		c.loudspeakerChannels[i].SetChannelIndex(first + i)
	}
	for i := range c.objectChannels {
		c.objectChannels[i].SetChannelIndex(first + i)
	}
}

// FirstChannelIndex returns this element's first channel's position
// within the renderer's flattened input buffer.
func (c *AudioElementConfig) FirstChannelIndex() int { return c.firstChannelIndex }

// NumInputChannels returns the number of input channels this element
// occupies.
func (c *AudioElementConfig) NumInputChannels() int { return c.numInputChannels }

// AmbisonicChannels returns this element's spherical-harmonic
// channels (non-empty only for Ambisonics-type elements).
func (c *AudioElementConfig) AmbisonicChannels() []AmbisonicSceneInputChannel {
	return c.ambisonicChannels
}

// LoudspeakerChannels returns this element's speaker feeds
// (non-empty only for loudspeaker-layout-type elements).
func (c *AudioElementConfig) LoudspeakerChannels() []LoudspeakerLayoutInputChannel {
	return c.loudspeakerChannels
}

// ObjectChannels returns this element's mutable object channels
// (non-empty only for object-type elements). The returned slice
// aliases the config's storage, so mutations via its setters persist.
func (c *AudioElementConfig) ObjectChannels() []AudioObjectInputChannel {
	return c.objectChannels
}

// BinauralFiltersAmbisonicOrder returns the Ambisonic order this
// element's content must be encoded to (or already is, if it is
// itself an Ambisonics-type element) before binaural decoding.
func (c *AudioElementConfig) BinauralFiltersAmbisonicOrder() int {
	return c.binauralFiltersOrder
}
