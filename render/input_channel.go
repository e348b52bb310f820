// SPDX-License-Identifier: EPL-2.0

package render

// inputChannelBase holds the identifier and final channel index
// shared by every input channel configuration, regardless of the kind
// of content it carries.
type inputChannelBase struct {
	id                string
	inputChannelIndex int
}

func newInputChannelBase(id string) inputChannelBase {
	return inputChannelBase{id: id}
}

// ID returns the channel's identifier, e.g. "kACN3" or "kL30".
func (b *inputChannelBase) ID() string { return b.id }

// SetChannelIndex sets this channel's position within the renderer's
// flattened input buffer.
func (b *inputChannelBase) SetChannelIndex(index int) { b.inputChannelIndex = index }

// ChannelIndex returns this channel's position within the renderer's
// flattened input buffer.
func (b *inputChannelBase) ChannelIndex() int { return b.inputChannelIndex }

// AmbisonicSceneInputChannel is one spherical-harmonic channel (e.g.
// "kACN0") of an Ambisonic scene audio element.
type AmbisonicSceneInputChannel struct {
	inputChannelBase
}

func newAmbisonicSceneInputChannel(id string) AmbisonicSceneInputChannel {
	return AmbisonicSceneInputChannel{inputChannelBase: newInputChannelBase(id)}
}

// LoudspeakerLayoutInputChannel is one fixed-position speaker feed of
// a loudspeaker-bed audio element.
type LoudspeakerLayoutInputChannel struct {
	inputChannelBase
	azimuth   float64
	elevation float64
	distance  float64
	isLFE     bool
}

func newLoudspeakerLayoutInputChannel(id string, azimuth, elevation, distance float64, isLFE bool) LoudspeakerLayoutInputChannel {
	return LoudspeakerLayoutInputChannel{
		inputChannelBase: newInputChannelBase(id),
		azimuth:          azimuth,
		elevation:        elevation,
		distance:         distance,
		isLFE:            isLFE,
	}
}

func (c *LoudspeakerLayoutInputChannel) Azimuth() float64   { return c.azimuth }
func (c *LoudspeakerLayoutInputChannel) Elevation() float64 { return c.elevation }
func (c *LoudspeakerLayoutInputChannel) Distance() float64  { return c.distance }
func (c *LoudspeakerLayoutInputChannel) IsLFE() bool        { return c.isLFE }

// AudioObjectInputChannel is one mono audio-object feed, with a
// mutable position and gain the caller can update between blocks via
// Renderer.UpdateObjectPosition.
type AudioObjectInputChannel struct {
	inputChannelBase
	gain      float64
	azimuth   float64
	elevation float64
	distance  float64
}

func newAudioObjectInputChannel(id string, azimuth, elevation, distance float64) AudioObjectInputChannel {
	return AudioObjectInputChannel{
		inputChannelBase: newInputChannelBase(id),
		gain:             1.0,
		azimuth:          azimuth,
		elevation:        elevation,
		distance:         distance,
	}
}

func (c *AudioObjectInputChannel) Gain() float64      { return c.gain }
func (c *AudioObjectInputChannel) Azimuth() float64   { return c.azimuth }
func (c *AudioObjectInputChannel) Elevation() float64 { return c.elevation }
func (c *AudioObjectInputChannel) Distance() float64  { return c.distance }

func (c *AudioObjectInputChannel) SetGain(gain float64)           { c.gain = gain }
func (c *AudioObjectInputChannel) SetAzimuth(azimuth float64)     { c.azimuth = azimuth }
func (c *AudioObjectInputChannel) SetElevation(elevation float64) { c.elevation = elevation }
func (c *AudioObjectInputChannel) SetDistance(distance float64)   { c.distance = distance }
