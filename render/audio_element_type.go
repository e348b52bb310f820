// SPDX-License-Identifier: EPL-2.0

package render

import "fmt"

// AudioElementType identifies the kind of content carried by an audio
// element's input channels: an Ambisonic scene of a given order, a
// fixed loudspeaker layout, or an audio object.
type AudioElementType int

const (
	AudioElementType1OA AudioElementType = iota
	AudioElementType2OA
	AudioElementType3OA
	AudioElementType4OA
	AudioElementType5OA
	AudioElementType6OA
	AudioElementType7OA
	AudioElementTypeLayoutMono
	AudioElementTypeLayoutStereo
	AudioElementTypeLayout3_1_2
	AudioElementTypeLayout5_1_0
	AudioElementTypeLayout5_1_2
	AudioElementTypeLayout5_1_4
	AudioElementTypeLayout7_1_0
	AudioElementTypeLayout7_1_2
	AudioElementTypeLayout7_1_4
	AudioElementTypeLayout9_1_0
	AudioElementTypeLayout9_1_2
	AudioElementTypeLayout9_1_4
	AudioElementTypeLayout9_1_6
	AudioElementTypeObjectMono
)

var typeNames = map[AudioElementType]string{
	AudioElementType1OA:          "k1OA",
	AudioElementType2OA:          "k2OA",
	AudioElementType3OA:          "k3OA",
	AudioElementType4OA:          "k4OA",
	AudioElementType5OA:          "k5OA",
	AudioElementType6OA:          "k6OA",
	AudioElementType7OA:          "k7OA",
	AudioElementTypeLayoutMono:   "kLayoutMono",
	AudioElementTypeLayoutStereo: "kLayoutStereo",
	AudioElementTypeLayout3_1_2:  "kLayout3_1_2_ch",
	AudioElementTypeLayout5_1_0:  "kLayout5_1_0_ch",
	AudioElementTypeLayout5_1_2:  "kLayout5_1_2_ch",
	AudioElementTypeLayout5_1_4:  "kLayout5_1_4_ch",
	AudioElementTypeLayout7_1_0:  "kLayout7_1_0_ch",
	AudioElementTypeLayout7_1_2:  "kLayout7_1_2_ch",
	AudioElementTypeLayout7_1_4:  "kLayout7_1_4_ch",
	AudioElementTypeLayout9_1_0:  "kLayout9_1_0_ch",
	AudioElementTypeLayout9_1_2:  "kLayout9_1_2_ch",
	AudioElementTypeLayout9_1_4:  "kLayout9_1_4_ch",
	AudioElementTypeLayout9_1_6:  "kLayout9_1_6_ch",
	AudioElementTypeObjectMono:   "kObjectMono",
}

// availableTypesOrder lists every AudioElementType in declaration
// order, for GetAvailableAudioElementTypesAsStr and CLI --help text.
var availableTypesOrder = []AudioElementType{
	AudioElementType1OA, AudioElementType2OA, AudioElementType3OA,
	AudioElementType4OA, AudioElementType5OA, AudioElementType6OA, AudioElementType7OA,
	AudioElementTypeLayoutMono, AudioElementTypeLayoutStereo,
	AudioElementTypeLayout3_1_2,
	AudioElementTypeLayout5_1_0, AudioElementTypeLayout5_1_2, AudioElementTypeLayout5_1_4,
	AudioElementTypeLayout7_1_0, AudioElementTypeLayout7_1_2, AudioElementTypeLayout7_1_4,
	AudioElementTypeLayout9_1_0, AudioElementTypeLayout9_1_2, AudioElementTypeLayout9_1_4,
	AudioElementTypeLayout9_1_6,
	AudioElementTypeObjectMono,
}

var typesByName = func() map[string]AudioElementType {
	m := make(map[string]AudioElementType, len(typeNames))
	for t, s := range typeNames {
		m[s] = t
	}
	return m
}()

// GetAudioElementTypeStr returns the canonical name of t, as used in
// CLI flags and log output.
func GetAudioElementTypeStr(t AudioElementType) (string, error) {
	s, ok := typeNames[t]
	if !ok {
		return "", fmt.Errorf("render: unknown AudioElementType %d", t)
	}
	return s, nil
}

// GetAudioElementTypeFromStr parses a canonical AudioElementType name.
func GetAudioElementTypeFromStr(s string) (AudioElementType, error) {
	t, ok := typesByName[s]
	if !ok {
		return 0, fmt.Errorf("render: unknown AudioElementType name %q", s)
	}
	return t, nil
}

// GetAvailableAudioElementTypesAsStr lists every supported type name,
// in declaration order.
func GetAvailableAudioElementTypesAsStr() []string {
	names := make([]string, len(availableTypesOrder))
	for i, t := range availableTypesOrder {
		names[i] = typeNames[t]
	}
	return names
}

// IsAmbisonicsType reports whether t carries a full-sphere Ambisonic
// scene.
func IsAmbisonicsType(t AudioElementType) bool {
	return t >= AudioElementType1OA && t <= AudioElementType7OA
}

// IsLoudspeakerLayoutType reports whether t carries a fixed
// loudspeaker-bed layout.
func IsLoudspeakerLayoutType(t AudioElementType) bool {
	return t >= AudioElementTypeLayoutMono && t <= AudioElementTypeLayout9_1_6
}

// IsObjectType reports whether t carries audio-object channels.
func IsObjectType(t AudioElementType) bool {
	return t == AudioElementTypeObjectMono
}

// GetAmbisonicOrder returns the Ambisonic order of an Ambisonics-type
// t. It errors for any non-Ambisonics type.
func GetAmbisonicOrder(t AudioElementType) (int, error) {
	if !IsAmbisonicsType(t) {
		return 0, fmt.Errorf("render: %v is not an Ambisonics type", t)
	}
	return int(t-AudioElementType1OA) + 1, nil
}

func (t AudioElementType) String() string {
	s, err := GetAudioElementTypeStr(t)
	if err != nil {
		return fmt.Sprintf("AudioElementType(%d)", int(t))
	}
	return s
}
