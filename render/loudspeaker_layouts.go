// SPDX-License-Identifier: EPL-2.0

package render

// virtualLoudspeaker labels one of the fixed positions used across
// the supported loudspeaker-bed layouts.
type virtualLoudspeaker int

const (
	vlC virtualLoudspeaker = iota
	vlLFE
	vlL30
	vlR30
	vlL45
	vlR45
	vlL60
	vlR60
	vlL90
	vlR90
	vlL110
	vlR110
	vlL135
	vlR135
	vlTL30
	vlTR30
	vlTL45
	vlTR45
	vlTL90
	vlTR90
	vlTL135
	vlTR135
	vlTL150
	vlTR150
)

var loudspeakerPositions = map[virtualLoudspeaker]LoudspeakerLayoutInputChannel{
	vlC:     newLoudspeakerLayoutInputChannel("kC", 0.0, 0.0, 1.0, false),
	vlLFE:   newLoudspeakerLayoutInputChannel("kLFE", 0.0, -30.0, 1.0, true),
	vlL30:   newLoudspeakerLayoutInputChannel("kL30", 30.0, 0.0, 1.0, false),
	vlR30:   newLoudspeakerLayoutInputChannel("kR30", -30.0, 0.0, 1.0, false),
	vlL45:   newLoudspeakerLayoutInputChannel("kL45", 45.0, 0.0, 1.0, false),
	vlR45:   newLoudspeakerLayoutInputChannel("kR45", -45.0, 0.0, 1.0, false),
	vlL60:   newLoudspeakerLayoutInputChannel("kL60", 60.0, 0.0, 1.0, false),
	vlR60:   newLoudspeakerLayoutInputChannel("kR60", -60.0, 0.0, 1.0, false),
	vlL90:   newLoudspeakerLayoutInputChannel("kL90", 90.0, 0.0, 1.0, false),
	vlR90:   newLoudspeakerLayoutInputChannel("kR90", -90.0, 0.0, 1.0, false),
	vlL110:  newLoudspeakerLayoutInputChannel("kL110", 110.0, 0.0, 1.0, false),
	vlR110:  newLoudspeakerLayoutInputChannel("kR110", -110.0, 0.0, 1.0, false),
	vlL135:  newLoudspeakerLayoutInputChannel("kL135", 135.0, 0.0, 1.0, false),
	vlR135:  newLoudspeakerLayoutInputChannel("kR135", -135.0, 0.0, 1.0, false),
	vlTL30:  newLoudspeakerLayoutInputChannel("kTL30", 30.0, 45.0, 1.0, false),
	vlTR30:  newLoudspeakerLayoutInputChannel("kTR30", -30.0, 45.0, 1.0, false),
	vlTL45:  newLoudspeakerLayoutInputChannel("kTL45", 45.0, 45.0, 1.0, false),
	vlTR45:  newLoudspeakerLayoutInputChannel("kTR45", -45.0, 45.0, 1.0, false),
	vlTL90:  newLoudspeakerLayoutInputChannel("kTL90", 90.0, 45.0, 1.0, false),
	vlTR90:  newLoudspeakerLayoutInputChannel("kTR90", -90.0, 45.0, 1.0, false),
	vlTL135: newLoudspeakerLayoutInputChannel("kTL135", 135.0, 45.0, 1.0, false),
	vlTR135: newLoudspeakerLayoutInputChannel("kTR135", -135.0, 45.0, 1.0, false),
	vlTL150: newLoudspeakerLayoutInputChannel("kTL150", 150.0, 45.0, 1.0, false),
	vlTR150: newLoudspeakerLayoutInputChannel("kTR150", -150.0, 45.0, 1.0, false),
}

var loudspeakerLayoutMap = map[AudioElementType][]virtualLoudspeaker{
	AudioElementTypeLayoutMono:   {vlC},
	AudioElementTypeLayoutStereo: {vlL30, vlR30},
	AudioElementTypeLayout3_1_2:  {vlL45, vlR45, vlC, vlLFE, vlTL30, vlTR30},
	AudioElementTypeLayout5_1_0:  {vlL30, vlR30, vlC, vlLFE, vlL110, vlR110},
	AudioElementTypeLayout5_1_2:  {vlL30, vlR30, vlC, vlLFE, vlL110, vlR110, vlTL90, vlTR90},
	AudioElementTypeLayout5_1_4: {
		vlL30, vlR30, vlC, vlLFE, vlL110, vlR110, vlTL45, vlTR45, vlTL135, vlTR135,
	},
	AudioElementTypeLayout7_1_0: {vlL30, vlR30, vlC, vlLFE, vlL90, vlR90, vlL135, vlR135},
	AudioElementTypeLayout7_1_2: {
		vlL30, vlR30, vlC, vlLFE, vlL90, vlR90, vlL135, vlR135, vlTL90, vlTR90,
	},
	AudioElementTypeLayout7_1_4: {
		vlL30, vlR30, vlC, vlLFE, vlL90, vlR90, vlL135, vlR135,
		vlTL45, vlTR45, vlTL135, vlTR135,
	},
	AudioElementTypeLayout9_1_0: {
		vlL30, vlR30, vlC, vlLFE, vlL60, vlR60, vlL90, vlR90, vlL135, vlR135,
	},
	AudioElementTypeLayout9_1_2: {
		vlL30, vlR30, vlC, vlLFE, vlL60, vlR60, vlL90, vlR90, vlL135, vlR135,
		vlTL90, vlTR90,
	},
	AudioElementTypeLayout9_1_4: {
		vlL30, vlR30, vlC, vlLFE, vlL60, vlR60, vlL90, vlR90, vlL135, vlR135,
		vlTL45, vlTR45, vlTL135, vlTR135,
	},
	AudioElementTypeLayout9_1_6: {
		vlL30, vlR30, vlC, vlLFE, vlL60, vlR60, vlL90, vlR90, vlL135, vlR135,
		vlTL30, vlTR30, vlTL90, vlTR90, vlTL150, vlTR150,
	},
}

// GetLoudspeakerLayout returns the ordered list of speaker feeds for a
// loudspeaker-bed AudioElementType, or nil if t is not a loudspeaker
// layout type.
func GetLoudspeakerLayout(t AudioElementType) []LoudspeakerLayoutInputChannel {
	labels, ok := loudspeakerLayoutMap[t]
	if !ok {
		return nil
	}
	layout := make([]LoudspeakerLayoutInputChannel, len(labels))
	for i, label := range labels {
		layout[i] = loudspeakerPositions[label]
	}
	return layout
}
