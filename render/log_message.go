// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"strings"
)

type logColumn struct {
	title string
	width int
}

var logHeader = []logColumn{
	{"AE ID", 5}, {"Type", 15}, {"BinFlt xOA", 10},
	{"Ch ID", 5}, {"Ch Label", 10}, {"Azimuth", 10}, {"Elevation", 10}, {"Distance", 10}, {"LFE", 5},
}

// ConfigSummary renders the current audio element and
// channel layout as a fixed-width table, for startup diagnostics.
func (r *Renderer) ConfigSummary() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	writeBorder(&b)
	writeHeaderRow(&b)

	for aeID, el := range r.audioElements {
		writeBorder(&b)
		elementData := fmt.Sprintf("%s|%s|%s",
			padLeft(fmt.Sprintf("%d", aeID), logHeader[0].width),
			padLeft(el.Type().String(), logHeader[1].width),
			padLeft(fmt.Sprintf("%d", el.BinauralFiltersAmbisonicOrder()), logHeader[2].width))

		for _, ch := range el.AmbisonicChannels() {
			writeRow(&b, elementData, formatChannelRow(ch.ChannelIndex(), ch.ID(), "N/A", "N/A", "N/A", "N/A"))
		}
		for _, ch := range el.LoudspeakerChannels() {
			writeRow(&b, elementData, formatChannelRow(ch.ChannelIndex(), ch.ID(),
				fmt.Sprintf("%.2f", ch.Azimuth()), fmt.Sprintf("%.2f", ch.Elevation()),
				fmt.Sprintf("%.2f", ch.Distance()), boolToYesNo(ch.IsLFE())))
		}
		for _, ch := range el.ObjectChannels() {
			writeRow(&b, elementData, formatChannelRow(ch.ChannelIndex(), ch.ID(),
				fmt.Sprintf("%.2f", ch.Azimuth()), fmt.Sprintf("%.2f", ch.Elevation()),
				fmt.Sprintf("%.2f", ch.Distance()), "N/A"))
		}
	}
	writeBorder(&b)
	return b.String()
}

func formatChannelRow(index int, id, azimuth, elevation, distance, lfe string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		padLeft(fmt.Sprintf("%d", index), logHeader[3].width),
		padLeft(id, logHeader[4].width),
		padLeft(azimuth, logHeader[5].width),
		padLeft(elevation, logHeader[6].width),
		padLeft(distance, logHeader[7].width),
		padLeft(lfe, logHeader[8].width))
}

func writeBorder(b *strings.Builder) {
	b.WriteByte('+')
	for _, col := range logHeader {
		b.WriteString(strings.Repeat("-", col.width))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
}

func writeHeaderRow(b *strings.Builder) {
	b.WriteByte('|')
	for _, col := range logHeader {
		b.WriteString(padRight(col.title, col.width))
		b.WriteByte('|')
	}
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, elementData, channelData string) {
	b.WriteByte('|')
	b.WriteString(elementData)
	b.WriteByte('|')
	b.WriteString(channelData)
	b.WriteString("|\n")
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func boolToYesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
