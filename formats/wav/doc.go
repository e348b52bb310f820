// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding for the
// renderer's CLI input/output and SH-HRIR asset loading, built on
// github.com/go-audio/wav and github.com/go-audio/audio rather than a
// hand-rolled header parser.
//
// Decoder implements formats.Decoder for streaming reads of PCM 16-bit
// WAV files. DecodeMultichannel fully decodes a short multichannel WAV
// (such as an SH-HRIR set) into one deinterleaved float32 slice per
// channel. Encode writes a 16-bit PCM WAV file from interleaved
// float32 samples.
package wav
