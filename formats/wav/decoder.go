// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/trsonic/obr/formats"
	"github.com/trsonic/obr/simd"
)

// source wraps a go-audio wav.Decoder to implement formats.Source.
type source struct {
	dec        *gowav.Decoder
	sampleRate int
	channels   int
	intBuf     *goaudio.IntBuffer
	pcm16      []int16
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	if cap(s.pcm16) < n {
		s.pcm16 = make([]int16, n)
	}
	s.pcm16 = s.pcm16[:n]
	for i := 0; i < n; i++ {
		s.pcm16[i] = int16(s.intBuf.Data[i])
	}
	simd.FloatFromInt16(dst[:n], s.pcm16)

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}

// Decoder decodes PCM WAV files into a formats.Source, using
// go-audio/wav rather than a hand-rolled header parser.
type Decoder struct{}

// Decode implements formats.Decoder.
func (Decoder) Decode(r io.Reader) (formats.Source, error) {
	rs, err := asReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()
	if dec.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedWavLayout, dec.Err())
	}
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
	}, nil
}

// DecodeMultichannel fully decodes a WAV file's bytes into one
// float32 slice per channel, deinterleaved. This is used to load
// SH-HRIR assets, where the whole (short) file is needed in memory
// rather than streamed.
func DecodeMultichannel(data []byte) (channels [][]float32, sampleRate int, err error) {
	rs := newByteReadSeeker(data)
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, 0, ErrNotWavFile
	}
	dec.ReadInfo()
	if dec.Err() != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnsupportedWavLayout, dec.Err())
	}
	if dec.BitDepth != 16 {
		return nil, 0, ErrOnlyPCM16bitSupported
	}

	format := dec.Format()
	if format == nil {
		return nil, 0, ErrUnsupportedWavLayout
	}
	numChans := format.NumChannels

	const chunkFrames = 8192
	buf := &goaudio.IntBuffer{Format: format, Data: make([]int, chunkFrames*numChans)}

	var allSamples []int
	for {
		buf.Data = buf.Data[:chunkFrames*numChans]
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			allSamples = append(allSamples, buf.Data[:n]...)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading PCM data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	frames := len(allSamples) / numChans
	pcm16 := make([]int16, len(allSamples))
	for i, s := range allSamples {
		pcm16[i] = int16(s)
	}
	interleaved := make([]float32, len(allSamples))
	simd.FloatFromInt16(interleaved, pcm16)

	channels = make([][]float32, numChans)
	for c := 0; c < numChans; c++ {
		channels[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < numChans; c++ {
			channels[c][i] = interleaved[i*numChans+c]
		}
	}
	return channels, format.SampleRate, nil
}

func asReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}
	return newByteReadSeeker(data), nil
}

func newByteReadSeeker(data []byte) io.ReadSeeker { return &byteReadSeeker{data: data} }

type byteReadSeeker struct {
	data   []byte
	offset int64
}

func (rs *byteReadSeeker) Read(p []byte) (int, error) {
	if rs.offset >= int64(len(rs.data)) {
		return 0, io.EOF
	}
	n := copy(p, rs.data[rs.offset:])
	rs.offset += int64(n)
	return n, nil
}

func (rs *byteReadSeeker) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = rs.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(rs.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if newOffset < 0 {
		return 0, fmt.Errorf("negative seek position")
	}
	rs.offset = newOffset
	return newOffset, nil
}
