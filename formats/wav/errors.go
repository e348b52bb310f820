package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a valid RIFF/WAVE file.
	ErrNotWavFile = errors.New("not a WAV file")
	// ErrUnsupportedWavLayout indicates the file's chunk layout could
	// not be parsed by go-audio/wav.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	// ErrOnlyPCM16bitSupported indicates the file uses a bit depth
	// other than 16, the only depth the renderer's I/O path handles.
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
)
