package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not a valid AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")
	// ErrOnlyPCM16bitSupported indicates the file uses a bit depth
	// other than 16, the only depth the renderer's I/O path handles.
	ErrOnlyPCM16bitSupported = errors.New("only 16-bit PCM AIFF is supported")
	// ErrUnsupportedAiffLayout indicates go-audio/aiff could not parse
	// the file's chunk layout.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
