// SPDX-License-Identifier: EPL-2.0

// Command obr renders a single audio file (WAV, AIFF, MP3 or Ogg
// Vorbis) of Ambisonic, loudspeaker-bed, or audio-object content to a
// 2-channel binaural WAV file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/trsonic/obr/assets"
	"github.com/trsonic/obr/buffer"
	"github.com/trsonic/obr/formats"
	"github.com/trsonic/obr/formats/aiff"
	"github.com/trsonic/obr/formats/mp3"
	"github.com/trsonic/obr/formats/vorbis"
	"github.com/trsonic/obr/formats/wav"
	"github.com/trsonic/obr/metadata"
	"github.com/trsonic/obr/render"
)

func main() {
	os.Exit(run())
}

func run() int {
	inputTypeFlag := flag.String("input_type", "",
		fmt.Sprintf("Type of input. One of: %s.", strings.Join(render.GetAvailableAudioElementTypesAsStr(), ", ")))
	obaMetadataFile := flag.String("oba_metadata_file", "",
		"Full path to the textproto-like file containing object metadata, required when --input_type is kObjectMono.")
	inputFile := flag.String("input_file", "", "Full path to the input WAV/AIFF/MP3/Ogg file.")
	outputFile := flag.String("output_file", "/tmp/output.wav", "Full path to the output WAV file.")
	bufferSize := flag.Uint64("buffer_size", 256, "Processing buffer size; number of samples per channel per frame.")
	assetsDir := flag.String("assets_dir", "assets", "Directory containing the SH-HRIR filter WAV files.")
	flag.Parse()

	logger := slog.Default()

	if err := obrMain(logger, *inputTypeFlag, *obaMetadataFile, *inputFile, *outputFile, *assetsDir, int(*bufferSize)); err != nil {
		logger.Error("obr failed", "err", err)
		return 1
	}
	return 0
}

func obrMain(logger *slog.Logger, inputTypeStr, obaMetadataFile, inputFile, outputFile, assetsDir string, bufferSize int) error {
	if bufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", bufferSize)
	}
	inputType, err := render.GetAudioElementTypeFromStr(inputTypeStr)
	if err != nil {
		return fmt.Errorf("parsing --input_type: %w", err)
	}

	var sourceList metadata.SourceList
	if render.IsObjectType(inputType) {
		if obaMetadataFile == "" {
			return fmt.Errorf("no --oba_metadata_file specified for object input")
		}
		f, err := os.Open(obaMetadataFile)
		if err != nil {
			return fmt.Errorf("opening %q: %w", obaMetadataFile, err)
		}
		defer f.Close()
		sourceList, err = metadata.ParseSourceList(f)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", obaMetadataFile, err)
		}
	}

	reg := formats.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(inputFile)), ".")
	dec, ok := reg.Get(ext)
	if !ok {
		return fmt.Errorf("unsupported input format %q", ext)
	}

	inFile, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening %q: %w", inputFile, err)
	}
	defer inFile.Close()

	src, err := dec.Decode(inFile)
	if err != nil {
		return fmt.Errorf("decoding %q: %w", inputFile, err)
	}
	defer src.Close()

	logger.Info("input file",
		"path", inputFile,
		"channels", src.Channels(),
		"sample_rate", src.SampleRate(),
		"declared_type", inputTypeStr,
		"buffer_size", bufferSize,
	)

	r, err := render.New(bufferSize, src.SampleRate(), assets.NewDirStore(assetsDir))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	if render.IsObjectType(inputType) {
		for _, s := range sourceList.Sources {
			logger.Info("configuring object source",
				"input_channel", s.InputChannel, "azimuth", s.Azimuth,
				"elevation", s.Elevation, "distance", s.Distance, "gain", s.Gain)
			if err := r.AddAudioElement(inputType); err != nil {
				return fmt.Errorf("adding audio element: %w", err)
			}
			if err := r.UpdateObjectPosition(r.NumberOfAudioElements()-1,
				degToRad(s.Azimuth), degToRad(s.Elevation), s.Distance); err != nil {
				return fmt.Errorf("updating object position: %w", err)
			}
		}
	} else {
		if err := r.AddAudioElement(inputType); err != nil {
			return fmt.Errorf("adding audio element: %w", err)
		}
	}

	if src.Channels() != r.NumberOfInputChannels() {
		return fmt.Errorf("mismatching number of input channels: (%d vs %d)",
			src.Channels(), r.NumberOfInputChannels())
	}

	logger.Info("audio element configuration", "summary", r.ConfigSummary())

	outFile, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("creating %q: %w", outputFile, err)
	}
	defer outFile.Close()

	var outSamples []float32
	numIn := src.Channels()
	numOut := r.NumberOfOutputChannels()
	readBuf := make([]float32, numIn*bufferSize)
	inBuf := buffer.New(numIn, bufferSize)
	outBuf := buffer.New(numOut, bufferSize)
	outInterleaved := make([]float32, numOut*bufferSize)

	for {
		n, readErr := src.ReadSamples(readBuf)
		if n > 0 {
			frames := n / numIn
			for i := n; i < numIn*bufferSize; i++ {
				readBuf[i] = 0
			}

			inBuf.CopyFromInterleaved(readBuf)
			r.Process(inBuf, outBuf)
			outBuf.CopyToInterleaved(outInterleaved)

			outSamples = append(outSamples, outInterleaved[:frames*numOut]...)
		}
		if readErr != nil {
			break
		}
	}

	if err := wav.Encode(outFile, src.SampleRate(), numOut, outSamples); err != nil {
		return fmt.Errorf("writing %q: %w", outputFile, err)
	}
	logger.Info("done", "output_file", outputFile, "frames_written", len(outSamples)/numOut)
	return nil
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
