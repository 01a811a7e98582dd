package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/tcolgate/mp3"
)

// Prober determines the playing time of audio files by inspecting their
// stream data rather than trusting tags.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Duration returns the playing time of the file in whole seconds. Formats
// without a supported parser return zero with no error, a scan should not
// fail because one format cannot be probed.
func (p *Prober) Duration(filePath string) (int, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		return mp3Duration(filePath)
	case ".flac":
		return flacDuration(filePath)
	case ".wav":
		return wavDuration(filePath)
	default:
		return 0, nil
	}
}

// mp3Duration walks every frame. MP3 has no duration header, and estimating
// from bitrate misreports VBR files badly.
func mp3Duration(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := mp3.NewDecoder(file)
	var frame mp3.Frame
	var skipped int
	var total time.Duration

	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			// Trailing garbage after the last frame is common, keep what
			// was decoded so far.
			break
		}
		total += frame.Duration()
	}

	return int(total.Round(time.Second).Seconds()), nil
}

// flacDuration reads the STREAMINFO block, no frame decoding needed.
func flacDuration(filePath string) (int, error) {
	stream, err := flac.ParseFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to parse flac stream: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 {
		return 0, nil
	}
	return int(info.NSamples / uint64(info.SampleRate)), nil
}

// wavDuration reads the RIFF header.
func wavDuration(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	d, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to read wav header: %w", err)
	}
	return int(d.Round(time.Second).Seconds()), nil
}
