package tag

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"

	"tunesleuth/src/music"
)

// Reader reads embedded metadata from audio files. It tries the generic
// dhowden/tag parser first and falls back to format-specific parsers for
// files it cannot handle.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTags reads metadata from a music file.
func (r *Reader) ReadTags(ctx context.Context, filePath string) (music.Tags, error) {
	if err := ctx.Err(); err != nil {
		return music.Tags{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return music.Tags{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return r.readFallback(filePath, err)
	}

	trackNumber, _ := meta.Track()
	discNumber, _ := meta.Disc()

	// Fall back to the track artist when no album artist is set
	albumArtist := meta.AlbumArtist()
	if albumArtist == "" {
		albumArtist = meta.Artist()
	}

	return music.Tags{
		Title:       strings.TrimSpace(meta.Title()),
		Artist:      strings.TrimSpace(meta.Artist()),
		Album:       strings.TrimSpace(meta.Album()),
		AlbumArtist: strings.TrimSpace(albumArtist),
		Genre:       strings.TrimSpace(meta.Genre()),
		Year:        meta.Year(),
		TrackNumber: trackNumber,
		DiscNumber:  discNumber,
	}, nil
}
