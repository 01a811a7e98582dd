package tag

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"

	"tunesleuth/src/music"
)

// readFallback retries with a format-specific parser when the generic one
// rejects a file. Some in-the-wild MP3s carry ID3 frames dhowden/tag trips
// over, and old FLAC rippers pad metadata blocks in ways it dislikes.
func (r *Reader) readFallback(filePath string, cause error) (music.Tags, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".mp3":
		return readID3(filePath)
	case ".flac":
		return readVorbisComments(filePath)
	default:
		return music.Tags{}, fmt.Errorf("failed to read tags: %w", cause)
	}
}

// readID3 reads MP3 metadata using the id3v2 library directly.
func readID3(filePath string) (music.Tags, error) {
	id3, err := id3v2.Open(filePath, id3v2.Options{Parse: true})
	if err != nil {
		return music.Tags{}, fmt.Errorf("failed to parse id3 tags: %w", err)
	}
	defer id3.Close()

	tags := music.Tags{
		Title:       strings.TrimSpace(id3.Title()),
		Artist:      strings.TrimSpace(id3.Artist()),
		Album:       strings.TrimSpace(id3.Album()),
		AlbumArtist: strings.TrimSpace(id3.GetTextFrame("TPE2").Text),
		Genre:       strings.TrimSpace(id3.Genre()),
		Year:        atoiPrefix(id3.Year()),
		TrackNumber: atoiPrefix(id3.GetTextFrame(id3.CommonID("Track number/Position in set")).Text),
		DiscNumber:  atoiPrefix(id3.GetTextFrame(id3.CommonID("Part of a set")).Text),
	}
	if tags.AlbumArtist == "" {
		tags.AlbumArtist = tags.Artist
	}
	return tags, nil
}

// readVorbisComments reads FLAC metadata from the VORBIS_COMMENT block.
func readVorbisComments(filePath string) (music.Tags, error) {
	f, err := goflac.ParseFile(filePath)
	if err != nil {
		return music.Tags{}, fmt.Errorf("failed to parse flac file: %w", err)
	}

	var cmt *flacvorbis.MetaDataBlockVorbisComment
	for _, meta := range f.Meta {
		if meta.Type == goflac.VorbisComment {
			cmt, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return music.Tags{}, fmt.Errorf("failed to parse vorbis comments: %w", err)
			}
			break
		}
	}
	if cmt == nil {
		return music.Tags{}, fmt.Errorf("no vorbis comment block in %s", filePath)
	}

	tags := music.Tags{
		Title:       vorbisField(cmt, flacvorbis.FIELD_TITLE),
		Artist:      vorbisField(cmt, flacvorbis.FIELD_ARTIST),
		Album:       vorbisField(cmt, flacvorbis.FIELD_ALBUM),
		AlbumArtist: vorbisField(cmt, "ALBUMARTIST"),
		Genre:       vorbisField(cmt, flacvorbis.FIELD_GENRE),
		Year:        atoiPrefix(vorbisField(cmt, flacvorbis.FIELD_DATE)),
		TrackNumber: atoiPrefix(vorbisField(cmt, flacvorbis.FIELD_TRACKNUMBER)),
		DiscNumber:  atoiPrefix(vorbisField(cmt, "DISCNUMBER")),
	}
	if tags.AlbumArtist == "" {
		tags.AlbumArtist = tags.Artist
	}
	return tags, nil
}

func vorbisField(cmt *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := cmt.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// atoiPrefix parses the leading integer of values like "2024-03-01" or
// "3/12", which is how years and track numbers commonly appear in tags.
func atoiPrefix(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
