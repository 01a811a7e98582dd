package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestScanProgress(t *testing.T) {
	var buf bytes.Buffer
	progress := scanProgress(&buf)

	progress(1, 2, "/music/Artist/01 - Song.mp3")
	progress(2, 2, "/music/Artist/02 - Other.mp3")

	out := buf.String()
	if !strings.Contains(out, "Scanning 1/2: 01 - Song.mp3") {
		t.Errorf("missing first update in %q", out)
	}
	if !strings.Contains(out, "Scanning 2/2: 02 - Other.mp3") {
		t.Errorf("missing final update in %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("final update should finish the line, got %q", out)
	}
}

func TestScanProgressEmptyLibrary(t *testing.T) {
	var buf bytes.Buffer
	scanProgress(&buf)(0, 0, "")
	if buf.Len() != 0 {
		t.Errorf("no output expected for an empty walk, got %q", buf.String())
	}
}
