package main

import (
	"fmt"
	"io"
	"path/filepath"

	"tunesleuth/src/features/scanning"
)

// scanProgress returns a progress callback that rewrites a single status
// line per scanned file and finishes it with a newline.
func scanProgress(w io.Writer) scanning.ProgressFunc {
	return func(done, total int, path string) {
		if total == 0 {
			return
		}
		fmt.Fprintf(w, "\rScanning %d/%d: %s\x1b[K", done, total, filepath.Base(path))
		if done == total {
			fmt.Fprintln(w)
		}
	}
}
