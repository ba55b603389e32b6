// Package manifest maintains the filename-to-URL index written alongside
// the crawl output. One tab-separated line per successfully fetched page,
// in fetch order, append-only across runs.
package manifest

import (
	"fmt"
	"os"
)

// Separator between the filename and URL fields of a manifest line.
const Separator = "\t"

// Writer appends records to a manifest file. The handle is opened once for
// the duration of a run and each line is written with a single syscall, so
// an interrupted run never leaves a truncated line behind.
type Writer struct {
	file *os.File
	path string
}

// OpenWriter opens (creating if absent) the manifest file in append mode.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	return &Writer{file: f, path: path}, nil
}

// Append writes one `filename<TAB>url` line. An error here means the
// manifest can no longer be trusted and the caller should abort the run.
func (w *Writer) Append(filename, url string) error {
	line := filename + Separator + url + "\n"
	if _, err := w.file.WriteString(line); err != nil {
		return fmt.Errorf("failed to append manifest line: %w", err)
	}
	return nil
}

// Close flushes and releases the manifest handle.
func (w *Writer) Close() error {
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to sync manifest %s: %w", w.path, err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close manifest %s: %w", w.path, err)
	}
	return nil
}
