package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// resultWriter appends result batches to a file. Each batch is written with
// a single open-append-close while holding the lock, so batches from
// concurrent workers never interleave.
type resultWriter struct {
	mu   sync.Mutex
	path string
}

// newResultWriter removes any previous output at path.
func newResultWriter(path string) (*resultWriter, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove previous output: %w", err)
	}
	return &resultWriter{path: path}, nil
}

// Append writes one "{package} => {url}" line per result.
func (w *resultWriter) Append(results []Result) error {
	if len(results) == 0 {
		return nil
	}
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s => %s\n", r.Package, r.URL)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	return f.Close()
}
