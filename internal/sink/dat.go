package sink

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatSink writes each relation to <dir>/<relation>.dat, one row per line.
type DatSink struct {
	dir       string
	delimiter string
}

// NewDatSink creates the output directory if needed.
func NewDatSink(dir, delimiter string) (*DatSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &DatSink{dir: dir, delimiter: delimiter}, nil
}

// Path returns the file a relation is written to.
func (s *DatSink) Path(relation string) string {
	return filepath.Join(s.dir, relation+".dat")
}

// WriteRelation truncates the relation's file and writes rows to it.
func (s *DatSink) WriteRelation(_ context.Context, name string, rows [][]string) error {
	if _, err := lookupTable(name); err != nil {
		return writeErr(name, err)
	}

	f, err := os.Create(s.Path(name))
	if err != nil {
		return writeErr(name, err)
	}

	w := bufio.NewWriter(f)

	for _, row := range rows {
		if _, err := w.WriteString(strings.Join(row, s.delimiter) + "\n"); err != nil {
			f.Close()
			return writeErr(name, err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return writeErr(name, err)
	}

	if err := f.Close(); err != nil {
		return writeErr(name, err)
	}

	return nil
}

// Close is a no-op; files are closed after each relation.
func (s *DatSink) Close() error {
	return nil
}
