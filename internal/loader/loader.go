// Package loader reads auction listing documents and extracts their item records.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"auctionload/internal/models"
)

// DefaultExtension marks sources that carry JSON listings.
const DefaultExtension = ".json"

// ErrMissingItems is returned when a document has no top-level items key.
var ErrMissingItems = errors.New("document has no items key")

// MalformedInputError reports a source that cannot be parsed as a listing document.
type MalformedInputError struct {
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: %v", e.Source, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Loader parses listing documents.
type Loader struct {
	itemsKey  string
	extension string
}

// NewLoader creates a loader reading the array under itemsKey from sources
// named with extension. Empty arguments select the defaults.
func NewLoader(itemsKey, extension string) *Loader {
	if itemsKey == "" {
		itemsKey = "Items"
	}

	if extension == "" {
		extension = DefaultExtension
	}

	return &Loader{itemsKey: itemsKey, extension: extension}
}

// IsJSON reports whether the source name ends in the loader's extension
// and has a non-empty base before it.
func (l *Loader) IsJSON(source string) bool {
	return len(source) > len(l.extension) && strings.HasSuffix(source, l.extension)
}

// Load reads a source file and returns its item records in document order.
func (l *Loader) Load(source string) ([]models.RawItem, error) {
	data, err := os.ReadFile(filepath.Clean(source))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}

	return l.Parse(source, data)
}

// Parse decodes a document already held in memory.
func (l *Loader) Parse(source string, data []byte) ([]models.RawItem, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedInputError{Source: source, Err: err}
	}

	raw, ok := doc[l.itemsKey]
	if !ok {
		return nil, &MalformedInputError{Source: source, Err: fmt.Errorf("%w %q", ErrMissingItems, l.itemsKey)}
	}

	var items []models.RawItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &MalformedInputError{Source: source, Err: err}
	}

	return items, nil
}
