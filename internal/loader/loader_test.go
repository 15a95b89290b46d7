package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	return path
}

func TestNewLoader_Defaults(t *testing.T) {
	l := NewLoader("", "")
	if l.itemsKey != "Items" || l.extension != ".json" {
		t.Errorf("NewLoader defaults = (%s, %s), want (Items, .json)", l.itemsKey, l.extension)
	}
}

func TestLoader_IsJSON(t *testing.T) {
	l := NewLoader("", "")

	tests := map[string]bool{
		"items-0.json":      true,
		"data/items-1.json": true,
		".json":             false,
		"items.dat":         false,
		"items.json.bak":    false,
	}

	for source, want := range tests {
		if got := l.IsJSON(source); got != want {
			t.Errorf("IsJSON(%q) = %v, want %v", source, got, want)
		}
	}
}

func TestLoader_Load(t *testing.T) {
	path := writeSource(t, "items.json", `{"Items": [{"ItemID": "1"}, {"ItemID": "2"}]}`)

	items, err := NewLoader("", "").Load(path)
	if err != nil {
		t.Fatalf("Load returned unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Load returned %d items, want 2", len(items))
	}

	if items[0].ItemID.Value != "1" || items[1].ItemID.Value != "2" {
		t.Errorf("items out of order: %s, %s", items[0].ItemID.Value, items[1].ItemID.Value)
	}
}

func TestLoader_Load_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Invalid JSON", content: `{"Items": [`},
		{name: "Missing Items key", content: `{"Things": []}`},
		{name: "Items not an array", content: `{"Items": "nope"}`},
		{name: "Bad count", content: `{"Items": [{"Number_of_Bids": "many"}]}`},
		{name: "Top-level array", content: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, "bad.json", tt.content)

			_, err := NewLoader("", "").Load(path)

			var mie *MalformedInputError
			if !errors.As(err, &mie) {
				t.Fatalf("Load error = %v, want *MalformedInputError", err)
			}

			if mie.Source != path {
				t.Errorf("Source = %s, want %s", mie.Source, path)
			}
		})
	}
}

func TestLoader_Load_MissingItemsSentinel(t *testing.T) {
	_, err := NewLoader("Listings", "").Parse("mem", []byte(`{"Items": []}`))
	if !errors.Is(err, ErrMissingItems) {
		t.Errorf("Parse error = %v, want ErrMissingItems", err)
	}
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	_, err := NewLoader("", "").Load("/nonexistent/items.json")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}
