package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

// MustLoadDocument loads a JSON or YAML golden file into a Document.
func MustLoadDocument(t *testing.T, path string) fields.Document {
	t.Helper()

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocument reads a fixture into a Document, returning an error for
// callers managing setup outside of *testing.T.
func LoadDocument(path string) (fields.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := fields.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode document: %w", err)
	}
	return doc, nil
}

// Normalize passes doc through its JSON encoding so option values take the
// same Go types a decoded golden has (numbers become float64, typed slices
// become []any).
func Normalize(t *testing.T, doc fields.Document) fields.Document {
	t.Helper()

	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	var out fields.Document
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	return out
}

// WriteDocument writes a document golden when UPDATE_GOLDENS is enabled.
func WriteDocument(t *testing.T, path string, doc fields.Document) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := fields.Marshal(doc, fields.FormatJSON)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareDocuments normalizes both sides and returns a diff when they differ.
func CompareDocuments(t *testing.T, want, got fields.Document) string {
	t.Helper()
	return cmp.Diff(Normalize(t, want), Normalize(t, got))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MapFS builds an in-memory filesystem from path/content pairs.
func MapFS(files map[string]string) fs.FS {
	out := fstest.MapFS{}
	for path, content := range files {
		out[path] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}
