package fields

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat normalises a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("fields: unsupported format %q", raw)
	}
}

// Encode writes doc to w in the requested format. JSON output is indented
// with two spaces.
func Encode(w io.Writer, doc Document, format Format) error {
	if doc == nil {
		doc = Document{}
	}
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("fields: encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("fields: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("fields: encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("fields: unsupported format %q", format)
	}
}

// Marshal is Encode into a byte slice.
func Marshal(doc Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a document in either format. JSON is tried first, then YAML.
func Decode(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("fields: empty document")
	}
	var doc Document
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr == nil {
		return doc, nil
	}
	doc = nil
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fields: decode: invalid JSON (%v) or YAML (%w)", jsonErr, err)
	}
	return doc, nil
}
