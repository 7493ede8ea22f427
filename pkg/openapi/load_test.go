package openapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockfields/pkg/openapi"
)

const themeDoc = `openapi: 3.0.3
info:
  title: Theme
  version: "1"
paths: {}
components:
  schemas:
    Theme:
      type: object
      properties:
        accent:
          $ref: "shared.yaml#/components/schemas/Accent"
`

const sharedDoc = `openapi: 3.0.3
info:
  title: Shared
  version: "1"
paths: {}
components:
  schemas:
    Accent:
      type: string
      format: color
`

const emptyDoc = `{"openapi":"3.0.0","info":{"title":"t","version":"1"},"paths":{}}`

func TestLoad_File(t *testing.T) {
	doc, err := openapi.Load(context.Background(), "testdata/blocks.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "testdata/blocks.yaml" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if diff := cmp.Diff([]string{"Plain", "Testimonial"}, doc.Schemas()); diff != "" {
		t.Fatalf("schemas mismatch (-want +got):\n%s", diff)
	}
	schema, ok := doc.Schema("Testimonial")
	if !ok || len(schema.Properties) == 0 {
		t.Fatalf("expected resolved Testimonial schema")
	}
	if _, ok := doc.Schema("Missing"); ok {
		t.Fatalf("unexpected schema")
	}

	if _, err := openapi.Load(context.Background(), "testdata/missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := openapi.Load(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}

func TestLoad_FileSystemWithExternalRefs(t *testing.T) {
	fsys := fstest.MapFS{
		"specs/theme.yaml":  &fstest.MapFile{Data: []byte(themeDoc)},
		"specs/shared.yaml": &fstest.MapFile{Data: []byte(sharedDoc)},
	}

	doc, err := openapi.Load(context.Background(), "specs/theme.yaml",
		openapi.WithFileSystem(fsys),
		openapi.WithExternalRefs(true),
	)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	theme, _ := doc.Schema("Theme")
	accent := theme.Properties["accent"]
	if accent == nil || accent.Value == nil || accent.Value.Format != "color" {
		t.Fatalf("expected external reference resolved, got %#v", accent)
	}

	if _, err := openapi.Load(context.Background(), "specs/theme.yaml", openapi.WithFileSystem(fsys)); err == nil {
		t.Fatalf("expected external references to be refused by default")
	}
	if _, err := openapi.Load(context.Background(), "specs/theme.yaml"); err == nil {
		t.Fatalf("expected host filesystem lookup to fail")
	}
}

func TestLoad_HTTP(t *testing.T) {
	data, err := os.ReadFile("testdata/blocks.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer server.Close()

	if _, err := openapi.Load(context.Background(), server.URL+"/blocks.yaml"); !errors.Is(err, openapi.ErrRemoteDisabled) {
		t.Fatalf("expected remote loading to be disabled by default, got %v", err)
	}

	client := openapi.WithHTTPClient(server.Client())
	doc, err := openapi.Load(context.Background(), server.URL+"/blocks.yaml", client)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Schemas()) != 2 {
		t.Fatalf("expected 2 schemas, got %v", doc.Schemas())
	}
	if _, err := openapi.Load(context.Background(), server.URL+"/missing", client); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestParse(t *testing.T) {
	doc, err := openapi.Parse(context.Background(), []byte(sharedDoc), "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Spec() == nil || doc.Location() != "inline.yaml" {
		t.Fatalf("unexpected document %#v", doc)
	}

	if _, err := openapi.Parse(context.Background(), []byte(emptyDoc), "empty.json"); !errors.Is(err, openapi.ErrNoSchemas) {
		t.Fatalf("expected ErrNoSchemas, got %v", err)
	}
	if _, err := openapi.Parse(context.Background(), []byte("openapi: [\n"), "broken.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.Load(ctx, "testdata/blocks.yaml"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if _, err := openapi.Parse(ctx, []byte(sharedDoc), "inline.yaml"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestDocument_Zero(t *testing.T) {
	var doc openapi.Document
	if doc.Schemas() != nil || doc.Spec() != nil {
		t.Fatalf("zero document should be empty")
	}
}
