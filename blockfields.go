// Package blockfields is the entry point for assembling block editor field
// documents. Most callers chain calls on NewBuilder; LoadBlueprints and
// ImportSchema produce the same documents from YAML/JSON definitions or
// OpenAPI component schemas.
package blockfields

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-blockfields/internal/openapi/importer"
	"github.com/goliatone/go-blockfields/pkg/blueprint"
	"github.com/goliatone/go-blockfields/pkg/fields"
	pkgopenapi "github.com/goliatone/go-blockfields/pkg/openapi"
	"github.com/goliatone/go-blockfields/pkg/sanitize"
	"github.com/goliatone/go-blockfields/pkg/visibility"
)

// Document aliases fields.Document for callers that only use the root package.
type Document = fields.Document

// NewBuilder returns an empty field tree builder.
func NewBuilder(options ...fields.BuilderOption) *fields.Builder {
	return fields.NewBuilder(options...)
}

// LoadBlueprints reads every JSON/YAML blueprint file in fsys.
func LoadBlueprints(fsys fs.FS, options ...blueprint.LoaderOption) (*blueprint.Store, error) {
	return blueprint.LoadFS(fsys, options...)
}

// NewImporter returns the kin-openapi backed schema importer.
func NewImporter(options ...pkgopenapi.ImporterOption) pkgopenapi.Importer {
	return importer.New(pkgopenapi.NewImporterOptions(options...))
}

// ImportSchema loads the OpenAPI document at location and converts the named
// component schema into a field document.
func ImportSchema(ctx context.Context, location, schema string, loadOptions []pkgopenapi.LoadOption, importerOptions ...pkgopenapi.ImporterOption) (Document, error) {
	doc, err := pkgopenapi.Load(ctx, location, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("blockfields: %w", err)
	}
	return NewImporter(importerOptions...).Import(ctx, doc, schema)
}

// Sanitize returns a copy of doc with unsafe markup removed from display
// strings.
func Sanitize(doc Document) Document {
	return sanitize.New().Document(doc)
}

// HiddenFields reports the dotted paths of fields whose condition does not
// hold for the saved block values.
func HiddenFields(doc Document, values map[string]any, options ...visibility.Option) ([]string, error) {
	return visibility.Hidden(doc, values, options...)
}
