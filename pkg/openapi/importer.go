package openapi

import (
	"context"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

const (
	// FieldExtensionKey overrides the inferred kind of a property. The value
	// is either a kind name or a map with a "type" key plus extra options.
	FieldExtensionKey = "x-block-field"
	// ConditionExtensionKey attaches a visibility condition ({name, value}).
	ConditionExtensionKey = "x-block-condition"
	// SectionExtensionKey renames the section created for an object property.
	SectionExtensionKey = "x-block-section"
)

// Importer converts OpenAPI component schemas into block field documents.
// Use Document.Schemas to list the names it accepts.
type Importer interface {
	Import(ctx context.Context, doc Document, schema string) (fields.Document, error)
}

// ImporterOptions configures an Importer.
type ImporterOptions struct {
	Labeler        func(string) string
	BuilderOptions []fields.BuilderOption
	SkipReadOnly   bool
}

// ImporterOption mutates ImporterOptions prior to construction.
type ImporterOption func(*ImporterOptions)

// WithLabeler overrides how property names become labels when a schema has
// no title.
func WithLabeler(labeler func(string) string) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.Labeler = labeler
	}
}

// WithBuilderOptions forwards options to the field tree builder (for example
// a translator for the default section label).
func WithBuilderOptions(options ...fields.BuilderOption) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.BuilderOptions = append(opts.BuilderOptions, options...)
	}
}

// WithSkipReadOnly drops readOnly properties, which editors cannot change.
func WithSkipReadOnly(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.SkipReadOnly = enabled
	}
}

// NewImporterOptions applies a set of ImporterOption values.
func NewImporterOptions(options ...ImporterOption) ImporterOptions {
	cfg := ImporterOptions{Labeler: fields.DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Labeler == nil {
		cfg.Labeler = fields.DefaultLabeler
	}
	return cfg
}
