package openapi

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a parsed OpenAPI document together with the location it was
// read from.
type Document struct {
	location string
	spec     *openapi3.T
}

// NewDocument wraps a specification parsed elsewhere.
func NewDocument(location string, spec *openapi3.T) Document {
	return Document{location: location, spec: spec}
}

// Location returns the path or URL the document was read from.
func (d Document) Location() string {
	return d.location
}

// Spec returns the parsed specification, or nil for the zero Document.
func (d Document) Spec() *openapi3.T {
	return d.spec
}

// Schemas lists the component schema names in sorted order.
func (d Document) Schemas() []string {
	if d.spec == nil || d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the resolved component schema with the given name.
func (d Document) Schema(name string) (*openapi3.Schema, bool) {
	if d.spec == nil || d.spec.Components == nil {
		return nil, false
	}
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, false
	}
	return ref.Value, true
}
