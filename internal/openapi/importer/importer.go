package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockfields/pkg/fields"
	pkgopenapi "github.com/goliatone/go-blockfields/pkg/openapi"
)

// Importer implements pkgopenapi.Importer using kin-openapi.
type Importer struct {
	options pkgopenapi.ImporterOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Importer = (*Importer)(nil)

// New constructs an Importer with the given options.
func New(options pkgopenapi.ImporterOptions) pkgopenapi.Importer {
	if options.Labeler == nil {
		options.Labeler = fields.DefaultLabeler
	}
	return &Importer{options: options}
}

// Import converts the named component schema. Scalar and repeater properties
// land in the default section first; each object property then becomes its
// own section.
func (i *Importer) Import(ctx context.Context, doc pkgopenapi.Document, name string) (fields.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Spec() == nil {
		return nil, errors.New("openapi importer: document is not loaded")
	}
	root, ok := doc.Schema(name)
	if !ok {
		return nil, fmt.Errorf("openapi importer: %q in %s: %w", name, doc.Location(), pkgopenapi.ErrSchemaNotFound)
	}
	if !isObject(root) {
		return nil, fmt.Errorf("openapi importer: schema %q is not an object", name)
	}

	builder := fields.NewBuilder(i.options.BuilderOptions...)
	props := sortedProperties(root)

	for _, prop := range props {
		if i.skip(prop.schema) || isObject(prop.schema) {
			continue
		}
		if err := i.addProperty(builder, "", prop.name, prop.schema, false); err != nil {
			return nil, fmt.Errorf("openapi importer: schema %q: %w", name, err)
		}
	}

	for _, prop := range props {
		if i.skip(prop.schema) || !isObject(prop.schema) {
			continue
		}
		builder.AddSection(i.sectionName(prop.name, prop.schema), sectionOptions(prop.schema))
		for _, child := range sortedProperties(prop.schema) {
			if i.skip(child.schema) {
				continue
			}
			if err := i.addProperty(builder, "", child.name, child.schema, false); err != nil {
				return nil, fmt.Errorf("openapi importer: schema %q: %s: %w", name, prop.name, err)
			}
		}
	}

	out, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("openapi importer: schema %q: %w", name, err)
	}
	return out, nil
}

// addProperty adds one property. Nested objects are flattened with a dotted
// prefix; arrays of objects become repeaters.
func (i *Importer) addProperty(builder *fields.Builder, prefix, name string, schema *openapi3.Schema, inRepeater bool) error {
	fieldName := name
	if prefix != "" {
		fieldName = prefix + "." + name
	}

	switch {
	case isObject(schema):
		for _, child := range sortedProperties(schema) {
			if i.skip(child.schema) {
				continue
			}
			if err := i.addProperty(builder, fieldName, child.name, child.schema, inRepeater); err != nil {
				return err
			}
		}
		return nil
	case isObjectArray(schema) && overrideKind(schema) == "":
		if inRepeater {
			return fmt.Errorf("property %q: repeaters cannot nest", fieldName)
		}
		builder.AddRepeater(fieldName, i.baseOptions(name, schema))
		for _, child := range sortedProperties(schema.Items.Value) {
			if i.skip(child.schema) {
				continue
			}
			if err := i.addProperty(builder, "", child.name, child.schema, true); err != nil {
				return err
			}
		}
		builder.EndRepeater()
	default:
		kind, opts := i.control(name, schema)
		builder.AddField(fieldName, kind, opts)
	}

	if cond, ok := conditionFromExtensions(schema.Extensions); ok {
		builder.Conditional(cond.Name, cond.Value)
	}
	return nil
}

func (i *Importer) skip(schema *openapi3.Schema) bool {
	return schema == nil || (i.options.SkipReadOnly && schema.ReadOnly)
}

func (i *Importer) sectionName(name string, schema *openapi3.Schema) string {
	if value, ok := schema.Extensions[pkgopenapi.SectionExtensionKey].(string); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	if title := strings.TrimSpace(schema.Title); title != "" {
		return title
	}
	return i.options.Labeler(name)
}

func sectionOptions(schema *openapi3.Schema) fields.Options {
	if schema.Description == "" {
		return nil
	}
	return fields.Options{"help": schema.Description}
}

func (i *Importer) baseOptions(name string, schema *openapi3.Schema) fields.Options {
	opts := fields.Options{}
	if title := strings.TrimSpace(schema.Title); title != "" {
		opts["label"] = title
	} else {
		opts["label"] = i.options.Labeler(name)
	}
	if schema.Description != "" {
		opts["help"] = schema.Description
	}
	if schema.Default != nil {
		opts["value"] = schema.Default
	}
	if example, ok := schema.Example.(string); ok && example != "" {
		opts["placeholder"] = example
	}
	return opts
}

// control infers the editor control for a scalar property.
func (i *Importer) control(name string, schema *openapi3.Schema) (fields.Kind, fields.Options) {
	opts := i.baseOptions(name, schema)

	if kind := overrideKind(schema); kind != "" {
		return kind, fields.Merge(opts, overrideOptions(schema))
	}

	switch {
	case schema.Type.Is(openapi3.TypeBoolean):
		return fields.KindToggle, opts
	case len(schema.Enum) > 0:
		opts["choices"] = i.choices(schema.Enum)
		return fields.KindSelect, opts
	case schema.Type.Is(openapi3.TypeInteger) || schema.Type.Is(openapi3.TypeNumber):
		if schema.Min != nil && schema.Max != nil {
			opts["min"] = *schema.Min
			opts["max"] = *schema.Max
			switch {
			case schema.MultipleOf != nil:
				opts["step"] = *schema.MultipleOf
			case schema.Type.Is(openapi3.TypeInteger):
				opts["step"] = float64(1)
			}
			return fields.KindRange, opts
		}
		return fields.KindText, opts
	case schema.Type.Is(openapi3.TypeArray):
		if schema.Items != nil && schema.Items.Value != nil && len(schema.Items.Value.Enum) > 0 {
			opts["choices"] = i.choices(schema.Items.Value.Enum)
			opts["multiple"] = true
			return fields.KindSelect, opts
		}
		return fields.KindTextarea, opts
	}

	switch strings.ToLower(schema.Format) {
	case "date-time", "time":
		return fields.KindTimePicker, opts
	case "uri", "url", "iri":
		return fields.KindLink, opts
	case "binary":
		return fields.KindFile, opts
	case "color":
		return fields.KindColorPicker, opts
	case "html":
		return fields.KindRichText, opts
	case "textarea":
		return fields.KindTextarea, opts
	}
	if schema.MaxLength != nil && *schema.MaxLength > 255 {
		return fields.KindTextarea, opts
	}
	return fields.KindText, opts
}

func (i *Importer) choices(values []any) []any {
	out := make([]fields.Choice, 0, len(values))
	for _, value := range values {
		out = append(out, fields.Choice{Label: i.options.Labeler(fmt.Sprint(value)), Value: value})
	}
	return fields.Choices(out...)
}

func overrideKind(schema *openapi3.Schema) fields.Kind {
	switch value := schema.Extensions[pkgopenapi.FieldExtensionKey].(type) {
	case string:
		return fields.Kind(strings.TrimSpace(value))
	case map[string]any:
		if kind, ok := value["type"].(string); ok {
			return fields.Kind(strings.TrimSpace(kind))
		}
	}
	return ""
}

func overrideOptions(schema *openapi3.Schema) fields.Options {
	value, ok := schema.Extensions[pkgopenapi.FieldExtensionKey].(map[string]any)
	if !ok {
		return nil
	}
	opts := fields.Options{}
	for key, option := range value {
		if key == "type" {
			continue
		}
		opts[key] = option
	}
	return opts
}

func conditionFromExtensions(ext map[string]any) (fields.Condition, bool) {
	raw, ok := ext[pkgopenapi.ConditionExtensionKey].(map[string]any)
	if !ok {
		return fields.Condition{}, false
	}
	name, _ := raw["name"].(string)
	if strings.TrimSpace(name) == "" {
		return fields.Condition{}, false
	}
	return fields.Condition{Name: name, Value: raw["value"]}, true
}

type property struct {
	name   string
	schema *openapi3.Schema
}

func sortedProperties(schema *openapi3.Schema) []property {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]property, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		out = append(out, property{name: name, schema: ref.Value})
	}
	return out
}

func isObject(schema *openapi3.Schema) bool {
	if schema == nil {
		return false
	}
	if overrideKind(schema) != "" {
		return false
	}
	if schema.Type.Is(openapi3.TypeObject) {
		return true
	}
	return schema.Type == nil && len(schema.Properties) > 0
}

func isObjectArray(schema *openapi3.Schema) bool {
	if schema == nil || !schema.Type.Is(openapi3.TypeArray) || schema.Items == nil {
		return false
	}
	return isObject(schema.Items.Value)
}
