package tree

// Kind identifies the editor control a field descriptor maps to. The builder
// never interprets kinds; renderers are expected to reject ones they do not
// know.
type Kind string

const (
	KindTimePicker   Kind = "TimePicker"
	KindFile         Kind = "File"
	KindLink         Kind = "Link"
	KindText         Kind = "Text"
	KindTextarea     Kind = "Textarea"
	KindToggle       Kind = "Toggle"
	KindColorPalette Kind = "ColorPalette"
	KindColorPicker  Kind = "ColorPicker"
	KindSelect       Kind = "Select"
	KindMessage      Kind = "Message"
	KindImage        Kind = "Image"
	KindRichText     Kind = "RichText"
	KindRange        Kind = "Range"
	KindRepeater     Kind = "Repeater"
	KindSection      Kind = "Section"
)

var controlKinds = []Kind{
	KindTimePicker,
	KindFile,
	KindLink,
	KindText,
	KindTextarea,
	KindToggle,
	KindColorPalette,
	KindColorPicker,
	KindSelect,
	KindMessage,
	KindImage,
	KindRichText,
	KindRange,
}

// ControlKinds returns the leaf kinds that have a dedicated Add* method.
func ControlKinds() []Kind {
	return append([]Kind(nil), controlKinds...)
}

// IsContainer reports whether fields of this kind carry child fields.
func (k Kind) IsContainer() bool {
	return k == KindSection || k == KindRepeater
}

// Known reports whether k is part of the built-in kind set.
func (k Kind) Known() bool {
	if k.IsContainer() {
		return true
	}
	for _, candidate := range controlKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// Options carries the kind-specific settings of a field (label, help,
// placeholder, choices, ...). Values are stored as supplied.
type Options map[string]any

// Condition ties the visibility of a field to the current value of another
// field, referenced by name.
type Condition struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Field describes a single editable control. Sections and repeaters are fields
// too; their children live in Fields. Encoders flatten Options into the same
// object as name and type.
type Field struct {
	Name      string
	Type      Kind
	Options   Options
	Condition *Condition
	Fields    []Field
	Open      bool
}

// Option returns the option stored under key.
func (f Field) Option(key string) (any, bool) {
	if f.Options == nil {
		return nil, false
	}
	value, ok := f.Options[key]
	return value, ok
}

// Label returns the label option when it is a string.
func (f Field) Label() string {
	value, _ := f.Option("label")
	label, _ := value.(string)
	return label
}

// Document is the ordered list of sections handed to the rendering layer.
type Document []Field

// Walk visits every field depth-first in document order. Returning false from
// fn skips the children of the current field.
func (d Document) Walk(fn func(path []string, field *Field) bool) {
	for i := range d {
		walkField(nil, &d[i], fn)
	}
}

func walkField(parent []string, field *Field, fn func([]string, *Field) bool) {
	path := append(append([]string(nil), parent...), field.Name)
	if !fn(path, field) {
		return
	}
	for i := range field.Fields {
		walkField(path, &field.Fields[i], fn)
	}
}

// Clone returns a deep copy of the document. Option values are copied
// shallowly except for nested maps and slices produced by the decoders.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for i := range d {
		out[i] = d[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Options = cloneOptions(f.Options)
	if f.Condition != nil {
		cond := *f.Condition
		cond.Value = cloneValue(cond.Value)
		out.Condition = &cond
	}
	if f.Fields != nil {
		out.Fields = make([]Field, len(f.Fields))
		for i := range f.Fields {
			out.Fields[i] = f.Fields[i].Clone()
		}
	}
	return out
}

func cloneOptions(in Options) Options {
	if in == nil {
		return nil
	}
	out := make(Options, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			out[key] = cloneValue(nested)
		}
		return out
	case Options:
		return cloneOptions(typed)
	case []any:
		out := make([]any, len(typed))
		for i, nested := range typed {
			out[i] = cloneValue(nested)
		}
		return out
	default:
		return value
	}
}
