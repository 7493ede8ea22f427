package blueprint

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

// Build replays the block definition through a new builder: loose fields
// first, then each section in order.
func (b Block) Build(options ...fields.BuilderOption) (fields.Document, error) {
	builder := fields.NewBuilder(options...)
	for _, spec := range b.Fields {
		addSpec(builder, spec)
	}
	for _, section := range b.Sections {
		opts := fields.Merge(section.Options)
		if section.Open != nil {
			opts = fields.Merge(opts, fields.Options{"open": *section.Open})
		}
		builder.AddSection(section.Name, opts)
		for _, spec := range section.Fields {
			addSpec(builder, spec)
		}
	}

	doc, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("blueprint: build %q: %w", b.ID, err)
	}
	return doc, nil
}

func addSpec(builder *fields.Builder, spec FieldSpec) {
	kind := fields.Kind(spec.Type)
	if kind == fields.KindRepeater {
		builder.AddRepeater(spec.Name, spec.Options)
		for _, child := range spec.Fields {
			addSpec(builder, child)
		}
		builder.EndRepeater()
	} else {
		builder.AddField(spec.Name, kind, spec.Options)
	}
	if spec.When != nil {
		builder.Conditional(spec.When.Name, spec.When.Value)
	}
}

// ToSpec converts a built document back into block sections, e.g. to
// persist a tree assembled in code or by the scaffold prompts.
func ToSpec(id string, doc fields.Document) Block {
	block := Block{ID: id}
	for _, section := range doc {
		open := section.Open
		block.Sections = append(block.Sections, SectionSpec{
			Name:    section.Name,
			Open:    &open,
			Fields:  specsFromFields(section.Fields),
			Options: section.Options,
		})
	}
	return block
}

func specsFromFields(in []fields.Field) []FieldSpec {
	if len(in) == 0 {
		return nil
	}
	out := make([]FieldSpec, 0, len(in))
	for _, field := range in {
		spec := FieldSpec{
			Name:    field.Name,
			Type:    string(field.Type),
			Options: field.Options,
			Fields:  specsFromFields(field.Fields),
		}
		if field.Condition != nil {
			cond := *field.Condition
			spec.When = &cond
		}
		out = append(out, spec)
	}
	return out
}

// Marshal encodes blocks in the blueprint YAML layout.
func Marshal(blocks ...Block) ([]byte, error) {
	doc := documentFile{Blocks: make(map[string]blockFile, len(blocks))}
	for _, block := range blocks {
		doc.Blocks[block.ID] = blockFile{
			Title:       block.Title,
			Description: block.Description,
			Fields:      block.Fields,
			Sections:    block.Sections,
		}
	}
	return marshalYAML(doc)
}

func marshalYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("blueprint: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("blueprint: encode: %w", err)
	}
	return buf.Bytes(), nil
}
