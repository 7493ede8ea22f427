package blueprint

import (
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

// Block is one named block definition.
type Block struct {
	ID          string
	Source      string
	Title       string
	Description string
	// Fields placed outside any section land in the default section.
	Fields   []FieldSpec
	Sections []SectionSpec
}

// SectionSpec describes an accordion panel. Keys other than name, open and
// fields are passed to the builder as options. Options whose keys collide
// with one of those are written under a nested "options" mapping.
type SectionSpec struct {
	Name    string
	Open    *bool
	Fields  []FieldSpec
	Options fields.Options
}

// FieldSpec describes a control or a repeater. Keys other than name, type,
// fields and when are passed to the builder as options, with colliding keys
// nested under "options" like SectionSpec.
type FieldSpec struct {
	Name    string
	Type    string
	When    *fields.Condition
	Fields  []FieldSpec
	Options fields.Options
}

const nestedOptionsKey = "options"

var (
	sectionKeys = []string{"name", "open", "fields", nestedOptionsKey}
	fieldKeys   = []string{"name", "type", "when", "fields", nestedOptionsKey}
)

type sectionSpecYAML struct {
	Name    string         `yaml:"name"`
	Open    *bool          `yaml:"open,omitempty"`
	Fields  []FieldSpec    `yaml:"fields"`
	Nested  fields.Options `yaml:"options,omitempty"`
	Options fields.Options `yaml:",inline"`
}

type fieldSpecYAML struct {
	Name    string            `yaml:"name"`
	Type    string            `yaml:"type"`
	When    *fields.Condition `yaml:"when,omitempty"`
	Fields  []FieldSpec       `yaml:"fields,omitempty"`
	Nested  fields.Options    `yaml:"options,omitempty"`
	Options fields.Options    `yaml:",inline"`
}

func (s SectionSpec) MarshalYAML() (any, error) {
	inline, nested := splitOptions(s.Options, sectionKeys)
	return sectionSpecYAML{
		Name:    s.Name,
		Open:    s.Open,
		Fields:  s.Fields,
		Nested:  nested,
		Options: inline,
	}, nil
}

func (s *SectionSpec) UnmarshalYAML(node *yaml.Node) error {
	var raw sectionSpecYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*s = SectionSpec{
		Name:    raw.Name,
		Open:    raw.Open,
		Fields:  raw.Fields,
		Options: fields.Merge(raw.Options, raw.Nested),
	}
	return nil
}

func (f FieldSpec) MarshalYAML() (any, error) {
	inline, nested := splitOptions(f.Options, fieldKeys)
	return fieldSpecYAML{
		Name:    f.Name,
		Type:    f.Type,
		When:    f.When,
		Fields:  f.Fields,
		Nested:  nested,
		Options: inline,
	}, nil
}

func (f *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	var raw fieldSpecYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*f = FieldSpec{
		Name:    raw.Name,
		Type:    raw.Type,
		When:    raw.When,
		Fields:  raw.Fields,
		Options: fields.Merge(raw.Options, raw.Nested),
	}
	return nil
}

// splitOptions separates the options that can sit next to the structural
// keys from those that would collide with them.
func splitOptions(opts fields.Options, reserved []string) (inline, nested fields.Options) {
	for key, value := range opts {
		target := &inline
		for _, name := range reserved {
			if key == name {
				target = &nested
				break
			}
		}
		if *target == nil {
			*target = fields.Options{}
		}
		(*target)[key] = value
	}
	return inline, nested
}

type documentFile struct {
	Blocks map[string]blockFile `yaml:"blocks"`
}

type blockFile struct {
	Title       string        `yaml:"title,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Fields      []FieldSpec   `yaml:"fields,omitempty"`
	Sections    []SectionSpec `yaml:"sections,omitempty"`
}
