package tree

import "errors"

// State captures which contexts are open on a Builder.
type State int

const (
	// StateIdle means no section is open; the next field opens the default
	// section.
	StateIdle State = iota
	// StateSection means a section is open and receives new fields.
	StateSection
	// StateRepeater means a repeater is open inside the current section and
	// receives new fields until EndRepeater.
	StateRepeater
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "no section is open"
	case StateSection:
		return "a section is open"
	case StateRepeater:
		return "a repeater is open"
	default:
		return "unknown state"
	}
}

// Builder assembles a Document of sections through chained calls. A Builder
// is not safe for concurrent use.
type Builder struct {
	cfg      Config
	state    State
	sections Document
	section  Field
	repeater Field
	errs     []error
}

// New creates a Builder with the supplied configuration.
func New(cfg Config) *Builder {
	resolved := defaultConfig()
	if cfg.LabelResolver != nil {
		resolved.LabelResolver = cfg.LabelResolver
	}
	return &Builder{cfg: resolved}
}

// State reports which contexts are currently open.
func (b *Builder) State() State {
	return b.state
}

// Err returns the rejected calls recorded so far, joined, or nil.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// Reset discards all accumulated sections, open contexts and errors.
func (b *Builder) Reset() *Builder {
	cfg := b.cfg
	*b = Builder{cfg: cfg}
	return b
}

// AddField appends a field of the given kind to the innermost open context,
// opening the default section first when nothing is open. The name and kind
// arguments always win over "name"/"type" keys in opts.
func (b *Builder) AddField(name string, kind Kind, opts Options) *Builder {
	field := newField(name, kind, opts)
	if b.state == StateIdle {
		b.openDefaultSection()
	}
	if b.state == StateRepeater {
		b.repeater.Fields = append(b.repeater.Fields, field)
	} else {
		b.section.Fields = append(b.section.Fields, field)
	}
	return b
}

// AddTimePicker adds a TimePicker control.
// Typical options: label, help, is12hour, meta.
func (b *Builder) AddTimePicker(name string, opts Options) *Builder {
	return b.AddField(name, KindTimePicker, opts)
}

// AddFile adds a File control.
// Typical options: label, help, meta.
func (b *Builder) AddFile(name string, opts Options) *Builder {
	return b.AddField(name, KindFile, opts)
}

// AddLink adds a Link control.
// Typical options: label, placeholder, use_title, meta.
func (b *Builder) AddLink(name string, opts Options) *Builder {
	return b.AddField(name, KindLink, opts)
}

// AddText adds a single line Text control.
// Typical options: label, help, value, placeholder, meta.
func (b *Builder) AddText(name string, opts Options) *Builder {
	return b.AddField(name, KindText, opts)
}

// AddTextarea adds a multi-line Textarea control.
// Typical options: label, help, value, placeholder, meta.
func (b *Builder) AddTextarea(name string, opts Options) *Builder {
	return b.AddField(name, KindTextarea, opts)
}

// AddToggle adds a boolean Toggle control.
// Typical options: label, help, value (bool), meta.
func (b *Builder) AddToggle(name string, opts Options) *Builder {
	return b.AddField(name, KindToggle, opts)
}

// AddColorPalette adds a ColorPalette control.
// Typical options: label, help, colors ([]{name, color, slug}), value, meta.
func (b *Builder) AddColorPalette(name string, opts Options) *Builder {
	return b.AddField(name, KindColorPalette, opts)
}

// AddColorPicker adds a ColorPicker control.
// Typical options: label, help, alfa (bool), meta.
func (b *Builder) AddColorPicker(name string, opts Options) *Builder {
	return b.AddField(name, KindColorPicker, opts)
}

// AddSelect adds a Select control.
// Typical options: label, help, choices ([]{label, value}), value, meta.
func (b *Builder) AddSelect(name string, opts Options) *Builder {
	return b.AddField(name, KindSelect, opts)
}

// AddMessage adds a read-only Message.
// Typical options: label, help.
func (b *Builder) AddMessage(name string, opts Options) *Builder {
	return b.AddField(name, KindMessage, opts)
}

// AddImage adds an Image control.
// Typical options: label, help, value (attachment id), meta.
func (b *Builder) AddImage(name string, opts Options) *Builder {
	return b.AddField(name, KindImage, opts)
}

// AddRichText adds a RichText control.
// Typical options: label, help, placeholder, value, meta.
func (b *Builder) AddRichText(name string, opts Options) *Builder {
	return b.AddField(name, KindRichText, opts)
}

// AddRange adds a numeric Range control.
// Typical options: label, help, placeholder, step, min, max, value, meta.
func (b *Builder) AddRange(name string, opts Options) *Builder {
	return b.AddField(name, KindRange, opts)
}

// AddRepeater opens a repeater; fields added until EndRepeater become its
// children. Opening a second repeater before closing the first is rejected.
// Typical options: label, help, button_label, meta.
func (b *Builder) AddRepeater(name string, opts Options) *Builder {
	if b.state == StateRepeater {
		return b.reject("AddRepeater", name)
	}
	if b.state == StateIdle {
		b.openDefaultSection()
	}
	b.repeater = newField(name, KindRepeater, opts)
	b.repeater.Fields = []Field{}
	b.state = StateRepeater
	return b
}

// EndRepeater closes the open repeater and appends it as the last field of
// the current section.
func (b *Builder) EndRepeater() *Builder {
	if b.state != StateRepeater {
		return b.reject("EndRepeater", "")
	}
	b.section.Fields = append(b.section.Fields, b.repeater)
	b.repeater = Field{}
	b.state = StateSection
	return b
}

// AddSection closes the current section, if any, and opens a new one.
// Typical options: open (bool).
func (b *Builder) AddSection(name string, opts Options) *Builder {
	if b.state == StateRepeater {
		return b.reject("AddSection", name)
	}
	if value, ok := opts[keyOpen]; ok {
		if _, isBool := value.(bool); !isBool {
			b.errs = append(b.errs, &OptionError{Op: "AddSection", Name: name, Key: keyOpen, Value: value})
			return b
		}
	}
	b.closeSection()
	b.section = newField(name, KindSection, opts)
	b.section.Fields = []Field{}
	openFlag(&b.section)
	b.state = StateSection
	return b
}

// EndSection closes the current section. It is a no-op when no section is
// open.
func (b *Builder) EndSection() *Builder {
	if b.state == StateRepeater {
		return b.reject("EndSection", "")
	}
	b.closeSection()
	return b
}

// Conditional attaches a visibility condition to the most recently added field
// of the innermost open context. Nothing happens when that context has no
// fields yet or when no context is open.
func (b *Builder) Conditional(name string, value any) *Builder {
	var fields []Field
	switch b.state {
	case StateRepeater:
		fields = b.repeater.Fields
	case StateSection:
		fields = b.section.Fields
	default:
		return b
	}
	if len(fields) == 0 {
		return b
	}
	fields[len(fields)-1].Condition = &Condition{Name: name, Value: value}
	return b
}

// Build closes the open section and returns a copy of the document. Calling
// Build again without further changes returns an equal document. Build fails
// when a repeater is still open or when earlier calls were rejected.
func (b *Builder) Build() (Document, error) {
	if b.state == StateRepeater && !b.buildRejected() {
		b.reject("Build", b.repeater.Name)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	b.closeSection()
	out := b.sections.Clone()
	if out == nil {
		out = Document{}
	}
	return out, nil
}

func (b *Builder) openDefaultSection() {
	b.section = Field{
		Name:   b.cfg.LabelResolver(DefaultSectionLabel),
		Type:   KindSection,
		Fields: []Field{},
		Open:   true,
	}
	b.state = StateSection
}

func (b *Builder) closeSection() {
	if b.state != StateSection {
		return
	}
	b.sections = append(b.sections, b.section)
	b.section = Field{}
	b.state = StateIdle
}

func (b *Builder) reject(op, name string) *Builder {
	b.errs = append(b.errs, &StateError{Op: op, State: b.state, Name: name})
	return b
}

// buildRejected reports whether an earlier Build already recorded the open
// repeater.
func (b *Builder) buildRejected() bool {
	for _, err := range b.errs {
		if stateErr, ok := err.(*StateError); ok && stateErr.Op == "Build" {
			return true
		}
	}
	return false
}

func newField(name string, kind Kind, opts Options) Field {
	field := Field{Name: name, Type: kind}
	if len(opts) == 0 {
		return field
	}
	field.Options = make(Options, len(opts))
	for key, value := range opts {
		if reservedKey(key) {
			continue
		}
		field.Options[key] = value
	}
	if len(field.Options) == 0 {
		field.Options = nil
	}
	return field
}

// openFlag lifts the accordion state out of the section options into the
// typed Open field. AddSection rejects non-boolean values before this runs.
func openFlag(field *Field) {
	open, ok := field.Options[keyOpen].(bool)
	if !ok {
		return
	}
	field.Open = open
	delete(field.Options, keyOpen)
	if len(field.Options) == 0 {
		field.Options = nil
	}
}
