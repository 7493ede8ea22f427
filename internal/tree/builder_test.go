package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild_EmptyBuilder(t *testing.T) {
	doc, err := New(Config{}).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc == nil || len(doc) != 0 {
		t.Fatalf("expected empty non-nil document, got %#v", doc)
	}
}

func TestAddField_OpensDefaultSection(t *testing.T) {
	b := New(Config{LabelResolver: func(key string) string { return "[" + key + "]" }})
	doc, err := b.AddText("title", Options{"label": "Title"}).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := Document{{
		Name: "[Block Options]",
		Type: KindSection,
		Open: true,
		Fields: []Field{
			{Name: "title", Type: KindText, Options: Options{"label": "Title"}},
		},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAddSection_PreservesCallOrder(t *testing.T) {
	doc, err := New(Config{}).
		AddSection("Content", nil).
		AddText("heading", nil).
		AddTextarea("body", nil).
		AddSection("Style", Options{"open": true}).
		AddColorPicker("background", Options{"alfa": true}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := Document{
		{Name: "Content", Type: KindSection, Fields: []Field{
			{Name: "heading", Type: KindText},
			{Name: "body", Type: KindTextarea},
		}},
		{Name: "Style", Type: KindSection, Open: true, Fields: []Field{
			{Name: "background", Type: KindColorPicker, Options: Options{"alfa": true}},
		}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRepeater_CollectsChildrenInOrder(t *testing.T) {
	doc, err := New(Config{}).
		AddSection("Slides", nil).
		AddToggle("autoplay", nil).
		AddRepeater("slides", Options{"button_label": "Add slide"}).
		AddImage("image", nil).
		AddText("caption", nil).
		EndRepeater().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	fields := doc[0].Fields
	if len(fields) != 2 {
		t.Fatalf("expected 2 section fields, got %d", len(fields))
	}
	want := Field{
		Name:    "slides",
		Type:    KindRepeater,
		Options: Options{"button_label": "Add slide"},
		Fields: []Field{
			{Name: "image", Type: KindImage},
			{Name: "caption", Type: KindText},
		},
	}
	if diff := cmp.Diff(want, fields[1]); diff != "" {
		t.Fatalf("repeater mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRepeater_WithoutSectionUsesDefault(t *testing.T) {
	doc, err := New(Config{}).
		AddRepeater("items", nil).
		AddText("label", nil).
		EndRepeater().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(doc) != 1 || doc[0].Name != DefaultSectionLabel || !doc[0].Open {
		t.Fatalf("expected default section, got %#v", doc)
	}
	if got := doc[0].Fields[0]; got.Type != KindRepeater || len(got.Fields) != 1 {
		t.Fatalf("expected repeater with one child, got %#v", got)
	}
}

func TestConditional_TargetsLastFieldOnly(t *testing.T) {
	doc, err := New(Config{}).
		AddToggle("show_button", nil).
		AddText("button_label", nil).
		Conditional("show_button", true).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	fields := doc[0].Fields
	if fields[0].Condition != nil {
		t.Fatalf("expected no condition on first field, got %#v", fields[0].Condition)
	}
	want := &Condition{Name: "show_button", Value: true}
	if diff := cmp.Diff(want, fields[1].Condition); diff != "" {
		t.Fatalf("condition mismatch (-want +got):\n%s", diff)
	}
}

func TestConditional_InsideRepeater(t *testing.T) {
	doc, err := New(Config{}).
		AddSection("Links", nil).
		AddText("title", nil).
		AddRepeater("links", nil).
		AddSelect("type", Options{"choices": Choices(Choice{Label: "URL", Value: "url"})}).
		AddLink("url", nil).
		Conditional("type", "url").
		EndRepeater().
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	section := doc[0]
	if section.Fields[0].Condition != nil {
		t.Fatalf("condition leaked to section field")
	}
	repeater := section.Fields[1]
	if repeater.Condition != nil {
		t.Fatalf("condition leaked to repeater")
	}
	if got := repeater.Fields[1].Condition; got == nil || got.Name != "type" || got.Value != "url" {
		t.Fatalf("expected condition on url field, got %#v", got)
	}
}

func TestConditional_NoOpWithoutField(t *testing.T) {
	cases := map[string]func(*Builder) *Builder{
		"no context": func(b *Builder) *Builder {
			return b.Conditional("x", 1)
		},
		"empty section": func(b *Builder) *Builder {
			return b.AddSection("Empty", nil).Conditional("x", 1)
		},
		"empty repeater": func(b *Builder) *Builder {
			return b.AddSection("S", nil).AddText("a", nil).AddRepeater("r", nil).Conditional("x", 1).EndRepeater()
		},
	}
	for name, chain := range cases {
		t.Run(name, func(t *testing.T) {
			b := chain(New(Config{}))
			doc, err := b.Build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			doc.Walk(func(_ []string, field *Field) bool {
				if field.Condition != nil {
					t.Fatalf("unexpected condition on %q", field.Name)
				}
				return true
			})
		})
	}
}

func TestBuild_IsIdempotent(t *testing.T) {
	b := New(Config{}).AddSection("One", nil).AddText("a", nil)
	first, err := b.Build()
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected a single section after two builds, got %d", len(second))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("builds differ (-first +second):\n%s", diff)
	}
}

func TestBuild_ReturnsIndependentCopy(t *testing.T) {
	b := New(Config{}).AddText("a", Options{"label": "A"})
	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc[0].Fields[0].Options["label"] = "mutated"

	again, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if again[0].Fields[0].Label() != "A" {
		t.Fatalf("builder state was mutated through returned document")
	}
}

func TestAddField_ExplicitNameAndTypeWin(t *testing.T) {
	opts := Options{"name": "other", "type": "Bogus", "label": "Title", "meta": true}
	doc, err := New(Config{}).AddText("title", opts).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	field := doc[0].Fields[0]
	if field.Name != "title" || field.Type != KindText {
		t.Fatalf("explicit parameters lost: %#v", field)
	}
	want := Options{"label": "Title", "meta": true}
	if diff := cmp.Diff(want, field.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if opts["name"] != "other" {
		t.Fatalf("caller options were modified")
	}
}

func TestOptionsRoundTrip_AllKinds(t *testing.T) {
	opts := Options{
		"label":       "Label",
		"help":        "Help",
		"placeholder": "Type here",
		"value":       42,
		"meta":        true,
		"colors":      Colors(Color{Name: "Red", Color: "#f00", Slug: "red"}),
	}

	b := New(Config{})
	adders := map[Kind]func(string, Options) *Builder{
		KindTimePicker:   b.AddTimePicker,
		KindFile:         b.AddFile,
		KindLink:         b.AddLink,
		KindText:         b.AddText,
		KindTextarea:     b.AddTextarea,
		KindToggle:       b.AddToggle,
		KindColorPalette: b.AddColorPalette,
		KindColorPicker:  b.AddColorPicker,
		KindSelect:       b.AddSelect,
		KindMessage:      b.AddMessage,
		KindImage:        b.AddImage,
		KindRichText:     b.AddRichText,
		KindRange:        b.AddRange,
	}
	for _, kind := range ControlKinds() {
		adders[kind](string(kind), opts)
	}

	doc, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fields := doc[0].Fields
	if len(fields) != len(adders) {
		t.Fatalf("expected %d fields, got %d", len(adders), len(fields))
	}
	for i, kind := range ControlKinds() {
		if fields[i].Type != kind || fields[i].Name != string(kind) {
			t.Fatalf("field %d: expected %s, got %s/%s", i, kind, fields[i].Name, fields[i].Type)
		}
		if diff := cmp.Diff(opts, fields[i].Options); diff != "" {
			t.Fatalf("%s options mismatch (-want +got):\n%s", kind, diff)
		}
	}
}

func TestAddField_AcceptsUnknownKind(t *testing.T) {
	doc, err := New(Config{}).AddField("custom", Kind("Gallery"), nil).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := doc[0].Fields[0].Type; got != "Gallery" || got.Known() {
		t.Fatalf("expected unknown kind to pass through, got %q", got)
	}
}

func TestInvalidTransitions(t *testing.T) {
	cases := []struct {
		name  string
		chain func(*Builder) *Builder
		op    string
	}{
		{
			name: "nested repeater",
			chain: func(b *Builder) *Builder {
				return b.AddRepeater("a", nil).AddRepeater("b", nil).EndRepeater()
			},
			op: "AddRepeater",
		},
		{
			name:  "end repeater without repeater",
			chain: func(b *Builder) *Builder { return b.AddSection("S", nil).EndRepeater() },
			op:    "EndRepeater",
		},
		{
			name:  "end repeater on fresh builder",
			chain: func(b *Builder) *Builder { return b.EndRepeater() },
			op:    "EndRepeater",
		},
		{
			name: "section while repeater open",
			chain: func(b *Builder) *Builder {
				return b.AddRepeater("r", nil).AddText("a", nil).AddSection("next", nil).EndRepeater()
			},
			op: "AddSection",
		},
		{
			name: "end section while repeater open",
			chain: func(b *Builder) *Builder {
				return b.AddRepeater("r", nil).EndSection().EndRepeater()
			},
			op: "EndSection",
		},
		{
			name:  "build with open repeater",
			chain: func(b *Builder) *Builder { return b.AddRepeater("r", nil).AddText("a", nil) },
			op:    "Build",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.chain(New(Config{}))
			doc, err := b.Build()
			if err == nil {
				t.Fatalf("expected error, got document %#v", doc)
			}
			if !errors.Is(err, ErrInvalidBuilderState) {
				t.Fatalf("expected ErrInvalidBuilderState, got %v", err)
			}
			var stateErr *StateError
			if !errors.As(err, &stateErr) || stateErr.Op != tc.op {
				t.Fatalf("expected %s state error, got %v", tc.op, err)
			}
			if doc != nil {
				t.Fatalf("expected nil document on error")
			}
		})
	}
}

func TestRejectedCallDoesNotMutate(t *testing.T) {
	b := New(Config{}).
		AddRepeater("first", nil).
		AddText("a", nil).
		AddRepeater("second", nil).
		AddText("b", nil)
	if b.State() != StateRepeater {
		t.Fatalf("expected repeater state, got %v", b.State())
	}
	if b.Err() == nil {
		t.Fatalf("expected recorded error")
	}

	b.Reset()
	if b.Err() != nil || b.State() != StateIdle {
		t.Fatalf("reset did not clear state")
	}

	doc, err := b.AddRepeater("first", nil).AddText("a", nil).AddText("b", nil).EndRepeater().Build()
	if err != nil {
		t.Fatalf("build after reset: %v", err)
	}
	if got := len(doc[0].Fields[0].Fields); got != 2 {
		t.Fatalf("expected both fields in first repeater, got %d", got)
	}
}

func TestEndSection(t *testing.T) {
	b := New(Config{}).EndSection()
	if b.State() != StateIdle {
		t.Fatalf("end section on idle builder should be a no-op")
	}

	doc, err := b.AddSection("A", nil).AddText("x", nil).EndSection().AddText("y", nil).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(doc) != 2 {
		t.Fatalf("expected explicit section plus default section, got %d", len(doc))
	}
	if doc[1].Name != DefaultSectionLabel {
		t.Fatalf("expected trailing default section, got %q", doc[1].Name)
	}
}

func TestBuild_RepeatedCallsReportOpenRepeaterOnce(t *testing.T) {
	b := New(Config{}).AddRepeater("items", nil).AddText("a", nil)

	for i := 0; i < 3; i++ {
		if _, err := b.Build(); err == nil {
			t.Fatalf("build %d: expected error", i)
		}
	}

	joined, ok := b.Err().(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined error, got %T", b.Err())
	}
	if got := len(joined.Unwrap()); got != 1 {
		t.Fatalf("expected a single recorded error, got %d: %v", got, b.Err())
	}
}

func TestAddSection_RejectsNonBoolOpen(t *testing.T) {
	b := New(Config{}).
		AddSection("First", nil).
		AddText("a", nil).
		AddSection("Second", Options{"open": "yes"})

	if b.State() != StateSection {
		t.Fatalf("expected first section to stay open, got %v", b.State())
	}

	_, err := b.Build()
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	var optErr *OptionError
	if !errors.As(err, &optErr) {
		t.Fatalf("expected option error, got %v", err)
	}
	want := OptionError{Op: "AddSection", Name: "Second", Key: "open", Value: "yes"}
	if diff := cmp.Diff(want, *optErr); diff != "" {
		t.Fatalf("option error mismatch (-want +got):\n%s", diff)
	}
}

func TestAddSection_BoolOpenLiftsIntoField(t *testing.T) {
	doc, err := New(Config{}).AddSection("Layout", Options{"open": false, "label": "L"}).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := Document{{Name: "Layout", Type: KindSection, Fields: []Field{}, Options: Options{"label": "L"}}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}
