package tree

import (
	"errors"
	"testing"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestTranslatorResolver_FallsBackToKey(t *testing.T) {
	resolve := TranslatorResolver(stubTranslator{"Block Options": "Opciones", "blank": "  "}, "es")
	if got := resolve("Block Options"); got != "Opciones" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := resolve("missing"); got != "missing" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := resolve("blank"); got != "blank" {
		t.Fatalf("expected key fallback for blank translation, got %q", got)
	}
	if got := TranslatorResolver(nil, "es")("x"); got != "x" {
		t.Fatalf("nil translator should behave as identity, got %q", got)
	}
}

func TestCatalogTranslator(t *testing.T) {
	translator := NewCatalogTranslator()

	got, err := translator.Translate("de-AT", DefaultSectionLabel)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Blockoptionen" {
		t.Fatalf("expected regional match to German, got %q", got)
	}

	if _, err := translator.Translate("de", "unknown key"); !errors.Is(err, ErrMissingTranslation) {
		t.Fatalf("expected ErrMissingTranslation, got %v", err)
	}
	if _, err := translator.Translate("not a locale!", DefaultSectionLabel); err == nil {
		t.Fatalf("expected parse error")
	}

	if err := translator.Set("sv", DefaultSectionLabel, "Blockalternativ"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := TranslatorResolver(translator, "sv")(DefaultSectionLabel); got != "Blockalternativ" {
		t.Fatalf("expected added translation, got %q", got)
	}
}

func TestDefaultSectionUsesTranslator(t *testing.T) {
	resolver := TranslatorResolver(NewCatalogTranslator(), "fr")
	doc, err := New(Config{LabelResolver: resolver}).AddText("a", nil).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc[0].Name != "Options du bloc" {
		t.Fatalf("expected translated default section, got %q", doc[0].Name)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"button_label":  "Button Label",
		"backgroundURL": "Background Url",
		"size2x":        "Size 2 X",
		"is-12-hour":    "Is 12 Hour",
		"caféMenu":      "Café Menu",
		"größeZ2":       "Größe Z 2",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}
