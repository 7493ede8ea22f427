package tree

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// LabelResolver maps a lookup key (such as DefaultSectionLabel) to the
// display string shown in the editor.
type LabelResolver func(key string) string

// IdentityResolver returns the key unchanged.
func IdentityResolver(key string) string {
	return key
}

// Translator resolves localized strings. The signature matches the
// translators used by the rendering layer so one implementation can serve
// both.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorResolver adapts a Translator into a LabelResolver for a fixed
// locale. Missing or blank translations fall back to the key.
func TranslatorResolver(t Translator, locale string) LabelResolver {
	if t == nil {
		return IdentityResolver
	}
	return func(key string) string {
		result, err := t.Translate(locale, key)
		if err != nil || strings.TrimSpace(result) == "" {
			return key
		}
		return result
	}
}

// ErrMissingTranslation is returned by CatalogTranslator when no message is
// registered for the key in the matched language.
var ErrMissingTranslation = errors.New("tree: missing translation")

// CatalogTranslator is a Translator backed by an x/text message catalog.
type CatalogTranslator struct {
	mu      sync.RWMutex
	builder *catalog.Builder
	keys    map[language.Tag]map[string]struct{}
}

// NewCatalogTranslator returns a translator seeded with the bundled
// translations of the default section label.
func NewCatalogTranslator() *CatalogTranslator {
	t := &CatalogTranslator{
		builder: catalog.NewBuilder(catalog.Fallback(language.English)),
		keys:    make(map[language.Tag]map[string]struct{}),
	}
	for locale, label := range bundledSectionLabels {
		// Bundled entries are well-formed; errors are impossible here.
		_ = t.Set(locale, DefaultSectionLabel, label)
	}
	return t
}

var bundledSectionLabels = map[string]string{
	"en": "Block Options",
	"de": "Blockoptionen",
	"es": "Opciones del bloque",
	"fr": "Options du bloc",
	"it": "Opzioni del blocco",
	"nl": "Blokopties",
	"pt": "Opções do bloco",
}

// Set registers a translation for key in locale.
func (t *CatalogTranslator) Set(locale, key, msg string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("tree: parse locale %q: %w", locale, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.builder.SetString(tag, key, msg); err != nil {
		return fmt.Errorf("tree: set %q for %s: %w", key, tag, err)
	}
	if t.keys[tag] == nil {
		t.keys[tag] = make(map[string]struct{})
	}
	t.keys[tag][key] = struct{}{}
	return nil
}

// Translate implements Translator. The locale is matched against the
// languages present in the catalog, so "de-AT" resolves German entries.
func (t *CatalogTranslator) Translate(locale, key string, args ...any) (string, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("tree: parse locale %q: %w", locale, err)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	tags := t.builder.Languages()
	if len(tags) == 0 {
		return "", ErrMissingTranslation
	}
	_, index, confidence := language.NewMatcher(tags).Match(requested)
	if confidence == language.No {
		return "", ErrMissingTranslation
	}
	matched := tags[index]
	if _, ok := t.keys[matched][key]; !ok {
		return "", ErrMissingTranslation
	}
	printer := message.NewPrinter(matched, message.Catalog(t.builder))
	return printer.Sprintf(key, args...), nil
}

var splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores/dashes and camelCase boundaries.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	caser := cases.Title(language.Und)
	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, caser.String(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamel(input string) string {
	var out strings.Builder
	var prev rune
	for i, r := range input {
		if i > 0 && isBoundary(prev, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
		prev = r
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r)) ||
		(unicode.IsDigit(prev) && unicode.IsLetter(r))
}
