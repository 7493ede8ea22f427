// Package sanitize strips unsafe markup from the display strings of a field
// document before it reaches an editor. Only string options under the
// configured keys are touched; values, choices and flags pass through.
//
// Strings without markup are returned unchanged. Strings with markup come
// back as an HTML fragment, so text around allowed tags is entity escaped,
// unless the Sanitizer runs in plain text mode. Section names are always
// reduced to plain text.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

// DefaultKeys lists the options treated as display text.
var DefaultKeys = []string{"label", "help", "placeholder", "button_label"}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// textSanitizer allows the inline formatting editors render in help text and
// messages: emphasis, code and links.
func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		textPolicy = policy
	})
	return textPolicy
}

func plainSanitizer() *bluemonday.Policy {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return plainPolicy
}

// Sanitizer cleans display strings in documents.
type Sanitizer struct {
	policy *bluemonday.Policy
	keys   map[string]struct{}
	plain  bool
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithPolicy replaces the default inline-formatting policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(s *Sanitizer) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithKeys replaces the option keys treated as display text.
func WithKeys(keys ...string) Option {
	return func(s *Sanitizer) {
		s.keys = keySet(keys)
	}
}

// WithPlainText strips every tag from display strings and returns them
// unescaped, for editors that render options as text.
func WithPlainText() Option {
	return func(s *Sanitizer) {
		s.plain = true
	}
}

// New returns a Sanitizer using the default policy and keys.
func New(options ...Option) *Sanitizer {
	s := &Sanitizer{
		policy: textSanitizer(),
		keys:   keySet(DefaultKeys),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// String sanitizes a single display string. Strings without markup are
// returned as is.
func (s *Sanitizer) String(raw string) string {
	if !hasMarkup(raw) {
		return raw
	}
	if s.plain {
		return s.Text(raw)
	}
	return strings.TrimSpace(s.policy.Sanitize(raw))
}

// Text removes all markup from raw and returns the remaining text with
// entities decoded.
func (s *Sanitizer) Text(raw string) string {
	if !hasMarkup(raw) {
		return raw
	}
	return strings.TrimSpace(html.UnescapeString(plainSanitizer().Sanitize(raw)))
}

func hasMarkup(raw string) bool {
	return strings.ContainsAny(raw, "<>")
}

// Document returns a sanitized copy of doc. Section names are cleaned too
// since they render as accordion titles.
func (s *Sanitizer) Document(doc fields.Document) fields.Document {
	out := doc.Clone()
	out.Walk(func(_ []string, field *fields.Field) bool {
		if field.Type == fields.KindSection {
			field.Name = s.Text(field.Name)
		}
		for key := range s.keys {
			value, ok := field.Options[key].(string)
			if !ok {
				continue
			}
			field.Options[key] = s.String(value)
		}
		return true
	})
	return out
}

func keySet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key = strings.TrimSpace(key); key != "" {
			out[key] = struct{}{}
		}
	}
	return out
}
