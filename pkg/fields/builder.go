package fields

import "github.com/goliatone/go-blockfields/internal/tree"

// Builder is the chained field tree builder.
type Builder = tree.Builder

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	resolver LabelResolver
}

// WithLabelResolver overrides how the default section label is resolved.
func WithLabelResolver(resolver LabelResolver) BuilderOption {
	return func(opts *builderOptions) {
		opts.resolver = resolver
	}
}

// WithTranslator resolves the default section label through t for locale,
// falling back to the untranslated key.
func WithTranslator(t Translator, locale string) BuilderOption {
	return func(opts *builderOptions) {
		opts.resolver = tree.TranslatorResolver(t, locale)
	}
}

// NewBuilder returns an empty Builder.
func NewBuilder(options ...BuilderOption) *Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	internalCfg := tree.Config{}
	if cfg.resolver != nil {
		internalCfg.LabelResolver = cfg.resolver
	}

	return tree.New(internalCfg)
}
