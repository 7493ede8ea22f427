package tree

// DefaultSectionLabel is the lookup key used to name the section that is
// opened implicitly when a field is added before any AddSection call.
const DefaultSectionLabel = "Block Options"

// Config configures the behaviour of the Builder. Config values are
// constructed by the public adapter in pkg/fields and passed into New.
type Config struct {
	LabelResolver LabelResolver
}

func defaultConfig() Config {
	return Config{
		LabelResolver: IdentityResolver,
	}
}
