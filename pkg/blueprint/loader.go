package blueprint

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

// Store holds the blocks loaded from one filesystem.
type Store struct {
	blocks map[string]Block
}

// LoaderOption configures LoadFS.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	strictKinds    bool
	validateSchema bool
}

// WithStrictKinds rejects field types outside the built-in kind set. By
// default unknown types are passed through for custom renderers.
func WithStrictKinds() LoaderOption {
	return func(opts *loaderOptions) {
		opts.strictKinds = true
	}
}

// WithSchemaValidation checks every file against the bundled JSON Schema
// (see Schema) before it is decoded.
func WithSchemaValidation() LoaderOption {
	return func(opts *loaderOptions) {
		opts.validateSchema = true
	}
}

// LoadFS walks the provided filesystem and parses JSON/YAML blueprint files.
// When fsys is nil or no blueprint files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS, options ...LoaderOption) (*Store, error) {
	cfg := loaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	store := &Store{blocks: make(map[string]Block)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isBlueprintFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("blueprint: read %s: %w", path, err)
		}
		return store.add(data, path, cfg)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Parse loads blocks from a single in-memory file. source is only used in
// error messages and Block.Source.
func Parse(data []byte, source string, options ...LoaderOption) (*Store, error) {
	cfg := loaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	store := &Store{blocks: make(map[string]Block)}
	if err := store.add(data, source, cfg); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(data []byte, source string, cfg loaderOptions) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	if cfg.validateSchema {
		if err := validateSchema(data, source); err != nil {
			return err
		}
	}

	for rawID, raw := range doc.Blocks {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("blueprint: file %s defines an empty block id", source)
		}
		if _, exists := s.blocks[id]; exists {
			return fmt.Errorf("blueprint: duplicate block %q (file %s)", id, source)
		}
		block, err := normaliseBlock(raw, id, source, cfg)
		if err != nil {
			return err
		}
		s.blocks[id] = block
	}
	return nil
}

// Block returns the definition registered under id.
func (s *Store) Block(id string) (Block, bool) {
	if s == nil {
		return Block{}, false
	}
	block, ok := s.blocks[id]
	return block, ok
}

// IDs returns the registered block ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.blocks))
	for id := range s.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any blocks.
func (s *Store) Empty() bool {
	return s == nil || len(s.blocks) == 0
}

// Build replays the block with the given id through a new builder.
func (s *Store) Build(id string, options ...fields.BuilderOption) (fields.Document, error) {
	block, ok := s.Block(id)
	if !ok {
		return nil, fmt.Errorf("blueprint: unknown block %q", id)
	}
	return block.Build(options...)
}

// parseDocument decodes JSON or YAML. YAML 1.2 is a superset of JSON so a
// single decoder covers both formats.
func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("blueprint: file %s is empty", source)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("blueprint: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseBlock(raw blockFile, id, source string, cfg loaderOptions) (Block, error) {
	block := Block{
		ID:          id,
		Source:      source,
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
	}

	var err error
	if block.Fields, err = normaliseFields(raw.Fields, id, source, cfg, false); err != nil {
		return Block{}, err
	}
	for idx, section := range raw.Sections {
		name := strings.TrimSpace(section.Name)
		if name == "" {
			return Block{}, fmt.Errorf("blueprint: block %q (file %s) section %d has no name", id, source, idx)
		}
		section.Name = name
		if section.Fields, err = normaliseFields(section.Fields, id, source, cfg, false); err != nil {
			return Block{}, err
		}
		block.Sections = append(block.Sections, section)
	}
	return block, nil
}

func normaliseFields(specs []FieldSpec, id, source string, cfg loaderOptions, inRepeater bool) ([]FieldSpec, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make([]FieldSpec, 0, len(specs))
	for idx, spec := range specs {
		spec.Name = strings.TrimSpace(spec.Name)
		spec.Type = strings.TrimSpace(spec.Type)
		if spec.Name == "" {
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %d has no name", id, source, idx)
		}
		if spec.Type == "" {
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %q has no type", id, source, spec.Name)
		}
		kind := fields.Kind(spec.Type)
		switch {
		case kind == fields.KindSection:
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %q: sections belong under \"sections\"", id, source, spec.Name)
		case kind == fields.KindRepeater && inRepeater:
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %q: repeaters cannot nest", id, source, spec.Name)
		case kind == fields.KindRepeater:
			nested, err := normaliseFields(spec.Fields, id, source, cfg, true)
			if err != nil {
				return nil, err
			}
			spec.Fields = nested
		case len(spec.Fields) > 0:
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %q of type %s cannot have child fields", id, source, spec.Name, spec.Type)
		case cfg.strictKinds && !kind.Known():
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %q has unknown type %q", id, source, spec.Name, spec.Type)
		}
		if spec.When != nil && strings.TrimSpace(spec.When.Name) == "" {
			return nil, fmt.Errorf("blueprint: block %q (file %s) field %q has a condition without a name", id, source, spec.Name)
		}
		out = append(out, spec)
	}
	return out, nil
}

func isBlueprintFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
