package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-blockfields/pkg/fields"
	"github.com/goliatone/go-blockfields/pkg/sanitize"
)

// CLI definition & global flags shared by every command.
type CLI struct {
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`
	Locale   string           `short:"l" env:"BLOCKFIELDS_LOCALE" help:"Locale used for built-in labels such as the default section name"`
	Format   string           `short:"f" env:"BLOCKFIELDS_FORMAT" default:"json" enum:"json,yaml,yml" help:"Output format (json|yaml)"`
	Output   string           `short:"o" help:"Write output to a file instead of stdout"`
	Sanitize bool             `help:"Strip markup from labels, help texts and placeholders"`

	Build    BuildCmd    `cmd:"" help:"Build the field document of a blueprint block"`
	Import   ImportCmd   `cmd:"" help:"Import a field document from an OpenAPI component schema"`
	Scaffold ScaffoldCmd `cmd:"" help:"Interactively create a blueprint block"`
	Kinds    KindsCmd    `cmd:"" help:"List the supported field kinds"`
	Schema   SchemaCmd   `cmd:"" help:"Print the JSON Schema for blueprint files"`

	stdout io.Writer
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// BuilderOptions returns the builder options implied by the global flags.
func (c *CLI) BuilderOptions() []fields.BuilderOption {
	if c.Locale == "" {
		return nil
	}
	return []fields.BuilderOption{fields.WithTranslator(fields.NewCatalogTranslator(), c.Locale)}
}

// WriteDocument encodes doc in the selected format to --output or stdout.
func (c *CLI) WriteDocument(doc fields.Document) error {
	format, err := fields.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	if c.Sanitize {
		doc = sanitize.New().Document(doc)
	}
	return c.write(func(w io.Writer) error {
		return fields.Encode(w, doc, format)
	})
}

// WriteBytes copies raw output to --output or stdout.
func (c *CLI) WriteBytes(data []byte) error {
	return c.write(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (c *CLI) write(fn func(io.Writer) error) error {
	if c.Output == "" {
		return fn(c.out())
	}
	if dir := filepath.Dir(c.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	file, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	slog.Info("Output written", "path", c.Output)
	return nil
}

func (c *CLI) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}
