package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-blockfields/pkg/blueprint"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dir      string `short:"d" help:"Directory containing blueprint files" default:"./blocks"`
	Block    string `arg:"" optional:"" help:"Block id to build; lists the available ids when empty"`
	Strict   bool   `help:"Reject unknown field kinds"`
	Validate bool   `help:"Check blueprint files against the bundled JSON Schema"`
}

func (b *BuildCmd) Run(root *CLI) error {
	var options []blueprint.LoaderOption
	if b.Strict {
		options = append(options, blueprint.WithStrictKinds())
	}
	if b.Validate {
		options = append(options, blueprint.WithSchemaValidation())
	}
	store, err := blueprint.LoadFS(os.DirFS(b.Dir), options...)
	if err != nil {
		return fmt.Errorf("load blueprints: %w", err)
	}
	slog.Debug("Blueprints loaded", "dir", b.Dir, "blocks", len(store.IDs()))

	if b.Block == "" {
		for _, id := range store.IDs() {
			fmt.Fprintln(root.out(), id)
		}
		return nil
	}

	doc, err := store.Build(b.Block, root.BuilderOptions()...)
	if err != nil {
		return fmt.Errorf("build %s: %w", b.Block, err)
	}
	slog.Debug("Block built", "block", b.Block, "sections", len(doc))
	return root.WriteDocument(doc)
}
