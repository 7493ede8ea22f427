package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-blockfields/pkg/blueprint"
	"github.com/goliatone/go-blockfields/pkg/scaffold"
)

// ScaffoldCmd implements the 'scaffold' command. The blueprint is always
// written as YAML; --format is ignored.
type ScaffoldCmd struct {
	ID string `help:"Suggested block id"`

	driver scaffold.PromptDriver
}

func (s *ScaffoldCmd) Run(root *CLI) error {
	driver := s.driver
	if driver == nil {
		driver = scaffold.NewSurveyDriver()
	}
	block, doc, err := scaffold.Run(context.Background(), driver, scaffold.Options{
		BlockID:        s.ID,
		BuilderOptions: root.BuilderOptions(),
	})
	if err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	slog.Debug("Block scaffolded", "block", block.ID, "sections", len(doc))

	data, err := blueprint.Marshal(block)
	if err != nil {
		return err
	}
	return root.WriteBytes(data)
}
