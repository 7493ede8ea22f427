package commands

import (
	"fmt"

	"github.com/goliatone/go-blockfields/pkg/blueprint"
	"github.com/goliatone/go-blockfields/pkg/fields"
)

// KindsCmd implements the 'kinds' command.
type KindsCmd struct {
	Containers bool `help:"Include Repeater and Section"`
}

func (k *KindsCmd) Run(root *CLI) error {
	kinds := fields.ControlKinds()
	if k.Containers {
		kinds = append(kinds, fields.KindRepeater, fields.KindSection)
	}
	for _, kind := range kinds {
		if _, err := fmt.Fprintln(root.out(), kind); err != nil {
			return err
		}
	}
	return nil
}

// SchemaCmd implements the 'schema' command.
type SchemaCmd struct{}

func (s *SchemaCmd) Run(root *CLI) error {
	return root.WriteBytes(blueprint.Schema())
}
