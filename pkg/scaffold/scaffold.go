// Package scaffold walks a user through an interactive prompt session and
// produces a blueprint block. The answers are replayed through the field tree
// builder, so a scaffolded block always builds.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-blockfields/pkg/blueprint"
	"github.com/goliatone/go-blockfields/pkg/fields"
)

const doneOption = "(done)"

// Options tunes the session.
type Options struct {
	// BlockID pre-fills the block id prompt.
	BlockID string
	// BuilderOptions are forwarded to the field tree builder.
	BuilderOptions []fields.BuilderOption
}

// Run asks for a block id, sections and fields and returns the resulting
// block definition together with its built document.
func Run(ctx context.Context, driver PromptDriver, opts Options) (blueprint.Block, fields.Document, error) {
	if driver == nil {
		return blueprint.Block{}, nil, errors.New("scaffold: prompt driver is required")
	}
	s := &session{ctx: ctx, driver: driver, builder: fields.NewBuilder(opts.BuilderOptions...)}

	id, err := s.input("Block id", opts.BlockID, requireValue)
	if err != nil {
		return blueprint.Block{}, nil, err
	}
	title, err := s.input("Block title", fields.DefaultLabeler(id), nil)
	if err != nil {
		return blueprint.Block{}, nil, err
	}

	for {
		more, err := s.confirm("Add a section?", true)
		if err != nil {
			return blueprint.Block{}, nil, err
		}
		if !more {
			break
		}
		name, err := s.input("Section name", "", requireValue)
		if err != nil {
			return blueprint.Block{}, nil, err
		}
		open, err := s.confirm("Expanded by default?", false)
		if err != nil {
			return blueprint.Block{}, nil, err
		}
		s.builder.AddSection(name, fields.Options{"open": open})
		s.names = nil
		if err := s.fieldLoop(false); err != nil {
			return blueprint.Block{}, nil, err
		}
	}

	doc, err := s.builder.Build()
	if err != nil {
		return blueprint.Block{}, nil, fmt.Errorf("scaffold: %w", err)
	}
	block := blueprint.ToSpec(strings.TrimSpace(id), doc)
	block.Title = strings.TrimSpace(title)
	if err := driver.Info(ctx, fmt.Sprintf("Block %q has %d section(s).", block.ID, len(doc))); err != nil {
		return blueprint.Block{}, nil, err
	}
	return block, doc, nil
}

type session struct {
	ctx     context.Context
	driver  PromptDriver
	builder *fields.Builder
	// names holds the fields of the innermost context, offered as condition
	// targets.
	names []string
}

func (s *session) fieldLoop(inRepeater bool) error {
	kinds := kindOptions(inRepeater)
	for {
		idx, err := s.driver.Select(s.ctx, SelectConfig{
			Message:  "Field type",
			Options:  kinds,
			PageSize: len(kinds),
		})
		if err != nil {
			return err
		}
		if idx < 0 || kinds[idx] == doneOption {
			return nil
		}
		kind := fields.Kind(kinds[idx])

		name, err := s.input("Field name", "", requireValue)
		if err != nil {
			return err
		}
		label, err := s.input("Label", fields.DefaultLabeler(name), nil)
		if err != nil {
			return err
		}
		opts := fields.Options{}
		if strings.TrimSpace(label) != "" {
			opts["label"] = strings.TrimSpace(label)
		}

		targets := append([]string(nil), s.names...)
		if kind == fields.KindRepeater {
			s.builder.AddRepeater(name, opts)
			outer := s.names
			s.names = nil
			if err := s.fieldLoop(true); err != nil {
				return err
			}
			s.builder.EndRepeater()
			s.names = outer
		} else {
			s.builder.AddField(name, kind, opts)
		}
		s.names = append(s.names, name)

		if err := s.condition(targets); err != nil {
			return err
		}
	}
}

func (s *session) condition(targets []string) error {
	if len(targets) == 0 {
		return nil
	}
	conditional, err := s.confirm("Show only when another field has a value?", false)
	if err != nil || !conditional {
		return err
	}
	idx, err := s.driver.Select(s.ctx, SelectConfig{Message: "Depends on", Options: targets})
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}
	raw, err := s.input("Required value", "true", nil)
	if err != nil {
		return err
	}
	s.builder.Conditional(targets[idx], parseValue(raw))
	return nil
}

func (s *session) input(message, def string, validator func(string) error) (string, error) {
	return s.driver.Input(s.ctx, InputConfig{Message: message, Default: def, Validator: validator})
}

func (s *session) confirm(message string, def bool) (bool, error) {
	return s.driver.Confirm(s.ctx, ConfirmConfig{Message: message, Default: def})
}

func kindOptions(inRepeater bool) []string {
	out := make([]string, 0, len(fields.ControlKinds())+2)
	for _, kind := range fields.ControlKinds() {
		out = append(out, string(kind))
	}
	if !inRepeater {
		out = append(out, string(fields.KindRepeater))
	}
	return append(out, doneOption)
}

func requireValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}

// parseValue keeps booleans and numbers typed so conditions compare against
// toggle and range values.
func parseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(trimmed); err == nil {
		return b
	}
	return trimmed
}
