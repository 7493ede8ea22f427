// Package visibility evaluates field conditions against saved block values
// and reports which fields an editor should hide.
package visibility

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-blockfields/pkg/fields"
)

// Evaluator decides whether a field guarded by cond is visible.
type Evaluator interface {
	Eval(path []string, cond fields.Condition, ctx Context) (bool, error)
}

// Context carries the values of the scope the condition is evaluated in: the
// whole block for section fields, one item for repeater children.
type Context struct {
	Values map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(path []string, cond fields.Condition, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(path []string, cond fields.Condition, ctx Context) (bool, error) {
	return fn(path, cond, ctx)
}

// Equal is the default evaluator: the referenced value must equal the
// condition value. A missing value only matches a nil condition value.
// Numbers compare by value regardless of their Go type.
var Equal = EvaluatorFunc(func(_ []string, cond fields.Condition, ctx Context) (bool, error) {
	return reflect.DeepEqual(normalise(ctx.Values[cond.Name]), normalise(cond.Value)), nil
})

// Option customises Hidden.
type Option func(*config)

type config struct {
	evaluator Evaluator
}

// WithEvaluator replaces the default Equal evaluator.
func WithEvaluator(evaluator Evaluator) Option {
	return func(cfg *config) {
		if evaluator != nil {
			cfg.evaluator = evaluator
		}
	}
}

// Hidden returns the dotted paths of fields whose condition does not hold
// for values. Repeater children are reported per item ("slides.0.caption").
// Children of a hidden field are not reported separately.
func Hidden(doc fields.Document, values map[string]any, options ...Option) ([]string, error) {
	cfg := config{evaluator: Equal}
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}

	var hidden []string
	for _, section := range doc {
		if err := cfg.walk(section.Fields, values, nil, &hidden); err != nil {
			return nil, err
		}
	}
	return hidden, nil
}

func (cfg config) walk(list []fields.Field, scope map[string]any, prefix []string, hidden *[]string) error {
	for _, field := range list {
		path := append(append([]string(nil), prefix...), field.Name)
		if field.Condition != nil {
			ok, err := cfg.evaluator.Eval(path, *field.Condition, Context{Values: scope})
			if err != nil {
				return err
			}
			if !ok {
				*hidden = append(*hidden, strings.Join(path, "."))
				continue
			}
		}
		if field.Type != fields.KindRepeater {
			continue
		}
		items, _ := scope[field.Name].([]any)
		for idx, item := range items {
			values, ok := item.(map[string]any)
			if !ok {
				continue
			}
			itemPath := append(append([]string(nil), path...), strconv.Itoa(idx))
			if err := cfg.walk(field.Fields, values, itemPath, hidden); err != nil {
				return err
			}
		}
	}
	return nil
}

func normalise(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}
