package tree

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	keyName      = "name"
	keyType      = "type"
	keyFields    = "fields"
	keyOpen      = "open"
	keyCondition = "condition"
)

func reservedKey(key string) bool {
	return key == keyName || key == keyType
}

// flatten merges the typed attributes and the options into the single object
// shape renderers consume. Structural keys win over options with the same
// name.
func (f Field) flatten() map[string]any {
	out := make(map[string]any, len(f.Options)+4)
	for key, value := range f.Options {
		out[key] = value
	}
	out[keyName] = f.Name
	out[keyType] = string(f.Type)
	if f.Type.IsContainer() {
		fields := f.Fields
		if fields == nil {
			fields = []Field{}
		}
		out[keyFields] = fields
	}
	if f.Type == KindSection {
		out[keyOpen] = f.Open
	}
	if f.Condition != nil {
		out[keyCondition] = *f.Condition
	}
	return out
}

// MarshalJSON encodes the field as a flat JSON object.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.flatten())
}

// UnmarshalJSON decodes the flat object produced by MarshalJSON.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Field
	if msg, ok := raw[keyName]; ok {
		if err := json.Unmarshal(msg, &decoded.Name); err != nil {
			return fmt.Errorf("tree: field name: %w", err)
		}
		delete(raw, keyName)
	}
	if msg, ok := raw[keyType]; ok {
		var kind string
		if err := json.Unmarshal(msg, &kind); err != nil {
			return fmt.Errorf("tree: field %q type: %w", decoded.Name, err)
		}
		decoded.Type = Kind(kind)
		delete(raw, keyType)
	}
	if decoded.Type.IsContainer() {
		if msg, ok := raw[keyFields]; ok {
			if err := json.Unmarshal(msg, &decoded.Fields); err != nil {
				return fmt.Errorf("tree: field %q children: %w", decoded.Name, err)
			}
			delete(raw, keyFields)
		}
		if decoded.Fields == nil {
			decoded.Fields = []Field{}
		}
	}
	if decoded.Type == KindSection {
		if msg, ok := raw[keyOpen]; ok {
			if err := json.Unmarshal(msg, &decoded.Open); err != nil {
				return fmt.Errorf("tree: section %q open flag: %w", decoded.Name, ErrInvalidOption)
			}
			delete(raw, keyOpen)
		}
	}
	if msg, ok := raw[keyCondition]; ok {
		var cond Condition
		if err := json.Unmarshal(msg, &cond); err == nil && cond.Name != "" {
			decoded.Condition = &cond
			delete(raw, keyCondition)
		}
	}

	if len(raw) > 0 {
		decoded.Options = make(Options, len(raw))
		for key, msg := range raw {
			var value any
			if err := json.Unmarshal(msg, &value); err != nil {
				return fmt.Errorf("tree: field %q option %q: %w", decoded.Name, key, err)
			}
			decoded.Options[key] = value
		}
	}

	*f = decoded
	return nil
}

// MarshalYAML encodes the field as a mapping with name and type first and the
// remaining keys sorted.
func (f Field) MarshalYAML() (any, error) {
	flat := f.flatten()
	node := &yaml.Node{Kind: yaml.MappingNode}

	keys := make([]string, 0, len(flat))
	for key := range flat {
		if key == keyName || key == keyType {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	keys = append([]string{keyName, keyType}, keys...)

	for _, key := range keys {
		var value yaml.Node
		if err := value.Encode(flat[key]); err != nil {
			return nil, fmt.Errorf("tree: encode %q of field %q: %w", key, f.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping produced by MarshalYAML or written by hand.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("tree: line %d: field must be a mapping", node.Line)
	}

	var decoded Field
	rest := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case keyName:
			if err := value.Decode(&decoded.Name); err != nil {
				return fmt.Errorf("tree: line %d: field name: %w", value.Line, err)
			}
		case keyType:
			var kind string
			if err := value.Decode(&kind); err != nil {
				return fmt.Errorf("tree: line %d: field type: %w", value.Line, err)
			}
			decoded.Type = Kind(kind)
		default:
			rest[key] = value
		}
	}

	// Structural keys depend on the kind, which may appear after them.
	if value, ok := rest[keyFields]; ok && decoded.Type.IsContainer() {
		if err := value.Decode(&decoded.Fields); err != nil {
			return err
		}
		delete(rest, keyFields)
	}
	if decoded.Type.IsContainer() && decoded.Fields == nil {
		decoded.Fields = []Field{}
	}
	if value, ok := rest[keyOpen]; ok && decoded.Type == KindSection {
		if err := value.Decode(&decoded.Open); err != nil {
			return fmt.Errorf("tree: line %d: section %q open flag: %w", value.Line, decoded.Name, ErrInvalidOption)
		}
		delete(rest, keyOpen)
	}
	if value, ok := rest[keyCondition]; ok {
		var cond Condition
		if err := value.Decode(&cond); err == nil && cond.Name != "" {
			cond.Value = normalizeYAML(cond.Value)
			decoded.Condition = &cond
			delete(rest, keyCondition)
		}
	}

	if len(rest) > 0 {
		decoded.Options = make(Options, len(rest))
		for key, value := range rest {
			var generic any
			if err := value.Decode(&generic); err != nil {
				return fmt.Errorf("tree: line %d: option %q: %w", value.Line, key, err)
			}
			decoded.Options[key] = normalizeYAML(generic)
		}
	}

	*f = decoded
	return nil
}

// normalizeYAML converts yaml.v3 integer values to the float64 representation
// used by encoding/json so documents compare equal regardless of the source
// format.
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint64:
		return float64(typed)
	case map[string]any:
		for key, nested := range typed {
			typed[key] = normalizeYAML(nested)
		}
		return typed
	case []any:
		for i, nested := range typed {
			typed[i] = normalizeYAML(nested)
		}
		return typed
	default:
		return value
	}
}
