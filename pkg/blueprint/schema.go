package blueprint

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaURL = "blueprint.schema.json"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema blueprint files are checked against when
// WithSchemaValidation is set. Editors can use it for completion.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

func blueprintSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("blueprint: decode schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.DefaultDraft(jsonschema.Draft2020)
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("blueprint: add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a raw JSON/YAML file against the blueprint schema.
// YAML is re-encoded as JSON so both formats validate identically.
func validateSchema(data []byte, source string) error {
	schema, err := blueprintSchema()
	if err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("blueprint: parse %s: %w", source, err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("blueprint: encode %s: %w", source, err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("blueprint: decode %s: %w", source, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("blueprint: %s does not match the blueprint schema: %w", source, err)
	}
	return nil
}
