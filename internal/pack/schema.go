package pack

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// packageSchema is the JSON Schema every package file must satisfy before
// its questions are served.
var packageSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":  "integer",
			"const": PackageVersion,
		},
		"test_code": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":               map[string]any{"type": "string", "minLength": 1},
					"scenario":         map[string]any{"type": "string"},
					"question":         map[string]any{"type": "string", "minLength": 1},
					"option_a":         map[string]any{"type": "string"},
					"option_b":         map[string]any{"type": "string"},
					"option_c":         map[string]any{"type": "string"},
					"option_d":         map[string]any{"type": "string"},
					"option_e":         map[string]any{"type": "string"},
					"correct_answer":   map[string]any{"enum": []any{"A", "B", "C", "D", "E"}},
					"subtopic_list_id": map[string]any{"type": "string"},
					"competence":       map[string]any{"type": "string"},
					"image_url":        map[string]any{"type": "string"},
				},
				"required": []any{
					"id", "question",
					"option_a", "option_b", "option_c", "option_d", "option_e",
					"correct_answer",
				},
			},
		},
	},
	"required": []any{"version", "test_code", "questions"},
}

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// compiledPackageSchema compiles the package schema once per process.
func compiledPackageSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not Go maps
		// with typed values. Round-trip through encoding/json.
		raw, err := json.Marshal(packageSchema)
		if err != nil {
			compileSchemaError = fmt.Errorf("marshal package schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			compileSchemaError = fmt.Errorf("parse package schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-package.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileSchemaError = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaError = c.Compile(url)
	})
	return compiledSchema, compileSchemaError
}

// validatePackage checks raw package bytes against the schema.
func validatePackage(raw []byte) error {
	sch, err := compiledPackageSchema()
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
