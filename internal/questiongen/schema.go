package questiongen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// QuestionSchema returns the JSON Schema definition every recovered object
// must satisfy. Only the shared keys are constrained: question must be a
// non-empty string and options an array. Section keys such as data,
// solution_code or sample_test_cases are left to the typed accessors, which
// read them leniently.
func QuestionSchema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"question":    map[string]any{"type": "string", "minLength": 1},
			"options":     map[string]any{"type": "array"},
			"answer":      map[string]any{},
			"explanation": map[string]any{},
		},
		"required": []any{"question", "options", "answer", "explanation"},
	}
}

var compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// compiledSchema returns the question schema, compiled on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	compiled.once.Do(func() {
		compiled.schema, compiled.err = compileSchema()
	})
	return compiled.schema, compiled.err
}

func compileSchema() (*jsonschema.Schema, error) {
	// The compiler wants plain decoded JSON, so round-trip the definition.
	defBytes, err := json.Marshal(QuestionSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal question schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse question schema: %w", err)
	}

	const url = "schema://question.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add question schema: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}
	return sch, nil
}
