// Package benchmark compares the translation backends against a fixed set
// of inputs and reports per-case timing statistics.
package benchmark

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed benchmark_cases.schema.json
var casesSchemaJSON string

//go:embed default_cases.json
var defaultCasesJSON []byte

// Case is one benchmark input. Direction is not stored: it follows from
// the text itself, exactly as in a real invocation.
type Case struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Text string `json:"text"`
}

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// DefaultCases returns the built-in case set: a short and a long text per
// direction.
func DefaultCases() ([]Case, error) {
	return ParseCases(defaultCasesJSON)
}

// LoadCasesFile reads and validates a user-supplied case file.
func LoadCasesFile(path string) ([]Case, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}
	cases, err := ParseCases(raw)
	if err != nil {
		return nil, fmt.Errorf("case file %s: %w", path, err)
	}
	return cases, nil
}

// ParseCases decodes raw JSON into cases, rejecting anything the schema or
// the semantic checks disallow.
func ParseCases(raw []byte) ([]Case, error) {
	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode cases JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize cases JSON: %w", err)
	}

	var cases []Case
	if err := json.Unmarshal(normalized, &cases); err != nil {
		return nil, fmt.Errorf("unmarshal cases: %w", err)
	}

	if err := validateSemantics(cases); err != nil {
		return nil, err
	}

	return cases, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("benchmark_cases.schema.json", strings.NewReader(casesSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("benchmark_cases.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("input contains trailing content")
	}

	return value, nil
}

func validateSemantics(cases []Case) error {
	seen := make(map[string]struct{}, len(cases))
	for i, c := range cases {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("cases[%d].name must not be blank", i)
		}
		if strings.TrimSpace(c.Text) == "" {
			return fmt.Errorf("cases[%d].text must not be blank", i)
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("duplicate case key %q", c.Key)
		}
		seen[c.Key] = struct{}{}
	}
	return nil
}
