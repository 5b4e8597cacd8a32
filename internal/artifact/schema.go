package artifact

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		entries, err := schemaFS.ReadDir("schemas")
		if err != nil {
			compileErr = fmt.Errorf("read embedded schemas: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		for _, e := range entries {
			data, err := schemaFS.ReadFile("schemas/" + e.Name())
			if err != nil {
				compileErr = fmt.Errorf("read schema %s: %w", e.Name(), err)
				return
			}
			if err := compiler.AddResource(e.Name(), bytes.NewReader(data)); err != nil {
				compileErr = fmt.Errorf("add schema %s: %w", e.Name(), err)
				return
			}
		}

		compiled = make(map[string]*jsonschema.Schema, len(entries))
		for _, e := range entries {
			schema, err := compiler.Compile(e.Name())
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", e.Name(), err)
				return
			}
			key := strings.TrimSuffix(e.Name(), ".schema.json")
			compiled[key] = schema
		}
	})
	return compiled, compileErr
}

// LoadValidatedJSON reads the latest JSON artifact for stem and validates
// it against the embedded schema of the same name before returning the raw
// document.
func (s *Store) LoadValidatedJSON(stem, schemaName string) (json.RawMessage, error) {
	path, err := s.Latest(stem, ".json")
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}

	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}

	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	schema, ok := schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("no embedded schema named %q", schemaName)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("artifact %s failed schema validation: %w", path, err)
	}

	return json.RawMessage(raw), nil
}

// decodeStrictJSON rejects trailing content and keeps numbers verbatim.
func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("document contains trailing content")
	}
	return value, nil
}
