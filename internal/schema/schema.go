package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultSchema names the embedded version 1 schema.
const DefaultSchema = "warlords_v1.json.schema"

//go:embed warlords_v1.json.schema
var defaultSchema []byte

// SchemaError reports a document that did not pass validation.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("document failed validation against %s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Gate validates documents before they are persisted. Compiled schemas are
// memoized by path for the lifetime of the Gate.
type Gate struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

func NewGate() *Gate {
	return &Gate{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validator returns the compiled schema for path, compiling it on first use.
// An empty path or DefaultSchema selects the embedded schema.
func (g *Gate) Validator(path string) (*jsonschema.Schema, error) {
	key := cacheKey(path)

	g.mu.Lock()
	defer g.mu.Unlock()
	if sch, ok := g.compiled[key]; ok {
		return sch, nil
	}

	data := defaultSchema
	if key != DefaultSchema {
		var err error
		data, err = os.ReadFile(key)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(key, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", key, err)
	}
	sch, err := compiler.Compile(key)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", key, err)
	}
	g.compiled[key] = sch
	return sch, nil
}

// Validate checks a decoded JSON value (maps, slices, strings, numbers)
// against the schema at path.
func (g *Gate) Validate(v any, path string) error {
	sch, err := g.Validator(path)
	if err != nil {
		return err
	}
	if err := sch.Validate(v); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &SchemaError{Path: cacheKey(path), Err: verr}
		}
		return err
	}
	return nil
}

// ValidateJSON decodes data and validates it against the schema at path.
// data must hold exactly one JSON value.
func (g *Gate) ValidateJSON(data []byte, path string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return &SchemaError{Path: cacheKey(path), Err: fmt.Errorf("decode failed: %w", err)}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return &SchemaError{Path: cacheKey(path), Err: errors.New("decode failed: trailing data")}
	}
	return g.Validate(v, path)
}

func cacheKey(path string) string {
	if path == "" || path == DefaultSchema {
		return DefaultSchema
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
