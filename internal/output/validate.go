package output

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	collectionSchema  = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("collection.json") })
	environmentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) { return compileSchema("environment.json") })
)

func compileSchema(name string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

// ValidateCollection checks a serialized collection against the Postman v1
// collection schema
func ValidateCollection(data []byte) error {
	return validate(collectionSchema, data, "collection")
}

// ValidateEnvironment checks a serialized environment against the Postman
// environment schema
func ValidateEnvironment(data []byte) error {
	return validate(environmentSchema, data, "environment")
}

func validate(schema func() (*jsonschema.Schema, error), data []byte, kind string) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile %s schema: %w", kind, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}
	return nil
}
