package generator

import (
	"fmt"

	"github.com/pb33f/libopenapi/datamodel/high/base"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
	orderedmap "github.com/pb33f/ordered-map/v2"
	"go.yaml.in/yaml/v4"
)

// Object is a generated JSON object. It marshals its keys in schema order.
type Object = orderedmap.OrderedMap[string, interface{}]

// NewObject returns an empty object that marshals without HTML escaping
func NewObject() *Object {
	return orderedmap.New[string, interface{}](orderedmap.WithDisableHTMLEscape[string, interface{}]())
}

// Options controls sample generation
type Options struct {
	MaxDepth   int // Nesting depth after which values are omitted
	ArrayItems int // Number of items generated for arrays
}

// DefaultOptions returns default generation options
func DefaultOptions() Options {
	return Options{
		MaxDepth:   10,
		ArrayItems: 1,
	}
}

// Generator generates example values from Swagger schemas
type Generator struct {
	opts Options
}

// NewGenerator creates a new generator instance
func NewGenerator() *Generator {
	return NewGeneratorWithOptions(DefaultOptions())
}

// NewGeneratorWithOptions creates a generator with custom options
func NewGeneratorWithOptions(opts Options) *Generator {
	defaults := DefaultOptions()
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaults.MaxDepth
	}
	if opts.ArrayItems <= 0 {
		opts.ArrayItems = defaults.ArrayItems
	}
	return &Generator{opts: opts}
}

// GenerateRequestBody generates an example for the body parameter of an
// operation. It returns nil when the operation declares no body schema.
func (g *Generator) GenerateRequestBody(op *v2.Operation, refs RefsLookup) (interface{}, error) {
	if op == nil {
		return nil, fmt.Errorf("operation is nil")
	}

	for _, param := range op.Parameters {
		if param == nil || param.In != "body" || param.Schema == nil {
			continue
		}
		val, ok, err := g.fromProxy(param.Schema, refs, map[string]bool{}, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to generate body for parameter %s: %w", param.Name, err)
		}
		if !ok {
			return nil, nil
		}
		return val, nil
	}

	return nil, nil
}

// GenerateValue generates an example value for a schema
func (g *Generator) GenerateValue(schema *base.Schema) (interface{}, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is nil")
	}
	val, _, err := g.fromSchema(schema, RefsLookup{}, map[string]bool{}, 0)
	return val, err
}

// fromProxy resolves a schema proxy, going through refs for references.
// The boolean result is false when the value should be omitted.
func (g *Generator) fromProxy(proxy *base.SchemaProxy, refs RefsLookup, seen map[string]bool, depth int) (interface{}, bool, error) {
	if proxy == nil || depth > g.opts.MaxDepth {
		return nil, false, nil
	}

	if proxy.IsReference() {
		ref := proxy.GetReference()
		// A reference already being expanded higher up is a cycle
		if seen[ref] {
			return nil, false, nil
		}
		seen[ref] = true
		defer delete(seen, ref)

		if target, ok := refs.Resolve(ref); ok && target != proxy {
			proxy = target
		}
	}

	schema, err := proxy.BuildSchema()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build schema: %w", err)
	}
	if schema == nil {
		return nil, false, nil
	}

	return g.fromSchema(schema, refs, seen, depth)
}

func (g *Generator) fromSchema(schema *base.Schema, refs RefsLookup, seen map[string]bool, depth int) (interface{}, bool, error) {
	// Explicit values in the schema win over generated ones
	for _, node := range []*yaml.Node{schema.Example, schema.Default, firstEnum(schema)} {
		if node == nil {
			continue
		}
		if v, err := nodeValue(node); err == nil {
			return v, true, nil
		}
	}

	if len(schema.AllOf) > 0 {
		return g.generateAllOf(schema, refs, seen, depth)
	}

	switch schemaType(schema) {
	case "object":
		obj, err := g.generateObject(schema, refs, seen, depth)
		return obj, err == nil, err
	case "array":
		arr, err := g.generateArray(schema, refs, seen, depth)
		return arr, err == nil, err
	case "string":
		return generateString(schema.Format), true, nil
	case "integer":
		if schema.Minimum != nil {
			return int64(*schema.Minimum), true, nil
		}
		return 0, true, nil
	case "number":
		if schema.Minimum != nil {
			return *schema.Minimum, true, nil
		}
		return 0.0, true, nil
	case "boolean":
		return true, true, nil
	}

	return nil, false, nil
}

// schemaType returns the declared type, inferring object and array from
// properties and items when the type is missing
func schemaType(schema *base.Schema) string {
	if len(schema.Type) > 0 {
		return schema.Type[0]
	}
	if schema.Properties != nil && schema.Properties.Len() > 0 {
		return "object"
	}
	if schema.Items != nil {
		return "array"
	}
	return ""
}

// generateAllOf merges the samples of every allOf member with the
// schema's own properties
func (g *Generator) generateAllOf(schema *base.Schema, refs RefsLookup, seen map[string]bool, depth int) (interface{}, bool, error) {
	result := NewObject()
	for _, member := range schema.AllOf {
		val, ok, err := g.fromProxy(member, refs, seen, depth+1)
		if err != nil {
			return nil, false, err
		}
		if obj, isObj := val.(*Object); ok && isObj {
			merge(result, obj)
		}
	}

	own, err := g.generateObject(schema, refs, seen, depth)
	if err != nil {
		return nil, false, err
	}
	merge(result, own)
	return result, true, nil
}

func merge(dst, src *Object) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}

// generateObject generates an object holding every declared property in
// declaration order
func (g *Generator) generateObject(schema *base.Schema, refs RefsLookup, seen map[string]bool, depth int) (*Object, error) {
	result := NewObject()
	if schema.Properties == nil {
		return result, nil
	}

	for pair := schema.Properties.First(); pair != nil; pair = pair.Next() {
		val, ok, err := g.fromProxy(pair.Value(), refs, seen, depth+1)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", pair.Key(), err)
		}
		if ok {
			result.Set(pair.Key(), val)
		}
	}

	return result, nil
}

// generateArray generates an array with the configured number of items
func (g *Generator) generateArray(schema *base.Schema, refs RefsLookup, seen map[string]bool, depth int) ([]interface{}, error) {
	result := make([]interface{}, 0, g.opts.ArrayItems)
	if schema.Items == nil || !schema.Items.IsA() || schema.Items.A == nil {
		return result, nil
	}

	for i := 0; i < g.opts.ArrayItems; i++ {
		val, ok, err := g.fromProxy(schema.Items.A, refs, seen, depth+1)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		if !ok {
			break
		}
		result = append(result, val)
	}

	return result, nil
}

// generateString returns a fixed sample for a string format
func generateString(format string) string {
	switch format {
	case "date":
		return "2017-07-21"
	case "date-time":
		return "2017-07-21T17:32:28Z"
	case "email":
		return "user@example.com"
	case "uri", "url":
		return "https://example.com"
	case "uuid":
		return "123e4567-e89b-12d3-a456-426614174000"
	case "byte":
		return "U3dhZ2dlciByb2Nrcw=="
	case "password":
		return "password"
	default:
		return "string"
	}
}

func firstEnum(schema *base.Schema) *yaml.Node {
	if len(schema.Enum) == 0 {
		return nil
	}
	return schema.Enum[0]
}

// nodeValue converts an example node into a JSON friendly value, keeping
// mapping keys in document order
func nodeValue(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(node.Content[i].Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			val, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil
	default:
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
