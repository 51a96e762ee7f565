package generator

import (
	"encoding/json"
	"testing"

	"github.com/moamenhredeen/swagger2postman/internal/parser"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestNewGenerator(t *testing.T) {
	g := NewGenerator()
	require.NotNil(t, g)
	assert.Equal(t, DefaultOptions().MaxDepth, g.opts.MaxDepth)
	assert.Equal(t, DefaultOptions().ArrayItems, g.opts.ArrayItems)
}

func TestNewGeneratorWithOptionsFillsZeroValues(t *testing.T) {
	g := NewGeneratorWithOptions(Options{ArrayItems: 3})
	assert.Equal(t, DefaultOptions().MaxDepth, g.opts.MaxDepth)
	assert.Equal(t, 3, g.opts.ArrayItems)
}

func TestGenerateScalars(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name   string
		schema *base.Schema
		want   interface{}
	}{
		{"string", &base.Schema{Type: []string{"string"}}, "string"},
		{"email", &base.Schema{Type: []string{"string"}, Format: "email"}, "user@example.com"},
		{"date", &base.Schema{Type: []string{"string"}, Format: "date"}, "2017-07-21"},
		{"integer", &base.Schema{Type: []string{"integer"}}, 0},
		{"boolean", &base.Schema{Type: []string{"boolean"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := g.GenerateValue(tt.schema)
			require.NoError(t, err)
			assert.Equal(t, tt.want, val)
		})
	}
}

func TestGenerateIntegerMinimum(t *testing.T) {
	min := 5.0

	val, err := NewGenerator().GenerateValue(&base.Schema{Type: []string{"integer"}, Minimum: &min})
	require.NoError(t, err)
	assert.Equal(t, int64(5), val)
}

func TestGenerateArrayWithoutItems(t *testing.T) {
	schema := &base.Schema{
		Type:  []string{"array"},
		Items: &base.DynamicValue[*base.SchemaProxy, bool]{},
	}

	val, err := NewGenerator().GenerateValue(schema)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, val)
}

func TestGenerateObject(t *testing.T) {
	val, err := NewGenerator().GenerateValue(&base.Schema{Type: []string{"object"}})
	require.NoError(t, err)

	obj, ok := val.(*Object)
	require.True(t, ok, "expected object, got %T", val)
	assert.Zero(t, obj.Len())
}

func TestGenerateExampleKeepsDocumentOrder(t *testing.T) {
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("zone: eu\nid: 7\ntags: [a, b]\nowner:\n  name: ops\n  email: ops@example.com\n"), &node))

	val, err := NewGenerator().GenerateValue(&base.Schema{Type: []string{"object"}, Example: &node})
	require.NoError(t, err)
	assert.Equal(t, `{"zone":"eu","id":7,"tags":["a","b"],"owner":{"name":"ops","email":"ops@example.com"}}`, marshal(t, val))
}

func TestGenerateValueNilSchema(t *testing.T) {
	_, err := NewGenerator().GenerateValue(nil)
	assert.Error(t, err)
}

func loadPetstore(t *testing.T) (*parser.Parser, RefsLookup) {
	t.Helper()
	p, err := parser.ParseFile("../../testdata/petstore.json")
	require.NoError(t, err)
	return p, BuildRefsLookup(p.Model().Definitions)
}

func marshal(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestBuildRefsLookup(t *testing.T) {
	_, refs := loadPetstore(t)

	for _, ref := range []string{"#/definitions/Pet", "#/definitions/NewPet", "#/definitions/Order"} {
		_, ok := refs.Resolve(ref)
		assert.True(t, ok, ref)
	}
	_, ok := refs.Resolve("#/definitions/Missing")
	assert.False(t, ok)
}

func TestBuildRefsLookupNil(t *testing.T) {
	assert.Empty(t, BuildRefsLookup(nil))
}

func TestGenerateRequestBody(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		method string
		opts   Options
		want   string
	}{
		{
			name:   "referenced definition",
			path:   "/pets",
			method: "post",
			want:   `{"name":"Rex"}`,
		},
		{
			name:   "allOf members then own properties",
			path:   "/pets/{id}",
			method: "PUT",
			want:   `{"name":"Rex","tag":"dog"}`,
		},
		{
			name:   "properties in declaration order",
			path:   "/stores/{storeId}/pets/{petId}",
			method: "post",
			want:   `{"quantity":1,"status":"placed","shipDate":"2017-07-21T17:32:28Z","complete":true,"pets":[{"name":"Rex"}]}`,
		},
		{
			name:   "array items option",
			path:   "/stores/{storeId}/pets/{petId}",
			method: "post",
			opts:   Options{ArrayItems: 2},
			want:   `{"quantity":1,"status":"placed","shipDate":"2017-07-21T17:32:28Z","complete":true,"pets":[{"name":"Rex"},{"name":"Rex"}]}`,
		},
		{
			name:   "max depth omits nested values",
			path:   "/stores/{storeId}/pets/{petId}",
			method: "post",
			opts:   Options{MaxDepth: 1},
			want:   `{"quantity":1,"status":"placed","shipDate":"2017-07-21T17:32:28Z","complete":true,"pets":[]}`,
		},
	}

	p, refs := loadPetstore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := p.GetOperationDetails(tt.path, tt.method)
			require.NoError(t, err)

			body, err := NewGeneratorWithOptions(tt.opts).GenerateRequestBody(details.Operation, refs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, marshal(t, body))
		})
	}
}

func TestGenerateRequestBodyWithoutBody(t *testing.T) {
	p, refs := loadPetstore(t)

	details, err := p.GetOperationDetails("/pets/{id}", "get")
	require.NoError(t, err)

	body, err := NewGenerator().GenerateRequestBody(details.Operation, refs)
	require.NoError(t, err)
	assert.Nil(t, body)
}
