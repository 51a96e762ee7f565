package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = "../../testdata/petstore.json"

func loadPetstore(t *testing.T) *Parser {
	t.Helper()
	p, err := ParseFile(petstore)
	require.NoError(t, err)
	return p
}

func TestParseFile(t *testing.T) {
	p := loadPetstore(t)

	assert.Equal(t, "/v2", p.BasePath())
	assert.Equal(t, "Petstore", p.Title())
	assert.Equal(t, "https", p.Scheme())
	assert.Equal(t, "petstore.example.com", p.Host())
}

func TestParseYAML(t *testing.T) {
	p, err := ParseFile("../../testdata/petstore.yaml")
	require.NoError(t, err)

	assert.Len(t, p.GetOperations(), 1)
	assert.Equal(t, "http", p.Scheme())
}

func TestParseRejectsOpenAPI3(t *testing.T) {
	_, err := ParseFile("../../testdata/openapi3.yaml")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestParseRejectsMissingVersion(t *testing.T) {
	_, err := ParseBytes([]byte(`{"paths": {}}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestSwaggerVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"swagger": "2.0"}`, "2.0"},
		{"swagger: \"2.0\"\n", "2.0"},
		{"openapi: 3.0.1\n", "3.0.1"},
	}

	for _, tt := range tests {
		got, err := SwaggerVersion([]byte(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestGetOperations(t *testing.T) {
	operations := loadPetstore(t).GetOperations()
	require.Len(t, operations, 8)

	first := operations[0]
	assert.Equal(t, "/pets", first.Path)
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, "listPets", first.OperationID)
	assert.Equal(t, []string{"pets"}, first.Tags)
	assert.Equal(t, "List pets", first.Name())
}

func TestGetOperationDetails(t *testing.T) {
	details, err := loadPetstore(t).GetOperationDetails("/pets/{id}", "PUT")
	require.NoError(t, err)

	assert.Equal(t, "put", details.Method)
	require.NotNil(t, details.Operation)
	assert.Equal(t, "updatePet", details.Operation.OperationId)
	require.Len(t, details.Parameters, 2)
	assert.Equal(t, "id", details.Parameters[0].Name, "path level parameter first")

	body := details.BodyParameter()
	require.NotNil(t, body)
	assert.Equal(t, "pet", body.Name)
}

func TestGetOperationDetailsIgnoresParameterNames(t *testing.T) {
	p := loadPetstore(t)

	tests := []struct {
		path        string
		method      string
		specPath    string
		operationID string
	}{
		{"/pets/{petId}", "get", "/pets/{id}", "getPet"},
		{"/stores/{a}/pets/{b}", "get", "/stores/{storeId}/pets/{petId}", "getStorePet"},
		{"/pets/{x}/photo", "post", "/pets/{id}/photo", "uploadPhoto"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			details, err := p.GetOperationDetails(tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.specPath, details.Path)
			assert.Equal(t, tt.operationID, details.Operation.OperationId)
		})
	}

	_, err := p.GetOperationDetails("/pets/{id}/photos", "post")
	assert.ErrorIs(t, err, ErrPathNotFound)
	_, err = p.GetOperationDetails("/pets/1", "get")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestPathShape(t *testing.T) {
	assert.Equal(t, "/stores/{}/pets/{}", pathShape("/stores/{storeId}/pets/{petId}"))
	assert.Equal(t, "/files/{}.{}", pathShape("/files/{name}.{ext}"))
	assert.Equal(t, "/pets", pathShape("/pets"))
}

func TestGetOperationDetailsNotFound(t *testing.T) {
	p := loadPetstore(t)

	_, err := p.GetOperationDetails("/owners", "get")
	assert.ErrorIs(t, err, ErrPathNotFound)
	_, err = p.GetOperationDetails("/pets", "patch")
	assert.ErrorIs(t, err, ErrOperationNotFound)
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile("nonexistent.json")
	assert.Error(t, err)
}

func TestParseSource(t *testing.T) {
	spec, err := os.ReadFile(petstore)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(spec)
	}))
	defer server.Close()

	fetcher := NewFetcherWithClient(server.Client())

	p, err := ParseSource(context.Background(), fetcher, server.URL+"/swagger.json")
	require.NoError(t, err)
	assert.Equal(t, "Petstore", p.Title())

	p, err = ParseSource(context.Background(), fetcher, petstore)
	require.NoError(t, err)
	assert.Equal(t, "/v2", p.BasePath())
}

func TestParseURLBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := ParseURL(context.Background(), NewFetcherWithClient(nil), server.URL)
	assert.Error(t, err)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("HTTPS://example.com/swagger.json"))
	assert.False(t, IsURL("./swagger.json"))
}
