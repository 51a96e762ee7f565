package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationName(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{Operation{Path: "/pets", OperationID: "listPets", Summary: "List pets"}, "List pets"},
		{Operation{Path: "/pets", OperationID: "listPets"}, "listPets"},
		{Operation{Path: "/pets"}, "/pets"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.Name())
	}
}

func TestCustomVariableDefaults(t *testing.T) {
	v := CustomVariable{Name: "apiKey", Value: "secret"}.Variable()
	assert.Equal(t, EnvironmentVariable{Key: "apiKey", Value: "secret", Type: "text", Enabled: true}, v)

	disabled := false
	v = CustomVariable{Key: "id", Name: "ignored", Type: "number", Enabled: &disabled}.Variable()
	assert.Equal(t, "id", v.Key)
	assert.Equal(t, "number", v.Type)
	assert.False(t, v.Enabled)
}

func TestEnvironmentRemoveAndClone(t *testing.T) {
	env := &Environment{Values: []EnvironmentVariable{NewVariable("a"), NewVariable("b"), NewVariable("a")}}
	clone := env.Clone()

	clone.Remove("a")
	require.Len(t, clone.Values, 1)
	assert.Equal(t, "b", clone.Values[0].Key)

	require.Len(t, env.Values, 3, "clone shares values with the original")
	assert.Equal(t, "a", env.Values[0].Key)
	assert.Equal(t, -1, clone.Index("a"))
	assert.Equal(t, 0, clone.Index("b"))
}

func TestAppendHeader(t *testing.T) {
	req := &Request{Headers: "Accept: application/json\n"}
	req.AppendHeader("X-Trace: 1")
	assert.Equal(t, "Accept: application/json\nX-Trace: 1\n", req.Headers)
}
