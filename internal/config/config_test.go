package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moamenhredeen/swagger2postman/internal/output"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
prettyPrint: true
globalHeaders:
  - "Authorization: Bearer {{token}}"
name: Petstore
customVariables:
  - name: fallback
    value: x
environment:
  customVariables:
    - key: apiKey
      value: secret
      type: secret
      enabled: false
  strictNames: true
timeout: 30s
`

func loadFile(t *testing.T, content string) Options {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s2p.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	opts, err := Load(v)
	require.NoError(t, err)
	return opts
}

func TestLoadDefaults(t *testing.T) {
	opts, err := Load(viper.New())
	require.NoError(t, err)

	assert.False(t, opts.PrettyPrint)
	assert.True(t, opts.Validate)
	assert.Equal(t, "info", opts.LogLevel())
	assert.Equal(t, "text", opts.Log.Format)
	assert.Equal(t, []string{"scheme", "host", "port"}, opts.Environment.IgnoredVariables)
	assert.Zero(t, opts.Timeout)
	assert.Equal(t, SampleOptions{MaxDepth: 10, ArrayItems: 1}, opts.Sample)

	format, err := opts.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatCompact, format)
}

func TestOutputFormat(t *testing.T) {
	opts := loadFile(t, "prettyPrint: true\nsample:\n  arrayItems: 3\n")
	format, err := opts.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatPretty, format)
	assert.Equal(t, 3, opts.Sample.ArrayItems)
	assert.Equal(t, 10, opts.Sample.MaxDepth)

	opts.Format = "compact"
	format, err = opts.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatCompact, format)

	opts.Format = "xml"
	_, err = opts.OutputFormat()
	assert.Error(t, err)
}

func TestCustomVariablesMerged(t *testing.T) {
	opts := loadFile(t, "customVariables:\n  - key: fromFile\n    value: a\n")
	extra, err := ParseVariable("fromFlag=b")
	require.NoError(t, err)
	opts.Environment.CustomVariables = append(opts.Environment.CustomVariables, extra)

	vars := opts.CustomVariablesList()
	require.Len(t, vars, 2)
	assert.Equal(t, "fromFile", vars[0].VariableKey())
	assert.Equal(t, "fromFlag", vars[1].VariableKey())
}

func TestLoadFile(t *testing.T) {
	opts := loadFile(t, sampleConfig)

	assert.True(t, opts.PrettyPrint)
	assert.Equal(t, []string{"Authorization: Bearer {{token}}"}, opts.GlobalHeaders)
	assert.True(t, opts.Environment.StrictNames)
	assert.Equal(t, 30*time.Second, opts.Timeout)

	vars := opts.CustomVariablesList()
	require.Len(t, vars, 2)
	assert.Equal(t, "fallback", vars[0].VariableKey())
	assert.Equal(t, "apiKey", vars[1].VariableKey())
	v := vars[1].Variable()
	assert.Equal(t, "secret", v.Value)
	assert.Equal(t, "secret", v.Type)
	assert.False(t, v.Enabled)

	assert.Equal(t, "Petstore", opts.EnvironmentName())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("S2P_ENVIRONMENT_NAME", "From Env")
	t.Setenv("S2P_DEBUG", "true")

	opts := loadFile(t, sampleConfig)
	assert.Equal(t, "From Env", opts.EnvironmentName())
	assert.Equal(t, "debug", opts.LogLevel())
}

func TestTopLevelAliases(t *testing.T) {
	opts := loadFile(t, "name: Top\ncustomVariables:\n  - name: id\n    value: \"1\"\n")

	assert.Equal(t, "Top", opts.EnvironmentName())
	vars := opts.CustomVariablesList()
	require.Len(t, vars, 1)
	assert.Equal(t, "id", vars[0].VariableKey())
	assert.True(t, vars[0].Variable().Enabled)
	assert.Equal(t, "text", vars[0].Variable().Type)
}

func TestParseVariable(t *testing.T) {
	v, err := ParseVariable("apiKey=a=b")
	require.NoError(t, err)
	assert.Equal(t, "apiKey", v.Key)
	assert.Equal(t, "a=b", v.Value)

	for _, bad := range []string{"novalue", "=x", ""} {
		_, err := ParseVariable(bad)
		assert.Error(t, err, bad)
	}
}
