package environment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/moamenhredeen/swagger2postman/internal/models"
)

// DefaultIgnoredVariables are the template variables every environment
// template already defines
var DefaultIgnoredVariables = []string{"scheme", "host", "port"}

// DefaultTemplate returns a fresh copy of the built-in environment
func DefaultTemplate() *models.Environment {
	return &models.Environment{
		ID:   "685825e6-1261-04aa-3cb6-04c1259b0977",
		Name: "Swagger2 Environment",
		Values: []models.EnvironmentVariable{
			{Key: "scheme", Value: "http", Type: "text", Enabled: true},
			{Key: "port", Value: "80", Type: "text", Enabled: true},
			{Key: "host", Value: "localhost", Type: "text", Enabled: true},
		},
		Timestamp:            1509563973925,
		PostmanVariableScope: "environment",
		PostmanExportedAt:    "2017-11-03T23:56:14.998Z",
		PostmanExportedUsing: "Postman/5.3.2",
	}
}

// baseVariable returns the default template's entry for key. Templates
// missing scheme, host or port get them from here.
func baseVariable(key string) (models.EnvironmentVariable, bool) {
	defaults := DefaultTemplate()
	if i := defaults.Index(key); i >= 0 {
		return defaults.Values[i], true
	}
	return models.EnvironmentVariable{}, false
}

// LoadTemplate reads a previously exported Postman environment to use as
// the base of generated environments
func LoadTemplate(path string) (*models.Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment template: %w", err)
	}

	var env models.Environment
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse environment template %s: %w", path, err)
	}
	return &env, nil
}
