package models

// Environment is a Postman environment document
type Environment struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	Values               []EnvironmentVariable `json:"values"`
	Timestamp            int64                 `json:"timestamp"`
	PostmanVariableScope string                `json:"_postman_variable_scope"`
	PostmanExportedAt    string                `json:"_postman_exported_at"`
	PostmanExportedUsing string                `json:"_postman_exported_using"`
}

// EnvironmentVariable is one key/value entry of an environment
type EnvironmentVariable struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

// CustomVariable is a user supplied variable that overrides or extends the
// generated environment. Either Key or Name identifies it.
type CustomVariable struct {
	Key     string `json:"key" mapstructure:"key"`
	Name    string `json:"name" mapstructure:"name"`
	Value   string `json:"value" mapstructure:"value"`
	Type    string `json:"type" mapstructure:"type"`
	Enabled *bool  `json:"enabled" mapstructure:"enabled"`
}

// VariableKey returns Key, falling back to Name
func (c CustomVariable) VariableKey() string {
	if c.Key != "" {
		return c.Key
	}
	return c.Name
}

// Variable converts the custom variable into an environment variable,
// defaulting type to "text" and enabled to true
func (c CustomVariable) Variable() EnvironmentVariable {
	v := NewVariable(c.VariableKey())
	v.Value = c.Value
	if c.Type != "" {
		v.Type = c.Type
	}
	if c.Enabled != nil {
		v.Enabled = *c.Enabled
	}
	return v
}

// NewVariable returns an enabled text variable with an empty value
func NewVariable(key string) EnvironmentVariable {
	return EnvironmentVariable{Key: key, Value: "", Type: "text", Enabled: true}
}

// Index returns the position of the variable with the given key, or -1
func (e *Environment) Index(key string) int {
	for i, v := range e.Values {
		if v.Key == key {
			return i
		}
	}
	return -1
}

// Remove deletes every variable with the given key
func (e *Environment) Remove(key string) {
	kept := e.Values[:0]
	for _, v := range e.Values {
		if v.Key != key {
			kept = append(kept, v)
		}
	}
	e.Values = kept
}

// Clone returns a deep copy of the environment
func (e *Environment) Clone() *Environment {
	c := *e
	c.Values = append([]EnvironmentVariable(nil), e.Values...)
	return &c
}
