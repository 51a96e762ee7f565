package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/moamenhredeen/swagger2postman/internal/models"
	"github.com/moamenhredeen/swagger2postman/internal/output"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables read into the configuration,
// e.g. S2P_PRETTYPRINT or S2P_ENVIRONMENT_NAME
const EnvPrefix = "S2P"

// LogOptions configures the process logger
type LogOptions struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EnvironmentOptions configures environment generation
type EnvironmentOptions struct {
	Name             string                  `mapstructure:"name"`
	CustomVariables  []models.CustomVariable `mapstructure:"customVariables"`
	TemplateFile     string                  `mapstructure:"templateFile"`
	StrictNames      bool                    `mapstructure:"strictNames"`
	IgnoredVariables []string                `mapstructure:"ignoredVariables"`
}

// SampleOptions configures example body generation
type SampleOptions struct {
	MaxDepth   int `mapstructure:"maxDepth"`
	ArrayItems int `mapstructure:"arrayItems"`
}

// Options holds every file, environment and flag configurable setting
type Options struct {
	PrettyPrint     bool                    `mapstructure:"prettyPrint"`
	Format          string                  `mapstructure:"format"`
	Debug           bool                    `mapstructure:"debug"`
	Log             LogOptions              `mapstructure:"log"`
	GlobalHeaders   []string                `mapstructure:"globalHeaders"`
	Name            string                  `mapstructure:"name"`
	CustomVariables []models.CustomVariable `mapstructure:"customVariables"`
	Environment     EnvironmentOptions      `mapstructure:"environment"`
	Sample          SampleOptions           `mapstructure:"sample"`
	Timeout         time.Duration           `mapstructure:"timeout"`
	Validate        bool                    `mapstructure:"validate"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Options {
	return Options{
		Log: LogOptions{Level: "info", Format: "text"},
		Environment: EnvironmentOptions{
			IgnoredVariables: []string{"scheme", "host", "port"},
		},
		Sample:   SampleOptions{MaxDepth: 10, ArrayItems: 1},
		Validate: true,
	}
}

// Bind registers defaults and environment variable lookup on v
func Bind(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("prettyPrint", d.PrettyPrint)
	v.SetDefault("format", d.Format)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("globalHeaders", d.GlobalHeaders)
	v.SetDefault("name", d.Name)
	v.SetDefault("environment.name", d.Environment.Name)
	v.SetDefault("environment.templateFile", d.Environment.TemplateFile)
	v.SetDefault("environment.strictNames", d.Environment.StrictNames)
	v.SetDefault("environment.ignoredVariables", d.Environment.IgnoredVariables)
	v.SetDefault("sample.maxDepth", d.Sample.MaxDepth)
	v.SetDefault("sample.arrayItems", d.Sample.ArrayItems)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("validate", d.Validate)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load binds v and decodes it into Options
func Load(v *viper.Viper) (Options, error) {
	Bind(v)

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return opts, nil
}

// EnvironmentName returns environment.name, falling back to name
func (o Options) EnvironmentName() string {
	if o.Environment.Name != "" {
		return o.Environment.Name
	}
	return o.Name
}

// CustomVariablesList returns customVariables followed by
// environment.customVariables. Later entries override earlier ones with the
// same key when the environment is built.
func (o Options) CustomVariablesList() []models.CustomVariable {
	vars := make([]models.CustomVariable, 0, len(o.CustomVariables)+len(o.Environment.CustomVariables))
	vars = append(vars, o.CustomVariables...)
	return append(vars, o.Environment.CustomVariables...)
}

// OutputFormat returns the document layout: format when set, otherwise
// pretty or compact following prettyPrint
func (o Options) OutputFormat() (output.Format, error) {
	if o.Format != "" {
		return output.ParseFormat(o.Format)
	}
	return output.FormatFor(o.PrettyPrint), nil
}

// LogLevel returns the effective log level; debug forces "debug"
func (o Options) LogLevel() string {
	if o.Debug {
		return "debug"
	}
	return o.Log.Level
}

// ParseVariable parses a "key=value" flag into a custom variable
func ParseVariable(s string) (models.CustomVariable, error) {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return models.CustomVariable{}, fmt.Errorf("invalid variable %q: expected key=value", s)
	}
	return models.CustomVariable{Key: key, Value: value}, nil
}
