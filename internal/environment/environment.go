package environment

import (
	"regexp"
	"slices"
	"strings"

	"github.com/moamenhredeen/swagger2postman/internal/models"
)

// Options configures how an environment is derived from a collection
type Options struct {
	// Name replaces the template's name when set
	Name string

	// CustomVariables override generated variables with the same key and are
	// appended after them
	CustomVariables []models.CustomVariable

	// Template is the base environment. Nil uses DefaultTemplate.
	Template *models.Environment

	// IgnoredVariables are expected to come from the template and are not
	// generated from the collection. Nil uses DefaultIgnoredVariables.
	IgnoredVariables []string

	// Strict trims token names and drops tokens that are not plain
	// identifiers, such as "{{ }}" or "{{a b}}"
	Strict bool
}

var (
	tokenRe      = regexp.MustCompile(`\{\{.+?\}\}`)
	strictNameRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
)

// Tokens returns the distinct {{...}} tokens of text in order of first
// appearance
func Tokens(text string) []string {
	var tokens []string
	seen := map[string]bool{}
	for _, token := range tokenRe.FindAllString(text, -1) {
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

// VariableName strips the surrounding braces of a token. In strict mode the
// name is trimmed and reported invalid unless it is a plain identifier.
func VariableName(token string, strict bool) (string, bool) {
	name := strings.TrimSuffix(strings.TrimPrefix(token, "{{"), "}}")
	if !strict {
		return name, name != ""
	}
	name = strings.TrimSpace(name)
	return name, strictNameRe.MatchString(name)
}

// Build derives the environment for a serialized collection. The template is
// copied, never modified.
func Build(collectionJSON []byte, opts Options) *models.Environment {
	env := opts.Template
	if env == nil {
		env = DefaultTemplate()
	}
	env = env.Clone()
	if env.Values == nil {
		env.Values = []models.EnvironmentVariable{}
	}

	ignored := opts.IgnoredVariables
	if ignored == nil {
		ignored = DefaultIgnoredVariables
	}

	for _, token := range Tokens(string(collectionJSON)) {
		name, ok := VariableName(token, opts.Strict)
		if !ok || env.Index(name) >= 0 {
			continue
		}
		if base, ok := baseVariable(name); ok {
			env.Values = append(env.Values, base)
			continue
		}
		if slices.Contains(ignored, name) {
			continue
		}
		env.Values = append(env.Values, models.NewVariable(name))
	}

	if opts.Name != "" {
		env.Name = opts.Name
	}

	for _, custom := range opts.CustomVariables {
		key := custom.VariableKey()
		if key == "" {
			continue
		}
		env.Remove(key)
		env.Values = append(env.Values, custom.Variable())
	}

	return env
}
