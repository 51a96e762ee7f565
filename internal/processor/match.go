package processor

import (
	"errors"
	"regexp"
	"strings"

	"github.com/moamenhredeen/swagger2postman/internal/parser"
)

// OperationSource resolves Swagger path templates and methods to operations
type OperationSource interface {
	BasePath() string
	GetOperationDetails(path, method string) (*parser.OperationDetails, error)
}

// postmanParamRe matches a :name parameter opening a segment or following a
// dot, as in /files/:name.:ext
var postmanParamRe = regexp.MustCompile(`([/.]):([A-Za-z0-9_\-]+)`)

// SwaggerPath recovers the Swagger path template of a templated request URL.
// It returns false when the URL does not start with the templated prefix
// followed by basePath.
func SwaggerPath(url, basePath string) (string, bool) {
	prefix := URLPrefix + basePath
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}

	relative := strings.TrimPrefix(url, prefix)
	relative = postmanParamRe.ReplaceAllString(relative, "${1}{${2}}")
	relative = strings.SplitN(relative, "?", 2)[0]
	if !strings.HasPrefix(relative, "/") {
		relative = "/" + relative
	}
	return relative, true
}

// MatchOperation finds the operation a templated request URL and method were
// generated from. It returns nil without error when the URL, path or method
// is unknown to the spec.
func MatchOperation(spec OperationSource, url, method string) (*parser.OperationDetails, error) {
	path, ok := SwaggerPath(url, spec.BasePath())
	if !ok {
		return nil, nil
	}

	details, err := spec.GetOperationDetails(path, strings.ToLower(method))
	if errors.Is(err, parser.ErrPathNotFound) || errors.Is(err, parser.ErrOperationNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}
