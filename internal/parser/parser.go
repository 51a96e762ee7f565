package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/moamenhredeen/swagger2postman/internal/models"
	"github.com/pb33f/libopenapi"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedVersion is returned for documents that are not Swagger 2.0
	ErrUnsupportedVersion = errors.New("unsupported specification version")
	// ErrPathNotFound is returned when a path is not declared in the spec
	ErrPathNotFound = errors.New("path not found")
	// ErrOperationNotFound is returned when a path does not declare a method
	ErrOperationNotFound = errors.New("operation not found")
)

// methods lists the operation slots of a path item in output order
var methods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// Parser handles parsing Swagger 2.0 specification documents
type Parser struct {
	document libopenapi.Document
	model    *v2.Swagger
}

// ParseFile parses a Swagger specification file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read Swagger file: %w", err)
	}
	return ParseBytes(specBytes)
}

// ParseURL downloads a Swagger specification and parses it
func ParseURL(ctx context.Context, fetcher *Fetcher, url string) (*Parser, error) {
	specBytes, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseBytes(specBytes)
}

// ParseSource parses a spec from a URL when source starts with http:// or
// https://, and from a file otherwise
func ParseSource(ctx context.Context, fetcher *Fetcher, source string) (*Parser, error) {
	if IsURL(source) {
		return ParseURL(ctx, fetcher, source)
	}
	return ParseFile(source)
}

// IsURL reports whether source looks like an http(s) URL
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ParseBytes parses a Swagger 2.0 document given as JSON or YAML
func ParseBytes(specBytes []byte) (*Parser, error) {
	version, err := SwaggerVersion(specBytes)
	if err != nil {
		return nil, err
	}
	if version != "2.0" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Swagger document: %w", err)
	}

	model, errs := document.BuildV2Model()
	if errs != nil {
		return nil, fmt.Errorf("failed to build v2 model: %v", errs)
	}
	if model == nil {
		return nil, fmt.Errorf("failed to build v2 model: empty model")
	}

	return &Parser{document: document, model: &model.Model}, nil
}

// SwaggerVersion reads the top level "swagger" (or "openapi") version field
func SwaggerVersion(raw []byte) (string, error) {
	var head struct {
		Swagger string `json:"swagger" yaml:"swagger"`
		OpenAPI string `json:"openapi" yaml:"openapi"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		head.Swagger, head.OpenAPI = "", ""
		if err := yaml.Unmarshal(raw, &head); err != nil {
			return "", fmt.Errorf("failed to decode specification: %w", err)
		}
	}
	switch {
	case head.Swagger != "":
		return head.Swagger, nil
	case head.OpenAPI != "":
		return head.OpenAPI, nil
	default:
		return "", fmt.Errorf("%w: missing swagger version", ErrUnsupportedVersion)
	}
}

// Model returns the high level Swagger model
func (p *Parser) Model() *v2.Swagger {
	return p.model
}

// BasePath returns the prefix applied to every path of the spec
func (p *Parser) BasePath() string {
	return p.model.BasePath
}

// Title returns the API title, or an empty string
func (p *Parser) Title() string {
	if p.model.Info == nil {
		return ""
	}
	return p.model.Info.Title
}

// Description returns the API description, or an empty string
func (p *Parser) Description() string {
	if p.model.Info == nil {
		return ""
	}
	return p.model.Info.Description
}

// Scheme returns the first declared scheme, defaulting to http
func (p *Parser) Scheme() string {
	if len(p.model.Schemes) > 0 && p.model.Schemes[0] != "" {
		return p.model.Schemes[0]
	}
	return "http"
}

// Host returns the declared host, defaulting to localhost
func (p *Parser) Host() string {
	if p.model.Host != "" {
		return p.model.Host
	}
	return "localhost"
}

// HasPaths reports whether the spec declares a paths object
func (p *Parser) HasPaths() bool {
	return p.model.Paths != nil && p.model.Paths.PathItems != nil
}

// GetOperations extracts all operations from the spec in document order
func (p *Parser) GetOperations() []models.Operation {
	var operations []models.Operation
	if !p.HasPaths() {
		return operations
	}

	for pair := p.model.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()
		if item == nil {
			continue
		}

		for _, method := range methods {
			op := operationFor(item, method)
			if op == nil {
				continue
			}

			tags := []string{}
			if op.Tags != nil {
				tags = append(tags, op.Tags...)
			}

			operations = append(operations, models.Operation{
				Path:        path,
				Method:      strings.ToUpper(method),
				OperationID: op.OperationId,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        tags,
			})
		}
	}

	return operations
}

// OperationDetails holds one operation together with its merged parameters
type OperationDetails struct {
	Operation  *v2.Operation
	Path       string
	Method     string
	Parameters []*v2.Parameter
}

// BodyParameter returns the "in: body" parameter, if any
func (d *OperationDetails) BodyParameter() *v2.Parameter {
	for _, param := range d.Parameters {
		if param != nil && param.In == "body" {
			return param
		}
	}
	return nil
}

// GetOperationDetails looks up the operation for a path template and a
// method in any case. An exact path match wins; otherwise templates match
// when they differ only in parameter names, so /pets/{petId} finds
// /pets/{id}. Missing paths and methods are reported with ErrPathNotFound
// and ErrOperationNotFound.
func (p *Parser) GetOperationDetails(path, method string) (*OperationDetails, error) {
	if !p.HasPaths() {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	specPath, pathItem := p.findPath(path)
	if pathItem == nil {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	method = strings.ToLower(method)
	operation := operationFor(pathItem, method)
	if operation == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrOperationNotFound, method, path)
	}

	// Operation level parameters override path level ones with the same name and location
	var parameters []*v2.Parameter
	for _, param := range pathItem.Parameters {
		if param != nil && !overridden(param, operation.Parameters) {
			parameters = append(parameters, param)
		}
	}
	parameters = append(parameters, operation.Parameters...)

	return &OperationDetails{
		Operation:  operation,
		Path:       specPath,
		Method:     method,
		Parameters: parameters,
	}, nil
}

// findPath returns the declared path template matching path and its item
func (p *Parser) findPath(path string) (string, *v2.PathItem) {
	for pair := p.model.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		if pair.Key() == path {
			return pair.Key(), pair.Value()
		}
	}

	shape := pathShape(path)
	for pair := p.model.Paths.PathItems.First(); pair != nil; pair = pair.Next() {
		if pathShape(pair.Key()) == shape {
			return pair.Key(), pair.Value()
		}
	}
	return "", nil
}

var templateParamRe = regexp.MustCompile(`\{[^{}/]*\}`)

// pathShape replaces every {param} of a path template with {}
func pathShape(path string) string {
	return templateParamRe.ReplaceAllString(path, "{}")
}

func overridden(param *v2.Parameter, opParams []*v2.Parameter) bool {
	for _, op := range opParams {
		if op != nil && op.Name == param.Name && op.In == param.In {
			return true
		}
	}
	return false
}

func operationFor(item *v2.PathItem, method string) *v2.Operation {
	switch method {
	case "get":
		return item.Get
	case "put":
		return item.Put
	case "post":
		return item.Post
	case "delete":
		return item.Delete
	case "options":
		return item.Options
	case "head":
		return item.Head
	case "patch":
		return item.Patch
	default:
		return nil
	}
}
