package converter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moamenhredeen/swagger2postman/internal/models"
	"github.com/moamenhredeen/swagger2postman/internal/parser"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
)

// Conversion status values
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Result is the outcome of a structural conversion
type Result struct {
	Status     string             `json:"status"`
	Message    string             `json:"message,omitempty"`
	Collection *models.Collection `json:"collection,omitempty"`
}

// OK reports whether the conversion succeeded
func (r Result) OK() bool {
	return r.Status == StatusPassed && r.Collection != nil
}

var braceParamRe = regexp.MustCompile(`\{([^{}/]+)\}`)

// Converter turns a Swagger spec into a Postman v1 collection with absolute
// URLs, one request per operation and one folder per first tag
type Converter struct {
	now   func() time.Time
	newID func() string
}

// New creates a converter
func New() *Converter {
	return &Converter{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Convert builds the collection for a spec
func (c *Converter) Convert(spec *parser.Parser) Result {
	if spec == nil {
		return Result{Status: StatusFailed, Message: "spec is nil"}
	}
	if !spec.HasPaths() {
		return Result{Status: StatusFailed, Message: "spec does not define any paths"}
	}

	name := spec.Title()
	if name == "" {
		name = "Swagger2 Collection"
	}

	collection := &models.Collection{
		ID:          c.newID(),
		Name:        name,
		Description: spec.Description(),
		Order:       []string{},
		Folders:     []models.Folder{},
		Timestamp:   c.now().UnixMilli(),
		Requests:    []*models.Request{},
	}

	folders := map[string]int{}
	for _, op := range spec.GetOperations() {
		details, err := spec.GetOperationDetails(op.Path, op.Method)
		if err != nil {
			return Result{Status: StatusFailed, Message: err.Error()}
		}

		req := c.buildRequest(spec, op, details)
		req.CollectionID = collection.ID
		collection.Requests = append(collection.Requests, req)

		if len(op.Tags) == 0 || strings.TrimSpace(op.Tags[0]) == "" {
			collection.Order = append(collection.Order, req.ID)
			continue
		}

		tag := strings.TrimSpace(op.Tags[0])
		idx, ok := folders[tag]
		if !ok {
			collection.Folders = append(collection.Folders, models.Folder{
				ID:           c.newID(),
				Name:         tag,
				Description:  tagDescription(spec.Model(), tag),
				Order:        []string{},
				CollectionID: collection.ID,
			})
			idx = len(collection.Folders) - 1
			folders[tag] = idx
		}
		collection.Folders[idx].Order = append(collection.Folders[idx].Order, req.ID)
	}

	return Result{Status: StatusPassed, Collection: collection}
}

func (c *Converter) buildRequest(spec *parser.Parser, op models.Operation, details *parser.OperationDetails) *models.Request {
	req := &models.Request{
		ID:            c.newID(),
		Name:          op.Name(),
		Description:   op.Description,
		Method:        op.Method,
		PathVariables: map[string]string{},
		Data:          []models.FormParam{},
		DataMode:      "params",
		Time:          c.now().UnixMilli(),
		Responses:     []any{},
	}

	var query []string
	var hasForm bool
	hasBody := details.BodyParameter() != nil
	for _, param := range details.Parameters {
		if param == nil {
			continue
		}
		switch param.In {
		case "path":
			req.PathVariables[param.Name] = ""
		case "query":
			query = append(query, fmt.Sprintf("%s={{%s}}", param.Name, param.Name))
		case "header":
			req.AppendHeader(fmt.Sprintf("%s: {{%s}}", param.Name, param.Name))
		case "formData":
			hasForm = true
			paramType := "text"
			if param.Type == "file" {
				paramType = "file"
			}
			req.Data = append(req.Data, models.FormParam{Key: param.Name, Value: "", Type: paramType, Enabled: true})
		}
	}

	if hasBody {
		req.DataMode = "raw"
	}
	if hasBody || hasForm {
		if ct := firstOf(details.Operation.Consumes, spec.Model().Consumes); ct != "" {
			req.AppendHeader("Content-Type: " + ct)
		}
	}
	if accept := firstOf(details.Operation.Produces, spec.Model().Produces); accept != "" {
		req.AppendHeader("Accept: " + accept)
	}

	url := spec.Scheme() + "://" + spec.Host() + spec.BasePath() + braceParamRe.ReplaceAllString(op.Path, ":$1")
	if len(query) > 0 {
		url += "?" + strings.Join(query, "&")
	}
	req.URL = url

	return req
}

func firstOf(primary, fallback []string) string {
	if len(primary) > 0 {
		return primary[0]
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}

func tagDescription(model *v2.Swagger, name string) string {
	for _, tag := range model.Tags {
		if tag != nil && tag.Name == name {
			return tag.Description
		}
	}
	return ""
}
