package processor

import (
	"fmt"

	"github.com/moamenhredeen/swagger2postman/internal/generator"
	"github.com/moamenhredeen/swagger2postman/internal/models"
	"github.com/moamenhredeen/swagger2postman/internal/output"
	v2 "github.com/pb33f/libopenapi/datamodel/high/v2"
)

// Sampler produces an example request body for an operation. A nil sample
// means the operation has no body schema.
type Sampler interface {
	GenerateRequestBody(op *v2.Operation, refs generator.RefsLookup) (interface{}, error)
}

// AttachBody generates a sample for op and stores it, pretty printed, as the
// request's raw body. It reports whether a body was attached.
func AttachBody(req *models.Request, sampler Sampler, op *v2.Operation, refs generator.RefsLookup) (bool, error) {
	sample, err := sampler.GenerateRequestBody(op, refs)
	if err != nil {
		return false, fmt.Errorf("generate body for %s %s: %w", req.Method, req.URL, err)
	}
	if isEmptySample(sample) {
		return false, nil
	}

	data, err := output.Marshal(sample, output.FormatPretty)
	if err != nil {
		return false, fmt.Errorf("serialize body for %s %s: %w", req.Method, req.URL, err)
	}
	req.RawModeData = string(data)
	return true, nil
}

func isEmptySample(sample interface{}) bool {
	switch v := sample.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	default:
		return false
	}
}
