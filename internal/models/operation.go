package models

// Operation represents a Swagger operation as seen by the collection converter
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Tags        []string
}

// Name returns the display name used for the Postman request
func (o Operation) Name() string {
	if o.Summary != "" {
		return o.Summary
	}
	if o.OperationID != "" {
		return o.OperationID
	}
	return o.Path
}
