package models

// Collection is a Postman v1 collection document
type Collection struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Order       []string   `json:"order"`
	Folders     []Folder   `json:"folders"`
	Timestamp   int64      `json:"timestamp"`
	Requests    []*Request `json:"requests"`
}

// Folder groups requests of a collection, one folder per tag
type Folder struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Order        []string `json:"order"`
	CollectionID string   `json:"collection,omitempty"`
}

// Request is a single Postman v1 request entry.
//
// Headers is a newline-delimited block of "Key: Value" lines.
type Request struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	URL              string            `json:"url"`
	Method           string            `json:"method"`
	Headers          string            `json:"headers"`
	PathVariables    map[string]string `json:"pathVariables"`
	PreRequestScript string            `json:"preRequestScript"`
	Tests            string            `json:"tests"`
	Data             []FormParam       `json:"data"`
	DataMode         string            `json:"dataMode"`
	RawModeData      string            `json:"rawModeData,omitempty"`
	Time             int64             `json:"time"`
	Responses        []any             `json:"responses"`
	CollectionID     string            `json:"collectionId"`
}

// FormParam is a form field of a "params" or "urlencoded" request
type FormParam struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}

// AppendHeader appends a header line to the request's header block
func (r *Request) AppendHeader(line string) {
	r.Headers += line + "\n"
}
