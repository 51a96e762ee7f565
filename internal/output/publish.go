package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnexpectedStatus is returned when the receiving server answers with a
// non 2xx status
var ErrUnexpectedStatus = errors.New("unexpected status")

// JSONBuilder transforms a serialized document before it is posted, for
// example to wrap it in an API envelope
type JSONBuilder func(doc []byte) ([]byte, error)

// PostResult is the response of a publish request
type PostResult struct {
	StatusCode int
	Body       []byte
}

// Publisher posts serialized documents to an HTTP endpoint
type Publisher struct {
	client *http.Client
}

// NewPublisher creates a publisher; a nil client uses http.DefaultClient
func NewPublisher(client *http.Client) *Publisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Publisher{client: client}
}

// Post sends doc, optionally transformed by build, as a JSON request body
func (p *Publisher) Post(ctx context.Context, url string, doc []byte, build JSONBuilder) (*PostResult, error) {
	payload := doc
	if build != nil {
		var err error
		payload, err = build(doc)
		if err != nil {
			return nil, fmt.Errorf("build post payload: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post document: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &PostResult{StatusCode: resp.StatusCode, Body: body}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, fmt.Errorf("post document: %w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return result, nil
}
