// Package network implements the rate-limited HTTP request executor shared by all sources.
package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request is a single outbound call as a source describes it.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Data is sent verbatim when it is a string or []byte, JSON-encoded otherwise.
	Data any
}

// Response is what the executor hands back: status and the full body.
type Response struct {
	Status  int
	Headers http.Header
	Data    []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func (r *Request) body() (io.Reader, bool, error) {
	switch data := r.Data.(type) {
	case nil:
		return nil, false, nil
	case string:
		return bytes.NewBufferString(data), false, nil
	case []byte:
		return bytes.NewReader(data), false, nil
	default:
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, false, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(encoded), true, nil
	}
}

func (r *Request) build() (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	body, isJSON, err := r.body()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	if isJSON && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}
