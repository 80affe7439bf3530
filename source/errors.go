package source

import (
	"fmt"
	"strings"
)

// ValidationError is raised before any request is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// HTTPStatusError reports a response status above 399.
type HTTPStatusError struct {
	Status int
	URL    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("request failed with error code: %d", e.Status)
}

// APIErrorItem is one entry of a remote error envelope.
type APIErrorItem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// APIError is a well-formed error envelope returned by the remote service.
type APIError struct {
	Errors []APIErrorItem
}

func (e *APIError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, item := range e.Errors {
		parts[i] = fmt.Sprintf("[%s]: %s", item.Title, item.Detail)
	}
	return "request failed with errors: " + strings.Join(parts, ", ")
}

// ChallengeError means the site answered with an anti-bot interstitial.
type ChallengeError struct {
	Source string
}

func (e *ChallengeError) Error() string {
	return fmt.Sprintf("cloudflare bypass error: run `papersrc bypass %s` and try again", e.Source)
}

// MalformedResponseError means the payload lacks a field that has no sensible default.
type MalformedResponseError struct {
	What string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "malformed response: " + e.What
	}
	return fmt.Sprintf("malformed response: %s: %v", e.What, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// CheckStatus turns a status above 399 into an HTTPStatusError.
func CheckStatus(status int, url string) error {
	if status > 399 {
		return &HTTPStatusError{Status: status, URL: url}
	}
	return nil
}
