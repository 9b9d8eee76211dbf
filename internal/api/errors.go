package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Kind classifies a request failure for callers that branch on it.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindNotFound
	KindValidation
	KindServer
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation failed"
	case KindServer:
		return "server error"
	case KindNetwork:
		return "network failure"
	default:
		return "unknown"
	}
}

// Error is the typed failure surfaced by every client call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

const fallbackMessage = "request failed"

// errorBody is the backend's error payload; FastAPI-style services
// use "detail", others "message".
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// classify maps a non-2xx response to a typed error. The message
// prefers the server-provided detail, then message, then a generic
// fallback.
func classify(resp *http.Response) *Error {
	kind := KindUnknown
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = KindUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		kind = KindNotFound
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		kind = KindValidation
	case resp.StatusCode >= 500:
		kind = KindServer
	}

	msg := fallbackMessage
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case len(body.Detail) > 0:
			var s string
			if json.Unmarshal(body.Detail, &s) == nil && s != "" {
				msg = s
			} else {
				// Structured validation detail; keep it readable.
				msg = string(body.Detail)
			}
		case body.Message != "":
			msg = body.Message
		}
	}

	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}

// networkError wraps a transport failure where no response arrived.
func networkError(err error) *Error {
	msg := fallbackMessage
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: KindNetwork, Message: msg, cause: err}
}
