package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	ConvertFallback = "Conversion failed."
	SearchFallback  = "GIPHY search failed."

	UnreachableMessage = "Could not reach the conversion service."
	MalformedMessage   = "Unexpected response from the conversion service."
)

var (
	// ErrUnreachable wraps transport failures: no response was received.
	ErrUnreachable = errors.New("conversion service unreachable")
	// ErrMalformed wraps success responses whose body could not be decoded.
	ErrMalformed = errors.New("malformed response body")
)

// Error is a non-success HTTP response from the backend.
type Error struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// Message returns the text shown to the user for err.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *Error
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Detail
	case errors.Is(err, ErrUnreachable):
		return UnreachableMessage
	case errors.Is(err, ErrMalformed):
		return MalformedMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// detailFromBody extracts the "detail" field of an error body. FastAPI
// validation errors carry a list of {"msg": ...} objects instead of a string.
func detailFromBody(body []byte, fallback string) string {
	var eb struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return fallback
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		if s == "" {
			return fallback
		}
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(eb.Detail, &items); err == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return fallback
}
