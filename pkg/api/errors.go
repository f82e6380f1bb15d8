package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error is a failed API call. Message holds the server-provided error text
// when the response body carried one, otherwise a generic per-action fallback.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api: %s failed (%d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %s failed: %s", e.Op, e.Message)
}

// UserMessage is the short text shown in the UI status line.
func (e *Error) UserMessage() string {
	return e.Message
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func errorFromResponse(op string, resp *http.Response) *Error {
	msg := fallbackMessage(op)
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			msg = env.Error
		}
	}
	return &Error{Op: op, StatusCode: resp.StatusCode, Message: msg}
}

func fallbackMessage(op string) string {
	switch op {
	case "fetch":
		return "failed to fetch posts"
	case "create":
		return "failed to create post"
	case "update":
		return "failed to update post"
	case "delete":
		return "failed to delete post"
	default:
		return "request failed"
	}
}
