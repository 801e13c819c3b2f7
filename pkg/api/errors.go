package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"todoapp/pkg/task"
)

var (
	ErrNotFound     = errors.New("task not found")
	// ErrUnauthorized is the cause of a 401 answer to a request that carried
	// the stored bearer token.
	ErrUnauthorized = errors.New("session rejected by server")
)

const notFoundMessage = "Task not found"

// TransportError is any failed round trip. Status is zero when no response
// came back; otherwise Status and the raw "detail" payload describe the
// rejection. Err carries the underlying cause when there is one.
type TransportError struct {
	Op     string
	Status int
	Detail json.RawMessage
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 && e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}

	msg := fmt.Sprintf("%s: status %d", e.Op, e.Status)
	if detail := e.detailMessage(); detail != "" {
		msg += ": " + detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// detailMessage renders a string detail as is and an object or array as
// compact JSON. Anything else yields "".
func (e *TransportError) detailMessage() string {
	raw := bytes.TrimSpace(e.Detail)
	if len(raw) == 0 {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return ""
		}
		return buf.String()
	default:
		return ""
	}
}

// Message turns any error from this package or from local validation into
// text for the user, using fallback when nothing better is available.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var verr *task.ValidationError
	if errors.As(err, &verr) {
		return verr.Msg
	}
	if errors.Is(err, ErrNotFound) {
		return notFoundMessage
	}

	var terr *TransportError
	if errors.As(err, &terr) {
		if msg := terr.detailMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
