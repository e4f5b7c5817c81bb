package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed catalog call.
type ErrorKind int

const (
	// KindServer is any server failure not covered by a more specific kind.
	KindServer ErrorKind = iota
	// KindTransport means no response reached the client.
	KindTransport
	// KindUnauthorized is a 401 response.
	KindUnauthorized
	// KindNotFound is a 404 response.
	KindNotFound
	// KindValidation is a 400 or 422 response.
	KindValidation
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "server"
	}
}

// sentinel returns the coded domain error matching the kind.
func (k ErrorKind) sentinel() *DomainError {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrBookNotFound
	case KindValidation:
		return ErrValidation
	default:
		return ErrServer
	}
}

// PayloadShape describes which form the error body took.
type PayloadShape int

const (
	// ShapeUnknown means the body was empty, not JSON, or had no known field.
	ShapeUnknown PayloadShape = iota
	// ShapeFieldList is {"detail": [{"loc": [...], "msg": "..."}]}.
	ShapeFieldList
	// ShapeDetail is {"detail": "..."}.
	ShapeDetail
	// ShapeMessage is {"message": "..."}.
	ShapeMessage
)

// String returns the shape name.
func (s PayloadShape) String() string {
	switch s {
	case ShapeFieldList:
		return "field_list"
	case ShapeDetail:
		return "detail"
	case ShapeMessage:
		return "message"
	default:
		return "unknown"
	}
}

// FieldError is one entry of a structured validation response.
type FieldError struct {
	Location []string
	Message  string
}

// String renders "loc.path: message", or the bare message when the
// location is empty.
func (f FieldError) String() string {
	loc := strings.Join(f.Location, ".")
	if loc == "" {
		return f.Message
	}
	return loc + ": " + f.Message
}

// ServerError is the classified form of a failed catalog call.
// Kind says what went wrong; Shape says which payload fields carry the
// explanation (Fields for ShapeFieldList, Text for ShapeDetail and ShapeMessage).
type ServerError struct {
	Kind       ErrorKind
	StatusCode int
	Shape      PayloadShape
	Fields     []FieldError
	Text       string
	Cause      error
	// SessionCleared is set on a 401 that caused the stored session to be
	// dropped. It stays false when no session was held.
	SessionCleared bool
}

// Classify builds a ServerError from a non-2xx status code and its raw body.
func Classify(status int, body []byte) *ServerError {
	e := &ServerError{
		Kind:       kindForStatus(status),
		StatusCode: status,
	}
	e.Shape, e.Fields, e.Text = parsePayload(body)
	return e
}

// TransportFailure wraps an error raised before any response arrived.
func TransportFailure(cause error) *ServerError {
	return &ServerError{
		Kind:  KindTransport,
		Cause: cause,
	}
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// parsePayload tries the known error body layouts in order:
// detail as list, detail as string, then message.
func parsePayload(body []byte) (PayloadShape, []FieldError, string) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ShapeUnknown, nil, ""
	}

	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ShapeUnknown, nil, ""
	}

	if len(payload.Detail) > 0 {
		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
			fields := make([]FieldError, 0, len(items))
			for _, item := range items {
				loc := make([]string, 0, len(item.Loc))
				for _, part := range item.Loc {
					loc = append(loc, fmt.Sprint(part))
				}
				fields = append(fields, FieldError{Location: loc, Message: item.Msg})
			}
			return ShapeFieldList, fields, ""
		}

		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil && text != "" {
			return ShapeDetail, nil, text
		}
	}

	if len(payload.Message) > 0 {
		var text string
		if err := json.Unmarshal(payload.Message, &text); err == nil && text != "" {
			return ShapeMessage, nil, text
		}
	}

	return ShapeUnknown, nil, ""
}

// Message returns one human-readable line describing the failure.
func (e *ServerError) Message() string {
	switch e.Shape {
	case ShapeFieldList:
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.String())
		}
		return strings.Join(parts, "; ")
	case ShapeDetail, ShapeMessage:
		return e.Text
	}
	if e.Kind == KindTransport && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Kind.sentinel().Message
}

// Code returns the domain error code of the kind.
func (e *ServerError) Code() string {
	return e.Kind.sentinel().Code
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	base := e.Kind.sentinel()
	msg := e.Message()
	if msg == base.Message {
		return fmt.Sprintf("[%s] %s", base.Code, base.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", base.Code, base.Message, msg)
}

// Unwrap returns the transport cause, if any.
func (e *ServerError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match a ServerError against the coded sentinels,
// e.g. errors.Is(err, ErrBookNotFound).
func (e *ServerError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code() == t.Code
}
