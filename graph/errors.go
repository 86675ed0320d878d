package graph

import (
	"fmt"

	"github.com/graphql-go/graphql/gqlerrors"
)

// Stable error codes surfaced in the extensions block so clients can branch
// without parsing messages.
const (
	CodeUnauthenticated   = "Unauthenticated"
	CodeForbidden         = "Forbidden"
	CodeNotFound          = "NotFound"
	CodeInvalidIdentifier = "InvalidIdentifier"
)

// Error is a GraphQL-surfaced error with a machine-readable code.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions implements gqlerrors.ExtendedError so the code reaches the
// response's error list.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var _ gqlerrors.ExtendedError = (*Error)(nil)

func errUnauthenticated() *Error {
	return &Error{Message: "Unauthenticated", Code: CodeUnauthenticated}
}

func errForbidden() *Error {
	return &Error{Message: "Forbidden", Code: CodeForbidden}
}

func errNotFound(kind, id string) *Error {
	return &Error{
		Message: fmt.Sprintf("%s %q not found", kind, id),
		Code:    CodeNotFound,
	}
}

func errInvalidIdentifier(raw string) *Error {
	return &Error{
		Message: fmt.Sprintf("invalid identifier %q", raw),
		Code:    CodeInvalidIdentifier,
	}
}
