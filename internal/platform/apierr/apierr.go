package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidCredential = "invalid_credential"
	CodeUnauthenticated   = "unauthenticated"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInternal          = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func InvalidCredential(err error) *Error {
	return New(http.StatusUnauthorized, CodeInvalidCredential, err)
}

func Unauthenticated(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, err)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, CodeForbidden, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// As unwraps err into an *Error when one is present anywhere in the chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
