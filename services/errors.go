package services

import (
	"errors"
)

// ErrorKind classifies service failures; the HTTP layer maps kinds to status codes
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindValidation
	KindNotFound
	KindUnauthorized
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindPersistence:
		return "persistence"
	default:
		return "internal"
	}
}

// Error is the error type returned by every service call
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a service error, or KindInternal for anything else
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func badRequest(msg string) error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func invalid(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// the driver message is kept verbatim in the response
func persistence(err error) error {
	return &Error{Kind: KindPersistence, Message: "Database error", Err: err}
}
