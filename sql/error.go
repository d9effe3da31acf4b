package sql

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	UnknownError ErrorKind = iota
	CatalogNotFound
	PropertyNotFound
	ParameterIndexOutOfRange
	ExpressionNotConstant
	TypeMismatch
	InvalidEnumValue
	InvalidPropertyValue
)

var errorKinds = [...]string{
	UnknownError:             "UnknownError",
	CatalogNotFound:          "CatalogNotFound",
	PropertyNotFound:         "PropertyNotFound",
	ParameterIndexOutOfRange: "ParameterIndexOutOfRange",
	ExpressionNotConstant:    "ExpressionNotConstant",
	TypeMismatch:             "TypeMismatch",
	InvalidEnumValue:         "InvalidEnumValue",
	InvalidPropertyValue:     "InvalidPropertyValue",
}

func (ek ErrorKind) String() string {
	if ek < 0 || int(ek) >= len(errorKinds) {
		return fmt.Sprintf("ErrorKind(%d)", int(ek))
	}
	return errorKinds[ek]
}

// Error is returned for every failure of a session property assignment; the message is
// shown to users as is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of err, or UnknownError if err is not (and does not wrap) an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownError
}
