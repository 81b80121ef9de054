package types

import (
	"errors"
	"fmt"
)

// Error is the typed failure returned by value and class operations
type Error struct {
	Code ErrorCode
	Msg  string
}

// NewError creates an error carrying the code's default message
func NewError(code ErrorCode) *Error {
	return &Error{Code: code}
}

// Errorf creates an error with a formatted message
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.Message()
	}
	return e.Code.String() + ": " + e.Msg
}

// Is matches a bare ErrorCode or another *Error with the same code
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorCode:
		return e.Code == t
	case *Error:
		return e.Code == t.Code
	}
	return false
}

// CodeOf extracts the error code carried by err, or E_NONE
func CodeOf(err error) ErrorCode {
	if err == nil {
		return E_NONE
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return E_NONE
}

func castError(v Value, target string) error {
	return Errorf(E_CAST, "cannot convert %s to %s", v.Kind(), target)
}

func unaryError(op UnaryOperator, v Value) error {
	return Errorf(E_OPERATOR, "operator %s cannot be applied to %s", op, v.Kind())
}

func binaryError(op BinaryOperator, v Value) error {
	return Errorf(E_OPERATOR, "operator %s cannot be applied to %s", op, v.Kind())
}

func propertyError(v Value, name string) error {
	return Errorf(E_PROPNF, "%s has no property %q", v.Kind(), name)
}

func indexerError(v Value) error {
	return Errorf(E_OPERATOR, "%s has no indexer", v.Kind())
}
