package types

// ClassID identifies a class inside a registry arena.
// Primitive classes use the numeric value of the Kind they describe.
type ClassID int

// ClassNone is never handed out to a registered class
const ClassNone ClassID = 0

// ErrorCode represents a runtime error kind (E_CAST, E_RANGE, etc.)
type ErrorCode int

const (
	E_NONE      ErrorCode = 0
	E_CAST      ErrorCode = 1
	E_OPERATOR  ErrorCode = 2
	E_RANGE     ErrorCode = 3
	E_IMMUTABLE ErrorCode = 4
	E_DUPLICATE ErrorCode = 5
	E_MEMBERNF  ErrorCode = 6
	E_PROPNF    ErrorCode = 7
	E_DIV       ErrorCode = 8
	E_ARGS      ErrorCode = 9
	E_OPAQUE    ErrorCode = 10
	E_DISPOSED  ErrorCode = 11
	E_ITER      ErrorCode = 12
)

// String returns the symbolic name of an error code
func (e ErrorCode) String() string {
	switch e {
	case E_NONE:
		return "E_NONE"
	case E_CAST:
		return "E_CAST"
	case E_OPERATOR:
		return "E_OPERATOR"
	case E_RANGE:
		return "E_RANGE"
	case E_IMMUTABLE:
		return "E_IMMUTABLE"
	case E_DUPLICATE:
		return "E_DUPLICATE"
	case E_MEMBERNF:
		return "E_MEMBERNF"
	case E_PROPNF:
		return "E_PROPNF"
	case E_DIV:
		return "E_DIV"
	case E_ARGS:
		return "E_ARGS"
	case E_OPAQUE:
		return "E_OPAQUE"
	case E_DISPOSED:
		return "E_DISPOSED"
	case E_ITER:
		return "E_ITER"
	default:
		return "E_UNKNOWN"
	}
}

// Message returns a human-readable message for an error code
func (e ErrorCode) Message() string {
	switch e {
	case E_NONE:
		return "No error"
	case E_CAST:
		return "Invalid cast"
	case E_OPERATOR:
		return "Operator cannot be applied"
	case E_RANGE:
		return "Index out of range"
	case E_IMMUTABLE:
		return "Value is immutable"
	case E_DUPLICATE:
		return "Duplicate member"
	case E_MEMBERNF:
		return "Member not found"
	case E_PROPNF:
		return "Property not found"
	case E_DIV:
		return "Division by zero"
	case E_ARGS:
		return "Incorrect arguments"
	case E_OPAQUE:
		return "Body is not interpreted by the runtime"
	case E_DISPOSED:
		return "Resource has been disposed"
	case E_ITER:
		return "Iteration not supported"
	default:
		return "Unknown error"
	}
}

// Error makes an ErrorCode usable as an error and as an errors.Is target
func (e ErrorCode) Error() string {
	return e.Message()
}

// ErrorFromString converts a string like "E_CAST" to an ErrorCode
func ErrorFromString(s string) (ErrorCode, bool) {
	for code := E_NONE; code <= E_ITER; code++ {
		if code.String() == s {
			return code, true
		}
	}
	return E_NONE, false
}

// Value is the interface all runtime values implement.
//
// The set of implementations is closed: every variant lives in this package
// and is listed by Kind. Operations that only some variants support are
// package functions (Binary, Unary, GetItem, ConvertTo, ...) that switch on
// the concrete variant and fall back to the shared default behaviour.
type Value interface {
	Kind() Kind
	Class() ClassID
	String() string // script-facing representation
	Clone() Value   // deep for mutable collections, identity for scalars
	IsEmpty() bool
	sealed()
}
