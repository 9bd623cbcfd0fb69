package dtype

import "fmt"

// BadDeclarationError reports that a TypeDescriptor violates the
// well-formedness rules: fields must be named and unique, at most one
// variable-length member and only in final position, array elements must
// be fixed-length, and so on.
type BadDeclarationError struct {
	Path   string
	Reason string
}

func (e *BadDeclarationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bad declaration: %s", e.Reason)
	}
	return fmt.Sprintf("bad declaration at %q: %s", e.Path, e.Reason)
}

// TypeMismatchError reports that a native or JSON value has the wrong
// shape for the target descriptor (e.g. a JSON array where an object was
// expected).
type TypeMismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch at %q: expected %s, got %s", e.Path, e.Expected, e.Got)
}

// ShapeMismatchError reports a structural mismatch: an unknown or missing
// struct key, or an array of the wrong length.
type ShapeMismatchError struct {
	Path   string
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch at %q: %s", e.Path, e.Reason)
}

// ValueOutOfRangeError reports that a numeric value does not fit the
// target scalar kind.
type ValueOutOfRangeError struct {
	Path string
	Err  error
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("value out of range at %q: %v", e.Path, e.Err)
}

func (e *ValueOutOfRangeError) Unwrap() error { return e.Err }

// LengthMismatchError reports that a byte buffer's length does not match
// (or, for a DynamicArray, is not a multiple of) the expected size.
type LengthMismatchError struct {
	Path     string
	Expected string
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch at %q: expected %s, got %d bytes", e.Path, e.Expected, e.Got)
}

// AccessError reports a read/write against a name or index that is not
// declared, not permitted, or not mutable.
type AccessError struct {
	Path   string
	Reason string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access error at %q: %s", e.Path, e.Reason)
}

// JSONParseError reports that input text is not valid JSON.
type JSONParseError struct {
	Err error
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("json parse error: %v", e.Err)
}

func (e *JSONParseError) Unwrap() error { return e.Err }
