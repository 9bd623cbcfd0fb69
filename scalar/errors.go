package scalar

import "fmt"

// LengthMismatchError is returned when a byte slice handed to FromBytes does
// not have the exact width the kind requires.
type LengthMismatchError struct {
	Kind     Kind
	Expected int
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("scalar %s: expected %d bytes, got %d", e.Kind, e.Expected, e.Got)
}

// ValueOutOfRangeError is returned when a native value does not fit the
// range of the target kind.
type ValueOutOfRangeError struct {
	Kind  Kind
	Value any
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("value %v is out of range for scalar kind %s", e.Value, e.Kind)
}

// TypeMismatchError is returned when TryCast is given a value of a shape
// that can never be coerced into the target kind (e.g. a slice, a struct).
type TypeMismatchError struct {
	Kind  Kind
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("value %v (%T) cannot be cast to scalar kind %s", e.Value, e.Value, e.Kind)
}

// BadKindError is returned when an operation is attempted against an
// unrecognized Kind value.
type BadKindError struct {
	Kind Kind
}

func (e *BadKindError) Error() string {
	return fmt.Sprintf("unrecognized scalar kind %d", uint8(e.Kind))
}
