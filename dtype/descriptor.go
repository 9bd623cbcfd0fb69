// Package dtype implements the compound serializer: TypeDescriptor
// declarations, their validation, and Instance values that pack/unpack to
// bytes and to JSON. A descriptor is declared once and is immutable
// thereafter; validation runs recursively on first use and is memoized.
package dtype

import (
	"sync"

	"github.com/FooBarShebang/com-lib/scalar"
)

// Kind discriminates the variants of TypeDescriptor.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindNumber
	KindStruct
	KindFixedArray
	KindDynamicArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindNumber:
		return "number"
	case KindStruct:
		return "struct"
	case KindFixedArray:
		return "fixed_array"
	case KindDynamicArray:
		return "dynamic_array"
	default:
		return "unknown"
	}
}

// Field is one named member of a Struct descriptor. Order is significant:
// it is the on-wire field order and the JSON key order on encode.
type Field struct {
	Name string
	Type *Descriptor
}

// Descriptor is a declarative, immutable description of a compound type's
// layout. Construct one with NullType, ScalarType, NumberType, StructType,
// FixedArrayType or DynamicArrayType; every operation against it calls
// Validate first.
type Descriptor struct {
	kind       Kind
	scalarKind scalar.Kind
	fields     []Field
	element    *Descriptor
	length     int

	once sync.Once
	err  error
}

// NullType returns the descriptor for the zero-byte NULL type.
func NullType() *Descriptor {
	return &Descriptor{kind: KindNull}
}

// ScalarType returns a descriptor for a single primitive of kind k.
func ScalarType(k scalar.Kind) *Descriptor {
	return &Descriptor{kind: KindScalar, scalarKind: k}
}

// NumberType returns a descriptor for a free-standing scalar wrapper whose
// Instance is read and written through Value/SetValue. Every codec and
// accessor treats a Number exactly like a Scalar of the same kind; only
// Kind() tells the two apart.
func NumberType(k scalar.Kind) *Descriptor {
	return &Descriptor{kind: KindNumber, scalarKind: k}
}

// StructType returns a descriptor for a C-like struct with the given
// fields, in declared order.
func StructType(fields ...Field) *Descriptor {
	return &Descriptor{kind: KindStruct, fields: fields}
}

// FixedArrayType returns a descriptor for a fixed-length homogeneous array.
func FixedArrayType(element *Descriptor, length int) *Descriptor {
	return &Descriptor{kind: KindFixedArray, element: element, length: length}
}

// DynamicArrayType returns a descriptor for a variable-length homogeneous
// array; its length is determined by content, not declaration.
func DynamicArrayType(element *Descriptor) *Descriptor {
	return &Descriptor{kind: KindDynamicArray, element: element}
}

// Kind reports which variant d is.
func (d *Descriptor) Kind() Kind { return d.kind }

// ScalarKind reports the wrapped primitive kind for Scalar/Number
// descriptors; it is meaningless for other kinds.
func (d *Descriptor) ScalarKind() scalar.Kind { return d.scalarKind }

// Fields reports the declared fields of a Struct descriptor.
func (d *Descriptor) Fields() []Field { return d.fields }

// Element reports the element descriptor of an array descriptor.
func (d *Descriptor) Element() *Descriptor { return d.element }

// Length reports the declared length of a FixedArray descriptor.
func (d *Descriptor) Length() int { return d.length }
