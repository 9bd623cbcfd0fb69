package dtype

import "github.com/FooBarShebang/com-lib/scalar"

// sizeOf computes the fixed byte size of d, or reports fixed=false when d
// is variable-length. It assumes d has already been structurally
// validated; it is used both by Validate (to locate the variable tail)
// and by the public SizeOf.
func sizeOf(d *Descriptor, path string, visiting map[*Descriptor]bool) (size int, fixed bool, err error) {
	if visiting[d] {
		return 0, false, &BadDeclarationError{Path: path, Reason: "cyclic descriptor"}
	}
	switch d.kind {
	case KindNull:
		return 0, true, nil
	case KindScalar, KindNumber:
		return scalar.Width(d.scalarKind), true, nil
	case KindFixedArray:
		elemSize, elemFixed, err := sizeOf(d.element, path+"[]", visiting)
		if err != nil {
			return 0, false, err
		}
		if !elemFixed {
			return 0, false, nil
		}
		return d.length * elemSize, true, nil
	case KindDynamicArray:
		return 0, false, nil
	case KindStruct:
		total := 0
		for _, f := range d.fields {
			s, fixedF, err := sizeOf(f.Type, path+"."+f.Name, visiting)
			if err != nil {
				return 0, false, err
			}
			if !fixedF {
				return 0, false, nil
			}
			total += s
		}
		return total, true, nil
	default:
		return 0, false, &BadDeclarationError{Path: path, Reason: "unrecognized descriptor kind"}
	}
}

// minSizeOf computes the minimum possible byte size of d: the size itself
// for fixed descriptors, 0 for a bare DynamicArray, and — recursively, with
// no special-casing needed — the sum of each field's minimum size for a
// Struct, which naturally folds in a nested struct's own fixed prefix when
// the variable tail is itself a struct.
func minSizeOf(d *Descriptor, path string, visiting map[*Descriptor]bool) (int, error) {
	if visiting[d] {
		return 0, &BadDeclarationError{Path: path, Reason: "cyclic descriptor"}
	}
	switch d.kind {
	case KindNull:
		return 0, nil
	case KindScalar, KindNumber:
		return scalar.Width(d.scalarKind), nil
	case KindFixedArray:
		elemSize, elemFixed, err := sizeOf(d.element, path+"[]", visiting)
		if err != nil {
			return 0, err
		}
		if !elemFixed {
			return 0, &BadDeclarationError{Path: path, Reason: "fixed array element must have a fixed size"}
		}
		return d.length * elemSize, nil
	case KindDynamicArray:
		return 0, nil
	case KindStruct:
		total := 0
		for _, f := range d.fields {
			s, err := minSizeOf(f.Type, path+"."+f.Name, visiting)
			if err != nil {
				return 0, err
			}
			total += s
		}
		return total, nil
	default:
		return 0, &BadDeclarationError{Path: path, Reason: "unrecognized descriptor kind"}
	}
}

// SizeOf returns the fixed byte size of d, and ok=false if d is
// variable-length ("unknown" at the type level).
func SizeOf(d *Descriptor) (size int, ok bool, err error) {
	if err := d.Validate(); err != nil {
		return 0, false, err
	}
	return sizeOf(d, "$", map[*Descriptor]bool{})
}

// MinSizeOf returns the minimum byte size any Instance of d can have (0
// for an empty struct or a bare dynamic array).
func MinSizeOf(d *Descriptor) (int, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	return minSizeOf(d, "$", map[*Descriptor]bool{})
}
