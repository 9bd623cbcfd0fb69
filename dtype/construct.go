package dtype

import (
	"fmt"

	"github.com/FooBarShebang/com-lib/scalar"
)

// FromNative builds an Instance of d from a compatible native Go value: a
// map[string]any (or another *Instance) for Struct, a []any (or another
// *Instance) for FixedArray/DynamicArray, or a plain numeric/string value
// for Scalar/Number.
func FromNative(d *Descriptor, v any) (*Instance, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return fromNative(d, v, "$")
}

func fromNative(d *Descriptor, v any, path string) (*Instance, error) {
	switch d.kind {
	case KindNull:
		if v != nil {
			return nil, &TypeMismatchError{Path: path, Expected: "null", Got: fmt.Sprintf("%T", v)}
		}
		return &Instance{desc: d}, nil

	case KindScalar, KindNumber:
		canonical, err := scalar.TryCast(d.scalarKind, v)
		if err != nil {
			return nil, wrapScalarErr(path, err)
		}
		return &Instance{desc: d, scalarVal: canonical}, nil

	case KindStruct:
		fields := make(map[string]*Instance, len(d.fields))
		switch src := v.(type) {
		case nil:
			for _, f := range d.fields {
				fields[f.Name] = defaultInstance(f.Type)
			}
		case map[string]any:
			consumed := make(map[string]bool, len(d.fields))
			for _, f := range d.fields {
				raw, present := src[f.Name]
				if !present {
					fields[f.Name] = defaultInstance(f.Type)
					continue
				}
				consumed[f.Name] = true
				child, err := fromNative(f.Type, raw, path+"."+f.Name)
				if err != nil {
					return nil, err
				}
				fields[f.Name] = child
			}
			for k := range src {
				if !consumed[k] {
					return nil, &ShapeMismatchError{Path: path, Reason: fmt.Sprintf("unknown key %q", k)}
				}
			}
		case *Instance:
			if src.desc.kind != KindStruct {
				return nil, &TypeMismatchError{Path: path, Expected: "struct", Got: src.desc.kind.String()}
			}
			for _, f := range d.fields {
				child, present := src.fields[f.Name]
				if !present {
					fields[f.Name] = defaultInstance(f.Type)
					continue
				}
				copied, err := fromNative(f.Type, childNativeForCopy(child), path+"."+f.Name)
				if err != nil {
					return nil, err
				}
				fields[f.Name] = copied
			}
			// Unknown fields of src are ignored: copy-by-name-intersection.
		default:
			return nil, &TypeMismatchError{Path: path, Expected: "struct mapping", Got: fmt.Sprintf("%T", v)}
		}
		return &Instance{desc: d, fields: fields}, nil

	case KindFixedArray:
		seq, err := nativeSequence(v, path)
		if err != nil {
			return nil, err
		}
		elems := make([]*Instance, d.length)
		for idx := 0; idx < d.length; idx++ {
			if idx < len(seq) {
				child, err := fromNative(d.element, seq[idx], fmt.Sprintf("%s[%d]", path, idx))
				if err != nil {
					return nil, err
				}
				elems[idx] = child
			} else {
				elems[idx] = defaultInstance(d.element)
			}
		}
		return &Instance{desc: d, elems: elems}, nil

	case KindDynamicArray:
		seq, err := nativeSequence(v, path)
		if err != nil {
			return nil, err
		}
		elems := make([]*Instance, len(seq))
		for idx, raw := range seq {
			child, err := fromNative(d.element, raw, fmt.Sprintf("%s[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			elems[idx] = child
		}
		return &Instance{desc: d, elems: elems}, nil

	default:
		return nil, &BadDeclarationError{Path: path, Reason: "unrecognized descriptor kind"}
	}
}

// nativeSequence normalizes an array constructor's input into a []any,
// accepting nil (empty), a []any, or another array Instance to copy from.
func nativeSequence(v any, path string) ([]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return t, nil
	case *Instance:
		if t.desc.kind != KindFixedArray && t.desc.kind != KindDynamicArray {
			return nil, &TypeMismatchError{Path: path, Expected: "array", Got: t.desc.kind.String()}
		}
		seq := make([]any, len(t.elems))
		for i, e := range t.elems {
			seq[i] = childNativeForCopy(e)
		}
		return seq, nil
	default:
		return nil, &TypeMismatchError{Path: path, Expected: "array", Got: fmt.Sprintf("%T", v)}
	}
}

// childNativeForCopy extracts the value to feed back into fromNative when
// copying one Instance's child into another descriptor's Instance: the
// stored native value for scalars, or the child Instance itself for
// compound kinds (so the Struct/array branches above can recurse).
func childNativeForCopy(child *Instance) any {
	switch child.desc.kind {
	case KindScalar, KindNumber:
		return child.scalarVal
	default:
		return child
	}
}

func wrapScalarErr(path string, err error) error {
	switch err.(type) {
	case *scalar.ValueOutOfRangeError:
		return &ValueOutOfRangeError{Path: path, Err: err}
	case *scalar.TypeMismatchError:
		return &TypeMismatchError{Path: path, Expected: "scalar", Got: err.Error()}
	default:
		return &BadDeclarationError{Path: path, Reason: err.Error()}
	}
}

// ToNative converts an Instance back into its native Go representation:
// a map[string]any for Struct, a []any for the array kinds, the stored
// scalar for Scalar/Number, nil for Null.
func (i *Instance) ToNative() any {
	switch i.desc.kind {
	case KindNull:
		return nil
	case KindScalar, KindNumber:
		return i.scalarVal
	case KindStruct:
		m := make(map[string]any, len(i.desc.fields))
		for _, f := range i.desc.fields {
			m[f.Name] = i.fields[f.Name].ToNative()
		}
		return m
	case KindFixedArray, KindDynamicArray:
		s := make([]any, len(i.elems))
		for idx, e := range i.elems {
			s[idx] = e.ToNative()
		}
		return s
	default:
		return nil
	}
}
