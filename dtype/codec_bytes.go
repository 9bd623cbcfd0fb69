package dtype

import (
	"fmt"

	"github.com/FooBarShebang/com-lib/scalar"
)

// PackBytes serializes i to its deterministic binary layout: fields
// and elements concatenated in declared/index order, no padding, no
// length or count prefixes. endian is passed unchanged to every scalar it
// produces.
func PackBytes(i *Instance, endian scalar.Endian) ([]byte, error) {
	if err := i.desc.Validate(); err != nil {
		return nil, err
	}
	return packBytes(i, endian, "$")
}

func packBytes(i *Instance, endian scalar.Endian, path string) ([]byte, error) {
	switch i.desc.kind {
	case KindNull:
		return []byte{}, nil

	case KindScalar, KindNumber:
		b, err := scalar.ToBytes(i.desc.scalarKind, i.scalarVal, endian)
		if err != nil {
			return nil, wrapScalarErr(path, err)
		}
		return b, nil

	case KindStruct:
		out := make([]byte, 0, i.CurrentSize())
		for _, f := range i.desc.fields {
			b, err := packBytes(i.fields[f.Name], endian, path+"."+f.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return out, nil

	case KindFixedArray, KindDynamicArray:
		out := make([]byte, 0, i.CurrentSize())
		for idx, e := range i.elems {
			b, err := packBytes(e, endian, fmt.Sprintf("%s[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
		return out, nil

	default:
		return nil, &BadDeclarationError{Path: path, Reason: "unrecognized descriptor kind"}
	}
}

// UnpackBytes deserializes data into an Instance of d. A fully fixed
// descriptor requires len(data) == SizeOf(d); a descriptor with a
// variable tail requires len(data) >= MinSizeOf(d), with the tail
// consuming whatever remains.
func UnpackBytes(d *Descriptor, data []byte, endian scalar.Endian) (*Instance, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return unpackBytes(d, data, endian, "$")
}

func unpackBytes(d *Descriptor, data []byte, endian scalar.Endian, path string) (*Instance, error) {
	switch d.kind {
	case KindNull:
		if len(data) != 0 {
			return nil, &LengthMismatchError{Path: path, Expected: "0", Got: len(data)}
		}
		return &Instance{desc: d}, nil

	case KindScalar, KindNumber:
		width := scalar.Width(d.scalarKind)
		if len(data) != width {
			return nil, &LengthMismatchError{Path: path, Expected: fmt.Sprintf("%d", width), Got: len(data)}
		}
		v, err := scalar.FromBytes(d.scalarKind, data, endian)
		if err != nil {
			return nil, wrapScalarErr(path, err)
		}
		return &Instance{desc: d, scalarVal: v}, nil

	case KindStruct:
		fields := make(map[string]*Instance, len(d.fields))
		offset := 0
		for idx, f := range d.fields {
			isLast := idx == len(d.fields)-1
			s, fixed, err := sizeOf(f.Type, path+"."+f.Name, map[*Descriptor]bool{})
			if err != nil {
				return nil, err
			}
			var fieldBytes []byte
			if fixed {
				if offset+s > len(data) {
					return nil, &LengthMismatchError{Path: path, Expected: "at least " + fmt.Sprintf("%d", offset+s), Got: len(data)}
				}
				fieldBytes = data[offset : offset+s]
				offset += s
			} else if isLast {
				fieldBytes = data[offset:]
				offset = len(data)
			} else {
				return nil, &BadDeclarationError{Path: path, Reason: "variable-length field must be last"}
			}
			child, err := unpackBytes(f.Type, fieldBytes, endian, path+"."+f.Name)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = child
		}
		if offset != len(data) {
			return nil, &LengthMismatchError{Path: path, Expected: fmt.Sprintf("%d", offset), Got: len(data)}
		}
		return &Instance{desc: d, fields: fields}, nil

	case KindFixedArray:
		elemSize, elemFixed, err := sizeOf(d.element, path+"[]", map[*Descriptor]bool{})
		if err != nil {
			return nil, err
		}
		if !elemFixed {
			return nil, &BadDeclarationError{Path: path, Reason: "fixed array element must have a fixed size"}
		}
		total := d.length * elemSize
		if len(data) != total {
			return nil, &LengthMismatchError{Path: path, Expected: fmt.Sprintf("%d", total), Got: len(data)}
		}
		elems := make([]*Instance, d.length)
		offset := 0
		for idx := range elems {
			child, err := unpackBytes(d.element, data[offset:offset+elemSize], endian, fmt.Sprintf("%s[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			elems[idx] = child
			offset += elemSize
		}
		return &Instance{desc: d, elems: elems}, nil

	case KindDynamicArray:
		elemSize, elemFixed, err := sizeOf(d.element, path+"[]", map[*Descriptor]bool{})
		if err != nil {
			return nil, err
		}
		if !elemFixed {
			return nil, &BadDeclarationError{Path: path, Reason: "dynamic array element must have a fixed size"}
		}
		if elemSize == 0 {
			if len(data) != 0 {
				return nil, &LengthMismatchError{Path: path, Expected: "0", Got: len(data)}
			}
			return &Instance{desc: d, elems: []*Instance{}}, nil
		}
		if len(data)%elemSize != 0 {
			return nil, &LengthMismatchError{Path: path, Expected: fmt.Sprintf("multiple of %d", elemSize), Got: len(data)}
		}
		n := len(data) / elemSize
		elems := make([]*Instance, n)
		offset := 0
		for idx := 0; idx < n; idx++ {
			child, err := unpackBytes(d.element, data[offset:offset+elemSize], endian, fmt.Sprintf("%s[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			elems[idx] = child
			offset += elemSize
		}
		return &Instance{desc: d, elems: elems}, nil

	default:
		return nil, &BadDeclarationError{Path: path, Reason: "unrecognized descriptor kind"}
	}
}
