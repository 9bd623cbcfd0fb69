package dtype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FooBarShebang/com-lib/scalar"
)

// Value returns the stored native value of a Scalar or Number Instance.
// It panics if called on a compound Instance; callers that don't already
// know the kind should check Descriptor().Kind() first.
func (i *Instance) Value() any {
	if i.desc.kind != KindScalar && i.desc.kind != KindNumber {
		panic("dtype: Value called on a non-scalar Instance")
	}
	return i.scalarVal
}

// SetValue overwrites the stored value of a Scalar or Number Instance
// after range-checking v against the descriptor's kind.
func (i *Instance) SetValue(v any) error {
	if i.desc.kind != KindScalar && i.desc.kind != KindNumber {
		return &AccessError{Reason: "SetValue is only valid on a scalar Instance"}
	}
	canonical, err := scalar.TryCast(i.desc.scalarKind, v)
	if err != nil {
		return wrapScalarErr("$", err)
	}
	i.scalarVal = canonical
	return nil
}

// Get returns the child Instance stored under field name. It errors if i
// is not a Struct Instance or name is not a declared field.
func (i *Instance) Get(name string) (*Instance, error) {
	if i.desc.kind != KindStruct {
		return nil, &AccessError{Path: name, Reason: "Get is only valid on a struct Instance"}
	}
	child, ok := i.fields[name]
	if !ok {
		return nil, &AccessError{Path: name, Reason: "no such field"}
	}
	return child, nil
}

// Set assigns a new native value to a scalar field of a Struct Instance.
// Compound fields are not settable through Set: build the replacement
// with FromNative and splice it into the parent via a fresh Struct
// construction instead.
func (i *Instance) Set(name string, v any) error {
	if i.desc.kind != KindStruct {
		return &AccessError{Path: name, Reason: "Set is only valid on a struct Instance"}
	}
	child, ok := i.fields[name]
	if !ok {
		return &AccessError{Path: name, Reason: "no such field"}
	}
	if child.desc.kind != KindScalar && child.desc.kind != KindNumber {
		return &AccessError{Path: name, Reason: "field is not a scalar, use FromNative to replace it"}
	}
	return child.SetValue(v)
}

// At returns the element Instance at idx of a FixedArray/DynamicArray
// Instance.
func (i *Instance) At(idx int) (*Instance, error) {
	if i.desc.kind != KindFixedArray && i.desc.kind != KindDynamicArray {
		return nil, &AccessError{Path: fmt.Sprintf("[%d]", idx), Reason: "At is only valid on an array Instance"}
	}
	if idx < 0 || idx >= len(i.elems) {
		return nil, &AccessError{Path: fmt.Sprintf("[%d]", idx), Reason: "index out of range"}
	}
	return i.elems[idx], nil
}

// SetAt assigns a new native value to a scalar element at idx.
func (i *Instance) SetAt(idx int, v any) error {
	elem, err := i.At(idx)
	if err != nil {
		return err
	}
	if elem.desc.kind != KindScalar && elem.desc.kind != KindNumber {
		return &AccessError{Path: fmt.Sprintf("[%d]", idx), Reason: "element is not a scalar, use FromNative to replace it"}
	}
	return elem.SetValue(v)
}

// Append grows a DynamicArray Instance by one element built from v.
// It errors on a FixedArray or non-array Instance.
func (i *Instance) Append(v any) error {
	if i.desc.kind != KindDynamicArray {
		return &AccessError{Reason: "Append is only valid on a dynamic array Instance"}
	}
	child, err := fromNative(i.desc.element, v, fmt.Sprintf("[%d]", len(i.elems)))
	if err != nil {
		return err
	}
	i.elems = append(i.elems, child)
	return nil
}

// GetPath resolves a dotted/indexed path such as "header.flags",
// "items[3].name" or "items.3.price" against i, descending through
// nested structs and arrays. A dotted segment that parses as a plain
// integer is treated the same as a bracketed index. A leading "$." is
// optional and stripped.
func (i *Instance) GetPath(path string) (*Instance, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, &AccessError{Path: path, Reason: err.Error()}
	}
	cur := i
	for _, seg := range segments {
		if seg.isIndex {
			cur, err = cur.At(seg.index)
		} else {
			cur, err = cur.Get(seg.name)
		}
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// SetPath resolves path like GetPath but assigns v to the scalar found at
// the end of it.
func (i *Instance) SetPath(path string, v any) error {
	target, err := i.GetPath(path)
	if err != nil {
		return err
	}
	return target.SetValue(v)
}

type pathSegment struct {
	isIndex bool
	name    string
	index   int
}

func splitPath(path string) ([]pathSegment, error) {
	path = strings.TrimPrefix(path, "$.")
	path = strings.TrimPrefix(path, "$")
	var segments []pathSegment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		for len(part) > 0 {
			br := strings.IndexByte(part, '[')
			if br < 0 {
				if idx, err := strconv.Atoi(part); err == nil {
					segments = append(segments, pathSegment{isIndex: true, index: idx})
				} else {
					segments = append(segments, pathSegment{name: part})
				}
				part = ""
				continue
			}
			if br > 0 {
				segments = append(segments, pathSegment{name: part[:br]})
			}
			close := strings.IndexByte(part[br:], ']')
			if close < 0 {
				return nil, fmt.Errorf("unterminated index in %q", path)
			}
			idxStr := part[br+1 : br+close]
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, fmt.Errorf("bad index %q in %q", idxStr, path)
			}
			segments = append(segments, pathSegment{isIndex: true, index: idx})
			part = part[br+close+1:]
		}
	}
	return segments, nil
}
