package dtype

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/FooBarShebang/com-lib/scalar"
)

// PackJSON encodes i to JSON text: null for Null, an object with keys
// in declared field order for Struct, an array for either array kind, a
// number for scalar kinds and a one-character string for char. The
// encoder writes the object byte-by-byte in declared order rather than
// going through encoding/json's map-based Marshal, which sorts keys
// alphabetically and would break encode determinism.
func PackJSON(i *Instance) (string, error) {
	if err := i.desc.Validate(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, i); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeJSON(buf *bytes.Buffer, i *Instance) error {
	switch i.desc.kind {
	case KindNull:
		buf.WriteString("null")
		return nil

	case KindScalar, KindNumber:
		return writeScalarJSON(buf, i.desc.scalarKind, i.scalarVal)

	case KindStruct:
		buf.WriteByte('{')
		for idx, f := range i.desc.fields {
			if idx > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, i.fields[f.Name]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case KindFixedArray, KindDynamicArray:
		buf.WriteByte('[')
		for idx, e := range i.elems {
			if idx > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		return &BadDeclarationError{Reason: "unrecognized descriptor kind"}
	}
}

func writeScalarJSON(buf *bytes.Buffer, kind scalar.Kind, v any) error {
	if kind == scalar.Char {
		b, err := json.Marshal(string(rune(v.(byte))))
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
	if scalar.IsFloat(kind) {
		var f float64
		switch kind {
		case scalar.F32:
			f = float64(v.(float32))
		case scalar.F64:
			f = v.(float64)
		}
		b, err := json.Marshal(f)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
	// Integer kinds marshal from their native typed value (int8 .. uint64)
	// rather than a float64 intermediate: encoding/json formats integers
	// with strconv and keeps full precision, where float64 would lose it
	// for I64/U64 magnitudes above 2^53.
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// UnpackJSON parses text and, only once it parses as plain JSON, walks
// the generic value against d before constructing any Instance — a
// mismatch never leaves a partially-built Instance observable.
func UnpackJSON(d *Descriptor, text string) (*Instance, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, &JSONParseError{Err: err}
	}
	return fromJSON(d, generic, "$")
}

func fromJSON(d *Descriptor, v any, path string) (*Instance, error) {
	switch d.kind {
	case KindNull:
		if v != nil {
			return nil, &TypeMismatchError{Path: path, Expected: "null", Got: fmt.Sprintf("%T", v)}
		}
		return &Instance{desc: d}, nil

	case KindScalar, KindNumber:
		return fromJSONScalar(d, v, path)

	case KindStruct:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, &TypeMismatchError{Path: path, Expected: "object", Got: fmt.Sprintf("%T", v)}
		}
		consumed := make(map[string]bool, len(d.fields))
		fields := make(map[string]*Instance, len(d.fields))
		for _, f := range d.fields {
			raw, present := obj[f.Name]
			if !present {
				return nil, &ShapeMismatchError{Path: path, Reason: fmt.Sprintf("missing key %q", f.Name)}
			}
			consumed[f.Name] = true
			child, err := fromJSON(f.Type, raw, path+"."+f.Name)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = child
		}
		for k := range obj {
			if !consumed[k] {
				return nil, &ShapeMismatchError{Path: path, Reason: fmt.Sprintf("unknown key %q", k)}
			}
		}
		return &Instance{desc: d, fields: fields}, nil

	case KindFixedArray:
		arr, ok := v.([]any)
		if !ok {
			return nil, &TypeMismatchError{Path: path, Expected: "array", Got: fmt.Sprintf("%T", v)}
		}
		if len(arr) != d.length {
			return nil, &ShapeMismatchError{Path: path, Reason: fmt.Sprintf("expected %d elements, got %d", d.length, len(arr))}
		}
		elems := make([]*Instance, d.length)
		for idx, raw := range arr {
			child, err := fromJSON(d.element, raw, fmt.Sprintf("%s[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			elems[idx] = child
		}
		return &Instance{desc: d, elems: elems}, nil

	case KindDynamicArray:
		arr, ok := v.([]any)
		if !ok {
			return nil, &TypeMismatchError{Path: path, Expected: "array", Got: fmt.Sprintf("%T", v)}
		}
		elems := make([]*Instance, len(arr))
		for idx, raw := range arr {
			child, err := fromJSON(d.element, raw, fmt.Sprintf("%s[%d]", path, idx))
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

func fromJSONScalar(d *Descriptor, v any, path string) (*Instance, error) {
	if d.scalarKind == scalar.Char {
		s, ok := v.(string)
		if !ok {
			return nil, &TypeMismatchError{Path: path, Expected: "one-character string", Got: fmt.Sprintf("%T", v)}
		}
		canonical, err := scalar.TryCast(scalar.Char, s)
		if err != nil {
			return nil, wrapScalarErr(path, err)
		}
		return &Instance{desc: d, scalarVal: canonical}, nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return nil, &TypeMismatchError{Path: path, Expected: "number", Got: fmt.Sprintf("%T", v)}
	}
	var native any
	if scalar.IsFloat(d.scalarKind) {
		f, err := num.Float64()
		if err != nil {
			return nil, &TypeMismatchError{Path: path, Expected: "number", Got: num.String()}
		}
		native = f
	} else {
		if i, err := num.Int64(); err == nil {
			native = i
		} else if u, err := strconv.ParseUint(num.String(), 10, 64); err == nil {
			// num.Int64 rejects anything above math.MaxInt64; a U64 literal
			// in that range is still a well-formed unsigned integer, so
			// parse it directly instead of falling through to float64 and
			// losing precision.
			native = u
		} else if f, err := num.Float64(); err == nil {
			if math.Trunc(f) != f {
				return nil, &ValueOutOfRangeError{Path: path, Err: fmt.Errorf("%s is not an integer", num.String())}
			}
			native = f
		} else {
			return nil, &TypeMismatchError{Path: path, Expected: "number", Got: num.String()}
		}
	}
	canonical, err := scalar.TryCast(d.scalarKind, native)
	if err != nil {
		return nil, wrapScalarErr(path, err)
	}
	return &Instance{desc: d, scalarVal: canonical}, nil
}
