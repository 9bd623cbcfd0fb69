package dtype

import "fmt"

// Validate checks that d is well-formed and memoizes the result:
// once a descriptor has been validated, every subsequent call returns the
// same outcome instantly — a descriptor that fails validation stays
// invalid for the process lifetime.
func (d *Descriptor) Validate() error {
	d.once.Do(func() {
		d.err = validate(d, "$", map[*Descriptor]bool{})
	})
	return d.err
}

func validate(d *Descriptor, path string, visiting map[*Descriptor]bool) error {
	if d == nil {
		return &BadDeclarationError{Path: path, Reason: "nil descriptor"}
	}
	if visiting[d] {
		return &BadDeclarationError{Path: path, Reason: "cyclic descriptor"}
	}
	visiting[d] = true
	defer delete(visiting, d)

	switch d.kind {
	case KindNull:
		return nil

	case KindScalar, KindNumber:
		if !d.scalarKind.Valid() {
			return &BadDeclarationError{Path: path, Reason: fmt.Sprintf("unrecognized scalar kind %d", d.scalarKind)}
		}
		return nil

	case KindStruct:
		seen := make(map[string]bool, len(d.fields))
		variableAt := -1
		for i, f := range d.fields {
			if f.Name == "" {
				return &BadDeclarationError{Path: path, Reason: "field has empty name"}
			}
			if seen[f.Name] {
				return &BadDeclarationError{Path: path, Reason: fmt.Sprintf("duplicate field name %q", f.Name)}
			}
			seen[f.Name] = true
			fieldPath := path + "." + f.Name
			if err := validate(f.Type, fieldPath, visiting); err != nil {
				return err
			}
			_, fixed, err := sizeOf(f.Type, fieldPath, visiting)
			if err != nil {
				return err
			}
			if !fixed {
				if variableAt != -1 {
					return &BadDeclarationError{Path: path, Reason: "at most one field may be variable-length"}
				}
				variableAt = i
			}
		}
		if variableAt != -1 && variableAt != len(d.fields)-1 {
			return &BadDeclarationError{Path: path, Reason: "variable-length field must be last"}
		}
		return nil

	case KindFixedArray:
		if d.length <= 0 {
			return &BadDeclarationError{Path: path, Reason: "fixed array length must be > 0"}
		}
		if err := validate(d.element, path+"[]", visiting); err != nil {
			return err
		}
		_, fixed, err := sizeOf(d.element, path+"[]", visiting)
		if err != nil {
			return err
		}
		if !fixed {
			return &BadDeclarationError{Path: path, Reason: "fixed array element must have a fixed size"}
		}
		return nil

	case KindDynamicArray:
		if err := validate(d.element, path+"[]", visiting); err != nil {
			return err
		}
		_, fixed, err := sizeOf(d.element, path+"[]", visiting)
		if err != nil {
			return err
		}
		if !fixed {
			return &BadDeclarationError{Path: path, Reason: "dynamic array element must have a fixed size"}
		}
		return nil

	default:
		return &BadDeclarationError{Path: path, Reason: fmt.Sprintf("unrecognized descriptor kind %d", d.kind)}
	}
}
