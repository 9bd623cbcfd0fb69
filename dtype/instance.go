package dtype

import "github.com/FooBarShebang/com-lib/scalar"

// Instance is a concrete value conforming to a Descriptor. A Struct or
// Array Instance exclusively owns its child Instances.
type Instance struct {
	desc       *Descriptor
	scalarVal  any      // populated for KindScalar / KindNumber
	fields     map[string]*Instance // populated for KindStruct
	elems      []*Instance           // populated for KindFixedArray / KindDynamicArray
}

// Descriptor returns the descriptor this Instance was built from.
func (i *Instance) Descriptor() *Descriptor { return i.desc }

// Default builds an Instance with every field/element at its zero value:
// scalars 0, fixed arrays at their declared length filled with defaults,
// dynamic arrays empty, struct fields defaulted recursively.
func Default(d *Descriptor) (*Instance, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return defaultInstance(d), nil
}

func defaultInstance(d *Descriptor) *Instance {
	switch d.kind {
	case KindNull:
		return &Instance{desc: d}
	case KindScalar, KindNumber:
		return &Instance{desc: d, scalarVal: scalar.Default(d.scalarKind)}
	case KindStruct:
		fields := make(map[string]*Instance, len(d.fields))
		for _, f := range d.fields {
			fields[f.Name] = defaultInstance(f.Type)
		}
		return &Instance{desc: d, fields: fields}
	case KindFixedArray:
		elems := make([]*Instance, d.length)
		for i := range elems {
			elems[i] = defaultInstance(d.element)
		}
		return &Instance{desc: d, elems: elems}
	case KindDynamicArray:
		return &Instance{desc: d, elems: []*Instance{}}
	default:
		return &Instance{desc: d}
	}
}

// CurrentSize returns the exact byte size this Instance would pack to.
func (i *Instance) CurrentSize() int {
	switch i.desc.kind {
	case KindNull:
		return 0
	case KindScalar, KindNumber:
		return scalar.Width(i.desc.scalarKind)
	case KindStruct:
		total := 0
		for _, f := range i.desc.fields {
			total += i.fields[f.Name].CurrentSize()
		}
		return total
	case KindFixedArray, KindDynamicArray:
		total := 0
		for _, e := range i.elems {
			total += e.CurrentSize()
		}
		return total
	default:
		return 0
	}
}

// Len returns the number of elements in an array Instance.
func (i *Instance) Len() int {
	return len(i.elems)
}
