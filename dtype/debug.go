package dtype

import (
	"fmt"
	"strings"
)

// String implements fmt.Stringer with a compact one-line rendering, handy
// in logs and test failures.
func (i *Instance) String() string {
	var b strings.Builder
	writeDebug(&b, i)
	return b.String()
}

func writeDebug(b *strings.Builder, i *Instance) {
	switch i.desc.kind {
	case KindNull:
		b.WriteString("null")

	case KindScalar, KindNumber:
		fmt.Fprintf(b, "%v", i.scalarVal)

	case KindStruct:
		b.WriteByte('{')
		for idx, f := range i.desc.fields {
			if idx > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", f.Name)
			writeDebug(b, i.fields[f.Name])
		}
		b.WriteByte('}')

	case KindFixedArray, KindDynamicArray:
		b.WriteByte('[')
		for idx, e := range i.elems {
			if idx > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, e)
		}
		b.WriteByte(']')
	}
}

// DebugString is String with the descriptor kind of every node spelled
// out, for diagnosing a shape mismatch that String alone won't show.
func (i *Instance) DebugString() string {
	var b strings.Builder
	writeDebugTyped(&b, i)
	return b.String()
}

func writeDebugTyped(b *strings.Builder, i *Instance) {
	switch i.desc.kind {
	case KindNull:
		b.WriteString("null")

	case KindScalar, KindNumber:
		fmt.Fprintf(b, "%s(%v)", i.desc.scalarKind, i.scalarVal)

	case KindStruct:
		b.WriteString("struct{")
		for idx, f := range i.desc.fields {
			if idx > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", f.Name)
			writeDebugTyped(b, i.fields[f.Name])
		}
		b.WriteByte('}')

	case KindFixedArray:
		fmt.Fprintf(b, "array[%d]{", len(i.elems))
		for idx, e := range i.elems {
			if idx > 0 {
				b.WriteString(", ")
			}
			writeDebugTyped(b, e)
		}
		b.WriteByte('}')

	case KindDynamicArray:
		fmt.Fprintf(b, "slice[%d]{", len(i.elems))
		for idx, e := range i.elems {
			if idx > 0 {
				b.WriteString(", ")
			}
			writeDebugTyped(b, e)
		}
		b.WriteByte('}')
	}
}
