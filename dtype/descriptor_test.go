package dtype

import (
	"testing"

	"github.com/FooBarShebang/com-lib/scalar"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsDuplicateFieldNames(t *testing.T) {
	d := StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "a", Type: ScalarType(scalar.F32)},
	)
	err := d.Validate()
	var badDecl *BadDeclarationError
	require.ErrorAs(t, err, &badDecl)
}

func TestValidateRejectsVariableLengthNotLast(t *testing.T) {
	d := StructType(
		Field{Name: "a", Type: DynamicArrayType(ScalarType(scalar.I16))},
		Field{Name: "b", Type: ScalarType(scalar.I16)},
	)
	err := d.Validate()
	var badDecl *BadDeclarationError
	require.ErrorAs(t, err, &badDecl)
}

func TestValidateAllowsVariableLengthLast(t *testing.T) {
	d := StructType(
		Field{Name: "a", Type: ScalarType(scalar.I16)},
		Field{Name: "b", Type: DynamicArrayType(ScalarType(scalar.I16))},
	)
	require.NoError(t, d.Validate())
}

func TestValidateRejectsArrayOfVariableLengthElement(t *testing.T) {
	inner := StructType(
		Field{Name: "tail", Type: DynamicArrayType(ScalarType(scalar.U8))},
	)
	d := FixedArrayType(inner, 3)
	err := d.Validate()
	var badDecl *BadDeclarationError
	require.ErrorAs(t, err, &badDecl)
}

func TestValidateMemoizesResult(t *testing.T) {
	d := ScalarType(scalar.I32)
	require.NoError(t, d.Validate())
	require.NoError(t, d.Validate())
}

func TestValidateRejectsEmptyFieldName(t *testing.T) {
	d := StructType(Field{Name: "", Type: ScalarType(scalar.I16)})
	err := d.Validate()
	var badDecl *BadDeclarationError
	require.ErrorAs(t, err, &badDecl)
}
