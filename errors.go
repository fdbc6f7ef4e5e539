package butcher

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNotStruct indicates a struct shape was requested for a type that
	// is not a struct.
	ErrNotStruct = errors.New("not a struct type")

	// ErrNotInterface indicates an enum shape was requested for a type
	// that is not an interface.
	ErrNotInterface = errors.New("not an interface type")

	// ErrDuplicateField indicates two fields in one shape share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrInvalidPolicy indicates a butcher tag names an unknown policy.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrPolicyKind indicates a policy was applied to a field whose type
	// cannot support it (pass on a non-trivial type, unbox on a
	// non-pointer, rebutcher on a non-struct).
	ErrPolicyKind = errors.New("policy not applicable to field type")

	// ErrUnitVariant indicates a unit variant declared a non-empty field
	// list.
	ErrUnitVariant = errors.New("unit variant with fields")

	// ErrDuplicateVariant indicates two variants in one enum shape share
	// a tag.
	ErrDuplicateVariant = errors.New("duplicate variant tag")

	// ErrNoVariants indicates an enum shape was built with no variants.
	ErrNoVariants = errors.New("enum shape requires at least one variant")

	// ErrVariantInterface indicates a registered variant type does not
	// implement the enum interface as a pointer.
	ErrVariantInterface = errors.New("variant does not implement enum interface")

	// ErrUnknownVariant indicates a butchered enum value's dynamic type is
	// not described by the shape.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrShapeMismatch indicates a projection was handed to a butcher
	// whose shape did not produce it.
	ErrShapeMismatch = errors.New("projection does not belong to shape")

	// ErrUnknownField indicates a projection access named a field the
	// shape does not declare (or a field of a non-active variant).
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldType indicates a projection access requested a field under
	// the wrong Go type.
	ErrFieldType = errors.New("field type mismatch")

	// ErrFieldPolicy indicates a projection access used the wrong
	// accessor for the field's policy (Field on a copy field, Value on a
	// cow field, and so on).
	ErrFieldPolicy = errors.New("accessor does not match field policy")
)

// ShapeError represents a shape-construction failure. Shape errors are fatal
// to the butcher being built; no partial shape is ever produced.
type ShapeError struct {
	Err   error  // Underlying sentinel error (ErrDuplicateField, etc.)
	Type  string // Type or variant the shape was built for
	Field string // Field that triggered the error, if any
}

func (e *ShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Type, e.Err.Error(), e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Err.Error())
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// FieldError represents a failed typed access into a projection.
type FieldError struct {
	Err   error  // Underlying sentinel error (ErrUnknownField, etc.)
	Field string // Field name that was requested
	Want  string // Requested Go type, if relevant
	Got   string // Actual field type, if relevant
}

func (e *FieldError) Error() string {
	if e.Want != "" && e.Got != "" {
		return fmt.Sprintf("%s %s: want %s, have %s", e.Err.Error(), e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// newShapeError creates a ShapeError for construction-time failures.
func newShapeError(sentinel error, typeName, field string) error {
	return &ShapeError{
		Err:   sentinel,
		Type:  typeName,
		Field: field,
	}
}

// newFieldError creates a FieldError for projection access failures.
func newFieldError(sentinel error, field, want, got string) error {
	return &FieldError{
		Err:   sentinel,
		Field: field,
		Want:  want,
		Got:   got,
	}
}
