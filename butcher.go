package butcher

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Butcher destructures Cow-wrapped values of type T according to a shape
// built once at construction. The zero value is not usable; construct with
// NewStruct, NewEnum, or the cached For/ForEnum accessors.
//
// A Butcher is immutable after construction and safe for concurrent use.
type Butcher[T any] struct {
	shape    *Shape
	typeName string
}

// NewStruct builds a butcher for struct type T. The shape is scanned from
// T's exported fields and butcher tags, with opts applied on top. All shape
// problems are reported here; Butcher itself cannot fail for struct shapes.
func NewStruct[T any](opts ...Option) (*Butcher[T], error) {
	o := buildOptions(opts)
	shape, err := structShapeFor[T](o)
	if err != nil {
		return nil, err
	}

	b := &Butcher[T]{shape: shape, typeName: shape.TypeName}
	emitShapeRegistered(context.Background(), shape.TypeName, len(shape.Fields), 0)
	return b, nil
}

// NewEnum builds a butcher for interface type T over the given variants.
// Enum values must hold pointers to the registered variant structs.
func NewEnum[T any](variants []VariantDescriptor, opts ...Option) (*Butcher[T], error) {
	o := buildOptions(opts)
	shape, err := enumShapeFor[T](variants, o)
	if err != nil {
		return nil, err
	}

	b := &Butcher[T]{shape: shape, typeName: shape.TypeName}
	emitShapeRegistered(context.Background(), shape.TypeName, 0, len(shape.Variants))
	return b, nil
}

// Shape returns the validated shape this butcher projects with.
// The returned value is shared and must be treated as read-only.
func (b *Butcher[T]) Shape() *Shape {
	return b.shape
}

// Butcher projects the container into its per-field companion value.
//
// A borrowed container re-borrows every cow field from the source aggregate
// and leaves the container usable; an owned container is consumed exactly
// once, its fields moved out, and the container poisoned. The aggregate
// itself is never cloned on either path.
//
// The error is non-nil only for enum shapes, when the value's dynamic type
// is not described by the shape.
func (b *Butcher[T]) Butcher(ctx context.Context, c *Cow[T]) (*Projection, error) {
	start := time.Now()
	owned := c.IsOwned()

	var p *Projection
	var err error

	switch b.shape.Kind {
	case StructShape:
		var rv reflect.Value
		if owned {
			v := c.consume()
			rv = reflect.ValueOf(&v).Elem()
		} else {
			rv = reflect.ValueOf(c.ref).Elem()
		}
		p = &Projection{
			shape:  b.shape,
			owned:  owned,
			fields: projectFields(b.shape.Fields, rv, owned),
		}

	case EnumShape:
		p, err = b.butcherEnum(c, owned)
	}

	tag := ""
	fieldCount := 0
	if p != nil {
		tag = p.Tag()
		fieldCount = len(p.fields)
	}
	emitButcherComplete(ctx, b.typeName, tag, owned, fieldCount, time.Since(start), err)

	return p, err
}

// butcherEnum dispatches on the container value's dynamic type and projects
// the active variant's fields only.
func (b *Butcher[T]) butcherEnum(c *Cow[T], owned bool) (*Projection, error) {
	// Read the interface value first; consume only once the variant is
	// known to be projectable.
	dyn := reflect.ValueOf(*c.Get())
	if !dyn.IsValid() || dyn.Kind() != reflect.Pointer || dyn.IsNil() {
		return nil, newShapeError(ErrUnknownVariant, b.typeName, dynTypeName(dyn))
	}

	idx, ok := b.shape.byType[dyn.Type().Elem()]
	if !ok {
		return nil, newShapeError(ErrUnknownVariant, b.typeName, dynTypeName(dyn))
	}
	variant := &b.shape.Variants[idx]

	if owned {
		c.consume()
	}

	return &Projection{
		shape:   b.shape,
		variant: variant,
		owned:   owned,
		fields:  projectFields(variant.Fields, dyn.Elem(), owned),
	}, nil
}

// projectFields applies each field's policy to the aggregate value rv.
// rv must be addressable; the borrowed path hands out addresses into it.
func projectFields(fields []FieldDescriptor, rv reflect.Value, owned bool) []projectedField {
	out := make([]projectedField, len(fields))
	for i := range fields {
		fd := &fields[i]
		fv := rv.FieldByIndex(fd.Index)
		pf := projectedField{desc: fd}

		switch fd.Policy {
		case PolicyCow:
			if owned {
				pf.val = copyValue(fv)
			} else {
				pf.ptr = fv.Addr()
			}

		case PolicyCopy:
			if owned {
				pf.val = copyValue(fv)
			} else {
				pf.val = deepCloneValue(fv)
			}

		case PolicyPass:
			pf.val = copyValue(fv)

		case PolicyUnbox:
			if fv.IsNil() {
				panic(fmt.Sprintf("butcher: unbox of nil pointer in field %s", fd.Name))
			}
			if owned {
				pf.val = copyValue(fv.Elem())
			} else {
				pf.ptr = fv
			}

		case PolicyRebutcher:
			pf.nested = &Projection{
				shape:  fd.nested,
				owned:  owned,
				fields: projectFields(fd.nested.Fields, fv, owned),
			}
		}

		out[i] = pf
	}
	return out
}

// Unbutcher rebuilds an owned T from a projection produced by this butcher,
// the inverse of Butcher. Cow fields of a borrowed projection are cloned to
// own them; everything else is moved or copied back as-is. The projection is
// consumed and must not be used afterwards.
func (b *Butcher[T]) Unbutcher(ctx context.Context, p *Projection) (T, error) {
	start := time.Now()

	var zero T
	if p == nil || p.shape != b.shape {
		err := newShapeError(ErrShapeMismatch, b.typeName, "")
		emitUnbutcherComplete(ctx, b.typeName, time.Since(start), err)
		return zero, err
	}
	p.checkLive()

	var out T
	switch b.shape.Kind {
	case StructShape:
		nv := reflect.New(b.shape.Type).Elem()
		restoreFields(nv, p.fields)
		out = nv.Interface().(T)

	case EnumShape:
		np := reflect.New(p.variant.Type)
		restoreFields(np.Elem(), p.fields)
		out = np.Interface().(T)
	}

	p.consumed = true
	emitUnbutcherComplete(ctx, b.typeName, time.Since(start), nil)
	return out, nil
}

// restoreFields writes each projected field back into the aggregate nv.
func restoreFields(nv reflect.Value, fields []projectedField) {
	for i := range fields {
		pf := &fields[i]
		target := nv.FieldByIndex(pf.desc.Index)

		switch pf.desc.Policy {
		case PolicyCow:
			target.Set(ownedFieldValue(pf))

		case PolicyCopy, PolicyPass:
			target.Set(pf.val)

		case PolicyUnbox:
			np := reflect.New(pf.desc.Type.Elem())
			np.Elem().Set(ownedFieldValue(pf))
			target.Set(np)

		case PolicyRebutcher:
			restoreFields(target, pf.nested.fields)
			pf.nested.consumed = true
		}
	}
}

// ownedFieldValue materializes an owned value for a cow or unbox field:
// the moved-out value when the projection owns it, a deep clone otherwise.
func ownedFieldValue(pf *projectedField) reflect.Value {
	if pf.ptr.IsValid() {
		return deepCloneValue(pf.ptr.Elem())
	}
	return pf.val
}

// dynTypeName names an interface value's dynamic type for error messages.
func dynTypeName(dyn reflect.Value) string {
	if !dyn.IsValid() {
		return "<nil>"
	}
	return dyn.Type().String()
}
