package butcher

import "reflect"

// Projection is the companion value produced by Butcher: one entry per field
// of the source struct (or of the active enum variant), each held per its
// policy. Cow fields of a projection built from a borrowed container alias
// the source aggregate; those of an owned projection do not alias anything.
//
// Typed access goes through the generic Field, Value, and Nested functions.
type Projection struct {
	shape    *Shape
	variant  *VariantDescriptor // active variant, nil for struct shapes
	fields   []projectedField
	owned    bool
	consumed bool
}

// projectedField holds one field's projected form. Exactly one of ptr, val,
// or nested is meaningful, selected by the descriptor's policy and the
// borrowed/owned path.
type projectedField struct {
	desc   *FieldDescriptor
	ptr    reflect.Value // borrowed pointer into the source (cow, unbox)
	val    reflect.Value // owned value (cow/unbox owned path, copy, pass)
	nested *Projection   // rebutcher
}

// IsOwned reports whether the projection was produced from an owned
// container (its cow fields own their values).
func (p *Projection) IsOwned() bool {
	p.checkLive()
	return p.owned
}

// Tag returns the active variant's tag for enum projections, or the empty
// string for struct projections.
func (p *Projection) Tag() string {
	p.checkLive()
	if p.variant != nil {
		return p.variant.Tag
	}
	return ""
}

// Kind returns the active variant's kind for enum projections. Struct
// projections report NamedVariant; their fields are always named.
func (p *Projection) Kind() VariantKind {
	p.checkLive()
	if p.variant != nil {
		return p.variant.Kind
	}
	return NamedVariant
}

// Fields returns the descriptors of the projected fields: the struct's
// fields, or the active variant's. The slice is shared and read-only.
func (p *Projection) Fields() []FieldDescriptor {
	p.checkLive()
	if p.variant != nil {
		return p.variant.Fields
	}
	return p.shape.Fields
}

// Field extracts the named cow or unbox field as a typed container.
// For unbox fields, F is the pointee type.
func Field[F any](p *Projection, name string) (*Cow[F], error) {
	pf, err := p.lookup(name)
	if err != nil {
		return nil, err
	}

	switch pf.desc.Policy {
	case PolicyCow, PolicyUnbox:
	default:
		return nil, newFieldError(ErrFieldPolicy, name, "cow container", string(pf.desc.Policy))
	}

	if pf.ptr.IsValid() {
		ref, ok := pf.ptr.Interface().(*F)
		if !ok {
			return nil, newFieldError(ErrFieldType, name,
				reflect.TypeFor[F]().String(), pf.ptr.Type().Elem().String())
		}
		return Borrowed(ref), nil
	}

	v, ok := pf.val.Interface().(F)
	if !ok {
		return nil, newFieldError(ErrFieldType, name,
			reflect.TypeFor[F]().String(), pf.val.Type().String())
	}
	return Owned(v), nil
}

// Value extracts the named copy or pass field as a plain value.
func Value[F any](p *Projection, name string) (F, error) {
	var zero F

	pf, err := p.lookup(name)
	if err != nil {
		return zero, err
	}

	switch pf.desc.Policy {
	case PolicyCopy, PolicyPass:
	default:
		return zero, newFieldError(ErrFieldPolicy, name, "plain value", string(pf.desc.Policy))
	}

	v, ok := pf.val.Interface().(F)
	if !ok {
		return zero, newFieldError(ErrFieldType, name,
			reflect.TypeFor[F]().String(), pf.val.Type().String())
	}
	return v, nil
}

// Nested extracts the named rebutcher field's own projection.
func Nested(p *Projection, name string) (*Projection, error) {
	pf, err := p.lookup(name)
	if err != nil {
		return nil, err
	}
	if pf.desc.Policy != PolicyRebutcher {
		return nil, newFieldError(ErrFieldPolicy, name, "nested projection", string(pf.desc.Policy))
	}
	return pf.nested, nil
}

// lookup finds the named field among the projection's active fields.
func (p *Projection) lookup(name string) (*projectedField, error) {
	p.checkLive()

	var idx int
	var ok bool
	if p.variant != nil {
		idx, ok = p.variant.byName[name]
	} else {
		idx, ok = p.shape.byName[name]
	}
	if !ok {
		return nil, newFieldError(ErrUnknownField, name, "", "")
	}
	return &p.fields[idx], nil
}

// checkLive panics on use of a projection already consumed by Unbutcher.
func (p *Projection) checkLive() {
	if p.consumed {
		panic("butcher: use of unbutchered Projection")
	}
}
