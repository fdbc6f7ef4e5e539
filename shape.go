package butcher

import (
	"reflect"
	"strconv"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the butcher tag with sentinel.
	sentinel.Tag("butcher")
}

// ShapeKind distinguishes struct shapes from enum shapes.
type ShapeKind int

const (
	// StructShape describes a struct with an ordered field list.
	StructShape ShapeKind = iota

	// EnumShape describes a closed interface with an ordered variant list.
	EnumShape
)

// VariantKind classifies an enum variant's payload.
type VariantKind int

const (
	// UnitVariant carries no fields.
	UnitVariant VariantKind = iota

	// TupleVariant carries positional fields addressed by index-style
	// names ("0", "1", ...). Scanning a tuple variant names its exported
	// fields by position; explicit field lists resolve their names as
	// positions into the variant struct.
	TupleVariant

	// NamedVariant carries named fields.
	NamedVariant
)

// FieldDescriptor describes one field of a shape: its name, access path,
// declared type, and projection policy. The policy is fixed at
// shape-construction time, not per call.
type FieldDescriptor struct {
	Name   string
	Index  []int
	Type   reflect.Type
	Policy Policy

	// nested holds the field's own shape when Policy is PolicyRebutcher.
	nested *Shape
}

// VariantDescriptor describes one variant of an enum shape. Type is the
// concrete struct type; enum values hold *Type.
type VariantDescriptor struct {
	Tag    string
	Kind   VariantKind
	Type   reflect.Type
	Fields []FieldDescriptor

	byName map[string]int // field name -> index, set at shape construction
}

// Shape is the declarative description driving projection generation.
// It is plain data: construction validates it fully, and no method on a
// valid shape can fail.
type Shape struct {
	TypeName string
	Kind     ShapeKind
	Type     reflect.Type

	// Fields is populated for struct shapes.
	Fields []FieldDescriptor

	// Variants is populated for enum shapes.
	Variants []VariantDescriptor

	byName map[string]int       // field name -> index into Fields
	byType map[reflect.Type]int // variant struct type -> index into Variants
}

// Variant records a concrete struct type V as an enum variant. The field
// list is scanned and validated when the descriptor is passed to NewEnum or
// ForEnum.
func Variant[V any](tag string) VariantDescriptor {
	return VariantDescriptor{
		Tag:  tag,
		Kind: NamedVariant,
		Type: reflect.TypeFor[V](),
	}
}

// Tuple records a concrete struct type V as a tuple enum variant whose fields
// are addressed by position ("0", "1", ...).
func Tuple[V any](tag string) VariantDescriptor {
	return VariantDescriptor{
		Tag:  tag,
		Kind: TupleVariant,
		Type: reflect.TypeFor[V](),
	}
}

// structShapeFor builds and validates a struct shape for T using sentinel
// metadata and the butcher tag, with opts applied on top.
func structShapeFor[T any](opts options) (*Shape, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, newShapeError(ErrNotStruct, rt.String(), "")
	}

	meta := sentinel.Scan[T]()

	shape := &Shape{
		TypeName: meta.TypeName,
		Kind:     StructShape,
		Type:     rt,
	}

	for _, field := range meta.Fields {
		policy := PolicyCow
		if val, ok := field.Tags["butcher"]; ok {
			policy = Policy(val)
		}
		if override, ok := opts.policies[field.Name]; ok {
			policy = override
		}

		fd := FieldDescriptor{
			Name:   field.Name,
			Index:  field.Index,
			Type:   field.ReflectType,
			Policy: policy,
		}
		shape.Fields = append(shape.Fields, fd)
	}

	if err := finishFields(shape.TypeName, shape.Fields); err != nil {
		return nil, err
	}

	shape.byName = indexFields(shape.Fields)

	// Overrides naming fields the struct does not declare are shape errors,
	// not silent no-ops.
	for name := range opts.policies {
		if _, ok := shape.byName[name]; !ok {
			return nil, newShapeError(ErrUnknownField, shape.TypeName, name)
		}
	}

	return shape, nil
}

// enumShapeFor builds and validates an enum shape for interface type T from
// the given variant descriptors.
func enumShapeFor[T any](variants []VariantDescriptor, opts options) (*Shape, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Interface {
		return nil, newShapeError(ErrNotInterface, rt.String(), "")
	}
	if len(variants) == 0 {
		return nil, newShapeError(ErrNoVariants, rt.String(), "")
	}

	shape := &Shape{
		TypeName: rt.String(),
		Kind:     EnumShape,
		Type:     rt,
		byType:   make(map[reflect.Type]int, len(variants)),
	}

	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if seen[v.Tag] {
			return nil, newShapeError(ErrDuplicateVariant, shape.TypeName, v.Tag)
		}
		seen[v.Tag] = true

		if v.Type == nil || v.Type.Kind() != reflect.Struct {
			return nil, newShapeError(ErrNotStruct, variantName(shape.TypeName, v.Tag), "")
		}
		if !reflect.PointerTo(v.Type).Implements(rt) {
			return nil, newShapeError(ErrVariantInterface, variantName(shape.TypeName, v.Tag), "")
		}

		if v.Fields == nil {
			var fields []FieldDescriptor
			var err error
			if v.Kind == TupleVariant {
				fields, err = scanTupleFields(v.Type, variantName(shape.TypeName, v.Tag), opts)
			} else {
				fields, err = scanVariantFields(v.Type, variantName(shape.TypeName, v.Tag), opts)
			}
			if err != nil {
				return nil, err
			}
			v.Fields = fields
		} else {
			if v.Kind == UnitVariant && len(v.Fields) > 0 {
				return nil, newShapeError(ErrUnitVariant, variantName(shape.TypeName, v.Tag), v.Fields[0].Name)
			}
			// Explicit field lists must describe the real variant struct.
			// Tuple descriptors resolve their names as field positions.
			for i := range v.Fields {
				fd := &v.Fields[i]
				sf, ok := resolveVariantField(v.Type, v.Kind, fd.Name)
				if !ok {
					return nil, newShapeError(ErrShapeMismatch, variantName(shape.TypeName, v.Tag), fd.Name)
				}
				fd.Index = sf.Index
				fd.Type = sf.Type
				if override, ok := opts.policies[fd.Name]; ok {
					fd.Policy = override
				}
			}
			if err := finishFields(variantName(shape.TypeName, v.Tag), v.Fields); err != nil {
				return nil, err
			}
		}

		if len(v.Fields) == 0 {
			v.Kind = UnitVariant
		}
		v.byName = indexFields(v.Fields)

		shape.byType[v.Type] = len(shape.Variants)
		shape.Variants = append(shape.Variants, v)
	}

	// Overrides must name a field on at least one variant, matching the
	// struct path's rejection of stray names.
	for name := range opts.policies {
		matched := false
		for i := range shape.Variants {
			if _, ok := shape.Variants[i].byName[name]; ok {
				matched = true
				break
			}
		}
		if !matched {
			return nil, newShapeError(ErrUnknownField, shape.TypeName, name)
		}
	}

	return shape, nil
}

// scanVariantFields scans a variant struct type without generic access,
// building sentinel-style metadata from reflection directly.
func scanVariantFields(rt reflect.Type, typeName string, opts options) ([]FieldDescriptor, error) {
	meta := scanNestedType(rt)

	fields := make([]FieldDescriptor, 0, len(meta.Fields))
	for _, field := range meta.Fields {
		policy := PolicyCow
		if val, ok := field.Tags["butcher"]; ok {
			policy = Policy(val)
		}
		if override, ok := opts.policies[field.Name]; ok {
			policy = override
		}

		fields = append(fields, FieldDescriptor{
			Name:   field.Name,
			Index:  field.Index,
			Type:   field.ReflectType,
			Policy: policy,
		})
	}

	if err := finishFields(typeName, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// scanTupleFields scans a tuple variant struct, naming its exported fields by
// position. Tags and overrides apply under the positional names.
func scanTupleFields(rt reflect.Type, typeName string, opts options) ([]FieldDescriptor, error) {
	var fields []FieldDescriptor
	pos := 0
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := strconv.Itoa(pos)
		pos++

		policy := PolicyCow
		if val, ok := sf.Tag.Lookup("butcher"); ok {
			policy = Policy(val)
		}
		if override, ok := opts.policies[name]; ok {
			policy = override
		}

		fields = append(fields, FieldDescriptor{
			Name:   name,
			Index:  sf.Index,
			Type:   sf.Type,
			Policy: policy,
		})
	}

	if err := finishFields(typeName, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// resolveVariantField locates an explicitly declared field on the variant
// struct: by name for named variants, by position for tuple variants.
func resolveVariantField(rt reflect.Type, kind VariantKind, name string) (reflect.StructField, bool) {
	if kind == TupleVariant {
		pos, err := strconv.Atoi(name)
		if err != nil || pos < 0 {
			return reflect.StructField{}, false
		}
		n := 0
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			if n == pos {
				return sf, true
			}
			n++
		}
		return reflect.StructField{}, false
	}

	sf, ok := rt.FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.StructField{}, false
	}
	return sf, true
}

// scanNestedType builds metadata for a struct type outside the generic scan
// path (nested rebutcher targets and enum variants).
func scanNestedType(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        make(map[string]string),
		}
		if val, ok := sf.Tag.Lookup("butcher"); ok {
			fm.Tags["butcher"] = val
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return meta
}

// finishFields validates a field list in place: policy names, policy/type
// compatibility, duplicate names. Rebutcher fields get their nested shape
// built here, so an invalid nested shape fails the parent's construction.
func finishFields(typeName string, fields []FieldDescriptor) error {
	seen := make(map[string]bool, len(fields))
	for i := range fields {
		fd := &fields[i]

		if seen[fd.Name] {
			return newShapeError(ErrDuplicateField, typeName, fd.Name)
		}
		seen[fd.Name] = true

		if !IsValidPolicy(fd.Policy) {
			return newShapeError(ErrInvalidPolicy, typeName, fd.Name)
		}

		switch fd.Policy {
		case PolicyPass:
			if !trivialKind(fd.Type.Kind()) {
				return newShapeError(ErrPolicyKind, typeName, fd.Name)
			}
		case PolicyUnbox:
			if fd.Type.Kind() != reflect.Pointer {
				return newShapeError(ErrPolicyKind, typeName, fd.Name)
			}
		case PolicyRebutcher:
			if fd.Type.Kind() != reflect.Struct {
				return newShapeError(ErrPolicyKind, typeName, fd.Name)
			}
			nested, err := nestedShapeFor(fd.Type)
			if err != nil {
				return err
			}
			fd.nested = nested
		}
	}
	return nil
}

// nestedShapeFor builds a struct shape for a rebutcher target type.
// Go forbids directly recursive struct embedding, so this recursion is
// finite by construction.
func nestedShapeFor(rt reflect.Type) (*Shape, error) {
	fields, err := scanVariantFields(rt, rt.String(), options{})
	if err != nil {
		return nil, err
	}
	return &Shape{
		TypeName: rt.String(),
		Kind:     StructShape,
		Type:     rt,
		Fields:   fields,
		byName:   indexFields(fields),
	}, nil
}

// indexFields builds the name index for a validated field list.
func indexFields(fields []FieldDescriptor) map[string]int {
	byName := make(map[string]int, len(fields))
	for i, fd := range fields {
		byName[fd.Name] = i
	}
	return byName
}

// trivialKind reports whether a value copy of this kind cannot alias its
// source. These are the kinds PolicyPass accepts.
func trivialKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// variantName formats a variant's qualified name for error messages.
func variantName(enum, tag string) string {
	return enum + "." + tag
}
