// Package butcher destructures values held in clone-on-write containers
// without cloning the aggregate.
//
// A Cow[T] holds a value that is either owned or borrowed. Pattern matching
// or extracting a single field from such a value normally forces a full
// clone; butcher instead produces a per-type projection whose fields are
// themselves clone-on-write containers, obtained by move when the source was
// owned and by re-borrow when it was borrowed.
//
// # Policies
//
// Field behavior is declared via the butcher struct tag:
//
//	cow        - default: field becomes Cow[FieldType], never cloned
//	copy       - field is materialized as a plain owned value (cloned only
//	             on the borrowed path)
//	pass       - field value is reproduced unchanged; trivial types only
//	unbox      - pointer field *P becomes Cow[P] over the pointee
//	rebutcher  - struct field is itself projected, yielding a nested
//	             projection
//
// # Basic Usage
//
//	type Client struct {
//	    Name string
//	    Age  uint8 `butcher:"copy"`
//	}
//
//	b, _ := butcher.For[Client]()
//
//	c := butcher.Borrowed(&Client{Name: "Grace Hopper", Age: 85})
//	p, _ := b.Butcher(ctx, c)
//
//	name, _ := butcher.Field[string](p, "Name") // Cow[string], borrowed
//	age, _ := butcher.Value[uint8](p, "Age")    // plain uint8
//
// # Enums
//
// Go sum types are interfaces with a closed set of concrete variants.
// An enum butcher is built from registered variants:
//
//	b, _ := butcher.ForEnum[WebEvent]([]butcher.VariantDescriptor{
//	    butcher.Variant[PageLoad]("PageLoad"),
//	    butcher.Variant[KeyPress]("KeyPress"),
//	    butcher.Variant[Click]("Click"),
//	})
//
//	p, _ := b.Butcher(ctx, cow)
//	switch p.Tag() {
//	case "Click":
//	    x, _ := butcher.Field[int64](p, "X")
//	    ...
//	}
//
// Only the active variant's fields are touched; the others are never
// constructed.
//
// # Iteration
//
// Iter turns a Cow of a slice into a lazy sequence of per-element containers:
//
//	it := butcher.Iter(butcher.Borrowed(&nums))
//	for {
//	    elem, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    // elem is Cow[E], borrowed here
//	}
//
// # Ownership
//
// Go has no compile-time move tracking, so consumption is enforced at
// runtime: butchering, iterating, or Take-ing an owned container poisons it,
// and any later access through the container panics. Borrowed projections
// alias the source aggregate; their validity is bounded by the scope that
// guaranteed the original borrow.
//
// All shape problems (duplicate field names, policies applied to unsuitable
// field types, unit variants with fields) are reported when the butcher is
// constructed, never when a value is projected.
package butcher

// Policy selects how a single field is projected.
// Use these constants in struct tags: `butcher:"copy"`.
type Policy string

const (
	// PolicyCow wraps the field in a Cow of its own type. This is the
	// default and never clones the field.
	PolicyCow Policy = "cow"

	// PolicyCopy materializes the field as a plain owned value. The field
	// is deep-cloned on the borrowed path and moved on the owned path.
	PolicyCopy Policy = "copy"

	// PolicyPass reproduces the field value unchanged. Restricted to
	// trivial types (booleans, numbers, strings) where a value copy
	// cannot alias the source.
	PolicyPass Policy = "pass"

	// PolicyUnbox projects a pointer field *P as Cow[P] over the pointee,
	// removing one indirection level.
	PolicyUnbox Policy = "unbox"

	// PolicyRebutcher projects a struct field with its own shape,
	// producing a nested projection under the same borrowed/owned path.
	PolicyRebutcher Policy = "rebutcher"
)

// validPolicies contains all valid policies for tag validation.
var validPolicies = map[Policy]bool{
	PolicyCow:       true,
	PolicyCopy:      true,
	PolicyPass:      true,
	PolicyUnbox:     true,
	PolicyRebutcher: true,
}

// IsValidPolicy returns true if p is a known projection policy.
func IsValidPolicy(p Policy) bool {
	return validPolicies[p]
}

// Cloner allows types to provide their own deep copy logic.
//
// The copy policy and Cow.Take fall back to a reflection-based deep clone;
// a type implementing Cloner is cloned through its Clone method instead.
// The Clone method must return a copy where modifications to the copy do not
// affect the original value.
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloner[T any] interface {
	Clone() T
}
