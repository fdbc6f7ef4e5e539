package butcher

// Cow is a clone-on-write container: it holds either an owned T or a
// borrowed reference to a T, with uniform read access through Get.
//
// The zero value is invalid; construct containers with Owned or Borrowed.
// A Cow is not safe for concurrent use.
//
// Owned containers are single-use with respect to consumption: operations
// that move the value out (Butcher on an owned container, Iter, Take) poison
// the container, and any later access panics. This is the runtime stand-in
// for move semantics.
type Cow[T any] struct {
	ref   *T // borrowed reference, nil when owned
	val   T  // owned value, meaningful only when owned
	owned bool
	moved bool
	init  bool
}

// Owned wraps v in an owned container. The container takes exclusive
// ownership of v; the caller must not retain references into it.
func Owned[T any](v T) *Cow[T] {
	return &Cow[T]{val: v, owned: true, init: true}
}

// Borrowed wraps a non-owning reference to the value at p. The container is
// valid only as long as the caller keeps *p alive and unmoved.
func Borrowed[T any](p *T) *Cow[T] {
	if p == nil {
		panic("butcher: Borrowed called with nil reference")
	}
	return &Cow[T]{ref: p, init: true}
}

// IsOwned reports whether the container holds an owned value.
func (c *Cow[T]) IsOwned() bool {
	c.check()
	return c.owned
}

// IsBorrowed reports whether the container holds a borrowed reference.
func (c *Cow[T]) IsBorrowed() bool {
	c.check()
	return !c.owned
}

// Get returns a read reference to the contained value regardless of state.
// The returned pointer must not be used to mutate a borrowed value the
// caller does not own.
func (c *Cow[T]) Get() *T {
	c.check()
	if c.owned {
		return &c.val
	}
	return c.ref
}

// Take converts the container to an owned T. An owned container is consumed
// (moved out and poisoned) without cloning; a borrowed container deep-clones
// the referenced value and remains usable.
func (c *Cow[T]) Take() T {
	c.check()
	if c.owned {
		return c.consume()
	}
	return deepClone(*c.ref)
}

// consume moves the owned value out and poisons the container.
// Callers must hold an owned container.
func (c *Cow[T]) consume() T {
	v := c.val
	var zero T
	c.val = zero
	c.moved = true
	return v
}

// check panics on use of an uninitialized or moved-from container.
func (c *Cow[T]) check() {
	if c == nil || !c.init {
		panic("butcher: use of uninitialized Cow")
	}
	if c.moved {
		panic("butcher: use of moved Cow")
	}
}
