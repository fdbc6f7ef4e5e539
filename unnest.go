package butcher

// Unnest collapses a nested container Cow[*Cow[T]] into a plain Cow[T].
//
// Butchering a struct whose field is itself a *Cow[T] produces exactly this
// nesting under the default policy. The collapse preserves the weaker of the
// two ownership states: only an owned container holding an owned inner
// container stays owned; every other combination borrows.
//
// An owned outer container is consumed; a borrowed outer container remains
// usable, and the result borrows from wherever the inner container reads.
func Unnest[T any](c *Cow[*Cow[T]]) *Cow[T] {
	if c.IsOwned() {
		return c.consume()
	}
	inner := *c.ref
	return Borrowed(inner.Get())
}
