package butcher

import "context"

// CowIter is a lazy, single-pass iterator over a Cow-wrapped slice, yielding
// one clone-on-write container per element. It is finite and one-shot: once
// exhausted it never yields again, and a fresh iterator must be built from a
// fresh container to iterate anew.
//
// A CowIter is not safe for concurrent use.
type CowIter[E any] struct {
	seq     []E
	idx     int
	owned   bool
	spent   bool // exhaustion signal already emitted
	created bool
}

// Iter builds an iterator from a Cow-wrapped slice.
//
// A borrowed container stays usable and the iterator yields Borrowed
// pointers into the original backing array, with zero allocation per step.
// An owned container is consumed (poisoned) and the iterator drains it:
// each step moves the element out and zeroes the drained slot.
func Iter[E any](c *Cow[[]E]) *CowIter[E] {
	it := &CowIter[E]{created: true}
	if c.IsOwned() {
		it.seq = c.consume()
		it.owned = true
	} else {
		it.seq = *c.ref
	}

	emitIterCreated(context.Background(), it.owned, len(it.seq))
	return it
}

// Next yields the container for the next element, or false once the
// sequence is exhausted. Calling Next after exhaustion keeps returning
// false; it is never an error.
func (it *CowIter[E]) Next() (*Cow[E], bool) {
	if !it.created {
		panic("butcher: use of uninitialized CowIter")
	}

	if it.idx >= len(it.seq) {
		if !it.spent {
			it.spent = true
			emitIterExhausted(context.Background(), it.owned, it.idx)
		}
		return nil, false
	}

	i := it.idx
	it.idx++

	if it.owned {
		v := it.seq[i]
		var zero E
		it.seq[i] = zero // drained slots must not be re-read
		return Owned(v), true
	}
	return Borrowed(&it.seq[i]), true
}

// Len reports the total length of the underlying sequence, independent of
// how far iteration has progressed.
func (it *CowIter[E]) Len() int {
	return len(it.seq)
}

// Remaining reports how many elements are left to yield.
func (it *CowIter[E]) Remaining() int {
	if it.idx >= len(it.seq) {
		return 0
	}
	return len(it.seq) - it.idx
}
