package butcher

import "testing"

// mustPanic fails the test unless fn panics.
func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestOwned_Get(t *testing.T) {
	c := Owned(42)

	if !c.IsOwned() {
		t.Error("Owned() container should report IsOwned")
	}
	if c.IsBorrowed() {
		t.Error("Owned() container should not report IsBorrowed")
	}
	if got := *c.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestBorrowed_Get(t *testing.T) {
	v := 42
	c := Borrowed(&v)

	if c.IsOwned() {
		t.Error("Borrowed() container should not report IsOwned")
	}
	if !c.IsBorrowed() {
		t.Error("Borrowed() container should report IsBorrowed")
	}
	if c.Get() != &v {
		t.Error("Get() should return the borrowed reference itself")
	}

	v = 7
	if got := *c.Get(); got != 7 {
		t.Errorf("Get() after source mutation = %d, want 7", got)
	}
}

func TestBorrowed_NilPanics(t *testing.T) {
	mustPanic(t, "Borrowed(nil)", func() {
		Borrowed[int](nil)
	})
}

func TestCow_ZeroValuePanics(t *testing.T) {
	var c Cow[int]
	mustPanic(t, "zero Cow Get", func() {
		c.Get()
	})
}

func TestTake_OwnedMovesAndPoisons(t *testing.T) {
	c := Owned([]int{1, 2, 3})

	got := c.Take()
	if len(got) != 3 || got[0] != 1 {
		t.Errorf("Take() = %v, want [1 2 3]", got)
	}

	mustPanic(t, "Get after Take", func() {
		c.Get()
	})
	mustPanic(t, "Take after Take", func() {
		c.Take()
	})
}

func TestTake_BorrowedClones(t *testing.T) {
	src := []int{1, 2, 3}
	c := Borrowed(&src)

	got := c.Take()
	got[0] = 99

	if src[0] != 1 {
		t.Errorf("Take() on borrowed container must deep-clone; source mutated to %v", src)
	}

	// The container stays usable after a borrowed Take.
	if got := *c.Get(); got[0] != 1 {
		t.Errorf("Get() after borrowed Take = %v, want original", got)
	}
}
