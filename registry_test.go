package butcher_test

import (
	"testing"

	"github.com/zoobzio/butcher"
)

type cachedUser struct {
	Name string
}

type cachedEvent interface{ isCachedEvent() }

type cachedPing struct{}

func (*cachedPing) isCachedEvent() {}

func TestFor_Caching(t *testing.T) {
	butcher.Reset() // Clear cache

	b1, err := butcher.For[cachedUser]()
	if err != nil {
		t.Fatalf("For() error: %v", err)
	}

	b2, err := butcher.For[cachedUser]()
	if err != nil {
		t.Fatalf("For() error: %v", err)
	}

	if b1 != b2 {
		t.Error("For() should return cached butcher")
	}
}

func TestForEnum_Caching(t *testing.T) {
	butcher.Reset()

	variants := []butcher.VariantDescriptor{
		butcher.Variant[cachedPing]("Ping"),
	}

	b1, err := butcher.ForEnum[cachedEvent](variants)
	if err != nil {
		t.Fatalf("ForEnum() error: %v", err)
	}

	b2, err := butcher.ForEnum[cachedEvent](variants)
	if err != nil {
		t.Fatalf("ForEnum() error: %v", err)
	}

	if b1 != b2 {
		t.Error("ForEnum() should return cached butcher")
	}
}

func TestFor_InvalidTypeNotCached(t *testing.T) {
	butcher.Reset()

	if _, err := butcher.For[int](); err == nil {
		t.Fatal("For[int]() should fail")
	}
	// A failed build must not poison the cache for later calls.
	if _, err := butcher.For[cachedUser](); err != nil {
		t.Errorf("For() after failed build error: %v", err)
	}
}

func TestReset(t *testing.T) {
	b1, _ := butcher.For[cachedUser]()

	butcher.Reset()

	b2, _ := butcher.For[cachedUser]()

	if b1 == b2 {
		t.Error("Reset() should clear cache, new butcher expected")
	}
}
