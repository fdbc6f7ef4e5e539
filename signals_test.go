package butcher

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitShapeRegistered(_ *testing.T) {
	// Should not panic
	emitShapeRegistered(context.Background(), "TestType", 3, 0)
}

func TestEmitButcherComplete_Success(_ *testing.T) {
	emitButcherComplete(context.Background(), "TestType", "", false, 3, 100*time.Millisecond, nil)
}

func TestEmitButcherComplete_Error(_ *testing.T) {
	emitButcherComplete(context.Background(), "TestType", "Click", true, 0, 100*time.Millisecond, errors.New("test error"))
}

func TestEmitUnbutcherComplete_Success(_ *testing.T) {
	emitUnbutcherComplete(context.Background(), "TestType", 100*time.Millisecond, nil)
}

func TestEmitUnbutcherComplete_Error(_ *testing.T) {
	emitUnbutcherComplete(context.Background(), "TestType", 100*time.Millisecond, errors.New("test error"))
}

func TestEmitIterCreated(_ *testing.T) {
	emitIterCreated(context.Background(), true, 10)
}

func TestEmitIterExhausted(_ *testing.T) {
	emitIterExhausted(context.Background(), false, 10)
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalShapeRegistered", SignalShapeRegistered},
		{"SignalButcherComplete", SignalButcherComplete},
		{"SignalUnbutcherComplete", SignalUnbutcherComplete},
		{"SignalIteratorCreated", SignalIteratorCreated},
		{"SignalIteratorExhausted", SignalIteratorExhausted},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyTypeName", KeyTypeName},
		{"KeyVariantTag", KeyVariantTag},
		{"KeyState", KeyState},
		{"KeyFieldCount", KeyFieldCount},
		{"KeyVariantCount", KeyVariantCount},
		{"KeyLength", KeyLength},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
