package butcher

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for butcher events.
var (
	SignalShapeRegistered   = capitan.NewSignal("butcher.shape.registered", "Shape validated and registered")
	SignalButcherComplete   = capitan.NewSignal("butcher.project.complete", "Projection finished")
	SignalUnbutcherComplete = capitan.NewSignal("butcher.unproject.complete", "Aggregate rebuilt from projection")
	SignalIteratorCreated   = capitan.NewSignal("butcher.iterator.created", "Sequence iterator constructed")
	SignalIteratorExhausted = capitan.NewSignal("butcher.iterator.exhausted", "Sequence iterator drained")
)

// Keys for typed event data.
var (
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyVariantTag   = capitan.NewStringKey("variant_tag")
	KeyState        = capitan.NewStringKey("state")
	KeyFieldCount   = capitan.NewIntKey("field_count")
	KeyVariantCount = capitan.NewIntKey("variant_count")
	KeyLength       = capitan.NewIntKey("length")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
)

// stateName renders the owned/borrowed flag for event data.
func stateName(owned bool) string {
	if owned {
		return "owned"
	}
	return "borrowed"
}

// emitShapeRegistered emits an event when a shape passes validation.
func emitShapeRegistered(ctx context.Context, typeName string, fields, variants int) {
	capitan.Emit(ctx, SignalShapeRegistered,
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(fields),
		KeyVariantCount.Field(variants),
	)
}

// emitButcherComplete emits an event when a projection finishes.
func emitButcherComplete(ctx context.Context, typeName, tag string, owned bool, fields int, duration time.Duration, err error) {
	eventFields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyVariantTag.Field(tag),
		KeyState.Field(stateName(owned)),
		KeyFieldCount.Field(fields),
		KeyDuration.Field(duration),
	}
	if err != nil {
		eventFields = append(eventFields, KeyError.Field(err))
		capitan.Error(ctx, SignalButcherComplete, eventFields...)
	} else {
		capitan.Emit(ctx, SignalButcherComplete, eventFields...)
	}
}

// emitUnbutcherComplete emits an event when an aggregate is rebuilt.
func emitUnbutcherComplete(ctx context.Context, typeName string, duration time.Duration, err error) {
	eventFields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		eventFields = append(eventFields, KeyError.Field(err))
		capitan.Error(ctx, SignalUnbutcherComplete, eventFields...)
	} else {
		capitan.Emit(ctx, SignalUnbutcherComplete, eventFields...)
	}
}

// emitIterCreated emits an event when a sequence iterator is built.
func emitIterCreated(ctx context.Context, owned bool, length int) {
	capitan.Emit(ctx, SignalIteratorCreated,
		KeyState.Field(stateName(owned)),
		KeyLength.Field(length),
	)
}

// emitIterExhausted emits an event when a sequence iterator drains.
func emitIterExhausted(ctx context.Context, owned bool, yielded int) {
	capitan.Emit(ctx, SignalIteratorExhausted,
		KeyState.Field(stateName(owned)),
		KeyLength.Field(yielded),
	)
}
