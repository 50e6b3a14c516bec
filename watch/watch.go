package watch

import (
	"encoding/json"
	"reflect"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	validator "gopkg.in/go-playground/validator.v9"

	"github.com/attrkit/attrwatch/attribute"
	izap "github.com/attrkit/attrwatch/internal/zap"
	"github.com/attrkit/attrwatch/metrics"
)

// Callback is invoked with the new value of a watched attribute. A callback
// that needs sibling state closes over its host or reads tracked values back
// through Registry.Last.
type Callback func(value interface{})

// entry is the registry's record for one watched key: the callback, the
// optional trigger, and the last observed value. Trigger and last value each
// carry a presence flag so an explicit nil stays distinguishable from
// "not set".
type entry struct {
	key        string
	callback   Callback
	trigger    interface{}
	hasTrigger bool
	lastValue  interface{}
	hasLast    bool
}

// MarshalLogObject is a part of zapcore.ObjectMarshaler interface
func (e entry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("key", e.key)
	enc.AddBool("gated", e.hasTrigger)
	if e.hasTrigger {
		payload, _ := json.Marshal(e.trigger)
		enc.AddString("trigger", string(payload))
	}
	if e.hasLast {
		payload, _ := json.Marshal(e.lastValue)
		enc.AddString("lastValue", string(payload))
	}
	return nil
}

// Registry tracks the last observed value of each watched attribute and
// dispatches callbacks when an update snapshot carries a different value.
// All methods are synchronous; the owner serializes calls, one snapshot
// fully processed before the next.
type Registry struct {
	entries   map[string]*entry
	log       *zap.Logger
	destroyed bool
}

// New instantiates an empty, active registry. A nil logger disables logging.
func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		entries: map[string]*entry{},
		log:     log,
	}
}

// RegisterOption configures a single watch registration.
type RegisterOption func(*entry)

// WithTrigger gates the callback to fire only when the new value equals
// trigger. Passing the option is what enables gating; the trigger value
// itself may be nil.
func WithTrigger(trigger interface{}) RegisterOption {
	return func(e *entry) {
		e.trigger = trigger
		e.hasTrigger = true
	}
}

// Register inserts or replaces the watch for key. Replacing keeps the
// previously tracked last value, so the diffing baseline survives
// re-registration.
func (r *Registry) Register(key string, callback Callback, opts ...RegisterOption) error {
	if r.destroyed {
		return &ErrRegistryDestroyed{}
	}
	if err := validateRegistration(key, callback); err != nil {
		return err
	}

	e := &entry{key: key, callback: callback}
	for _, opt := range opts {
		opt(e)
	}
	if prev, ok := r.entries[key]; ok {
		e.lastValue = prev.lastValue
		e.hasLast = prev.hasLast
	}
	r.entries[key] = e

	r.log.Debug("Watch registered.", zap.Object("watch", e))
	return nil
}

// ProcessSnapshot diffs one update snapshot against the stored baselines and
// dispatches callbacks for watched keys whose value changed. Keys without a
// registered watch are inert; watched keys absent from the snapshot keep
// their baseline. A panicking callback propagates to the caller and leaves
// the remaining keys of the snapshot unprocessed. After teardown the call is
// a no-op.
func (r *Registry) ProcessSnapshot(attrs attribute.Snapshot) {
	if r.destroyed {
		return
	}

	metrics.SnapshotsProcessed.Inc()
	r.log.Debug("Snapshot received.", zap.Object("attributes", attrs))

	for key, raw := range attrs {
		e, ok := r.entries[key]
		if !ok {
			continue
		}

		newValue := attribute.Unwrap(raw)
		if e.hasLast && equal(e.lastValue, newValue) {
			continue
		}

		// The baseline always advances, even when gating suppresses the
		// callback below.
		e.lastValue = newValue
		e.hasLast = true
		metrics.ChangesDetected.Inc()

		if e.hasTrigger && !equal(e.trigger, newValue) {
			continue
		}

		metrics.CallbacksDispatched.Inc()
		r.log.Debug("Watch dispatched.", zap.Object("watch", e))
		e.callback(newValue)
	}
}

// Last returns the last observed value for key. The second return reports
// whether any value has been observed for it since registration.
func (r *Registry) Last(key string) (interface{}, bool) {
	e, ok := r.entries[key]
	if !ok || !e.hasLast {
		return nil, false
	}
	return e.lastValue, true
}

// Keys returns the currently registered keys, in no particular order.
func (r *Registry) Keys() []string {
	keys := []string{}
	for key := range r.entries {
		keys = append(keys, key)
	}
	return keys
}

// Teardown releases all entries and their callbacks. The registry is
// terminally destroyed afterwards: further snapshots are ignored and further
// registrations fail with ErrRegistryDestroyed.
func (r *Registry) Teardown() {
	if r.destroyed {
		return
	}

	r.log.Debug("Registry torn down.", zap.Array("keys", izap.Strings(r.Keys())))
	r.entries = map[string]*entry{}
	r.destroyed = true
}

// registration carries the validated part of a Register call.
type registration struct {
	Key      string   `validate:"required"`
	Callback Callback `validate:"required"`
}

func validateRegistration(key string, callback Callback) error {
	validate := validator.New()
	err := validate.Struct(&registration{Key: key, Callback: callback})
	if err != nil {
		return &ErrInvalidRegistration{Message: err.Error()}
	}
	return nil
}

// equal reports shallow equality the way the diffing algorithm needs it:
// comparable values compare by value; maps, slices, and funcs compare by
// reference identity, never by contents, so the same object delivered twice
// is unchanged while an equal but distinct one is a change.
func equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}

	switch av.Kind() {
	case reflect.Map, reflect.Func:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Pointer() == bv.Pointer() && av.Len() == bv.Len()
	}

	if !av.Type().Comparable() {
		return false
	}
	return a == b
}
