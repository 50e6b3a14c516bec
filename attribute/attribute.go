package attribute

import (
	"go.uber.org/zap/zapcore"

	izap "github.com/attrkit/attrwatch/internal/zap"
)

// Snapshot is a full mapping of attribute names to current values delivered
// by the hosting component on one update cycle.
type Snapshot map[string]interface{}

// MarshalLogObject is a part of zapcore.ObjectMarshaler interface
func (s Snapshot) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return izap.MapStringInterface(s).MarshalLogObject(enc)
}

// Wrapped is a diff descriptor. Hosting frameworks sometimes deliver a
// changed attribute wrapped in a container carrying the new value instead of
// passing the value directly.
type Wrapped struct {
	Value interface{} `json:"value"`
}

// Unwrap extracts the inner value from a wrapped snapshot entry. It handles
// the Wrapped container itself as well as its decoded JSON shape (a non-empty
// map exposing a "value" key). Raw values pass through unchanged.
func Unwrap(v interface{}) interface{} {
	switch w := v.(type) {
	case Wrapped:
		return w.Value
	case *Wrapped:
		if w != nil {
			return w.Value
		}
	case map[string]interface{}:
		if len(w) > 0 {
			if inner, ok := w["value"]; ok {
				return inner
			}
		}
	}
	return v
}
