package zap

import (
	"encoding/json"

	"go.uber.org/zap/zapcore"
)

// Strings is a string array that implements MarshalLogArray.
type Strings []string

// MarshalLogArray implementation
func (ss Strings) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, s := range ss {
		enc.AppendString(s)
	}
	return nil
}

// MapStringInterface is a map that implements MarshalLogObject.
type MapStringInterface map[string]interface{}

// MarshalLogObject implementation
func (m MapStringInterface) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for key, value := range m {
		payload, _ := json.Marshal(value)
		enc.AddString(key, string(payload))
	}
	return nil
}
