package errx

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap/zapcore"
)

var _ zapcore.ObjectMarshaler = (*Error)(nil)

// Map returns the error as a plain key/value structure: eid, echain, chain,
// level, solution, message, data and stack when set, plus every extra field.
// The kind and the cause are not included.
func (e *Error) Map() map[string]any {
	if e == nil {
		return nil
	}
	out := make(map[string]any, 8+len(e.extra))
	for key, value := range e.extra {
		out[key] = value
	}
	out[FieldEchain] = e.Echain()
	out[FieldChain] = e.Chain()
	setString(out, FieldEID, e.eid)
	setString(out, FieldLevel, e.level)
	setString(out, FieldSolution, e.solution)
	setString(out, FieldMessage, e.message)
	setString(out, FieldStack, e.stack)
	if e.data != nil {
		out[FieldData] = e.data
	}
	return out
}

// MarshalJSON encodes the error as the object returned by Map.
func (e *Error) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(e.Map())
}

// MarshalLogObject writes the same keys as Map to a zap encoder.
func (e *Error) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if e == nil {
		return nil
	}
	if e.eid != "" {
		enc.AddString(FieldEID, e.eid)
	}
	enc.AddString(FieldEchain, e.Echain())
	if err := enc.AddArray(FieldChain, zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, tier := range e.chain {
			arr.AppendString(tier)
		}
		return nil
	})); err != nil {
		return err
	}
	if e.level != "" {
		enc.AddString(FieldLevel, e.level)
	}
	if e.solution != "" {
		enc.AddString(FieldSolution, e.solution)
	}
	if e.message != "" {
		enc.AddString(FieldMessage, e.message)
	}
	if e.data != nil {
		if err := enc.AddReflected(FieldData, e.data); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(e.extra) {
		if err := enc.AddReflected(key, e.extra[key]); err != nil {
			return err
		}
	}
	if e.stack != "" {
		enc.AddString(FieldStack, e.stack)
	}
	return nil
}

func setString(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
