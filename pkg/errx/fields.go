package errx

import "fmt"

// Fields is a plain field map used to fill an Error.
//
// Known keys set the matching typed field; every other key is kept as an
// extra field and serialized alongside the known ones.
type Fields map[string]any

// Serialized field names.
const (
	FieldEID      = "eid"
	FieldEchain   = "echain"
	FieldChain    = "chain"
	FieldLevel    = "level"
	FieldSolution = "solution"
	FieldMessage  = "message"
	FieldData     = "data"
	FieldStack    = "stack"
)

// Fill copies every key of fields onto the error. Values are copied shallowly
// and never validated. The derived keys chain, echain and stack are skipped.
func (e *Error) Fill(fields Fields) {
	if e == nil {
		return
	}
	for key, value := range fields {
		switch key {
		case FieldEID:
			e.eid = stringValue(value)
		case FieldLevel:
			e.level = stringValue(value)
		case FieldSolution:
			e.solution = stringValue(value)
		case FieldMessage:
			e.message = stringValue(value)
		case FieldData:
			e.data = value
		case FieldChain, FieldEchain, FieldStack:
			// derived at construction
		default:
			if e.extra == nil {
				e.extra = make(map[string]any, len(fields))
			}
			e.extra[key] = value
		}
	}
}

func (f Fields) clone() Fields {
	if len(f) == 0 {
		return nil
	}
	out := make(Fields, len(f))
	for key, value := range f {
		out[key] = value
	}
	return out
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
