package errx

import (
	"errors"
	"strings"
)

// Error is the base error type. Its kind determines the chain; every other
// field is plain mutable data.
type Error struct {
	kind *Kind

	eid      string
	level    string
	solution string
	message  string
	data     any
	stack    string
	extra    map[string]any

	chain  []string
	echain string

	cause error
}

// New creates an error of kind with only its kind defaults set.
func New(kind *Kind) *Error {
	return newError(kind).init(1)
}

// FromMessage creates an error of kind with the given message.
func FromMessage(kind *Kind, message string) *Error {
	e := newError(kind)
	e.message = message
	return e.init(1)
}

// FromMessageAndSolution creates an error of kind with a message and a
// remediation hint.
func FromMessageAndSolution(kind *Kind, message, solution string) *Error {
	e := newError(kind)
	e.message = message
	e.solution = solution
	return e.init(1)
}

// FromMessageAndFields creates an error of kind with a message, then fills it
// from fields. A message key in fields wins over the message argument.
func FromMessageAndFields(kind *Kind, message string, fields Fields) *Error {
	e := newError(kind)
	e.message = message
	e.Fill(fields)
	return e.init(1)
}

// FromFields creates an error of kind filled from fields. Fields overwrite
// kind defaults.
func FromFields(kind *Kind, fields Fields) *Error {
	e := newError(kind)
	e.Fill(fields)
	return e.init(1)
}

// FromError creates an error of kind from another error.
//
// If err is or wraps an *Error, the eid, level, solution, message, data and
// extra fields set on it are copied over the kind defaults. A plain error carries no fields to copy. In both
// cases err is kept as the cause. Chain, echain and stack always belong to
// the new error.
func FromError(kind *Kind, err error) *Error {
	e := newError(kind)
	var src *Error
	if errors.As(err, &src) && src != nil {
		e.copyFields(src)
	}
	e.cause = err
	return e.init(1)
}

// Wrap creates an error of kind with a message and attaches cause.
func Wrap(kind *Kind, message string, cause error) *Error {
	e := newError(kind)
	e.message = message
	e.cause = cause
	return e.init(1)
}

func newError(kind *Kind) *Error {
	if kind == nil {
		kind = Root
	}
	e := &Error{kind: kind}
	for _, tier := range kind.lineage() {
		e.Fill(tier.defaults)
	}
	return e
}

// init captures the stack and derives the chain. skip is the number of
// frames between init and the constructor's caller.
func (e *Error) init(skip int) *Error {
	e.stack = captureStack(skip + 1)
	e.generateChain()
	e.Echain()
	return e
}

func (e *Error) generateChain() {
	e.chain = e.kind.Chain()
}

// copyFields copies the fields set on src. Unset fields leave the kind
// defaults in place.
func (e *Error) copyFields(src *Error) {
	if src.eid != "" {
		e.eid = src.eid
	}
	if src.level != "" {
		e.level = src.level
	}
	if src.solution != "" {
		e.solution = src.solution
	}
	if src.message != "" {
		e.message = src.message
	}
	if src.data != nil {
		e.data = src.data
	}
	for key, value := range src.extra {
		if e.extra == nil {
			e.extra = make(map[string]any, len(src.extra))
		}
		e.extra[key] = value
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.message != "" {
		return e.message
	}
	if echain := e.Echain(); echain != "" {
		return echain
	}
	return "error"
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is a kind this error's kind descends from,
// including the kind itself and Root.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	kind, ok := target.(*Kind)
	if !ok {
		return false
	}
	return e.kind.IsA(kind)
}

// Echain returns the chain joined by ".". Once non-empty it is kept; later
// changes to the chain do not affect it. An empty echain is recomputed.
func (e *Error) Echain() string {
	if e == nil {
		return ""
	}
	if e.echain == "" {
		e.echain = strings.Join(e.chain, ".")
	}
	return e.echain
}

// Chain returns a copy of the chain, root-most tier first.
func (e *Error) Chain() []string {
	if e == nil {
		return nil
	}
	chain := make([]string, len(e.chain))
	copy(chain, e.chain)
	return chain
}

// SetChain replaces the chain. A non-empty echain that was already computed
// is kept.
func (e *Error) SetChain(chain []string) {
	if e == nil {
		return
	}
	e.chain = append([]string(nil), chain...)
}

// Kind returns the error's kind.
func (e *Error) Kind() *Kind {
	if e == nil {
		return nil
	}
	return e.kind
}

// EID returns the identifying code.
func (e *Error) EID() string {
	if e == nil {
		return ""
	}
	return e.eid
}

// SetEID sets the identifying code.
func (e *Error) SetEID(eid string) {
	if e == nil {
		return
	}
	e.eid = eid
}

// Level returns the classification tag.
func (e *Error) Level() string {
	if e == nil {
		return ""
	}
	return e.level
}

// SetLevel sets the classification tag.
func (e *Error) SetLevel(level string) {
	if e == nil {
		return
	}
	e.level = level
}

// Solution returns the remediation hint.
func (e *Error) Solution() string {
	if e == nil {
		return ""
	}
	return e.solution
}

// SetSolution sets the remediation hint.
func (e *Error) SetSolution(solution string) {
	if e == nil {
		return
	}
	e.solution = solution
}

// Message returns the one-line summary.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// SetMessage sets the one-line summary.
func (e *Error) SetMessage(message string) {
	if e == nil {
		return
	}
	e.message = message
}

// Data returns the opaque payload.
func (e *Error) Data() any {
	if e == nil {
		return nil
	}
	return e.data
}

// SetData sets the opaque payload.
func (e *Error) SetData(data any) {
	if e == nil {
		return
	}
	e.data = data
}

// Stack returns the stack captured at construction.
func (e *Error) Stack() string {
	if e == nil {
		return ""
	}
	return e.stack
}

// Field returns an extra field.
func (e *Error) Field(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	value, ok := e.extra[key]
	return value, ok
}

// SetField sets an extra field. Known keys go through Fill so they land on
// the typed field.
func (e *Error) SetField(key string, value any) {
	e.Fill(Fields{key: value})
}

// Fields returns a copy of the extra fields.
func (e *Error) Fields() Fields {
	if e == nil {
		return nil
	}
	return Fields(e.extra).clone()
}

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// IsKind reports whether err is, or wraps, an error of kind or of a kind
// descending from it.
func IsKind(err error, kind *Kind) bool {
	if err == nil || kind == nil {
		return false
	}
	return errors.Is(err, kind)
}

// KindOf returns the kind of the first *Error in err's chain, or nil.
func KindOf(err error) *Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return nil
}
