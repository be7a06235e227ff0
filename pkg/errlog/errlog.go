// Package errlog logs errx errors as structured fields.
//
// Both adapters emit the same keys so log aggregation can query them the
// same way regardless of the logger in use:
//   - error.eid:          "E2001"
//   - error.echain:       "base.external.invalid_argument"
//   - error.level:        "external"
//   - error.message:      "invalid page size"
//   - error.solution:     "Use a page size between 1 and 100."
//   - error.data:         the opaque payload
//   - error.field.<key>:  every extra field
//   - error.cause:        the wrapped error, if any
//
// Errors that are not errx errors are logged without structured fields.
package errlog

import (
	"errors"
	"sort"

	"github.com/go-logr/logr"
	"go.uber.org/zap"

	"echain/pkg/errx"
)

// Structured field keys.
const (
	KeyEID         = "error.eid"
	KeyEchain      = "error.echain"
	KeyLevel       = "error.level"
	KeyMessage     = "error.message"
	KeySolution    = "error.solution"
	KeyData        = "error.data"
	KeyCause       = "error.cause"
	KeyFieldPrefix = "error.field."
)

// Zap logs err at error level with structured fields.
// A nil logger or nil error is a no-op.
func Zap(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(msg, zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String(KeyEID, errxErr.EID()),
		zap.String(KeyEchain, errxErr.Echain()),
		zap.String(KeyLevel, errxErr.Level()),
		zap.String(KeyMessage, errxErr.Message()),
		zap.Error(err),
	}
	if solution := errxErr.Solution(); solution != "" {
		fields = append(fields, zap.String(KeySolution, solution))
	}
	if data := errxErr.Data(); data != nil {
		fields = append(fields, zap.Any(KeyData, data))
	}
	extra := errxErr.Fields()
	for _, key := range sortedKeys(extra) {
		fields = append(fields, zap.Any(KeyFieldPrefix+key, extra[key]))
	}
	// distinct key so it does not clash with zap.Error's "error"
	if cause := errxErr.Cause(); cause != nil {
		fields = append(fields, zap.NamedError(KeyCause, cause))
	}

	logger.Error(msg, fields...)
}

// ZapField returns err as a single zap object field named "error".
// Non-errx errors fall back to zap.Error.
func ZapField(err error) zap.Field {
	var errxErr *errx.Error
	if errors.As(err, &errxErr) {
		return zap.Object("error", errxErr)
	}
	return zap.Error(err)
}

// Logr logs err through a logr logger with structured key/value pairs.
// A nil error is a no-op.
func Logr(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(err, msg)
		return
	}

	keysAndValues := []interface{}{
		KeyEID, errxErr.EID(),
		KeyEchain, errxErr.Echain(),
		KeyLevel, errxErr.Level(),
		KeyMessage, errxErr.Message(),
	}
	if solution := errxErr.Solution(); solution != "" {
		keysAndValues = append(keysAndValues, KeySolution, solution)
	}
	if data := errxErr.Data(); data != nil {
		keysAndValues = append(keysAndValues, KeyData, data)
	}
	extra := errxErr.Fields()
	for _, key := range sortedKeys(extra) {
		keysAndValues = append(keysAndValues, KeyFieldPrefix+key, extra[key])
	}
	if cause := errxErr.Cause(); cause != nil {
		keysAndValues = append(keysAndValues, KeyCause, cause.Error())
	}

	logger.Error(err, msg, keysAndValues...)
}

func sortedKeys(fields errx.Fields) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
