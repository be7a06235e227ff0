package cli

// This file defines error handling utilities for the CLI, including:
//   - Error kinds for CLI failures, registered next to the standard taxonomy
//   - Helpers that build errx errors from a kind, a message and a cause
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"sync"

	"go.uber.org/zap"

	"echain/pkg/errlog"
	"echain/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

// Error kinds for CLI operations.
var (
	// KindCLI covers invalid invocations of the CLI.
	KindCLI = errx.NewKind("cli", errx.External, errx.Fields{errx.FieldEID: "E2200"})

	KindUnknownKind = errx.NewKind("unknown_kind", KindCLI, errx.Fields{
		errx.FieldEID:      "E2201",
		errx.FieldSolution: "Run `echain kinds` to list registered kinds.",
	})
	KindInvalidFlag = errx.NewKind("invalid_flag", KindCLI, errx.Fields{
		errx.FieldEID:      "E2202",
		errx.FieldSolution: "Run the command with --help to see valid flag values.",
	})
	KindUnsupportedOutput = errx.NewKind("unsupported_output", KindCLI, errx.Fields{
		errx.FieldEID:      "E2203",
		errx.FieldSolution: "Use one of: json, yaml, text.",
	})

	// KindRender covers failures while encoding command output.
	KindRender = errx.NewKind("render", errx.Internal, errx.Fields{errx.FieldEID: "E1030"})
)

// Kinds returns the CLI error kinds, parents first.
func Kinds() []*errx.Kind {
	return []*errx.Kind{KindCLI, KindUnknownKind, KindInvalidFlag, KindUnsupportedOutput, KindRender}
}

// newWithKind creates a new error of kind with the given message.
func newWithKind(kind *errx.Kind, msg string) error {
	if kind == nil {
		kind = KindCLI
	}
	return errx.FromMessage(kind, msg)
}

// wrapWithKind wraps a cause error with an error of kind.
func wrapWithKind(kind *errx.Kind, cause error, msg string) error {
	if kind == nil {
		kind = KindCLI
	}
	return errx.Wrap(kind, msg, cause)
}

// newWithKindAndFields creates an error with additional structured fields.
// This is useful for adding debugging information like the kind or flag involved.
func newWithKindAndFields(kind *errx.Kind, msg string, fields errx.Fields) error {
	if kind == nil {
		kind = KindCLI
	}
	return errx.FromMessageAndFields(kind, msg, fields)
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
// The zap logger is configured with console encoding, so structured fields
// are displayed in a human-readable format in the terminal:
//   - error.eid:          "E2201"
//   - error.echain:       "base.external.cli.unknown_kind"
//   - error.field.kind:   "base.external.nope"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}
	errlog.Zap(logger, err, msg)
}
