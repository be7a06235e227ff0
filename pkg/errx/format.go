package errx

import (
	"errors"
	"fmt"
	"strings"
)

// UserString returns a user-safe error message.
// It extracts the most user-friendly message from an errx.Error,
// falling back to the standard error message for non-errx errors.
func UserString(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.message != "" {
			return e.message
		}
		if echain := e.Echain(); echain != "" {
			return echain
		}
	}
	return err.Error()
}

// IsError checks if the given error is an errx.Error.
func IsError(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	return errors.As(err, &e)
}

// DebugString returns a verbose error string with eid, echain, fields and
// the unwrap chain.
func DebugString(err error) string {
	if err == nil {
		return ""
	}
	chain := flattenChain(err)
	var b strings.Builder
	for i, item := range chain {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch typed := item.(type) {
		case *Error:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, typed, typed.Error()))
			if typed.eid != "" {
				b.WriteString(fmt.Sprintf(" | eid=%s", typed.eid))
			}
			if echain := typed.Echain(); echain != "" {
				b.WriteString(fmt.Sprintf(" | echain=%s", echain))
			}
			if typed.level != "" {
				b.WriteString(fmt.Sprintf(" | level=%s", typed.level))
			}
			if typed.message != "" {
				b.WriteString(fmt.Sprintf(" | message=%q", typed.message))
			}
			if typed.solution != "" {
				b.WriteString(fmt.Sprintf(" | solution=%q", typed.solution))
			}
			if typed.data != nil {
				b.WriteString(fmt.Sprintf(" | data=%v", typed.data))
			}
			if len(typed.extra) > 0 {
				b.WriteString(" | fields={")
				b.WriteString(formatFields(typed.extra))
				b.WriteByte('}')
			}
		default:
			b.WriteString(fmt.Sprintf("%d: %T: %s", i+1, item, item.Error()))
		}
	}
	return b.String()
}

func flattenChain(err error) []error {
	var out []error
	queue := []error{err}
	const maxEntries = 64
	for len(queue) > 0 && len(out) < maxEntries {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}
		out = append(out, current)
		queue = append(queue, unwrapAll(current)...)
	}
	return out
}

func unwrapAll(err error) []error {
	switch unwrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return unwrapped.Unwrap()
	case interface{ Unwrap() error }:
		if next := unwrapped.Unwrap(); next != nil {
			return []error{next}
		}
	}
	return nil
}

func formatFields(fields map[string]any) string {
	keys := sortedKeys(fields)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}
	return strings.Join(parts, ", ")
}
