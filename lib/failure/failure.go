// Package failure turns a wrapped error into a readable cause report.
//
// Errors in this module are wrapped with fmt.Errorf("...: %w", err), so
// the message of each link ends with the message of the link below it.
// Chain splits the links apart again and Report prints them from the root
// cause outwards.
package failure

import (
	"errors"
	"strings"
)

const causedSeparator = "   Which caused the following issue:"

// Chain returns the message of every link of err, outermost first, with
// the text contributed by the wrapped error removed. Links that add no
// text of their own are dropped.
func Chain(err error) []string {
	var parts []string
	for err != nil {
		msg := err.Error()
		next := errors.Unwrap(err)
		if next != nil {
			inner := next.Error()
			if msg == inner {
				err = next
				continue
			}
			msg = strings.TrimSuffix(msg, ": "+inner)
		}
		parts = append(parts, msg)
		err = next
	}
	return parts
}

// Report renders the chain starting with the root cause, each outer link
// introduced as the consequence of the one before it.
func Report(err error) string {
	parts := Chain(err)
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if i < len(parts)-1 {
			b.WriteString(causedSeparator)
			b.WriteString("\n")
		}
		b.WriteString(parts[i])
		b.WriteString("\n")
	}
	return b.String()
}
