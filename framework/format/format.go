// Package format renders the arguments of a test's log methods into single lines of text.
//
// Values are rendered as fmt's %v would render them. Joined separates values with spaces;
// Formatted substitutes each "{}" anchor in a template with the next value.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotEnoughArguments and ErrTooManyArguments are the reasons a template can fail to format.
// Use errors.Is to test a FormatError for them.
var (
	ErrNotEnoughArguments = errors.New("not enough arguments")
	ErrTooManyArguments   = errors.New("too many arguments")
)

const anchor = "{}"

// FormatError is returned by Formatted when the number of anchors in the template differs from
// the number of arguments.
type FormatError struct {
	Template string
	Reason   error
}

func (e FormatError) Error() string {
	return fmt.Sprintf("log format error: %s in %q", e.Reason, e.Template)
}

func (e FormatError) Unwrap() error { return e.Reason }

// Joined returns the string form of each arg, separated by single spaces.
func Joined(args ...interface{}) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(value(arg))
	}
	return b.String()
}

// Formatted replaces each "{}" in template with the string form of the corresponding arg.
//
// A "{" that is not immediately followed by "}" is copied literally, so "{{}x" with the argument
// 1 yields "{1x".
func Formatted(template string, args ...interface{}) (string, error) {
	var b strings.Builder
	rest := template
	next := 0
	for {
		i := strings.Index(rest, anchor)
		if i < 0 {
			break
		}
		if next == len(args) {
			return "", FormatError{Template: template, Reason: ErrNotEnoughArguments}
		}
		b.WriteString(rest[:i])
		b.WriteString(value(args[next]))
		next++
		rest = rest[i+len(anchor):]
	}
	if next < len(args) {
		return "", FormatError{Template: template, Reason: ErrTooManyArguments}
	}
	b.WriteString(rest)
	return b.String(), nil
}

func value(arg interface{}) string {
	return fmt.Sprint(arg)
}
