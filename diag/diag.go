// Package diag formats the compiler's single fatal diagnostic: a
// message, the offending position, and a caret pointing at the
// original source line.
//
// The shape is narrowed from CWBudde-go-dws's CompilerError: this
// compiler's error-handling design is "first diagnostic is fatal, no
// recovery, no multi-error aggregation" (spec §7), so the
// FormatErrors/FormatErrorsWithContext multi-error machinery that
// repo carries has no caller here and was not ported.
package diag

import (
	"fmt"
	"strings"

	"github.com/ysuzuki/cgox/source"
	"github.com/ysuzuki/cgox/token"
)

// Error is the compiler's one fatal diagnostic shape. It implements
// the error interface so it can flow through ordinary Go error
// returns all the way up to the CLI.
type Error struct {
	Message string
	Pos     token.Position
	Line    string // the source line the position falls on, or "" if unavailable
}

// New builds an Error from a position and a source line already in hand.
func New(pos token.Position, line, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos, Line: line}
}

// FromSet builds an Error looking up its source line from a registry.
func FromSet(set *source.Set, pos token.Position, format string, args ...interface{}) *Error {
	line := ""
	if f := set.File(pos.File); f != nil {
		line = f.Line(pos.Line)
	}
	return New(pos, line, format, args...)
}

// Error implements the error interface with color disabled.
func (e *Error) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic: a file:line:col header, the
// reproduced source line, and a caret under the offending column.
// When color is true the caret is wrapped in ANSI codes.
func (e *Error) Format(color bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: error: %s\n", e.Pos.String(), e.Message)

	if e.Line != "" {
		lineNumStr := fmt.Sprintf("%5d | ", e.Pos.Line)
		b.WriteString(lineNumStr)
		b.WriteString(e.Line)
		b.WriteString("\n")

		b.WriteString(strings.Repeat(" ", len(lineNumStr)+col0(e.Pos.Col)))
		if color {
			b.WriteString("\033[1;31m")
		}
		b.WriteString("^")
		if color {
			b.WriteString("\033[0m")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// col0 converts a 1-indexed column into the number of leading spaces
// needed before the caret.
func col0(col int) int {
	if col < 1 {
		return 0
	}
	return col - 1
}
