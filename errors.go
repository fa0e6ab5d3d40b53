package amw

import (
	"fmt"
	"runtime"

	pkgerrors "github.com/pkg/errors"
)

// ParseError is the error kind raised for every malformed-input condition
// (spec.md §4.9, §7). It carries the source-text position of the problem
// plus the parser's own raising site, the Go equivalent of the C source's
// __FILE__/__LINE__ capture in amw_parser_error2.
type ParseError struct {
	Line        uint   // 1-based source line
	Column      uint   // 0-based code-point column
	Description string

	RaisingFile string
	RaisingLine int

	stack pkgerrors.StackTrace
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Description, e.Line, e.Column)
}

// StackTrace exposes the raising-site call stack captured by pkg/errors,
// useful when debugging the parser itself (not part of the public parse
// result, mirrors the C source's debug-only use of raising_file/line).
func (e *ParseError) StackTrace() pkgerrors.StackTrace {
	return e.stack
}

// sentinel statuses (§3): non-fatal, never surfaced to the public API on
// success paths.
var (
	// ErrEndOfBlock terminates a block-mode iteration loop.
	ErrEndOfBlock = fmt.Errorf("amw: end of block")
	// ErrEOF terminates the outer parse; returned by Parse on empty input.
	ErrEOF = fmt.Errorf("amw: end of file")
)

// newParseError builds a ParseError at (line, column) with a printf-style
// description, capturing the caller's file/line the way
// amw_parser_error/amw_parser_error2 capture __FILE__/__LINE__.
func newParseError(line, column uint, format string, args ...any) *ParseError {
	desc := format
	if len(args) > 0 {
		desc = fmt.Sprintf(format, args...)
	}
	err := &ParseError{
		Line:        line,
		Column:      column,
		Description: desc,
	}
	wrapped := pkgerrors.WithStack(err)
	if st, ok := wrapped.(interface{ StackTrace() pkgerrors.StackTrace }); ok {
		trace := st.StackTrace()
		err.stack = trace
		// frame 0 of the stack is this function; the raising site is the
		// first frame outside this file, which skips the parserError and
		// parserErrorAt wrappers.
		var ownFile string
		for i, f := range trace {
			pc := uintptr(f) - 1
			fn := runtime.FuncForPC(pc)
			if fn == nil {
				break
			}
			file, ln := fn.FileLine(pc)
			if i == 0 {
				ownFile = file
			} else if file != ownFile {
				err.RaisingFile = file
				err.RaisingLine = ln
				break
			}
		}
	}
	return err
}

// parserError builds a ParseError positioned at the parser's current line.
func (p *Parser) parserError(column uint, format string, args ...any) error {
	return newParseError(p.lineNumber, column, format, args...)
}

// parserErrorAt builds a ParseError positioned at an explicit line, used
// when reporting an error discovered on a line other than the current one
// (e.g. the opening line of a multi-line quoted string), mirroring
// amw_parser_error2's explicit line_number parameter.
func (p *Parser) parserErrorAt(line, column uint, format string, args ...any) error {
	return newParseError(line, column, format, args...)
}

// IsEndOfBlock reports whether err is the END_OF_BLOCK sentinel.
func IsEndOfBlock(err error) bool {
	return err == ErrEndOfBlock
}

// IsEOF reports whether err is the EOF sentinel.
func IsEOF(err error) bool {
	return err == ErrEOF
}
