package amw

import (
	"bufio"
	"io"
	"strings"
)

// LineSource is the line-producing input the parser consumes (§6.2). It
// wraps any io.Reader and supports exactly one level of pushback, the
// contract spec.md §3 requires ("a line pushed back via unread_line may be
// re-read once; the parser pushes back at most one line at any time").
//
// This plays the role the C sources leave to an external "UW" line-reader
// collaborator (start_read_lines/read_line_inplace/unread_line/
// get_line_number in amw.h); no such reusable component exists in the
// retrieval pack, so it is provided here as a thin bufio-backed shim.
type LineSource struct {
	r          *bufio.Reader
	lineNumber uint
	pushed     bool
	pushedLine string
	eof        bool
}

// NewLineSource wraps r for line-at-a-time reading.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{r: bufio.NewReader(r)}
}

// NewLineSourceFromString is a convenience constructor for in-memory
// sources (tests, ParseString and ParseJSONString).
func NewLineSourceFromString(s string) *LineSource {
	return NewLineSource(strings.NewReader(s))
}

// ReadLine reads the next line, without its trailing newline. It returns
// io.EOF when the source is exhausted, matching the "EOF" sentinel
// described in spec.md §3.
func (ls *LineSource) ReadLine() (string, error) {
	if ls.pushed {
		ls.pushed = false
		ls.lineNumber++
		return ls.pushedLine, nil
	}
	if ls.eof {
		return "", io.EOF
	}
	line, err := ls.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		ls.eof = true
		if line == "" {
			return "", io.EOF
		}
		// last line with no trailing newline
		ls.lineNumber++
		return line, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	ls.lineNumber++
	return line, nil
}

// UnreadLine pushes line back so the next ReadLine call returns it again.
// At most one level of pushback is supported; calling it twice in a row
// without an intervening ReadLine is a programming error in the parser and
// panics, the same way the C source's single unread-slot is an assertable
// invariant rather than a recoverable condition.
func (ls *LineSource) UnreadLine(line string) {
	if ls.pushed {
		panic("amw: UnreadLine called with pushback slot already full")
	}
	ls.pushed = true
	ls.pushedLine = line
	ls.lineNumber--
}

// LineNumber returns the 1-based line number of the line most recently
// returned by ReadLine.
func (ls *LineSource) LineNumber() uint {
	return ls.lineNumber
}
