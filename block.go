package amw

import (
	"io"

	"github.com/google/uuid"
)

// maxBlockLevel and maxJSONDepth are the recursion caps spec.md §3 and §6.5
// fix at 100 for both block-mode nesting and JSON nesting.
const (
	maxBlockLevel = 100
	maxJSONDepth  = 100
)

const commentChar = '#'

// parserFunc is a conversion-specifier sub-parser: it consumes (part of)
// the current block and returns a value, the Go analog of the C source's
// AmwBlockParserFunc function-pointer typedef.
type parserFunc func(p *Parser) (any, error)

// Parser holds all state for one parse invocation (§3). It is created by
// NewParser and released by Close; it is not safe for concurrent use by
// multiple goroutines, though independent Parsers over disjoint sources may
// run concurrently (§5).
type Parser struct {
	source *LineSource

	currentLine   []rune
	currentIndent uint
	lineNumber    uint

	blockIndent uint
	blockLevel  uint
	jsonDepth   uint

	skipComments bool
	eof          bool

	customParsers map[string]parserFunc

	sessionID uuid.UUID
}

// NewParser allocates a parser bound to source and starts a line-reading
// session on it (§6.1's create_parser).
func NewParser(source *LineSource) *Parser {
	p := &Parser{
		source:       source,
		blockLevel:   1,
		jsonDepth:    1,
		skipComments: true,
		sessionID:    newSessionID(),
	}
	p.customParsers = map[string]parserFunc{
		"raw":       parseRawValue,
		"literal":   parseLiteralString,
		"folded":    parseFoldedString,
		"datetime":  parseDateTimeSpecifier,
		"timestamp": parseTimestampSpecifier,
		"json":      jsonParserFunc,
	}
	return p
}

// Close releases the parser's resources. It is idempotent.
func (p *Parser) Close() {
	p.source = nil
}

// SetCustomParser registers or replaces the sub-parser invoked for
// conversion specifier name (§4.8, §6.1).
func (p *Parser) SetCustomParser(name string, fn func(p *Parser) (any, error)) {
	p.customParsers[name] = fn
}

func (p *Parser) hasCustomParser(name string) bool {
	_, ok := p.customParsers[name]
	return ok
}

func (p *Parser) getCustomParser(name string) parserFunc {
	fn, ok := p.customParsers[name]
	if !ok {
		panic("amw: unknown conversion specifier " + name)
	}
	return fn
}

// readLine reads one line into currentLine, right-trims it, and recomputes
// currentIndent and lineNumber (§4.1's read_line).
func (p *Parser) readLine() error {
	line, err := p.source.ReadLine()
	if err != nil {
		return err
	}
	runes := rtrimSpace([]rune(line))
	p.currentLine = runes
	p.currentIndent = countLeadingSpaces(runes)
	p.lineNumber = p.source.LineNumber()
	return nil
}

func (p *Parser) isCommentLine() bool {
	r, ok := charAt(p.currentLine, p.currentIndent)
	return ok && r == commentChar
}

// readBlockLine is the single entry point by which the parser advances
// within a block (§4.1's read_block_line).
func (p *Parser) readBlockLine() error {
	p.tracePoint("readBlockLine")

	if p.eof {
		if p.blockLevel > 0 {
			return ErrEndOfBlock
		}
		return ErrEOF
	}

	for {
		err := p.readLine()
		if err == io.EOF {
			p.eof = true
			p.currentLine = nil
			return ErrEndOfBlock
		}
		if err != nil {
			return err
		}

		if p.skipComments {
			if len(p.currentLine) == 0 {
				continue
			}
			if p.isCommentLine() {
				continue
			}
			p.skipComments = false
		}

		if len(p.currentLine) == 0 {
			// blank lines are delivered as-is, to allow them inside
			// folded/literal blocks.
			return nil
		}

		if p.currentIndent >= p.blockIndent {
			return nil
		}

		// unindented line
		if p.isCommentLine() {
			continue
		}

		p.source.UnreadLine(string(p.currentLine))
		p.currentLine = nil
		return ErrEndOfBlock
	}
}

// readBlock collects the lines of the current block (from currentLine
// onward), each with blockIndent leading columns stripped, used by the
// raw/literal/folded conversion specifiers (§4.8's _amw_read_block).
func (p *Parser) readBlock() ([][]rune, error) {
	p.tracePoint("readBlock")

	var lines [][]rune
	for {
		lines = append(lines, substr(p.currentLine, p.blockIndent, ^uint(0)))
		err := p.readBlockLine()
		if err == ErrEndOfBlock {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseNestedBlock sets block_indent to blockPos, bumps the recursion
// depth, calls fn, and restores both on the way out (§4.7's "Nested-block
// driver").
func (p *Parser) parseNestedBlock(blockPos uint, fn parserFunc) (any, error) {
	if p.blockLevel >= maxBlockLevel {
		return nil, p.parserError(p.currentIndent, "Too many nested blocks")
	}

	p.blockLevel++
	savedBlockIndent := p.blockIndent
	p.blockIndent = blockPos

	p.traceEnter("parseNestedBlock")
	result, err := fn(p)
	p.traceExit("parseNestedBlock")

	p.blockIndent = savedBlockIndent
	p.blockLevel--

	return result, err
}

// parseNestedBlockFromNextLine reads the next block line, sets block_indent
// to block_indent+1, and calls fn on the resulting block (§4.7's
// "parse_nested_block_from_next_line").
func (p *Parser) parseNestedBlockFromNextLine(fn parserFunc) (any, error) {
	p.tracePoint("parseNestedBlockFromNextLine")

	p.blockIndent++
	p.skipComments = true
	err := p.readBlockLine()
	p.blockIndent--

	if err == ErrEndOfBlock {
		return nil, p.parserError(p.currentIndent, "Empty block")
	}
	if err != nil {
		return nil, err
	}

	return p.parseNestedBlock(p.blockIndent+1, fn)
}

// getStartPosition returns the column of the first non-space character in
// the current block, which may start mid-line for nested list/map values
// (§4.7's _amw_get_start_position).
func (p *Parser) getStartPosition() uint {
	if p.blockIndent < p.currentIndent {
		return p.currentIndent
	}
	return skipSpaces(p.currentLine, p.blockIndent)
}

// commentOrEndOfLine reports whether the current line ends at position or
// holds only a comment there onward (§4.7's _amw_comment_or_end_of_line).
func (p *Parser) commentOrEndOfLine(position uint) bool {
	position = skipSpaces(p.currentLine, position)
	r, ok := charAt(p.currentLine, position)
	return !ok || r == commentChar
}
