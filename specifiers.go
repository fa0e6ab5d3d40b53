package amw

import "strings"

// parseRawValue implements the built-in ":raw:" conversion specifier
// (§4.8): the rest of the current block, concatenated verbatim with LF,
// with a trailing LF appended when the block has more than one line.
func parseRawValue(p *Parser) (any, error) {
	lines, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	return joinBlockLines(lines), nil
}

// parseLiteralString implements the built-in ":literal:" conversion
// specifier (§4.8): like raw, but the lines are first dedented to their
// common leading-space prefix and trailing empty lines are dropped.
func parseLiteralString(p *Parser) (any, error) {
	lines, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	lines = dedentLines(lines)
	lines = trimTrailingEmpty(lines)
	return joinBlockLines(lines), nil
}

// parseFoldedString implements the built-in ":folded:" conversion
// specifier (§4.8): dedent, then fold the way a multi-line quoted string's
// body is folded, without escape decoding.
func parseFoldedString(p *Parser) (any, error) {
	lines, err := p.readBlock()
	if err != nil {
		return nil, err
	}
	return p.foldLines(lines, nil, 0)
}

func trimTrailingEmpty(lines [][]rune) [][]rune {
	n := len(lines)
	for n > 0 && len(lines[n-1]) == 0 {
		n--
	}
	return lines[:n]
}

// joinBlockLines joins lines with '\n', appending one extra empty line
// (producing a trailing LF) when there is more than one line, mirroring
// the array-join-then-append-empty-line idiom shared by raw and literal.
func joinBlockLines(lines [][]rune) string {
	if len(lines) > 1 {
		lines = append(lines, nil)
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// jsonParserFunc is the built-in ":json:" conversion specifier (§4.8): it
// delegates to the JSON sub-parser (§4.6) on the current block position.
func jsonParserFunc(p *Parser) (any, error) {
	return p.parseJSONValue()
}
