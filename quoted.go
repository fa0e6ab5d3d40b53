package amw

import "unicode"

// findClosingQuote scans line for an occurrence of quote at or after
// start, skipping over escaped ones: a quote is considered escaped if the
// immediately preceding character is a backslash (§4.5's
// _amw_find_closing_quote, including its simple one-char-lookbehind rule —
// an escaped backslash directly before a real closing quote is not handled
// specially, matching the original).
func findClosingQuote(line []rune, start uint, quote rune) (uint, bool) {
	pos := start
	for {
		idx := -1
		for i := pos; i < uint(len(line)); i++ {
			if line[i] == quote {
				idx = int(i)
				break
			}
		}
		if idx < 0 {
			return 0, false
		}
		if idx > 0 && line[idx-1] == '\\' {
			pos = uint(idx) + 1
			continue
		}
		return uint(idx), true
	}
}

// dedentLines strips the shallowest common leading-space run from every
// line, ignoring empty lines when computing that minimum.
func dedentLines(lines [][]rune) [][]rune {
	min := ^uint(0)
	for _, l := range lines {
		if len(l) == 0 {
			continue
		}
		n := countLeadingSpaces(l)
		if n < min {
			min = n
		}
	}
	if min == ^uint(0) || min == 0 {
		return lines
	}
	out := make([][]rune, len(lines))
	for i, l := range lines {
		out[i] = substr(l, min, ^uint(0))
	}
	return out
}

// foldLines dedents lines, drops leading and trailing empty lines, then
// joins what remains: adjacent non-empty lines are joined with a single
// space unless the continuation line already starts with whitespace or the
// previous line was empty (in which case the empty line becomes a literal
// newline and suppresses the joining space). When quote is nonzero, each
// line is unescaped first, with quote itself as the early-stop character
// (§4.5's fold_lines).
func (p *Parser) foldLines(lines [][]rune, lineNumbers []uint, quote rune) (string, error) {
	lines = dedentLines(lines)
	n := len(lines)

	startI := 0
	for startI < n && len(lines[startI]) == 0 {
		startI++
	}
	if startI == n {
		return "", nil
	}
	endI := n
	for endI > 0 && len(lines[endI-1]) == 0 {
		endI--
	}
	if endI == 0 {
		return "", nil
	}

	var b []rune
	prevLF := false
	for i := startI; i < endI; i++ {
		line := lines[i]
		if i > startI {
			switch {
			case len(line) == 0:
				b = append(b, '\n')
				prevLF = true
			case prevLF:
				prevLF = false
			case unicode.IsSpace(line[0]):
				// line already begins with whitespace: no separator
			default:
				b = append(b, ' ')
			}
		}
		if quote != 0 {
			lineNum := uint(0)
			if i < len(lineNumbers) {
				lineNum = lineNumbers[i]
			}
			s, _, err := p.decodeEscapes(line, lineNum, 0, uint(len(line)), quote)
			if err != nil {
				return "", err
			}
			b = append(b, []rune(s)...)
		} else {
			b = append(b, line...)
		}
	}
	return string(b), nil
}

// parseQuotedString parses a quoted-string value whose opening quote sits
// at openingQuotePos in the current line (§4.5). It returns the decoded
// value and the position immediately after the closing quote in whatever
// line is current when it returns (which, for a multi-line string, is not
// necessarily the line parsing started on).
func (p *Parser) parseQuotedString(openingQuotePos uint) (string, uint, error) {
	quote, _ := charAt(p.currentLine, openingQuotePos)

	if closePos, ok := findClosingQuote(p.currentLine, openingQuotePos+1, quote); ok {
		s, _, err := p.decodeEscapes(p.currentLine, p.lineNumber, openingQuotePos+1, closePos, quote)
		if err != nil {
			return "", 0, err
		}
		return s, closePos + 1, nil
	}

	blockIndent := openingQuotePos + 1
	savedBlockIndent := p.blockIndent
	p.blockIndent = blockIndent
	p.blockLevel++

	var lines [][]rune
	var lineNumbers []uint
	closingQuoteDetected := false
	var finalEndPos uint

	for {
		lineNumbers = append(lineNumbers, p.lineNumber)
		if closePos, ok := findClosingQuote(p.currentLine, blockIndent, quote); ok {
			finalLine := rtrimSpace(substr(p.currentLine, blockIndent, closePos))
			lines = append(lines, finalLine)
			finalEndPos = closePos + 1
			closingQuoteDetected = true
			break
		}
		lines = append(lines, substr(p.currentLine, blockIndent, ^uint(0)))

		err := p.readBlockLine()
		if err == ErrEndOfBlock {
			break
		}
		if err != nil {
			p.blockIndent = savedBlockIndent
			p.blockLevel--
			return "", 0, err
		}
	}

	p.blockIndent = savedBlockIndent
	p.blockLevel--

	if !closingQuoteDetected {
		err := p.readBlockLine()
		if err == ErrEndOfBlock {
			return "", 0, p.parserError(p.currentIndent, "String has no closing quote")
		}
		if err != nil {
			return "", 0, err
		}
		if c, ok := charAt(p.currentLine, p.currentIndent); ok && p.currentIndent == openingQuotePos && c == quote {
			finalEndPos = openingQuotePos + 1
		} else {
			return "", 0, p.parserError(p.currentIndent, "String has no closing quote")
		}
	}

	folded, err := p.foldLines(lines, lineNumbers, quote)
	if err != nil {
		return "", 0, err
	}
	return folded, finalEndPos, nil
}
