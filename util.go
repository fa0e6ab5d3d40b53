package amw

import "unicode"

// These are small rune-indexed helpers used throughout the parser. Source
// lines are kept as []rune so that every position in the parser (current
// indent, error columns, escape-sequence offsets) is a code-point index,
// not a byte index, matching spec.md §3's "column (code-point position)".

// charAt returns the rune at pos and whether pos is within line.
func charAt(line []rune, pos uint) (rune, bool) {
	if pos >= uint(len(line)) {
		return 0, false
	}
	return line[pos], true
}

// endOfLine reports whether pos is at or past the end of line.
func endOfLine(line []rune, pos uint) bool {
	return pos >= uint(len(line))
}

// skipSpaces returns the first position at or after pos that is not an
// ASCII space. Only the space character is recognized as indentation or
// inter-token whitespace skip per spec.md §6.5 ("the space character;
// other whitespace in leading position is not recognized as indentation").
func skipSpaces(line []rune, pos uint) uint {
	for pos < uint(len(line)) && line[pos] == ' ' {
		pos++
	}
	return pos
}

// isSpaceOrEOLAt reports whether pos is past the end of line or holds a
// Unicode whitespace rune.
func isSpaceOrEOLAt(line []rune, pos uint) bool {
	r, ok := charAt(line, pos)
	if !ok {
		return true
	}
	return unicode.IsSpace(r)
}

// countLeadingSpaces counts leading ASCII spaces (the indent).
func countLeadingSpaces(line []rune) uint {
	i := uint(0)
	for i < uint(len(line)) && line[i] == ' ' {
		i++
	}
	return i
}

// rtrimSpace trims trailing ASCII space and tab runes, matching the line
// buffer's right-trim step (§4.1).
func rtrimSpace(line []rune) []rune {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		end--
	}
	return line[:end]
}

// substr extracts [start, end) from line, clamping end to len(line). end
// may be passed as ^uint(0) to mean "to the end of the line".
func substr(line []rune, start, end uint) []rune {
	n := uint(len(line))
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return line[start:end]
}

// isDigit reports whether r is an ASCII decimal digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isHexDigit reports whether r is an ASCII hexadecimal digit.
func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isOctalDigit reports whether r is an ASCII octal digit.
func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

// indexOfRune returns the position of the first occurrence of r at or
// after start, or false if none exists.
func indexOfRune(line []rune, r rune, start uint) (uint, bool) {
	for i := start; i < uint(len(line)); i++ {
		if line[i] == r {
			return i, true
		}
	}
	return 0, false
}

// matchKeyword reports whether line has the literal text kw starting at
// pos (used to match the null/true/false reserved words).
func matchKeyword(line []rune, pos uint, kw string) bool {
	kwRunes := []rune(kw)
	if pos+uint(len(kwRunes)) > uint(len(line)) {
		return false
	}
	for i, r := range kwRunes {
		if line[pos+uint(i)] != r {
			return false
		}
	}
	return true
}

func hexDigitValue(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10
	}
	return -1
}
