package amw

import "strings"

// decodeEscapes decodes escape sequences within line[start:end), stopping
// early if an unescaped quote rune is encountered (quote == 0 disables this
// early stop). It returns the decoded string and the position where
// decoding stopped (§4.2).
func (p *Parser) decodeEscapes(line []rune, lineNumber, start, end uint, quote rune) (string, uint, error) {
	if start >= end {
		return "", start, nil
	}
	var b strings.Builder
	pos := start
	for pos < end {
		chr := line[pos]
		if quote != 0 && chr == quote {
			break
		}
		if chr != '\\' {
			b.WriteRune(chr)
			pos++
			continue
		}

		// start of escape sequence
		pos++
		if pos >= end {
			// backslash at end of line: kept literally
			b.WriteByte('\\')
			return b.String(), pos, nil
		}
		chr = line[pos]
		switch chr {
		case '\'', '"', '?', '\\':
			b.WriteRune(chr)
		case 'a':
			b.WriteByte(0x07)
		case 'b':
			b.WriteByte(0x08)
		case 'f':
			b.WriteByte(0x0c)
		case 'n':
			b.WriteByte(0x0a)
		case 'r':
			b.WriteByte(0x0d)
		case 't':
			b.WriteByte(0x09)
		case 'v':
			b.WriteByte(0x0b)
		case 'o':
			v, newPos, err := decodeOctalEscape(line, lineNumber, pos)
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(v)
			pos = newPos
			continue
		case 'x':
			v, newPos, err := decodeHexEscape(line, lineNumber, pos, 2, "hexadecimal")
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(v)
			pos = newPos
			continue
		case 'u':
			v, newPos, err := decodeHexEscape(line, lineNumber, pos, 4, "hexadecimal")
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(v)
			pos = newPos
			continue
		case 'U':
			v, newPos, err := decodeHexEscape(line, lineNumber, pos, 8, "hexadecimal")
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(v)
			pos = newPos
			continue
		default:
			// not a valid escape sequence: keep both characters literally
			b.WriteByte('\\')
			b.WriteRune(chr)
		}
		pos++
	}
	return b.String(), pos, nil
}

// decodeOctalEscape decodes \o followed by 1-3 octal digits, starting with
// pos at the 'o'. It returns the decoded rune and the position after the
// last digit consumed.
func decodeOctalEscape(line []rune, lineNumber uint, pos uint) (rune, uint, error) {
	var v rune
	pos++
	for i := 0; i < 3; i++ {
		c, ok := charAt(line, pos)
		if !ok || !isOctalDigit(c) {
			if i > 0 {
				break
			}
			if !ok {
				return 0, 0, newParseError(lineNumber, pos, "Incomplete octal value")
			}
			return 0, 0, newParseError(lineNumber, pos, "Bad octal value")
		}
		v = v<<3 + (c - '0')
		pos++
	}
	return v, pos, nil
}

// decodeHexEscape decodes \x, \u, or \U followed by exactly digitCount hex
// digits, starting with pos at the introducer letter.
func decodeHexEscape(line []rune, lineNumber uint, pos uint, digitCount int, kind string) (rune, uint, error) {
	var v rune
	for i := 0; i < digitCount; i++ {
		pos++
		if endOfLine(line, pos) {
			return 0, 0, newParseError(lineNumber, pos, "Incomplete %s value", kind)
		}
		c := line[pos]
		if !isHexDigit(c) {
			return 0, 0, newParseError(lineNumber, pos, "Bad %s value", kind)
		}
		v = v<<4 + hexDigitValue(c)
	}
	return v, pos + 1, nil
}
