package amw

import (
	"strings"
	"unicode"
)

// parseConvSpec extracts a conversion specifier name from
// current_line[openingColonPos+1 : closingColonPos] (§4.7 case 1, §4.8). It
// only recognizes the form as a specifier if a registered parser exists
// under the trimmed name and the closing colon is followed by whitespace or
// end-of-line; otherwise it reports no match so the caller can fall back to
// literal-string/map parsing.
func (p *Parser) parseConvSpec(openingColonPos uint) (name string, ok bool, valuePos uint) {
	line := p.currentLine
	startPos := openingColonPos + 1
	closingColonPos, found := indexOfRune(line, ':', startPos)
	if !found || closingColonPos == startPos {
		return "", false, 0
	}
	if !isSpaceOrEOLAt(line, closingColonPos+1) {
		return "", false, 0
	}
	name = strings.TrimSpace(string(substr(line, startPos, closingColonPos)))
	if !p.hasCustomParser(name) {
		return "", false, 0
	}
	return name, true, closingColonPos + 1
}

// isKeyValueSeparator reports whether current_line[colonPos] is a
// key-value separator: the colon is followed by end-of-line, by whitespace
// and then anything but a colon, or (directly or after whitespace) by a
// registered conversion specifier (§4.7.1's is_kv_separator). When it is,
// valuePos is the position the value starts at, and convspec/hasConvspec
// carry the conversion specifier if one follows.
func (p *Parser) isKeyValueSeparator(colonPos uint) (isSep bool, convspec string, hasConvspec bool, valuePos uint) {
	line := p.currentLine
	nextPos := colonPos + 1
	if endOfLine(line, nextPos) {
		return true, "", false, nextPos
	}

	chr, _ := charAt(line, nextPos)
	scanPos := nextPos
	if unicode.IsSpace(chr) {
		valuePos = nextPos + 1
		scanPos = skipSpaces(line, nextPos)
		chr, _ = charAt(line, scanPos)
		if chr != ':' {
			return true, "", false, valuePos
		}
	} else if chr != ':' {
		return false, "", false, 0
	}

	name, ok, vp := p.parseConvSpec(scanPos)
	if !ok {
		return false, "", false, 0
	}
	return true, name, true, vp
}

// checkValueEnd is called once a candidate scalar value (number, keyword,
// single-line string) has been parsed, to decide whether it stands alone or
// is actually a map key (§4.7.1's check_value_end).
func (p *Parser) checkValueEnd(value any, endPos uint, forKey bool) (any, uint, string, bool, error) {
	line := p.currentLine
	endPos = skipSpaces(line, endPos)

	if endOfLine(line, endPos) {
		if forKey {
			return nil, 0, "", false, p.parserError(endPos, "Map key expected")
		}
		if err := p.readBlockLine(); err != nil && err != ErrEndOfBlock {
			return nil, 0, "", false, err
		}
		return value, 0, "", false, nil
	}

	chr, _ := charAt(line, endPos)
	if chr == ':' {
		isSep, convspec, hasConvspec, valuePos := p.isKeyValueSeparator(endPos)
		if isSep {
			if forKey {
				return value, valuePos, convspec, hasConvspec, nil
			}
			m, err := p.parseMap(value, convspec, hasConvspec, valuePos)
			if err != nil {
				return nil, 0, "", false, err
			}
			return m, 0, "", false, nil
		}
		return nil, 0, "", false, p.parserError(endPos+1, "Bad character encountered")
	}

	if chr != commentChar {
		return nil, 0, "", false, p.parserError(endPos, "Bad character encountered")
	}

	if err := p.readBlockLine(); err != nil && err != ErrEndOfBlock {
		return nil, 0, "", false, err
	}
	return value, 0, "", false, nil
}

// parseValue is the block-mode value parser state machine (§4.7). When
// forKey is true, the caller requires the parsed value to be a map key,
// which constrains several of the cases below. It returns the value; when
// forKey is true, nestedValuePos/convspec/hasConvspec describe where and
// how the value that follows the key should be parsed.
func (p *Parser) parseValue(forKey bool) (any, uint, string, bool, error) {
	startPos := p.getStartPosition()
	chr, _ := charAt(p.currentLine, startPos)

	switch {
	case chr == ':':
		if forKey {
			return nil, 0, "", false, p.parserError(startPos, "Map key expected and it cannot start with colon")
		}
		name, ok, valuePos := p.parseConvSpec(startPos)
		if !ok {
			v, err := parseLiteralString(p)
			return v, 0, "", false, err
		}
		if endOfLine(p.currentLine, valuePos) {
			err := p.readBlockLine()
			if err == ErrEndOfBlock {
				return nil, 0, "", false, p.parserError(p.currentIndent, "Empty block")
			}
			if err != nil {
				return nil, 0, "", false, err
			}
			v, err := p.getCustomParser(name)(p)
			return v, 0, "", false, err
		}
		v, err := p.parseNestedBlock(valuePos, p.getCustomParser(name))
		return v, 0, "", false, err

	case chr == '-':
		nextPos := startPos + 1
		if nextChr, ok := charAt(p.currentLine, nextPos); ok && isDigit(nextChr) {
			num, endPos, err := p.parseNumber(nextPos, -1, numberTerminatorsBlock)
			if err != nil {
				return nil, 0, "", false, err
			}
			return p.checkValueEnd(num, endPos, forKey)
		}
		if isSpaceOrEOLAt(p.currentLine, nextPos) {
			if forKey {
				return nil, 0, "", false, p.parserError(startPos, "Map key expected and it cannot be a list")
			}
			v, err := p.parseList()
			return v, 0, "", false, err
		}
		return p.parseLiteralStringOrMap(startPos, forKey)

	case chr == '"' || chr == '\'':
		startLine := p.lineNumber
		s, endPos, err := p.parseQuotedString(startPos)
		if err != nil {
			return nil, 0, "", false, err
		}
		if p.lineNumber == startLine {
			return p.checkValueEnd(s, endPos, forKey)
		}
		if p.commentOrEndOfLine(endPos) {
			return s, 0, "", false, nil
		}
		return nil, 0, "", false, p.parserError(endPos, "Bad character after quoted string")
	}

	if matchKeyword(p.currentLine, startPos, "null") {
		return p.checkValueEnd(nil, startPos+4, forKey)
	}
	if matchKeyword(p.currentLine, startPos, "true") {
		return p.checkValueEnd(true, startPos+4, forKey)
	}
	if matchKeyword(p.currentLine, startPos, "false") {
		return p.checkValueEnd(false, startPos+5, forKey)
	}

	numStart := startPos
	if chr == '+' {
		if nextChr, ok := charAt(p.currentLine, startPos+1); ok && isDigit(nextChr) {
			numStart = startPos + 1
			chr = nextChr
		}
	}
	if isDigit(chr) {
		num, endPos, err := p.parseNumber(numStart, 1, numberTerminatorsBlock)
		if err != nil {
			return nil, 0, "", false, err
		}
		return p.checkValueEnd(num, endPos, forKey)
	}

	return p.parseLiteralStringOrMap(startPos, forKey)
}

// parseLiteralStringOrMap implements §4.7 case 6: scan for a key-value
// separator; if one is found the preceding text is a map key and a map
// follows, otherwise the whole block is a literal string.
func (p *Parser) parseLiteralStringOrMap(startPos uint, forKey bool) (any, uint, string, bool, error) {
	line := p.currentLine
	pos := startPos
	for {
		colonPos, found := indexOfRune(line, ':', pos)
		if !found {
			break
		}
		isSep, convspec, hasConvspec, valuePos := p.isKeyValueSeparator(colonPos)
		if isSep {
			key := string(rtrimSpace(substr(line, startPos, colonPos)))
			if forKey {
				return key, valuePos, convspec, hasConvspec, nil
			}
			m, err := p.parseMap(key, convspec, hasConvspec, valuePos)
			if err != nil {
				return nil, 0, "", false, err
			}
			return m, 0, "", false, nil
		}
		pos = colonPos + 1
	}

	if forKey {
		return nil, 0, "", false, p.parserError(p.currentIndent, "Not a key")
	}
	v, err := parseLiteralString(p)
	return v, 0, "", false, err
}

// parseList parses a block-mode list, where every item shares the column
// of its leading '-' (§4.7's "List parsing").
func (p *Parser) parseList() (any, error) {
	itemIndent := p.getStartPosition()
	result := []any{}

	for {
		nextPos := itemIndent + 1
		if !isSpaceOrEOLAt(p.currentLine, nextPos) {
			return nil, p.parserError(itemIndent, "Bad list item")
		}

		var item any
		var err error
		if p.commentOrEndOfLine(nextPos) {
			item, err = p.parseNestedBlockFromNextLine(valueParserFunc)
		} else {
			item, err = p.parseNestedBlock(nextPos+1, valueParserFunc)
		}
		if err != nil {
			return nil, err
		}
		result = append(result, item)

		err = p.readBlockLine()
		if err == ErrEndOfBlock {
			break
		}
		if err != nil {
			return nil, err
		}
		if p.currentIndent != itemIndent {
			return nil, p.parserError(p.currentIndent, "Bad indentation of list item")
		}
	}
	return result, nil
}

// parseMap parses a block-mode map. The first key (and its conversion
// specifier, if any) has already been parsed by the caller; parseMap
// continues from valuePos (§4.7's "Map parsing").
func (p *Parser) parseMap(firstKey any, convspec string, hasConvspec bool, valuePos uint) (any, error) {
	result := NewMapping()
	key := firstKey
	cs, hcs := convspec, hasConvspec
	keyIndent := p.getStartPosition()

	for {
		fn := valueParserFunc
		if hcs {
			fn = p.getCustomParser(cs)
		}

		var value any
		var err error
		if p.commentOrEndOfLine(valuePos) {
			value, err = p.parseNestedBlockFromNextLine(fn)
		} else {
			value, err = p.parseNestedBlock(valuePos, fn)
		}
		if err != nil {
			return nil, err
		}
		result.Set(key, value)

		err = p.readBlockLine()
		if err == ErrEndOfBlock {
			break
		}
		if err != nil {
			return nil, err
		}
		if p.currentIndent != keyIndent {
			return nil, p.parserError(p.currentIndent, "Bad indentation of map key")
		}

		k, vp, ncs, nhcs, err := p.parseValue(true)
		if err != nil {
			return nil, err
		}
		key, valuePos, cs, hcs = k, vp, ncs, nhcs
	}
	return result, nil
}

// valueParserFunc adapts parseValue to the parserFunc signature used by the
// nested-block driver and the conversion specifier registry.
func valueParserFunc(p *Parser) (any, error) {
	v, _, _, _, err := p.parseValue(false)
	return v, err
}
