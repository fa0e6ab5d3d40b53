package amw

// The JSON sub-parser shares the line buffer and block reader with the
// block-mode parser (§4.6): it is a strict JSON value grammar, plus one
// deliberate deviation from RFC 8259 — a `#` comment runs to end of line
// and is accepted as whitespace anywhere between structural tokens, since
// that is what lets `:json:` islands sit inside an otherwise commented
// block. encoding/json cannot be reused here because it owns its own
// tokenizer and has no hook for that extension or for reporting errors in
// terms of this parser's line/column state.

// skipJSONLineSpace advances past ASCII space/tab within the current line
// only (no line crossing).
func skipJSONLineSpace(line []rune, pos uint) uint {
	for {
		chr, ok := charAt(line, pos)
		if !ok || (chr != ' ' && chr != '\t') {
			return pos
		}
		pos++
	}
}

// skipJSONSpace advances past whitespace and #-comments, crossing line
// boundaries via the block reader as needed, and returns the position of
// the next significant character. ok is false if the enclosing block ended
// before one was found.
func (p *Parser) skipJSONSpace(pos uint) (uint, bool, error) {
	for {
		pos = skipJSONLineSpace(p.currentLine, pos)
		chr, ok := charAt(p.currentLine, pos)
		if !ok || chr == commentChar {
			err := p.readBlockLine()
			if err == ErrEndOfBlock {
				return 0, false, nil
			}
			if err != nil {
				return 0, false, err
			}
			pos = 0
			continue
		}
		return pos, true, nil
	}
}

// jsonString parses a JSON string literal starting at the opening quote.
// Unlike block-mode quoted strings, a JSON string must close on the line
// it opens on.
func (p *Parser) jsonString(pos uint) (string, uint, error) {
	closePos, ok := findClosingQuote(p.currentLine, pos+1, '"')
	if !ok {
		return "", 0, p.parserError(pos, "String has no closing quote")
	}
	s, _, err := p.decodeEscapes(p.currentLine, p.lineNumber, pos+1, closePos, '"')
	if err != nil {
		return "", 0, err
	}
	return s, closePos + 1, nil
}

// jsonValue dispatches on the character at pos to parse one JSON value
// (§4.6's productions), returning the value and the position just past it.
func (p *Parser) jsonValue(pos uint) (any, uint, error) {
	chr, ok := charAt(p.currentLine, pos)
	if !ok {
		return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
	}

	switch {
	case chr == '{':
		return p.jsonObject(pos)
	case chr == '[':
		return p.jsonArray(pos)
	case chr == '"':
		s, newPos, err := p.jsonString(pos)
		return s, newPos, err
	case matchKeyword(p.currentLine, pos, "null"):
		return nil, pos + 4, nil
	case matchKeyword(p.currentLine, pos, "true"):
		return true, pos + 4, nil
	case matchKeyword(p.currentLine, pos, "false"):
		return false, pos + 5, nil
	case isDigit(chr):
		num, newPos, err := p.parseNumber(pos, 1, numberTerminatorsJSON)
		return num, newPos, err
	case chr == '-':
		nextPos := pos + 1
		if nc, ok := charAt(p.currentLine, nextPos); ok && isDigit(nc) {
			num, newPos, err := p.parseNumber(nextPos, -1, numberTerminatorsJSON)
			return num, newPos, err
		}
		return nil, 0, p.parserError(pos, "Unexpected character")
	default:
		return nil, 0, p.parserError(pos, "Unexpected character")
	}
}

// jsonArray parses a JSON array starting at the opening '['.
func (p *Parser) jsonArray(pos uint) (any, uint, error) {
	if p.jsonDepth >= maxJSONDepth {
		return nil, 0, p.parserError(pos, "Maximum recursion depth exceeded")
	}
	p.jsonDepth++
	defer func() { p.jsonDepth-- }()

	pos, ok, err := p.skipJSONSpace(pos + 1)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
	}

	result := []any{}
	if chr, _ := charAt(p.currentLine, pos); chr == ']' {
		return result, pos + 1, nil
	}

	for {
		v, newPos, err := p.jsonValue(pos)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, v)

		pos, ok, err = p.skipJSONSpace(newPos)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
		}

		switch chr, _ := charAt(p.currentLine, pos); chr {
		case ',':
			pos, ok, err = p.skipJSONSpace(pos + 1)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
			}
		case ']':
			return result, pos + 1, nil
		default:
			return nil, 0, p.parserError(pos, "Array items must be separated with comma")
		}
	}
}

// jsonObject parses a JSON object starting at the opening '{'.
func (p *Parser) jsonObject(pos uint) (any, uint, error) {
	if p.jsonDepth >= maxJSONDepth {
		return nil, 0, p.parserError(pos, "Maximum recursion depth exceeded")
	}
	p.jsonDepth++
	defer func() { p.jsonDepth-- }()

	pos, ok, err := p.skipJSONSpace(pos + 1)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
	}

	result := NewMapping()
	if chr, _ := charAt(p.currentLine, pos); chr == '}' {
		return result, pos + 1, nil
	}

	for {
		if chr, _ := charAt(p.currentLine, pos); chr != '"' {
			return nil, 0, p.parserError(pos, "Unexpected character")
		}
		key, pos2, err := p.jsonString(pos)
		if err != nil {
			return nil, 0, err
		}

		pos, ok, err = p.skipJSONSpace(pos2)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
		}
		if chr, _ := charAt(p.currentLine, pos); chr != ':' {
			return nil, 0, p.parserError(pos, "Values must be separated from keys with colon")
		}

		pos, ok, err = p.skipJSONSpace(pos + 1)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
		}

		value, pos3, err := p.jsonValue(pos)
		if err != nil {
			return nil, 0, err
		}
		result.Set(key, value)

		pos, ok, err = p.skipJSONSpace(pos3)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
		}

		switch chr, _ := charAt(p.currentLine, pos); chr {
		case ',':
			pos, ok, err = p.skipJSONSpace(pos + 1)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				return nil, 0, p.parserError(p.currentIndent, "Unexpected end of block")
			}
		case '}':
			return result, pos + 1, nil
		default:
			return nil, 0, p.parserError(pos, "Object members must be separated with comma")
		}
	}
}

// parseJSONValue parses one top-level JSON value from the current block
// position and verifies that only whitespace/comments follow it within the
// enclosing block ("Garbage after JSON value", §4.6).
func (p *Parser) parseJSONValue() (any, error) {
	pos, ok, err := p.skipJSONSpace(p.getStartPosition())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.parserError(p.currentIndent, "Unexpected end of block")
	}

	v, endPos, err := p.jsonValue(pos)
	if err != nil {
		return nil, err
	}

	if trailingPos, ok, err := p.skipJSONSpace(endPos); err != nil {
		return nil, err
	} else if ok {
		return nil, p.parserError(trailingPos, "Garbage after JSON value")
	}
	return v, nil
}
