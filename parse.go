package amw

import "io"

// Parse reads source as a single block-mode value and returns it. An empty
// source returns ErrEOF (§6.1's amw_parse).
func Parse(source io.Reader) (any, error) {
	p := NewParser(NewLineSource(source))
	defer p.Close()
	return p.parse()
}

// ParseJSON reads source as a single JSON value, using the JSON grammar
// (§4.6) for the top-level value instead of the block-mode grammar
// (§6.1's amw_parse_json).
func ParseJSON(source io.Reader) (any, error) {
	p := NewParser(NewLineSource(source))
	defer p.Close()
	return p.parseJSON()
}

// ParseString is a convenience wrapper around Parse for in-memory markup.
func ParseString(s string) (any, error) {
	p := NewParser(NewLineSourceFromString(s))
	defer p.Close()
	return p.parse()
}

// ParseJSONString is a convenience wrapper around ParseJSON for in-memory
// JSON text.
func ParseJSONString(s string) (any, error) {
	p := NewParser(NewLineSourceFromString(s))
	defer p.Close()
	return p.parseJSON()
}

func (p *Parser) parse() (any, error) {
	err := p.readBlockLine()
	if err == ErrEndOfBlock && p.eof {
		return nil, ErrEOF
	}
	if err != nil && err != ErrEndOfBlock {
		return nil, err
	}

	result, err := valueParserFunc(p)
	if err != nil {
		return nil, err
	}

	err = p.readBlockLine()
	if p.eof {
		return result, nil
	}
	if err != nil && err != ErrEndOfBlock {
		return nil, err
	}
	return nil, p.parserError(p.currentIndent, "Extra data after parsed value")
}

func (p *Parser) parseJSON() (any, error) {
	err := p.readBlockLine()
	if err != nil && err != ErrEndOfBlock {
		return nil, err
	}

	result, err := p.parseJSONValue()
	if err != nil {
		return nil, err
	}

	err = p.readBlockLine()
	if p.eof {
		return result, nil
	}
	if err != nil && err != ErrEndOfBlock {
		return nil, err
	}
	return nil, p.parserError(p.currentIndent, "Extra data after parsed value")
}
