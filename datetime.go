package amw

// parseNanosecondFrac parses a fractional-seconds suffix ("NNNNNNNNN", 1-9
// digits; the leading '.' has already been consumed by the caller) and
// always advances pos past whatever digits it found. Unlike the original
// parser, which silently accepts a trailing '.' with no following digits
// as zero nanoseconds, this rejects it per spec.md's documented grammar
// (1-9 digits, not 0-9).
func (p *Parser) parseNanosecondFrac(line []rune, pos uint) (uint32, uint, error) {
	digitsStart := pos
	for !endOfLine(line, pos) && isDigit(line[pos]) {
		pos++
	}
	count := pos - digitsStart
	if count == 0 {
		return 0, pos, p.parserError(pos, "Bad date/time")
	}
	if count > 9 {
		return 0, pos, p.parserError(pos, "Bad date/time")
	}

	var value uint32
	for _, c := range line[digitsStart:pos] {
		value = value*10 + uint32(c-'0')
	}
	for i := count; i < 9; i++ {
		value *= 10
	}
	return value, pos, nil
}

// parseFixedDigits consumes exactly n decimal digits at pos, accumulating
// their value.
func (p *Parser) parseFixedDigits(line []rune, pos uint, n int) (int, uint, error) {
	value := 0
	for i := 0; i < n; i++ {
		chr, ok := charAt(line, pos)
		if !ok || !isDigit(chr) {
			return 0, 0, p.parserError(pos, "Bad date/time")
		}
		value = value*10 + int(chr-'0')
		pos++
	}
	return value, pos, nil
}

func skipOptional(line []rune, pos uint, sep rune) uint {
	if chr, ok := charAt(line, pos); ok && chr == sep {
		return pos + 1
	}
	return pos
}

// parseDateTime parses "YYYY[-]MM[-]DD" optionally followed by either 'T'
// or whitespace and "HH[:]MM[:]SS", an optional ".fffffffff" fraction, and
// an optional "Z" or "±HH[:]MM" offset (§4.4's parse_datetime). A bare date
// with no time part is valid.
func (p *Parser) parseDateTime(line []rune, start uint) (DateTime, uint, error) {
	pos := start

	year, pos, err := p.parseFixedDigits(line, pos, 4)
	if err != nil {
		return DateTime{}, 0, err
	}
	pos = skipOptional(line, pos, '-')

	month, pos, err := p.parseFixedDigits(line, pos, 2)
	if err != nil {
		return DateTime{}, 0, err
	}
	pos = skipOptional(line, pos, '-')

	day, pos, err := p.parseFixedDigits(line, pos, 2)
	if err != nil {
		return DateTime{}, 0, err
	}

	dt := DateTime{Year: year, Month: month, Day: day}

	if chr, ok := charAt(line, pos); ok && (chr == 'T' || chr == 't') {
		pos++
	} else {
		spacedPos := skipSpaces(line, pos)
		if endOfLine(line, spacedPos) {
			return dt, spacedPos, nil
		}
		if c, _ := charAt(line, spacedPos); c == commentChar {
			return dt, spacedPos, nil
		}
		pos = spacedPos
	}

	hour, pos, err := p.parseFixedDigits(line, pos, 2)
	if err != nil {
		return DateTime{}, 0, err
	}
	pos = skipOptional(line, pos, ':')

	minute, pos, err := p.parseFixedDigits(line, pos, 2)
	if err != nil {
		return DateTime{}, 0, err
	}
	pos = skipOptional(line, pos, ':')

	second, pos, err := p.parseFixedDigits(line, pos, 2)
	if err != nil {
		return DateTime{}, 0, err
	}

	dt.Hour, dt.Minute, dt.Second = hour, minute, second

	chr, hasChr := charAt(line, pos)
	if hasChr && chr == 'Z' {
		dt.HasOffset = true
		return dt, pos + 1, nil
	}
	if hasChr && chr == '.' {
		pos++
		nsec, newPos, err := p.parseNanosecondFrac(line, pos)
		if err != nil {
			return DateTime{}, 0, err
		}
		dt.Nanosecond = nsec
		pos = newPos
		chr, hasChr = charAt(line, pos)
	}

	if hasChr && chr == 'Z' {
		dt.HasOffset = true
		pos++
	} else if hasChr && (chr == '+' || chr == '-') {
		sign := 1
		if chr == '-' {
			sign = -1
		}
		pos++
		offHour, newPos, err := p.parseFixedDigits(line, pos, 2)
		if err != nil {
			return DateTime{}, 0, err
		}
		pos = newPos
		pos = skipOptional(line, pos, ':')

		offMinute := 0
		if c, ok := charAt(line, pos); ok && isDigit(c) {
			offMinute, pos, err = p.parseFixedDigits(line, pos, 2)
			if err != nil {
				return DateTime{}, 0, err
			}
		}
		dt.HasOffset = true
		dt.GMTOffsetMinutes = sign * (offHour*60 + offMinute)
	}

	return dt, pos, nil
}

// parseTimestamp parses "<digits>[.<digits>]" as a Unix timestamp: integral
// seconds plus an optional nanosecond fraction (§4.4's parse_timestamp).
func (p *Parser) parseTimestamp(line []rune, start uint) (Timestamp, uint, error) {
	seconds, pos, err := p.parseUnsignedDigits(start, 10)
	if err != nil {
		return Timestamp{}, 0, err
	}
	var nsec uint32
	if chr, ok := charAt(line, pos); ok && chr == '.' {
		nsec, pos, err = p.parseNanosecondFrac(line, pos+1)
		if err != nil {
			return Timestamp{}, 0, err
		}
	}
	return Timestamp{Seconds: seconds, Nanoseconds: nsec}, pos, nil
}

// parseDateTimeSpecifier is the built-in ":datetime:" conversion specifier
// (§4.8): it parses a date-time literal from the remainder of the current
// line.
func parseDateTimeSpecifier(p *Parser) (any, error) {
	pos := p.getStartPosition()
	dt, newPos, err := p.parseDateTime(p.currentLine, pos)
	if err != nil {
		return nil, err
	}
	if !p.commentOrEndOfLine(newPos) {
		return nil, p.parserError(newPos, "Bad date/time")
	}
	return dt, nil
}

// parseTimestampSpecifier is the built-in ":timestamp:" conversion
// specifier (§4.8).
func parseTimestampSpecifier(p *Parser) (any, error) {
	pos := p.getStartPosition()
	ts, newPos, err := p.parseTimestamp(p.currentLine, pos)
	if err != nil {
		return nil, err
	}
	if !p.commentOrEndOfLine(newPos) {
		return nil, p.parserError(newPos, "Bad timestamp")
	}
	return ts, nil
}
