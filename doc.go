// Package amw implements an indentation-sensitive markup parser that reads
// a line-oriented text stream and produces a tree of dynamically typed
// values: null, bool, int64, uint64, float64, string, DateTime, Timestamp,
// []any, and *Mapping.
//
// The markup combines two parsing modes: a block mode driven by
// indentation (lists, maps, quoted strings, literal and folded blocks) and
// an inline mode that is strict JSON. The two modes meet through
// conversion specifiers, tokens of the form ":name:" that redirect parsing
// of a subordinate block to a named sub-parser. Built-in specifiers cover
// raw, literal, and folded block strings, date-times, timestamps, and
// embedded JSON; callers may register their own with SetCustomParser.
//
// Parse and ParseJSON (and ParseString and ParseJSONString for in-memory
// text) are the entry points; each builds its own Parser with only the
// built-in specifiers and parses one document to the end of the source.
// NewParser exposes the lower-level Parser type, on which SetCustomParser
// registers further specifiers; Parser has no exported method that runs a
// parse.
package amw
