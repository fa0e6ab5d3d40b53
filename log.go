package amw

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The C source's TRACE/TRACE_ENTER/TRACE_EXIT/TRACEPOINT macros
// (amw_parser.c lines 9-51) log function name, line number and block
// indent at every block-mode entry/exit, compiled out entirely unless
// built with TRACE_ENABLED. amw carries the same concern forward as
// structured zap logging, off by default (a no-op logger) and swappable
// at runtime instead of at compile time.

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// SetLogger replaces the package-level logger used for parser tracing. A
// nil logger is treated as a request to disable logging (a no-op logger is
// installed instead), matching TRACE_ENABLED being undefined.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func currentLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// sessionLogger returns a logger tagged with this parser's session id, so
// that log lines from concurrent parses (permitted by spec.md §5) can be
// told apart in a shared stream.
func (p *Parser) sessionLogger() *zap.Logger {
	return currentLogger().With(zap.String("session", p.sessionID.String()))
}

func (p *Parser) traceEnter(fn string) {
	p.sessionLogger().Debug(fn,
		zap.String("event", "enter"),
		zap.Uint("line", p.lineNumber),
		zap.Uint("block_indent", p.blockIndent),
		zap.Uint("blocklevel", p.blockLevel),
	)
}

func (p *Parser) traceExit(fn string) {
	p.sessionLogger().Debug(fn,
		zap.String("event", "exit"),
		zap.Uint("line", p.lineNumber),
		zap.Uint("block_indent", p.blockIndent),
		zap.Uint("blocklevel", p.blockLevel),
	)
}

func (p *Parser) tracePoint(fn string) {
	p.sessionLogger().Debug(fn,
		zap.Uint("line", p.lineNumber),
		zap.Uint("block_indent", p.blockIndent),
	)
}

// newSessionID is split out so tests can assert that every Parser gets a
// distinct, valid id without depending on timing.
func newSessionID() uuid.UUID {
	return uuid.New()
}
