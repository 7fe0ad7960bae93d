package pdf

import (
	"io"
	"log/slog"
)

// discardLogger is the default logger for parsers constructed without
// WithLogger: slog.New over io.Discard, so trace calls need no nil check
// and slog drops their Debug records after a single level check.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger attaches a logger for trace output. Only the Tokenizer writes
// to it, one Debug record per emitted token; buffer refills and stack-parser
// objects are not logged. Pass nil (or omit the option) to disable logging. Mirrors the
// optional-logger-field idiom used for lexers elsewhere in the retrieved
// pack (e.g. a MIB lexer's `New(source, logger)` constructor), adapted here
// to this package's functional-options constructors.
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) {
		if l == nil {
			l = discardLogger
		}
		p.log = l
	}
}

func (p Policy) logger() *slog.Logger {
	if p.log == nil {
		return discardLogger
	}
	return p.log
}
