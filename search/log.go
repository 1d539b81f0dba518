package search

import (
	"bytes"
	"log"
)

// lumberjack is a buffered logger. The search writes into it and callers read it back with Log.
type lumberjack struct {
	buf    bytes.Buffer
	logger *log.Logger
}

func newLumberjack() *lumberjack {
	l := new(lumberjack)
	l.logger = log.New(&l.buf, "", log.Ltime)
	return l
}

func (l *lumberjack) log(format string, args ...interface{}) {
	l.logger.Printf(format, args...)
}

// Log returns everything logged so far.
func (l *lumberjack) Log() string { return l.buf.String() }
