package store

import (
	"strings"

	"chessrules/src/logx"
)

// badgerLogger routes badger's own messages into the application log. Badger
// is chatty at info level, so info goes to debug.
type badgerLogger struct {
	l logx.Logger
}

func newBadgerLogger(l logx.Logger) *badgerLogger { return &badgerLogger{l: l} }

func (b *badgerLogger) Errorf(f string, v ...interface{})   { b.l.Errorf(trim(f), v...) }
func (b *badgerLogger) Warningf(f string, v ...interface{}) { b.l.Warnf(trim(f), v...) }
func (b *badgerLogger) Infof(f string, v ...interface{})    { b.l.Debugf(trim(f), v...) }
func (b *badgerLogger) Debugf(f string, v ...interface{})   { b.l.Debugf(trim(f), v...) }

func trim(f string) string { return strings.TrimRight(f, "\n") }
