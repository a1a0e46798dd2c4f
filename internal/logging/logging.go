// Package logging provides the application's debug log: a prefixed
// *log.Logger backed by a size-rotated file, so long-running watch sessions
// never grow an unbounded debug.txt.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger writing to a rotating file at path with the given
// bracketed prefix, e.g. "[watch] ".
func New(prefix, path string) *log.Logger {
	return log.New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}, prefix, log.LstdFlags)
}

// Discard returns a logger that drops everything, for when debug logging is
// disabled.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
