// Package log is the logging facade used by the Scryfall client.
//
// The client never builds its own logger: applications hand one over with
// SetLogger (usually a *zap.SugaredLogger) and the client logs through the
// package-level helpers. Until then every call is discarded.
package log

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Logger is the subset of *zap.SugaredLogger the client relies on.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}

type holder struct {
	Logger
}

var current atomic.Value

func init() {
	Reset()
}

// SetLogger sets the logger instance used by the package.
// A nil logger restores the no-op default.
func SetLogger(logger Logger) {
	if logger == nil {
		Reset()
		return
	}
	current.Store(holder{logger})
}

// Reset discards every subsequent log call.
func Reset() {
	current.Store(holder{zap.NewNop().Sugar()})
}

func get() Logger {
	return current.Load().(holder).Logger
}

// Debugf uses fmt.Sprintf to construct and log a message.
func Debugf(format string, args ...interface{}) {
	get().Debugf(format, args...)
}

// Infof uses fmt.Sprintf to construct and log a message.
func Infof(format string, args ...interface{}) {
	get().Infof(format, args...)
}

// Fatalf uses fmt.Sprintf to construct and log a message, then calls os.Exit.
func Fatalf(format string, args ...interface{}) {
	get().Fatalf(format, args...)
}

// Debugw logs a message with some additional context.
func Debugw(msg string, keysAndValues ...interface{}) {
	get().Debugw(msg, keysAndValues...)
}

// Infow logs a message with some additional context.
func Infow(msg string, keysAndValues ...interface{}) {
	get().Infow(msg, keysAndValues...)
}

// Warnw logs a message with some additional context.
func Warnw(msg string, keysAndValues ...interface{}) {
	get().Warnw(msg, keysAndValues...)
}

// Errorw logs a message with some additional context.
func Errorw(msg string, keysAndValues ...interface{}) {
	get().Errorw(msg, keysAndValues...)
}

// Fatalw logs a message with some additional context, then calls os.Exit.
func Fatalw(msg string, keysAndValues ...interface{}) {
	get().Fatalw(msg, keysAndValues...)
}
