package log

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is the leveled logging interface used across the SDK.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// Printer is satisfied by the standard library logger.
type Printer interface {
	Printf(format string, v ...interface{})
}

// NoopLogger discards all log messages.
type NoopLogger struct{}

func (NoopLogger) Debugf(string, ...interface{}) {}
func (NoopLogger) Infof(string, ...interface{})  {}
func (NoopLogger) Warnf(string, ...interface{})  {}
func (NoopLogger) Errorf(string, ...interface{}) {}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZap adapts a zap logger.
func NewZap(l *zap.Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return zapLogger{s: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (z zapLogger) Debugf(format string, v ...interface{}) { z.s.Debugf(format, v...) }
func (z zapLogger) Infof(format string, v ...interface{})  { z.s.Infof(format, v...) }
func (z zapLogger) Warnf(format string, v ...interface{})  { z.s.Warnf(format, v...) }
func (z zapLogger) Errorf(format string, v ...interface{}) { z.s.Errorf(format, v...) }

type printfLogger struct {
	p Printer
}

// FromPrinter wraps a Printf-style logger, prefixing each line with its level.
func FromPrinter(p Printer) Logger {
	if p == nil {
		return NoopLogger{}
	}
	return printfLogger{p: p}
}

func (l printfLogger) Debugf(format string, v ...interface{}) { l.log("DEBUG", format, v...) }
func (l printfLogger) Infof(format string, v ...interface{})  { l.log("INFO", format, v...) }
func (l printfLogger) Warnf(format string, v ...interface{})  { l.log("WARN", format, v...) }
func (l printfLogger) Errorf(format string, v ...interface{}) { l.log("ERROR", format, v...) }

func (l printfLogger) log(level, format string, v ...interface{}) {
	l.p.Printf("%s %s", level, fmt.Sprintf(format, v...))
}
