package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field for use with With and LogWithFields.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger behind the application's logging API.
type Logger struct {
	l *logrus.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(lg *Logger) {
		lg.l.SetOutput(w)
	}
}

// WithJSON switches the logger to JSON formatting.
func WithJSON() Option {
	return func(lg *Logger) {
		lg.l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
}

// NewLogger creates a logger with text formatting on stdout.
func NewLogger(opts ...Option) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(currentLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lg := &Logger{l: l}
	for _, opt := range opts {
		opt(lg)
	}
	registerLogger(lg)
	return lg
}

var (
	currentLevel = logrus.InfoLevel
	loggers      []*Logger
)

func registerLogger(lg *Logger) {
	loggers = append(loggers, lg)
}

// SetDebug toggles debug-level output for every logger created by this
// package, including the package-level functions.
func SetDebug(debug bool) {
	currentLevel = logrus.InfoLevel
	if debug {
		currentLevel = logrus.DebugLevel
	}
	for _, lg := range loggers {
		lg.l.SetLevel(currentLevel)
	}
}

var std = NewLogger()

// Entry carries accumulated fields toward a final log call.
type Entry struct {
	e *logrus.Entry
}

// With attaches structured fields to the logger.
func (lg *Logger) With(fields ...Field) *Entry {
	return &Entry{e: lg.l.WithFields(toLogrus(fields))}
}

// With attaches further fields to an entry.
func (en *Entry) With(fields ...Field) *Entry {
	return &Entry{e: en.e.WithFields(toLogrus(fields))}
}

func toLogrus(fields []Field) logrus.Fields {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return lf
}

func (en *Entry) Info(args ...interface{})  { en.e.Info(args...) }
func (en *Entry) Warn(args ...interface{})  { en.e.Warn(args...) }
func (en *Entry) Error(args ...interface{}) { en.e.Error(args...) }
func (en *Entry) Debug(args ...interface{}) { en.e.Debug(args...) }

func (lg *Logger) Info(args ...interface{})                  { lg.l.Info(args...) }
func (lg *Logger) Infof(format string, args ...interface{})  { lg.l.Infof(format, args...) }
func (lg *Logger) Warn(args ...interface{})                  { lg.l.Warn(args...) }
func (lg *Logger) Warnf(format string, args ...interface{})  { lg.l.Warnf(format, args...) }
func (lg *Logger) Error(args ...interface{})                 { lg.l.Error(args...) }
func (lg *Logger) Errorf(format string, args ...interface{}) { lg.l.Errorf(format, args...) }
func (lg *Logger) Debug(args ...interface{})                 { lg.l.Debug(args...) }
func (lg *Logger) Debugf(format string, args ...interface{}) { lg.l.Debugf(format, args...) }

// Package-level helpers log through a shared default logger.

func Info(args ...interface{})                  { std.Info(args...) }
func Infof(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(args ...interface{})                  { std.Warn(args...) }
func Warnf(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(args ...interface{})                 { std.Error(args...) }
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }
func Debug(args ...interface{})                 { std.Debug(args...) }
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }

// LogWithFields returns a field-carrying entry on the default logger.
func LogWithFields(fields ...Field) *Entry {
	return std.With(fields...)
}
