// Package logger provides a small leveled logging interface for the vault services.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the logging interface used across the application.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelPrefix = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

type logger struct {
	level Level
	out   *log.Logger
	err   *log.Logger
	mu    sync.RWMutex
}

// New creates a logger whose minimum level comes from the LOG_LEVEL
// environment variable (debug, info, warn, error; defaults to info).
func New() Logger {
	return NewWithWriter(os.Stdout, os.Stderr)
}

// NewWithWriter creates a logger writing non-error output to out and
// error output to errOut. Used by tests to capture log lines.
func NewWithWriter(out, errOut io.Writer) Logger {
	return &logger{
		level: parseLevel(os.Getenv("LOG_LEVEL")),
		out:   log.New(out, "", log.LstdFlags),
		err:   log.New(errOut, "", log.LstdFlags),
	}
}

// parseLevel converts string log level to Level type
func parseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *logger) shouldLog(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *logger) target(level Level) *log.Logger {
	if level >= LevelError {
		return l.err
	}
	return l.out
}

func (l *logger) output(level Level, v ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	l.target(level).Output(3, levelPrefix[level]+fmt.Sprint(v...))
}

func (l *logger) outputf(level Level, format string, v ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	l.target(level).Output(3, levelPrefix[level]+fmt.Sprintf(format, v...))
}

func (l *logger) Debug(v ...interface{})                 { l.output(LevelDebug, v...) }
func (l *logger) Debugf(format string, v ...interface{}) { l.outputf(LevelDebug, format, v...) }
func (l *logger) Info(v ...interface{})                  { l.output(LevelInfo, v...) }
func (l *logger) Infof(format string, v ...interface{})  { l.outputf(LevelInfo, format, v...) }
func (l *logger) Warn(v ...interface{})                  { l.output(LevelWarn, v...) }
func (l *logger) Warnf(format string, v ...interface{})  { l.outputf(LevelWarn, format, v...) }
func (l *logger) Error(v ...interface{})                 { l.output(LevelError, v...) }
func (l *logger) Errorf(format string, v ...interface{}) { l.outputf(LevelError, format, v...) }

// Fatal logs an error message and exits
func (l *logger) Fatal(v ...interface{}) {
	l.output(LevelError, v...)
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits
func (l *logger) Fatalf(format string, v ...interface{}) {
	l.outputf(LevelError, format, v...)
	os.Exit(1)
}
