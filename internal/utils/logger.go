package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps LOG_LEVEL values to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// Logger provides leveled logging throughout the application
type Logger struct {
	level Level
	out   *log.Logger
	err   *log.Logger
}

// NewLogger creates a Logger writing info and below to stdout, errors to stderr
func NewLogger(level Level) *Logger {
	return &Logger{
		level: level,
		out:   log.New(os.Stdout, "", 0),
		err:   log.New(os.Stderr, "", 0),
	}
}

// NewLoggerTo writes every level to w. Used by tests.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	l := log.New(w, "", 0)
	return &Logger{level: level, out: l, err: l}
}

func (l *Logger) write(lvl Level, tag, format string, args ...any) {
	if l == nil || lvl < l.level {
		return
	}
	dst := l.out
	if lvl >= LevelError {
		dst = l.err
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	dst.Printf("[%s] %-5s %s", ts, tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.write(LevelDebug, "DEBUG", format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, "INFO", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, "WARN", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, "ERROR", format, args...)
}

// Fatal logs at error level and exits
func (l *Logger) Fatal(format string, args ...any) {
	l.write(LevelError, "FATAL", format, args...)
	os.Exit(1)
}
