// Package log provides the run logger shared by every migration component.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Level is the severity of a log line.
type Level int

// Log levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// Logger writes formatted lines to the console and, once SetFile is called,
// to a run log file. It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	level   Level
	now     func() time.Time
}

// New returns a logger writing to console. Debug lines are dropped unless
// debug is set.
func New(console io.Writer, debug bool) *Logger {
	if console == nil {
		console = io.Discard
	}
	level := LevelInfo
	if debug {
		level = LevelDebug
	}
	return &Logger{console: console, level: level, now: time.Now}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New(io.Discard, false)
}

// SetFile opens path in append mode and mirrors every following line into it.
// An empty path detaches the current file.
func (l *Logger) SetFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	l.file = f
	return nil
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args...) }

// Warnf logs at warning level.
func (l *Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	line := fmt.Sprintf("%s - %s - %s\n", l.now().Format(timeLayout), level, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(l.console, line)
	if l.file != nil {
		_, _ = l.file.WriteString(line)
		// ignoring sync errors as they are not critical for logging
		_ = l.file.Sync()
	}
}

// Close closes the run log file if open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
