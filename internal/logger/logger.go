package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration
type Config struct {
	Level      Level     // Minimum log level
	FilePath   string    // Path to log file, empty disables file output
	MaxSize    int64     // Max size in bytes before rotation
	MaxAge     int       // Max age in days before rotation
	MaxBackups int       // Max number of rotated files kept
	Console    bool      // Also write to stderr
	Output     io.Writer // Extra writer, mostly for tests
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Level:      INFO,
		FilePath:   filepath.Join(home, ".projectboard", "logs", "projectboard.log"),
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    false, // keeps the TUI screen clean
	}
}

// sink is the shared output state of a logger and its WithFields children
type sink struct {
	mu      sync.Mutex
	config  Config
	file    *os.File
	writers []io.Writer
}

// Logger writes levelled lines with key=value fields. A nil *Logger
// discards everything, so components can take one unconditionally.
type Logger struct {
	sink   *sink
	fields []Field
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	s := &sink{config: config}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := s.openFile(); err != nil {
			return nil, err
		}
		if err := s.rotateIfNeeded(); err != nil {
			return nil, err
		}
	}
	s.resetWriters()

	return &Logger{sink: s}, nil
}

// NewWriter returns a logger writing only to w
func NewWriter(w io.Writer, level Level) *Logger {
	l, _ := New(Config{Level: level, Output: w})
	return l
}

func (s *sink) openFile() error {
	file, err := os.OpenFile(s.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.file = file
	return nil
}

func (s *sink) resetWriters() {
	s.writers = s.writers[:0]
	if s.file != nil {
		s.writers = append(s.writers, s.file)
	}
	if s.config.Console {
		s.writers = append(s.writers, os.Stderr)
	}
	if s.config.Output != nil {
		s.writers = append(s.writers, s.config.Output)
	}
}

// rotateIfNeeded rotates the file once it is too big or too old. Callers
// hold s.mu or own s exclusively.
func (s *sink) rotateIfNeeded() error {
	if s.file == nil {
		return nil
	}

	info, err := s.file.Stat()
	if err != nil {
		return err
	}

	tooBig := s.config.MaxSize > 0 && info.Size() >= s.config.MaxSize
	tooOld := s.config.MaxAge > 0 && info.Size() > 0 &&
		time.Since(info.ModTime()) > time.Duration(s.config.MaxAge)*24*time.Hour
	if !tooBig && !tooOld {
		return nil
	}
	return s.rotate()
}

// rotate shifts log -> log.1 -> log.2 ... and reopens a fresh file
func (s *sink) rotate() error {
	_ = s.file.Close()

	for i := s.config.MaxBackups - 1; i >= 1; i-- {
		_ = os.Rename(fmt.Sprintf("%s.%d", s.config.FilePath, i), fmt.Sprintf("%s.%d", s.config.FilePath, i+1))
	}
	if s.config.MaxBackups > 0 {
		if err := os.Rename(s.config.FilePath, s.config.FilePath+".1"); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else {
		_ = os.Remove(s.config.FilePath)
	}

	if err := s.openFile(); err != nil {
		return err
	}
	s.resetWriters()
	return nil
}

// log writes a log entry
func (l *Logger) log(level Level, msg string, fields []Field) {
	if l == nil || l.sink == nil || level < l.sink.config.Level {
		return
	}

	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.rotateIfNeeded()

	// Caller of Debug/Info/Warn/Error
	caller := "???"
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s", time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, f := range l.fields {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
		for _, f := range fields {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
	}
	b.WriteByte('\n')

	line := []byte(b.String())
	for _, w := range s.writers {
		_, _ = w.Write(line)
	}
}

// WithFields creates a logger that adds fields to every entry
func (l *Logger) WithFields(fields ...Field) *Logger {
	if l == nil {
		return nil
	}
	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)
	return &Logger{sink: l.sink, fields: all}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DEBUG, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(INFO, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WARN, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(ERROR, msg, fields)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.sink == nil {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.file != nil {
		err := l.sink.file.Close()
		l.sink.file = nil
		l.sink.resetWriters()
		return err
	}
	return nil
}
