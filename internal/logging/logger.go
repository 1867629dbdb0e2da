// Package logging provides the structured logger shared by the console, panelctl and migrate.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
	LevelFatal LogLevel = "fatal"
)

var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// sink is shared by a logger and every logger derived from it, so that
// concurrent request handlers never interleave partial lines.
type sink struct {
	mu     sync.Mutex
	output io.Writer
}

func (s *sink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.output, line)
}

// Logger provides structured logging capabilities
type Logger struct {
	level  LogLevel
	format LogFormat
	sink   *sink
	fields map[string]interface{}
}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller,omitempty"`
}

// NewLogger creates a new logger writing to stdout
func NewLogger(level LogLevel, format LogFormat) *Logger {
	return NewLoggerWithOutput(level, format, os.Stdout)
}

// NewLoggerWithOutput creates a logger writing to w
func NewLoggerWithOutput(level LogLevel, format LogFormat, w io.Writer) *Logger {
	return &Logger{
		level:  level,
		format: format,
		sink:   &sink{output: w},
		fields: make(map[string]interface{}),
	}
}

func (l *Logger) derive(extra int) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+extra)
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{level: l.level, format: l.format, sink: l.sink, fields: fields}
}

// WithField returns a logger carrying key=value on every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	derived := l.derive(1)
	derived.fields[key] = value
	return derived
}

// WithFields returns a logger carrying all of fields on every entry
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	derived := l.derive(len(fields))
	for k, v := range fields {
		derived.fields[k] = v
	}
	return derived
}

// WithError adds an error to the logger context
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// Component tags entries with the subsystem that produced them.
func (l *Logger) Component(name string) *Logger {
	return l.WithField("component", name)
}

// Debug logs a debug message
func (l *Logger) Debug(message string) {
	l.log(LevelDebug, message)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(message string) {
	l.log(LevelInfo, message)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(message string) {
	l.log(LevelWarn, message)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(message string) {
	l.log(LevelError, message)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

// ErrorWithErr logs an error message with an error object
func (l *Logger) ErrorWithErr(message string, err error) {
	l.WithError(err).log(LevelError, message)
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(message string) {
	l.log(LevelFatal, message)
	os.Exit(1)
}

// Fatalf logs a formatted fatal message and exits
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(LevelFatal, fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.level]
}

func (l *Logger) log(level LogLevel, message string) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    l.fields,
	}

	if level == LevelError || level == LevelFatal {
		if _, file, line, ok := runtime.Caller(2); ok {
			entry.Caller = fmt.Sprintf("%s:%d", file, line)
		}
	}

	var line string
	if l.format == FormatJSON {
		b, err := json.Marshal(entry)
		if err != nil {
			line = fmt.Sprintf(`{"level":"error","message":"unencodable log entry: %s"}`, err)
		} else {
			line = string(b)
		}
	} else {
		line = formatText(entry)
	}

	l.sink.write(line)
}

// formatText renders "[ts] level: message key=value ..." with keys sorted.
func formatText(entry LogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", entry.Timestamp, entry.Level, entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}

	if entry.Caller != "" {
		fmt.Fprintf(&b, " caller=%s", entry.Caller)
	}
	return b.String()
}

// SetOutput sets the output writer for the logger and its derivatives
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	l.sink.output = w
	l.sink.mu.Unlock()
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(level LogLevel, format LogFormat) {
	globalMu.Lock()
	globalLogger = NewLogger(level, format)
	globalMu.Unlock()
}

// SetGlobalLogger replaces the global logger (tests, panelctl stderr output).
func SetGlobalLogger(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewLogger(LevelInfo, FormatJSON)
	}
	return globalLogger
}

type loggerKey struct{}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves a logger from the context, falling back to the global logger
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*Logger); ok {
			return logger
		}
	}
	return GetGlobalLogger()
}

// Info logs an info message using the global logger
func Info(message string) {
	GetGlobalLogger().Info(message)
}

// Infof logs a formatted info message using the global logger
func Infof(format string, args ...interface{}) {
	GetGlobalLogger().Infof(format, args...)
}

// Warnf logs a formatted warning message using the global logger
func Warnf(format string, args ...interface{}) {
	GetGlobalLogger().Warnf(format, args...)
}

// Errorf logs a formatted error message using the global logger
func Errorf(format string, args ...interface{}) {
	GetGlobalLogger().Errorf(format, args...)
}

// Fatalf logs a formatted fatal message and exits using the global logger
func Fatalf(format string, args ...interface{}) {
	GetGlobalLogger().Fatalf(format, args...)
}

// WithField adds a field to the global logger
func WithField(key string, value interface{}) *Logger {
	return GetGlobalLogger().WithField(key, value)
}

// WithFields adds multiple fields to the global logger
func WithFields(fields map[string]interface{}) *Logger {
	return GetGlobalLogger().WithFields(fields)
}

// WithError adds an error to the global logger
func WithError(err error) *Logger {
	return GetGlobalLogger().WithError(err)
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		log.Printf("Unknown log level '%s', defaulting to 'info'", level)
		return LevelInfo
	}
}

// ParseLogFormat parses a string into a LogFormat
func ParseLogFormat(format string) LogFormat {
	switch strings.ToLower(format) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		log.Printf("Unknown log format '%s', defaulting to 'json'", format)
		return FormatJSON
	}
}
