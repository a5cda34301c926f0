// Package debug provides logging and buffer analysis for plugin development.
// Nothing in this package may be called from the audio callback.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	rdebug "runtime/debug"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
	// LogLevelFatal is for fatal errors that should terminate the plugin.
	LogLevelFatal
	// LogLevelOff disables all logging.
	LogLevelOff
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelFatal:
		return "FATAL"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name, in any case, to its LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LogLevelDebug, nil
	case "INFO", "":
		return LogLevelInfo, nil
	case "WARN", "WARNING":
		return LogLevelWarn, nil
	case "ERROR":
		return LogLevelError, nil
	case "FATAL":
		return LogLevelFatal, nil
	case "OFF":
		return LogLevelOff, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Logger is a leveled logger safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	output  io.Writer
	closer  io.Closer
	level   LogLevel
	prefix  string
	flags   int
	enabled bool
	now     func() time.Time
}

// Flags for logger output formatting.
const (
	FlagTime      = 1 << iota // Include local timestamp
	FlagShortFile             // Include short file name and line number
	FlagLongFile              // Include full file path and line number
	FlagLevel                 // Include log level
	FlagPrefix                // Include prefix
	FlagUTC                   // Timestamps in UTC instead of local time
)

// DefaultFlags are the default formatting flags.
const DefaultFlags = FlagTime | FlagShortFile | FlagLevel | FlagPrefix

const timeLayout = "2006-01-02 15:04:05.000"

var defaultLogger = New(os.Stderr, "", DefaultFlags)

// New creates a new logger at LogLevelInfo.
func New(output io.Writer, prefix string, flags int) *Logger {
	return &Logger{
		output:  output,
		prefix:  prefix,
		flags:   flags,
		level:   LogLevelInfo,
		enabled: true,
		now:     time.Now,
	}
}

// NewFileLogger creates a logger appending to filename, creating missing
// directories. Close releases the file.
func NewFileLogger(filename, prefix string, flags int) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := New(file, prefix, flags)
	l.closer = file
	return l, nil
}

// Close closes the underlying file of a file logger. Other loggers are
// left open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.enabled = false
	return err
}

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the minimum log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetPrefix sets the logger prefix.
func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefix = prefix
}

// SetFlags sets the output formatting flags.
func (l *Logger) SetFlags(flags int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flags = flags
}

// SetEnabled enables or disables the logger.
func (l *Logger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// IsEnabled returns whether the logger is enabled.
func (l *Logger) IsEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *Logger) log(depth int, level LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.level || l.level == LogLevelOff {
		return
	}

	var sb strings.Builder

	if l.flags&FlagTime != 0 {
		t := l.now()
		if l.flags&FlagUTC != 0 {
			t = t.UTC()
		}
		sb.WriteString(t.Format(timeLayout))
		sb.WriteByte(' ')
	}

	if l.flags&FlagLevel != 0 {
		fmt.Fprintf(&sb, "[%s] ", level)
	}

	if l.flags&FlagPrefix != 0 && l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}

	if l.flags&(FlagShortFile|FlagLongFile) != 0 {
		if _, file, line, ok := runtime.Caller(depth); ok {
			if l.flags&FlagShortFile != 0 {
				file = filepath.Base(file)
			}
			fmt.Fprintf(&sb, "%s:%d: ", file, line)
		}
	}

	msg := fmt.Sprintf(format, args...)
	sb.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		sb.WriteByte('\n')
	}

	io.WriteString(l.output, sb.String())
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(2, LogLevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(2, LogLevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(2, LogLevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(2, LogLevelError, format, args...)
}

// Fatal logs a fatal error message and panics.
func (l *Logger) Fatal(format string, args ...any) {
	l.log(2, LogLevelFatal, format, args...)
	panic(fmt.Sprintf(format, args...))
}

// LogPanic records a recovered panic value with its stack at error level.
// It is meant to be called with the result of recover() in a deferred
// function and does nothing for nil.
func (l *Logger) LogPanic(recovered any) {
	if recovered == nil {
		return
	}
	l.log(2, LogLevelError, "panic: %v\n%s", recovered, rdebug.Stack())
}

// Default returns the default logger instance.
func Default() *Logger {
	return defaultLogger
}

// SetDefault replaces the default logger. It returns the previous one.
func SetDefault(l *Logger) *Logger {
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// SetupFileLogging points the default logger at filename with the given
// level and local timestamps. The returned function restores the previous
// default and closes the file.
func SetupFileLogging(filename, prefix string, level LogLevel) (func() error, error) {
	l, err := NewFileLogger(filename, prefix, FlagTime|FlagLevel|FlagPrefix|FlagShortFile)
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)

	prev := SetDefault(l)
	return func() error {
		SetDefault(prev)
		return l.Close()
	}, nil
}

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level LogLevel) {
	defaultLogger.SetLevel(level)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...any) {
	defaultLogger.log(2, LogLevelDebug, format, args...)
}

// Info logs an informational message using the default logger.
func Info(format string, args ...any) {
	defaultLogger.log(2, LogLevelInfo, format, args...)
}

// Warn logs a warning message using the default logger.
func Warn(format string, args ...any) {
	defaultLogger.log(2, LogLevelWarn, format, args...)
}

// Error logs an error message using the default logger.
func Error(format string, args ...any) {
	defaultLogger.log(2, LogLevelError, format, args...)
}

// LogPanic records a recovered panic with the default logger.
func LogPanic(recovered any) {
	if recovered == nil {
		return
	}
	defaultLogger.log(2, LogLevelError, "panic: %v\n%s", recovered, rdebug.Stack())
}
