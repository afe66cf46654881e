package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

const timeFormat = "06-01-02 15:04:05"

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
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

func (l LogLevel) color() string {
	switch l {
	case DEBUG:
		return ColorGray
	case INFO:
		return ColorBlue
	case WARN:
		return ColorYellow
	case ERROR:
		return ColorRed
	default:
		return ColorWhite
	}
}

// ColoredLogger writes colored lines to a writer per level. An optional
// plain sink receives every line without escape codes, for log files.
type ColoredLogger struct {
	verbose bool
	mu      sync.RWMutex
	loggers map[LogLevel]*log.Logger
	plain   *log.Logger
}

var globalLogger = newColoredLogger(os.Stdout)

func newColoredLogger(w io.Writer) *ColoredLogger {
	cl := &ColoredLogger{
		loggers: make(map[LogLevel]*log.Logger),
	}
	for level := DEBUG; level <= ERROR; level++ {
		cl.loggers[level] = log.New(w, "", 0)
	}
	return cl
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func SetWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.loggers[level] = log.New(writer, "", 0)
}

// SetPlainWriter mirrors every emitted line, uncolored, to writer. A nil
// writer disables the mirror.
func SetPlainWriter(writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	if writer == nil {
		globalLogger.plain = nil
		return
	}
	globalLogger.plain = log.New(writer, "", 0)
}

// SetErrorWriter routes ERROR to stderr so record failures do not
// mix with normal progress output.
func SetErrorWriter() {
	SetWriter(ERROR, os.Stderr)
}

// Configure applies the command line logging options. The returned file, if
// any, must be closed by the caller.
func Configure(verbose bool, logfile string) (io.Closer, error) {
	SetVerbose(verbose)
	SetErrorWriter()
	if logfile == "" {
		return nil, nil
	}

	f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logfile, err)
	}
	SetPlainWriter(f)
	return f, nil
}

func formatColored(level LogLevel, timestamp, message string) string {
	return fmt.Sprintf(
		"%s[%s]%s %s%-5s%s %s",
		ColorGray, timestamp, ColorReset,
		level.color(), level.String(), ColorReset,
		message,
	)
}

func formatPlain(level LogLevel, timestamp, message string) string {
	return fmt.Sprintf("[%s] %-5s %s", timestamp, level.String(), message)
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}
	logger, plain := cl.loggers[level], cl.plain
	cl.mu.RUnlock()

	message := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format(timeFormat)

	logger.Println(formatColored(level, timestamp, message))
	if plain != nil {
		plain.Println(formatPlain(level, timestamp, message))
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}
