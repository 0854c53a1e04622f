package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
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
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name such as "debug" or "WARN". Unknown names
// fall back to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// levelFatal sits above slog.LevelError so FATAL records survive any filter.
const levelFatal = slog.Level(12)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	case FATAL:
		return levelFatal
	default:
		return slog.LevelInfo
	}
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Level      LogLevel
	Format     Format
	Prefix     string
	TimeFormat string
	Output     io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		Format:     FormatText,
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stdout,
	}
}

// Logger is a leveled printf-style logger on top of slog.
type Logger struct {
	mu    sync.Mutex
	level *slog.LevelVar
	cfg   Config
	slog  *slog.Logger
	exit  func(int)
}

var (
	defaultLogger *Logger
	once          sync.Once
)

func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "2006-01-02 15:04:05"
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	l := &Logger{level: new(slog.LevelVar), cfg: cfg, exit: os.Exit}
	l.level.Set(cfg.Level.slogLevel())
	l.slog = slog.New(l.newHandler(cfg.Output))
	return l
}

func (l *Logger) newHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: l.level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.String(slog.TimeKey, a.Value.Time().Format(l.cfg.TimeFormat))
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == levelFatal {
					return slog.String(slog.LevelKey, "FATAL")
				}
			}
			return a
		},
	}

	var h slog.Handler
	if l.cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	if l.cfg.Prefix != "" {
		h = h.WithAttrs([]slog.Attr{slog.String("component", l.cfg.Prefix)})
	}
	return h
}

// GetLogger returns the process-wide logger, configured from LOG_LEVEL and
// LOG_FORMAT on first use.
func GetLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
			cfg.Level = ParseLevel(envLevel)
		}
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), string(FormatJSON)) {
			cfg.Format = FormatJSON
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slog
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level.Set(level.slogLevel())
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg.Output = w
	l.slog = slog.New(l.newHandler(w))
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	lvl := level.slogLevel()
	sl := l.Slog()
	ctx := context.Background()
	if !sl.Enabled(ctx, lvl) {
		return
	}

	message := msg
	if len(args) > 0 {
		message = fmt.Sprintf(msg, args...)
	}
	sl.Log(ctx, lvl, message)

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// Fatal logs at FATAL and then exits with status 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.log(FATAL, msg, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.Info(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Warn(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Error(format, args...)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.Fatal(format, args...)
}

// Elapsed logs how long an operation took at DEBUG level. Use with defer:
//
//	defer logger.Elapsed(log, "render", time.Now())
func Elapsed(l interface{ Debugf(string, ...any) }, what string, start time.Time) {
	l.Debugf("%s took %s", what, time.Since(start))
}
