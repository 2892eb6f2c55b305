// Package logging wraps a process-wide zerolog logger.
//
// Call Init once from main; until then the logger writes JSON at info level to stderr.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string
	Format string
	Output io.Writer
}

var (
	logger zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	configure(Config{})
}

func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	configure(cfg)
}

func configure(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}
	logger = zerolog.New(output).With().Timestamp().Logger()
}

func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger swaps the global logger, mostly for tests capturing output.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// With returns a child logger builder, e.g. logging.With().Str("component", "scheduler").Logger().
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With()
}

func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Debug()
}

func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Info()
}

func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Warn()
}

func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Error()
}

func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Fatal()
}

// Writer adapts the global logger to an io.Writer so libraries that only accept
// a *log.Logger (gorm) still end up in structured output.
func Writer(level zerolog.Level) io.Writer {
	return levelWriter{level: level}
}

type levelWriter struct {
	level zerolog.Level
}

func (writer levelWriter) Write(p []byte) (int, error) {
	message := strings.TrimSpace(string(p))
	if message != "" {
		current := Logger()
		current.WithLevel(writer.level).Msg(message)
	}
	return len(p), nil
}
