package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger provides component-tagged structured logging
type Logger interface {
	Info(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Debug(component, message string, fields map[string]interface{})
}

// Config selects the output format and verbosity
type Config struct {
	Level   string
	UseJSON bool
	Output  io.Writer
}

// ConfigFromEnv reads TG_LOG_LEVEL and TG_JSON_LOGS
func ConfigFromEnv() Config {
	return Config{
		Level:   os.Getenv("TG_LOG_LEVEL"),
		UseJSON: strings.EqualFold(os.Getenv("TG_JSON_LOGS"), "true"),
		Output:  os.Stdout,
	}
}

func New(cfg Config) Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	if cfg.UseJSON {
		return NewZerolog(out, level)
	}
	return NewZerolog(zerolog.ConsoleWriter{Out: out}, level)
}

// NoOpLogger discards everything
type NoOpLogger struct{}

func (NoOpLogger) Info(component, message string, fields map[string]interface{})    {}
func (NoOpLogger) Error(component string, err error, fields map[string]interface{}) {}
func (NoOpLogger) Warning(component, message string, fields map[string]interface{}) {}
func (NoOpLogger) Debug(component, message string, fields map[string]interface{})   {}
