package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Config struct {
	Level       string `validate:"oneof=debug info warn error"`
	Env         string `validate:"oneof=dev prod"`
	ServiceName string `validate:"required"`
	TimeField   string
	WithCaller  bool

	// Output по умолчанию os.Stdout для prod и os.Stderr для dev
	Output io.Writer `validate:"-"`
}

func (c *Config) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.ServiceName == "" {
		c.ServiceName = "tournament-admin"
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
}

// New собирает логгер процесса: JSON в prod, console writer в dev.
func New(cfg *Config) (zerolog.Logger, error) {
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	var out io.Writer
	switch cfg.Env {
	case "dev":
		w := cfg.Output
		if w == nil {
			w = os.Stderr
		}
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	default:
		out = cfg.Output
		if out == nil {
			out = os.Stdout
		}
	}

	logger := zerolog.New(out).Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Env).
		Logger()
	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}
	return logger, nil
}
