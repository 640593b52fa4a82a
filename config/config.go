package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type R2Config struct {
	AccountID       string `env:"ACCOUNT_ID"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	BucketName      string `env:"BUCKET_NAME"`
	Endpoint        string `env:"ENDPOINT"`
}

type NATSConfig struct {
	URL           string        `env:"URL" envDefault:"nats://127.0.0.1:4222"`
	Subject       string        `env:"SUBJECT" envDefault:"tournament.audit"`
	ReconnectWait time.Duration `env:"RECONNECT_WAIT" envDefault:"2s"`
}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL   string        `env:"DATABASE_URL,required,notEmpty"`
	ServerPort    int           `env:"SERVER_PORT" envDefault:"8080"`
	DBPingTimeout time.Duration `env:"DB_PING_TIMEOUT" envDefault:"5s"`
	RunMigrations bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogEnv   string `env:"LOG_ENV" envDefault:"prod"`

	StaticDir string `env:"STATIC_DIR" envDefault:"./public"`

	// local | r2
	DefaultImagesSource string   `env:"DEFAULT_IMAGES_SOURCE" envDefault:"local"`
	DefaultImagesDir    string   `env:"DEFAULT_IMAGES_DIR" envDefault:"./public/images"`
	R2                  R2Config `envPrefix:"R2_"`

	// db | nats | log
	AuditSink   string     `env:"AUDIT_SINK" envDefault:"db"`
	AuditBuffer int        `env:"AUDIT_BUFFER" envDefault:"256"`
	NATS        NATSConfig `envPrefix:"NATS_"`
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort))
	}
	switch c.DefaultImagesSource {
	case "local":
		if c.DefaultImagesDir == "" {
			errs = append(errs, errors.New("DEFAULT_IMAGES_DIR is required for local images source"))
		}
	case "r2":
		if c.R2.AccountID == "" && c.R2.Endpoint == "" {
			errs = append(errs, errors.New("R2_ACCOUNT_ID or R2_ENDPOINT is required for r2 images source"))
		}
		if c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" || c.R2.BucketName == "" {
			errs = append(errs, errors.New("R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required for r2 images source"))
		}
	default:
		errs = append(errs, fmt.Errorf("DEFAULT_IMAGES_SOURCE must be local or r2, got %q", c.DefaultImagesSource))
	}
	switch c.AuditSink {
	case "db", "log":
	case "nats":
		if c.NATS.URL == "" || c.NATS.Subject == "" {
			errs = append(errs, errors.New("NATS_URL and NATS_SUBJECT are required for nats audit sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUDIT_SINK must be db, nats or log, got %q", c.AuditSink))
	}
	if c.AuditBuffer <= 0 {
		errs = append(errs, fmt.Errorf("AUDIT_BUFFER must be positive, got %d", c.AuditBuffer))
	}
	return errors.Join(errs...)
}
