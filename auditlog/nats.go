package auditlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

type NATSConfig struct {
	URL           string
	Subject       string
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		Subject:       "tournament.audit",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// NATSSink публикует записи аудита в subject; кто их сохраняет, решает подписчик.
type NATSSink struct {
	nc      *nats.Conn
	subject string
	log     zerolog.Logger
}

func NewNATSSink(cfg NATSConfig, logger zerolog.Logger) (*NATSSink, error) {
	l := logger.With().Str("component", "audit_nats_sink").Logger()
	opts := []nats.Option{
		nats.Name("tournament-admin-audit"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			l.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			l.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			l.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return newNATSSink(nc, cfg.Subject, l), nil
}

func newNATSSink(nc *nats.Conn, subject string, logger zerolog.Logger) *NATSSink {
	return &NATSSink{nc: nc, subject: subject, log: logger}
}

// Record не ждёт сервер: nats.Conn.Publish только кладёт сообщение в буфер клиента.
func (s *NATSSink) Record(entry models.Log) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		s.log.Error().Err(err).Str("entity", entry.Entity).Msg("failed to marshal audit entry")
		return
	}
	if err := s.nc.Publish(s.subject, data); err != nil {
		s.log.Error().Err(err).Str("entity", entry.Entity).Str("method", entry.Method).Msg("failed to publish audit entry")
	}
}

// Close сбрасывает буфер клиента и закрывает соединение.
func (s *NATSSink) Close() error {
	defer s.nc.Close()
	if err := s.nc.FlushTimeout(writeTimeout); err != nil {
		return fmt.Errorf("flush NATS: %w", err)
	}
	return nil
}
