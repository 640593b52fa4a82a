// Package auditlog доставляет записи аудита в хранилище без ожидания со стороны запроса.
package auditlog

import (
	"context"
	"sync"
	"time"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
	"github.com/rs/zerolog"
)

// Sink принимает запись и сразу возвращается. Ошибки доставки только логируются.
type Sink interface {
	Record(entry models.Log)
	Close() error
}

const (
	DefaultBuffer = 256
	writeTimeout  = 5 * time.Second
)

// DBSink пишет записи в таблицу logs из одной фоновой горутины.
type DBSink struct {
	repo    repositories.LogRepository
	entries chan models.Log
	log     zerolog.Logger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
}

func NewDBSink(repo repositories.LogRepository, buffer int, logger zerolog.Logger) *DBSink {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	s := &DBSink{
		repo:    repo,
		entries: make(chan models.Log, buffer),
		log:     logger.With().Str("component", "audit_db_sink").Logger(),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *DBSink) Record(entry models.Log) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warn().Str("entity", entry.Entity).Str("method", entry.Method).Msg("audit sink closed, entry dropped")
		return
	}
	select {
	case s.entries <- entry:
	default:
		s.log.Warn().Str("entity", entry.Entity).Str("method", entry.Method).Msg("audit buffer full, entry dropped")
	}
}

func (s *DBSink) run() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := s.repo.Create(ctx, &entry); err != nil {
			s.log.Error().Err(err).Str("entity", entry.Entity).Str("method", entry.Method).Msg("failed to write audit entry")
		}
		cancel()
	}
}

// Close перестаёт принимать записи и дожидается записи уже принятых.
func (s *DBSink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.entries)
		s.mu.Unlock()
	})
	<-s.done
	return nil
}

// LogSink пишет записи только в zerolog. Используется, когда база не нужна (тесты, локальный запуск).
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{log: logger.With().Str("component", "audit").Logger()}
}

func (s *LogSink) Record(entry models.Log) {
	s.log.Info().
		Str("entity", entry.Entity).
		Str("method", entry.Method).
		Str("error", entry.Error).
		RawJSON("payload", payloadOrNull(entry.Payload)).
		Msg("audit")
}

func (s *LogSink) Close() error { return nil }

func payloadOrNull(p []byte) []byte {
	if len(p) == 0 {
		return []byte("null")
	}
	return p
}
