package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/repositories"
)

// LogService только читает журнал аудита; запись идёт через auditlog.Sink.
type LogService interface {
	GetAllLogs(ctx context.Context) ([]models.Log, error)
}

type logService struct {
	repo repositories.LogRepository
}

func NewLogService(repo repositories.LogRepository) LogService {
	return &logService{repo: repo}
}

func (s *logService) GetAllLogs(ctx context.Context) ([]models.Log, error) {
	logs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}
	return logs, nil
}
