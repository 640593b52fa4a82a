package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-admin/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = repositories.ErrNotFound

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrReferenceNotFound  = errors.New("referenced entity not found")
	ErrEmptyBatch         = errors.New("batch must contain at least one element")

	// Ошибки хранилища, которые сервисы пропускают наверх как есть
	ErrConflict  = repositories.ErrConflict
	ErrReference = repositories.ErrReference

	// Ошибки, специфичные для сущностей. Это те же значения, что и в repositories,
	// поэтому errors.Is работает на обоих уровнях.
	ErrTeamNotFound         = repositories.ErrTeamNotFound
	ErrPlayerNotFound       = repositories.ErrPlayerNotFound
	ErrCompetitionNotFound  = repositories.ErrCompetitionNotFound
	ErrRoundNotFound        = repositories.ErrRoundNotFound
	ErrFieldNotFound        = repositories.ErrFieldNotFound
	ErrStateNotFound        = repositories.ErrStateNotFound
	ErrMatchNotFound        = repositories.ErrMatchNotFound
	ErrScheduleNotFound     = repositories.ErrScheduleNotFound
	ErrResultNotFound       = repositories.ErrResultNotFound
	ErrGoalNotFound         = repositories.ErrGoalNotFound
	ErrSanctionNotFound     = repositories.ErrSanctionNotFound
	ErrSanctionTypeNotFound = repositories.ErrSanctionTypeNotFound
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError собирает ошибки по полям и разворачивается в ErrValidationFailed.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func newValidationError(fields ...FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// FieldErrors достаёт ошибки полей из err, если это ValidationError.
func FieldErrors(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// ReferenceError - ссылка из запроса (код раунда, имя поля, id команды...) не нашлась.
type ReferenceError struct {
	Entity string
	Key    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

func (e *ReferenceError) Unwrap() error { return ErrReferenceNotFound }

func missingRef(entity, key string) error {
	return &ReferenceError{Entity: entity, Key: key}
}

// atIndex добавляет к ошибке позицию элемента в пакетном запросе.
func atIndex(i int, err error) error {
	return fmt.Errorf("item %d: %w", i, err)
}
