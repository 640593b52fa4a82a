package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal - одна строка на один гол; количества нет.
type Goal struct {
	ID        uuid.UUID `json:"id" db:"id"`
	MatchID   uuid.UUID `json:"match_id" db:"match_id"`
	PlayerID  uuid.UUID `json:"player_id" db:"player_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Sanction struct {
	ID             uuid.UUID `json:"id" db:"id"`
	PlayerID       uuid.UUID `json:"player_id" db:"player_id"`
	SanctionTypeID uuid.UUID `json:"sanction_type_id" db:"sanction_type_id"`
	MatchID        uuid.UUID `json:"match_id" db:"match_id"`
	Active         bool      `json:"active" db:"active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// SanctionRow - плоская денормализованная строка санкции для группировки в приложении.
type SanctionRow struct {
	SanctionID   uuid.UUID
	MatchID      uuid.UUID
	PlayerID     uuid.UUID
	PlayerName   string
	PlayerNumber *string
	TeamID       uuid.UUID
	TeamName     string
	TeamLogo     *string
}
