package models

import (
	"time"

	"github.com/google/uuid"
)

type Match struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	HomeTeamID    uuid.UUID     `json:"home_team_id" db:"home_team_id"`
	AwayTeamID    uuid.UUID     `json:"away_team_id" db:"away_team_id"`
	CompetitionID uuid.UUID     `json:"competition_id" db:"competition_id"`
	RoundID       *uuid.UUID    `json:"round_id" db:"round_id"`
	MatchDate     LocalDateTime `json:"match_date" db:"match_date"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`

	Schedules []Schedule `json:"schedules,omitempty" db:"-"`
	Results   []Result   `json:"results,omitempty" db:"-"`
}

// Schedule привязывает матч к полю, состоянию и времени начала ("HH:MM").
// RoundID матча и FieldID расписания обнуляются при удалении раунда/поля.
type Schedule struct {
	ID        uuid.UUID `json:"id" db:"id"`
	MatchID   uuid.UUID `json:"match_id" db:"match_id"`
	FieldID   *uuid.UUID `json:"field_id" db:"field_id"`
	StateID   uuid.UUID `json:"state_id" db:"state_id"`
	StartTime string    `json:"start_time" db:"start_time"`
}

type Result struct {
	ID              uuid.UUID `json:"id" db:"id"`
	MatchID         uuid.UUID `json:"match_id" db:"match_id"`
	HomeScore       int       `json:"home_score" db:"home_score"`
	AwayScore       int       `json:"away_score" db:"away_score"`
	HomeGlobalScore int       `json:"home_global_score" db:"home_global_score"`
	AwayGlobalScore int       `json:"away_global_score" db:"away_global_score"`
}
