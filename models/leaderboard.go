package models

import "github.com/google/uuid"

type ScorerEntry struct {
	TeamID       uuid.UUID `json:"team_id"`
	TeamName     string    `json:"team_name"`
	TeamLogo     *string   `json:"team_logo"`
	PlayerID     uuid.UUID `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	PlayerNumber *string   `json:"player_number"`
	GoalCount    int       `json:"goal_count"`
}

type SanctionEntry struct {
	TeamID         uuid.UUID   `json:"team_id"`
	TeamName       string      `json:"team_name"`
	TeamLogo       *string     `json:"team_logo"`
	PlayerID       uuid.UUID   `json:"player_id"`
	PlayerName     string      `json:"player_name"`
	PlayerNumber   *string     `json:"player_number"`
	SanctionsCount int         `json:"sanctions_count"`
	MatchIDs       []uuid.UUID `json:"match_ids"`
}
