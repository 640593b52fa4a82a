package models

import (
	"time"

	"github.com/google/uuid"
)

// Player - игрок. Number хранится текстом, сортируется как число на стороне вызывающего.
type Player struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TeamID    uuid.UUID `json:"team_id" db:"team_id"`
	Name      string    `json:"name" db:"name"`
	Document  *string   `json:"document,omitempty" db:"document"`
	Birthdate *Date     `json:"birthdate,omitempty" db:"birthdate"`
	Number    *string   `json:"number,omitempty" db:"number"`
	Photo     *string   `json:"photo,omitempty" db:"photo"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
