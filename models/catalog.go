package models

import "github.com/google/uuid"

// Round - этап турнира; Code служит внешней ссылкой при создании матчей.
type Round struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Code string    `json:"code" db:"code"`
}

type Field struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Location *string   `json:"location,omitempty" db:"location"`
}

// State - метка жизненного цикла расписания, ищется по имени.
type State struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Color *string   `json:"color,omitempty" db:"color"`
}

const (
	StatePending  = "Pendiente"
	StatePlaying  = "En Juego"
	StateFinished = "Finalizado"
)

type SanctionType struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	Active      bool      `json:"active" db:"active"`
}
