package models

import (
	"time"

	"github.com/google/uuid"
)

type Competition struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Organizer   *string   `json:"organizer,omitempty" db:"organizer"`
	StartDate   Date      `json:"start_date" db:"start_date"`
	EndDate     Date      `json:"end_date" db:"end_date"`
	Logo        *string   `json:"logo,omitempty" db:"logo"`
	SecondLogo  *string   `json:"second_logo,omitempty" db:"second_logo"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
