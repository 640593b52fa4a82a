package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Password  string     `json:"-" db:"password"`
	RoleID    *uuid.UUID `json:"role_id,omitempty" db:"role_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	Role *Role `json:"role,omitempty" db:"-"`
}

// Log - строка аудита; бизнес-логика её никогда не читает.
type Log struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Entity    string          `json:"entity" db:"entity"`
	Method    string          `json:"method" db:"method"`
	Error     string          `json:"error" db:"error"`
	Payload   json.RawMessage `json:"payload,omitempty" db:"payload"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
