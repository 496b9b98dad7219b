// Package models defines the domain entities and wire types for the accounts API.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a person that owns payment instruments
type Account struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Name      string    `db:"name" json:"name"`
	Surname   string    `db:"surname" json:"surname"`
	Email     string    `db:"email" json:"email"`
	BirthDate *Date     `db:"birth_date" json:"birth_date,omitempty"`
	Active    bool      `db:"active" json:"active"`
	ID        uuid.UUID `db:"id" json:"id"`
}

// AccountRequest carries the editable account fields for create and update.
//
// Active is a pointer so a missing field can be told apart from false.
type AccountRequest struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	BirthDate *Date  `json:"birth_date,omitempty"`
	Active    *bool  `json:"active"`
}

// AccountFilter holds the optional listing filters. A nil field means no
// constraint on that column.
type AccountFilter struct {
	Name    *string
	Surname *string
}
