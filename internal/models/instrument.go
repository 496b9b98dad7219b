package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxActiveInstruments is the most instruments an account may have active at
// once. Creation of another active instrument is refused at this count.
const MaxActiveInstruments = 5

// Instrument represents a payment card belonging to exactly one account
type Instrument struct {
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	Number         string    `db:"number" json:"number"`
	Holder         string    `db:"holder" json:"holder"`
	ExpirationDate Date      `db:"expiration_date" json:"expiration_date"`
	Active         bool      `db:"active" json:"active"`
	ID             uuid.UUID `db:"id" json:"id"`
	AccountID      uuid.UUID `db:"account_id" json:"account_id"`
}

// InstrumentRequest carries the editable instrument fields for create and
// update. The owner comes from the URL, never from the body.
type InstrumentRequest struct {
	Number         string `json:"number"`
	Holder         string `json:"holder"`
	ExpirationDate *Date  `json:"expiration_date"`
	Active         *bool  `json:"active"`
}
