package models

import (
	"time"
)

// Consultation represents one persisted consultation request.
// Rows are append-only: there is no update or delete path.
type Consultation struct {
	ID            string    `db:"id"`
	FullName      string    `db:"full_name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	PreferredMode string    `db:"preferred_mode"`
	PreferredDate time.Time `db:"preferred_date"`
	Concerns      string    `db:"concerns"`
	CreatedAt     time.Time `db:"created_at"`
}

// DateLayout is the wire and storage format of PreferredDate.
const DateLayout = "2006-01-02"
