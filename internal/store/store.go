package store

import (
	"careerpath-backend/internal/models"
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// MaxConsultationList caps every consultation listing.
const MaxConsultationList = 200

// CreateConsultationParams contains parameters for inserting a consultation.
// The ID and creation timestamp are assigned by the store.
type CreateConsultationParams struct {
	FullName      string
	Email         string
	Phone         string
	PreferredMode string
	PreferredDate time.Time
	Concerns      string
}

// Store defines the interface for consultation persistence.
// This allows for mocking in tests and switching between Postgres, SQLite and memory backends.
type Store interface {
	// EnsureConsultationSchema creates the consultations table if absent.
	// Safe to call concurrently and repeatedly.
	EnsureConsultationSchema(ctx context.Context) error

	// CreateConsultation inserts one row and returns its generated ID.
	CreateConsultation(ctx context.Context, arg CreateConsultationParams) (string, error)

	// ListConsultations returns up to limit rows, newest first.
	// A missing table yields an empty list.
	ListConsultations(ctx context.Context, limit int) ([]models.Consultation, error)

	Close()
}

// ClampLimit bounds a requested listing size to (0, MaxConsultationList].
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxConsultationList {
		return MaxConsultationList
	}
	return limit
}
