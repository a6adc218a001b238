package postgres

import (
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

// PostgreSQL error codes that mean "someone else created it first".
const (
	codeUniqueViolation = "23505"
	codeDuplicateObject = "42710"
	codeDuplicateTable  = "42P07"
	codeUndefinedTable  = "42P01"
)

// DBTX is the subset of *pgxpool.Pool the store uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

type PostgresStore struct {
	db DBTX

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}

const ensureExtension = `CREATE EXTENSION IF NOT EXISTS pgcrypto`

const ensureConsultationsTable = `
CREATE TABLE IF NOT EXISTS consultations (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    full_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    preferred_mode TEXT NOT NULL,
    preferred_date DATE NOT NULL,
    concerns TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureConsultationSchema creates the pgcrypto extension and consultations table if absent.
// Once it has succeeded the statements are not issued again for the lifetime of the store;
// a failure leaves the flag unset so the next insert retries.
func (s *PostgresStore) EnsureConsultationSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}

	for _, stmt := range []string{ensureExtension, ensureConsultationsTable} {
		if _, err := s.db.Exec(ctx, stmt); err != nil && !isAlreadyExists(err) {
			log.Printf("ERROR [PostgresStore] EnsureConsultationSchema: %v", err)
			return fmt.Errorf("database error ensuring consultations schema: %w", err)
		}
	}

	s.schemaReady = true
	log.Println("[PostgresStore] EnsureConsultationSchema: consultations table ready")
	return nil
}

// isAlreadyExists reports whether err is a lost create-if-absent race with another process.
func isAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeUniqueViolation, codeDuplicateObject, codeDuplicateTable:
		return true
	}
	return false
}

const createConsultation = `-- name: CreateConsultation :one
INSERT INTO consultations (full_name, email, phone, preferred_mode, preferred_date, concerns)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text;
`

// CreateConsultation inserts one consultation row and returns its generated UUID.
func (s *PostgresStore) CreateConsultation(ctx context.Context, arg store.CreateConsultationParams) (string, error) {
	var id string
	err := s.db.QueryRow(ctx, createConsultation,
		arg.FullName,
		arg.Email,
		arg.Phone,
		arg.PreferredMode,
		arg.PreferredDate,
		arg.Concerns,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			log.Printf("ERROR [PostgresStore] CreateConsultation: PostgreSQL error executing insert: Code=%s, Message=%s, Detail=%s", pgErr.Code, pgErr.Message, pgErr.Detail)
		} else {
			log.Printf("ERROR [PostgresStore] CreateConsultation: Failed to execute insert: %v", err)
		}
		return "", fmt.Errorf("database error creating consultation: %w", err)
	}

	log.Printf("[PostgresStore] CreateConsultation: Successfully inserted consultation ID %s", id)
	return id, nil
}

const listConsultations = `-- name: ListConsultations :many
SELECT id::text, full_name, email, phone, preferred_mode, preferred_date, concerns, created_at
FROM consultations
ORDER BY created_at DESC
LIMIT $1;
`

// ListConsultations returns the newest consultations first, capped at limit.
func (s *PostgresStore) ListConsultations(ctx context.Context, limit int) ([]models.Consultation, error) {
	rows, err := s.db.Query(ctx, listConsultations, store.ClampLimit(limit))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable {
			// Nothing has been booked yet; the table is created by the first insert.
			return []models.Consultation{}, nil
		}
		return nil, fmt.Errorf("error querying consultations: %w", err)
	}
	defer rows.Close()

	items := []models.Consultation{}
	for rows.Next() {
		var i models.Consultation
		if err := rows.Scan(
			&i.ID,
			&i.FullName,
			&i.Email,
			&i.Phone,
			&i.PreferredMode,
			&i.PreferredDate,
			&i.Concerns,
			&i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning consultation row: %w", err)
		}
		items = append(items, i)
	}

	if err = rows.Err(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable {
			return []models.Consultation{}, nil
		}
		return nil, fmt.Errorf("error iterating consultation rows: %w", err)
	}

	return items, nil
}
