package sqlite

import (
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/store"
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Compile-time check to ensure SQLiteStore implements store.Store
var _ store.Store = (*SQLiteStore)(nil)

// createdAtLayout is fixed width so that text order in ORDER BY matches time order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps consultations in a local SQLite file, for development and single-node deployments.
// SQLite has no UUID default, so IDs and timestamps are assigned here.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time

	schemaMu    sync.Mutex
	schemaReady bool
}

// Open opens (or creates) the database at path. Use ":memory:" for a throwaway store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One writer at a time; also keeps ":memory:" pointing at a single database.
	db.SetMaxOpenConns(1)
	return NewSQLiteStore(db), nil
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Printf("WARN [SQLiteStore] Close: %v", err)
	}
}

const ensureConsultationsTable = `
CREATE TABLE IF NOT EXISTS consultations (
    id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    preferred_mode TEXT NOT NULL,
    preferred_date TEXT NOT NULL,
    concerns TEXT NOT NULL,
    created_at TEXT NOT NULL
)`

// EnsureConsultationSchema creates the consultations table if absent.
func (s *SQLiteStore) EnsureConsultationSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, ensureConsultationsTable); err != nil {
		log.Printf("ERROR [SQLiteStore] EnsureConsultationSchema: %v", err)
		return fmt.Errorf("database error ensuring consultations schema: %w", err)
	}
	s.schemaReady = true
	log.Println("[SQLiteStore] EnsureConsultationSchema: consultations table ready")
	return nil
}

const createConsultation = `
INSERT INTO consultations (id, full_name, email, phone, preferred_mode, preferred_date, concerns, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// CreateConsultation inserts one consultation row and returns its generated UUID.
func (s *SQLiteStore) CreateConsultation(ctx context.Context, arg store.CreateConsultationParams) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, createConsultation,
		id,
		arg.FullName,
		arg.Email,
		arg.Phone,
		arg.PreferredMode,
		arg.PreferredDate.Format(models.DateLayout),
		arg.Concerns,
		s.now().UTC().Format(createdAtLayout),
	)
	if err != nil {
		log.Printf("ERROR [SQLiteStore] CreateConsultation: Failed to execute insert: %v", err)
		return "", fmt.Errorf("database error creating consultation: %w", err)
	}
	log.Printf("[SQLiteStore] CreateConsultation: Successfully inserted consultation ID %s", id)
	return id, nil
}

// rowid breaks ties between rows created within the same clock tick.
const listConsultations = `
SELECT id, full_name, email, phone, preferred_mode, preferred_date, concerns, created_at
FROM consultations
ORDER BY created_at DESC, rowid DESC
LIMIT ?`

// ListConsultations returns the newest consultations first, capped at limit.
func (s *SQLiteStore) ListConsultations(ctx context.Context, limit int) ([]models.Consultation, error) {
	rows, err := s.db.QueryContext(ctx, listConsultations, store.ClampLimit(limit))
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return []models.Consultation{}, nil
		}
		return nil, fmt.Errorf("error querying consultations: %w", err)
	}
	defer rows.Close()

	items := []models.Consultation{}
	for rows.Next() {
		var (
			i                  models.Consultation
			preferred, created string
		)
		if err := rows.Scan(
			&i.ID,
			&i.FullName,
			&i.Email,
			&i.Phone,
			&i.PreferredMode,
			&preferred,
			&i.Concerns,
			&created,
		); err != nil {
			return nil, fmt.Errorf("error scanning consultation row: %w", err)
		}
		if i.PreferredDate, err = time.Parse(models.DateLayout, preferred); err != nil {
			return nil, fmt.Errorf("invalid preferred_date %q for consultation %s: %w", preferred, i.ID, err)
		}
		if i.CreatedAt, err = time.Parse(createdAtLayout, created); err != nil {
			return nil, fmt.Errorf("invalid created_at %q for consultation %s: %w", created, i.ID, err)
		}
		items = append(items, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultation rows: %w", err)
	}
	return items, nil
}
