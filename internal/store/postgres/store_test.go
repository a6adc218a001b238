package postgres

import (
	"careerpath-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB answers Exec from a queue of errors and fails every Query with queryErr.
type fakeDB struct {
	execErrs  []error
	execCalls int
	queryErr  error
	newID     string
	inserted  []any
}

func (f *fakeDB) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	f.execCalls++
	if len(f.execErrs) == 0 {
		return pgconn.CommandTag{}, nil
	}
	err := f.execErrs[0]
	f.execErrs = f.execErrs[1:]
	return pgconn.CommandTag{}, err
}

func (f *fakeDB) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, f.queryErr
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.inserted = args
	return idRow(f.newID)
}

func (f *fakeDB) Close() {}

type idRow string

func (r idRow) Scan(dest ...any) error {
	*dest[0].(*string) = string(r)
	return nil
}

func TestIsAlreadyExists(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation on pg_type", &pgconn.PgError{Code: codeUniqueViolation}, true},
		{"duplicate extension", &pgconn.PgError{Code: codeDuplicateObject}, true},
		{"duplicate table", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: codeDuplicateTable}), true},
		{"permission denied", &pgconn.PgError{Code: "42501"}, false},
		{"plain error", errors.New("connection refused"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isAlreadyExists(tc.err); got != tc.want {
				t.Fatalf("isAlreadyExists = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestEnsureSchemaRetriesThenCaches(t *testing.T) {
	db := &fakeDB{execErrs: []error{&pgconn.PgError{Code: "42501", Message: "permission denied"}}}
	s := NewPostgresStore(db)
	ctx := context.Background()

	if err := s.EnsureConsultationSchema(ctx); err == nil {
		t.Fatal("expected first ensure to fail")
	}
	if db.execCalls != 1 {
		t.Fatalf("expected to stop after the failed statement, got %d calls", db.execCalls)
	}

	if err := s.EnsureConsultationSchema(ctx); err != nil {
		t.Fatalf("retry err: %v", err)
	}
	if db.execCalls != 3 {
		t.Fatalf("expected both statements on retry, got %d calls", db.execCalls)
	}

	if err := s.EnsureConsultationSchema(ctx); err != nil {
		t.Fatalf("cached ensure err: %v", err)
	}
	if db.execCalls != 3 {
		t.Fatalf("expected no statements once ready, got %d calls", db.execCalls)
	}
}

func TestEnsureSchemaToleratesConcurrentCreate(t *testing.T) {
	db := &fakeDB{execErrs: []error{
		&pgconn.PgError{Code: codeDuplicateObject},
		&pgconn.PgError{Code: codeUniqueViolation},
	}}
	if err := NewPostgresStore(db).EnsureConsultationSchema(context.Background()); err != nil {
		t.Fatalf("expected lost create race to be ignored, got %v", err)
	}
}

func TestListWithoutTableIsEmpty(t *testing.T) {
	db := &fakeDB{queryErr: &pgconn.PgError{Code: codeUndefinedTable, Message: `relation "consultations" does not exist`}}

	rows, err := NewPostgresStore(db).ListConsultations(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListConsultations err: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestListPropagatesOtherErrors(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("connection refused")}

	if _, err := NewPostgresStore(db).ListConsultations(context.Background(), 0); err == nil {
		t.Fatal("expected query error")
	}
}

func TestCreateReturnsGeneratedID(t *testing.T) {
	db := &fakeDB{newID: "0b6c3a52-0000-4000-8000-000000000001"}
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	id, err := NewPostgresStore(db).CreateConsultation(context.Background(), store.CreateConsultationParams{
		FullName:      "Jane Doe",
		Email:         "jane@x.com",
		Phone:         "+15551234567",
		PreferredMode: "video",
		PreferredDate: date,
		Concerns:      "Feeling anxious lately",
	})
	if err != nil {
		t.Fatalf("CreateConsultation err: %v", err)
	}
	if id != db.newID {
		t.Fatalf("expected id %s, got %s", db.newID, id)
	}
	if len(db.inserted) != 6 || db.inserted[0] != "Jane Doe" || db.inserted[4] != date {
		t.Fatalf("unexpected insert args %v", db.inserted)
	}
}
