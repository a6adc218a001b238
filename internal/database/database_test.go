package database

import (
	"careerpath-backend/internal/store/memory"
	"careerpath-backend/internal/store/sqlite"
	"context"
	"testing"
)

func TestOpenEmptyURLIsUnconfigured(t *testing.T) {
	s, err := Open(context.Background(), "  ")
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil store, got %T", s)
	}
}

func TestOpenSelectsBackendByScheme(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, "memory://")
	if err != nil {
		t.Fatalf("Open memory err: %v", err)
	}
	if _, ok := s.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}

	s, err = Open(ctx, "sqlite::memory:")
	if err != nil {
		t.Fatalf("Open sqlite err: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*sqlite.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", s)
	}
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	if _, err := Open(context.Background(), "mysql://user@host/db"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	if _, err := Open(context.Background(), "sqlite://"); err == nil {
		t.Fatal("expected error for sqlite URL without a path")
	}
}
