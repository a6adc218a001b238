// Package memory is an in-process consultation store. Data is lost on restart;
// it backs tests and `DATABASE_URL=memory://` demos.
package memory

import (
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/store"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	rows  []models.Consultation
	ready bool
	now   func() time.Time

	// Fail, when set, is returned by every operation. Tests use it to simulate outages.
	Fail error
}

func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) EnsureConsultationSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.ready = true
	return nil
}

func (s *Store) CreateConsultation(ctx context.Context, arg store.CreateConsultationParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return "", s.Fail
	}
	row := models.Consultation{
		ID:            uuid.NewString(),
		FullName:      arg.FullName,
		Email:         arg.Email,
		Phone:         arg.Phone,
		PreferredMode: arg.PreferredMode,
		PreferredDate: arg.PreferredDate,
		Concerns:      arg.Concerns,
		CreatedAt:     s.now().UTC(),
	}
	s.rows = append(s.rows, row)
	return row.ID, nil
}

// ListConsultations walks the append-only slice backwards, so insertion order decides ties.
func (s *Store) ListConsultations(ctx context.Context, limit int) ([]models.Consultation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	limit = store.ClampLimit(limit)
	out := make([]models.Consultation, 0, min(limit, len(s.rows)))
	for i := len(s.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.rows[i])
	}
	return out, nil
}

// SchemaEnsured reports whether EnsureConsultationSchema has succeeded.
func (s *Store) SchemaEnsured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Len returns the number of stored rows.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func (s *Store) Close() {}
