package services

import (
	"careerpath-backend/internal/chatbot"
	"careerpath-backend/internal/models"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Chat service errors
var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message content is required")
	ErrTooManySessions = errors.New("too many active chat sessions")
)

// ChatService keeps the in-memory registry of chat widget sessions.
// Sessions are never persisted; idle ones are swept after the TTL.
type ChatService struct {
	replier     chatbot.Replier
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*chatbot.Session
}

// NewChatService creates a ChatService. A ttl of zero disables sweeping.
func NewChatService(replier chatbot.Replier, ttl time.Duration) *ChatService {
	return &ChatService{
		replier:  replier,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*chatbot.Session),
	}
}

// mapSnapshotToResponse converts a session snapshot to the API DTO.
func mapSnapshotToResponse(snap chatbot.Snapshot) *models.ChatSessionResponse {
	return &models.ChatSessionResponse{
		ID:       snap.ID,
		IsOpen:   snap.IsOpen,
		IsTyping: snap.IsTyping,
		Messages: snap.Messages,
	}
}

// SetMaxSessions caps the number of live sessions. Zero means no cap.
func (s *ChatService) SetMaxSessions(n int) {
	s.mu.Lock()
	s.maxSessions = n
	s.mu.Unlock()
}

// CreateSession starts a closed, empty session. When the registry is full,
// idle sessions are swept first; if none can go, ErrTooManySessions is returned.
func (s *ChatService) CreateSession() (*models.ChatSessionResponse, error) {
	s.mu.Lock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.sweepLocked()
		if len(s.sessions) >= s.maxSessions {
			s.mu.Unlock()
			log.Printf("WARN [ChatService] Session limit %d reached; refusing new session", s.maxSessions)
			return nil, ErrTooManySessions
		}
	}
	sess := chatbot.NewSession(s.replier)
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	log.Printf("[ChatService] Created chat session %s", sess.ID)
	return mapSnapshotToResponse(sess.Snapshot()), nil
}

// Session looks up a live session.
func (s *ChatService) Session(id uuid.UUID) (*chatbot.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *ChatService) GetSession(id uuid.UUID) (*models.ChatSessionResponse, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	return mapSnapshotToResponse(sess.Snapshot()), nil
}

// OpenSession shows the widget, greeting the user if the log is empty.
func (s *ChatService) OpenSession(id uuid.UUID) (*models.ChatSessionResponse, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	sess.Open()
	return mapSnapshotToResponse(sess.Snapshot()), nil
}

func (s *ChatService) CloseSession(id uuid.UUID) (*models.ChatSessionResponse, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	sess.Close()
	return mapSnapshotToResponse(sess.Snapshot()), nil
}

// ClearSession empties the log. Any reply still pending is dropped.
func (s *ChatService) ClearSession(id uuid.UUID) (*models.ChatSessionResponse, error) {
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	sess.Clear()
	return mapSnapshotToResponse(sess.Snapshot()), nil
}

// SendMessage posts trimmed content and blocks until the bot has answered.
// The reply is not tied to ctx: a caller that goes away still leaves the
// real answer in the log.
func (s *ChatService) SendMessage(ctx context.Context, id uuid.UUID, content string) (*models.SendChatMessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	sess, err := s.Session(id)
	if err != nil {
		return nil, err
	}
	res := sess.Send(context.WithoutCancel(ctx), content)
	return &models.SendChatMessageResponse{
		UserMessage: res.User,
		BotMessage:  res.Bot,
		Discarded:   res.Discarded,
	}, nil
}

func (s *ChatService) DeleteSession(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (s *ChatService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *ChatService) sweepLocked() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.IdleSince().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *ChatService) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("[ChatService] Swept %d idle chat session(s)", n)
			}
		}
	}
}

// SessionCount reports how many sessions are live.
func (s *ChatService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
