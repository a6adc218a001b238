package services

import (
	"careerpath-backend/internal/chatbot"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type replierFunc func(ctx context.Context, text string) (string, error)

func (f replierFunc) Reply(ctx context.Context, text string) (string, error) { return f(ctx, text) }

func instantBot(t *testing.T) chatbot.Replier {
	t.Helper()
	c, err := chatbot.NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return chatbot.NewBot(c, nil)
}

func mustCreate(t *testing.T, svc *ChatService) uuid.UUID {
	t.Helper()
	sess, err := svc.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	return sess.ID
}

func TestChatSessionLifecycle(t *testing.T) {
	svc := NewChatService(instantBot(t), time.Hour)
	ctx := context.Background()

	created, err := svc.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if created.IsOpen || len(created.Messages) != 0 {
		t.Fatalf("expected closed empty session, got %+v", created)
	}

	opened, err := svc.OpenSession(created.ID)
	if err != nil || !opened.IsOpen || len(opened.Messages) != 1 || opened.Messages[0].Content != chatbot.WelcomeMessage {
		t.Fatalf("unexpected open result %+v, %v", opened, err)
	}

	res, err := svc.SendMessage(ctx, created.ID, "  What salary can I expect?  ")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if res.UserMessage.Content != "What salary can I expect?" || res.BotMessage == nil || res.Discarded {
		t.Fatalf("unexpected send result %+v", res)
	}

	cleared, err := svc.ClearSession(created.ID)
	if err != nil || len(cleared.Messages) != 0 {
		t.Fatalf("expected empty log after clear, got %+v, %v", cleared, err)
	}

	closed, err := svc.CloseSession(created.ID)
	if err != nil || closed.IsOpen {
		t.Fatalf("expected closed session, got %+v, %v", closed, err)
	}

	if err := svc.DeleteSession(created.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := svc.GetSession(created.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSendMessageRejectsBlankAndUnknown(t *testing.T) {
	svc := NewChatService(instantBot(t), 0)
	sess, err := svc.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := svc.SendMessage(context.Background(), sess.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := svc.SendMessage(context.Background(), uuid.New(), "hi"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.DeleteSession(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	svc := NewChatService(replierFunc(func(context.Context, string) (string, error) { return "ok", nil }), 30*time.Minute)
	mustCreate(t, svc)
	mustCreate(t, svc)

	if n := svc.Sweep(); n != 0 {
		t.Fatalf("expected nothing swept yet, got %d", n)
	}

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	if n := svc.Sweep(); n != 2 {
		t.Fatalf("expected 2 swept, got %d", n)
	}
	if svc.SessionCount() != 0 {
		t.Fatalf("expected empty registry, got %d", svc.SessionCount())
	}
}

func TestSweepDisabledWithoutTTL(t *testing.T) {
	svc := NewChatService(instantBot(t), 0)
	mustCreate(t, svc)
	svc.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	if n := svc.Sweep(); n != 0 || svc.SessionCount() != 1 {
		t.Fatalf("expected sweeping disabled, removed %d", n)
	}
}

func TestCreateSessionRespectsCap(t *testing.T) {
	svc := NewChatService(instantBot(t), 30*time.Minute)
	svc.SetMaxSessions(2)
	mustCreate(t, svc)
	mustCreate(t, svc)

	if _, err := svc.CreateSession(); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}
	if svc.SessionCount() != 2 {
		t.Fatalf("expected 2 sessions, got %d", svc.SessionCount())
	}

	// Once the existing sessions are idle past the TTL, a new one evicts them.
	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	mustCreate(t, svc)
	if svc.SessionCount() != 1 {
		t.Fatalf("expected idle sessions swept, got %d", svc.SessionCount())
	}
}
