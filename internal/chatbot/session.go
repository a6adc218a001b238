package chatbot

import (
	"careerpath-backend/internal/models"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// conversation is one generation of a session's message log.
// Clear swaps in a fresh conversation instead of resetting this one, so a
// reply computed against an older generation can be recognised and dropped.
type conversation struct {
	messages []models.ChatMessage
	nextID   int
}

func (c *conversation) append(sender models.Sender, content string, at time.Time) models.ChatMessage {
	msg := models.ChatMessage{
		ID:        fmt.Sprintf("msg-%d", c.nextID),
		Content:   content,
		Sender:    sender,
		Timestamp: at,
		Type:      models.MessageKindText,
	}
	c.nextID++
	c.messages = append(c.messages, msg)
	return msg
}

// SendResult describes one user/bot exchange.
type SendResult struct {
	User models.ChatMessage
	Bot  *models.ChatMessage
	// Discarded is set when Clear ran while the reply was pending;
	// the reply was dropped rather than written into the fresh log.
	Discarded bool
}

// Session is one open chat widget: visibility flag plus an append-only log.
type Session struct {
	ID uuid.UUID

	replier Replier
	now     func() time.Time

	mu         sync.Mutex
	open       bool
	typing     bool
	log        *conversation
	lastActive time.Time

	// sendMu serializes Send so replies land in send order regardless of
	// each call's randomized delay.
	sendMu sync.Mutex
}

// NewSession creates a closed session with an empty log.
func NewSession(replier Replier) *Session {
	return newSessionWithClock(replier, time.Now)
}

func newSessionWithClock(replier Replier, now func() time.Time) *Session {
	return &Session{
		ID:         uuid.New(),
		replier:    replier,
		now:        now,
		log:        &conversation{},
		lastActive: now(),
	}
}

// Open shows the widget. When the log is empty the welcome message is appended
// and returned; otherwise nil.
func (s *Session) Open() *models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.lastActive = s.now()
	if len(s.log.messages) > 0 {
		return nil
	}
	welcome := s.log.append(models.SenderBot, WelcomeMessage, s.lastActive)
	return &welcome
}

// Close hides the widget. The log is kept.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.lastActive = s.now()
}

// Clear replaces the log with a fresh one, restarting message IDs at msg-0.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = &conversation{}
	s.lastActive = s.now()
}

// Send appends the user's message, waits for the bot, then appends the reply.
// A replier error is masked with ApologyMessage; Send itself never fails.
func (s *Session) Send(ctx context.Context, text string) SendResult {
	return s.SendNotify(ctx, text, nil)
}

// SendNotify is Send with a hook called once the user's message is in the log,
// before the bot starts thinking.
func (s *Session) SendNotify(ctx context.Context, text string, accepted func(models.ChatMessage)) SendResult {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	gen := s.log
	userMsg := gen.append(models.SenderUser, text, s.now())
	s.typing = true
	s.lastActive = s.now()
	s.mu.Unlock()

	if accepted != nil {
		accepted(userMsg)
	}

	reply, err := s.replier.Reply(ctx, text)
	if err != nil {
		log.Printf("WARN [ChatSession %s] reply failed, sending apology: %v", s.ID, err)
		reply = ApologyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = false
	s.lastActive = s.now()
	if s.log != gen {
		log.Printf("[ChatSession %s] log cleared while reply was pending; discarding reply to %s", s.ID, userMsg.ID)
		return SendResult{User: userMsg, Discarded: true}
	}
	botMsg := gen.append(models.SenderBot, reply, s.lastActive)
	return SendResult{User: userMsg, Bot: &botMsg}
}

// Snapshot is a copy of the session state safe to hand to renderers.
type Snapshot struct {
	ID       uuid.UUID
	IsOpen   bool
	IsTyping bool
	Messages []models.ChatMessage
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]models.ChatMessage, len(s.log.messages))
	copy(msgs, s.log.messages)
	return Snapshot{ID: s.ID, IsOpen: s.open, IsTyping: s.typing, Messages: msgs}
}

// IdleSince reports the last time the session was touched.
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
