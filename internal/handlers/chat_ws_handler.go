package handlers

import (
	"careerpath-backend/internal/chatbot"
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/services"
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
	wsSendQueue  = 16
)

// Inbound widget actions.
const (
	wsActionOpen  = "open"
	wsActionClose = "close"
	wsActionSend  = "send"
	wsActionClear = "clear"
)

// Outbound event types.
const (
	wsEventSnapshot = "snapshot"
	wsEventMessage  = "message"
	wsEventTyping   = "typing"
	wsEventCleared  = "cleared"
	wsEventError    = "error"
)

type wsInbound struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

type wsOutbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type typingEvent struct {
	IsTyping bool `json:"isTyping"`
}

// ChatWSHandler drives a chat session over a websocket so the widget sees
// the typing indicator and the reply as separate events.
type ChatWSHandler struct {
	chatService *services.ChatService
	upgrader    websocket.Upgrader
}

// NewChatWSHandler creates the handler. checkOrigin may be nil to allow any origin.
func NewChatWSHandler(chatService *services.ChatService, checkOrigin func(r *http.Request) bool) *ChatWSHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &ChatWSHandler{
		chatService: chatService,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// wsConn serialises writes; gorilla allows one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(eventType string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := c.conn.WriteJSON(wsOutbound{Type: eventType, Data: data}); err != nil {
		log.Printf("[ChatWS] write %s failed: %v", eventType, err)
	}
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

func snapshotEvent(sess *chatbot.Session) *models.ChatSessionResponse {
	snap := sess.Snapshot()
	return &models.ChatSessionResponse{ID: snap.ID, IsOpen: snap.IsOpen, IsTyping: snap.IsTyping, Messages: snap.Messages}
}

// RegisterRoutes mounts the websocket endpoint on r. Keep it outside any
// request timeout middleware.
func (h *ChatWSHandler) RegisterRoutes(r chi.Router) {
	r.Get("/chat/sessions/{sessionID}/ws", h.HandleChatWS)
}

// HandleChatWS handles GET /api/chat/sessions/{sessionID}/ws.
func (h *ChatWSHandler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	sess, err := h.chatService.Session(id)
	if err != nil {
		respondChatError(w, err)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ChatWS] upgrade failed: %v", err)
		return
	}
	defer raw.Close()
	conn := &wsConn{conn: raw}
	log.Printf("[ChatWS] connection opened for session %s", id)

	// Replies outlive the socket so the log stays consistent for REST readers.
	sendCtx := context.WithoutCancel(r.Context())
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	raw.SetReadDeadline(time.Now().Add(wsPongWait))
	raw.SetPongHandler(func(string) error {
		return raw.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go pingLoop(ctx, conn)

	conn.send(wsEventSnapshot, snapshotEvent(sess))

	// One worker keeps replies in the order messages were typed.
	sends := make(chan string, wsSendQueue)
	defer close(sends)
	go func() {
		for content := range sends {
			relaySend(sendCtx, conn, sess, content)
		}
	}()

	for {
		var msg wsInbound
		if err := raw.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ChatWS] read error for session %s: %v", id, err)
			}
			return
		}
		raw.SetReadDeadline(time.Now().Add(wsPongWait))

		switch msg.Type {
		case wsActionOpen:
			sess.Open()
			conn.send(wsEventSnapshot, snapshotEvent(sess))
		case wsActionClose:
			sess.Close()
			conn.send(wsEventSnapshot, snapshotEvent(sess))
		case wsActionClear:
			sess.Clear()
			conn.send(wsEventCleared, snapshotEvent(sess))
		case wsActionSend:
			content := strings.TrimSpace(msg.Content)
			if content == "" {
				conn.send(wsEventError, map[string]string{"message": "Message content is required"})
				continue
			}
			select {
			case sends <- content:
			default:
				conn.send(wsEventError, map[string]string{"message": "Too many pending messages"})
			}
		default:
			conn.send(wsEventError, map[string]string{"message": "unknown message type: " + msg.Type})
		}
	}
}

// relaySend runs one exchange, streaming the user echo, typing state and reply.
func relaySend(ctx context.Context, conn *wsConn, sess *chatbot.Session, content string) {
	res := sess.SendNotify(ctx, content, func(user models.ChatMessage) {
		conn.send(wsEventMessage, user)
		conn.send(wsEventTyping, typingEvent{IsTyping: true})
	})
	if res.Bot != nil {
		conn.send(wsEventMessage, res.Bot)
	}
	conn.send(wsEventTyping, typingEvent{IsTyping: false})
}

func pingLoop(ctx context.Context, conn *wsConn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.ping(); err != nil {
				return
			}
		}
	}
}
