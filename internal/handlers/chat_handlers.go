package handlers

import (
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/services"
	"careerpath-backend/pkg/httputil"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatHandlers serves the chat widget REST API.
type ChatHandlers struct {
	chatService *services.ChatService
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(chatService *services.ChatService) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
	}
}

// sessionIDParam parses {sessionID}, answering 400 itself on failure.
func sessionIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondChatError maps chat service errors to HTTP status codes.
func respondChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Chat session not found")
	case errors.Is(err, services.ErrEmptyMessage):
		httputil.RespondError(w, http.StatusBadRequest, "Message content is required")
	case errors.Is(err, services.ErrTooManySessions):
		httputil.RespondError(w, http.StatusServiceUnavailable, "Too many active chat sessions, please try again later")
	default:
		log.Printf("ERROR [ChatHandlers] unexpected error: %v", err)
		httputil.RespondFailure(w, "Chat request failed", err)
	}
}

// HandleCreateSession handles POST /api/chat/sessions.
func (h *ChatHandlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.chatService.CreateSession()
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, sess)
}

// HandleGetSession handles GET /api/chat/sessions/{sessionID}.
func (h *ChatHandlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	sess, err := h.chatService.GetSession(id)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, sess)
}

// HandleOpenSession handles POST /api/chat/sessions/{sessionID}/open.
func (h *ChatHandlers) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	h.applySessionAction(w, r, h.chatService.OpenSession)
}

// HandleCloseSession handles POST /api/chat/sessions/{sessionID}/close.
func (h *ChatHandlers) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	h.applySessionAction(w, r, h.chatService.CloseSession)
}

// HandleClearSession handles POST /api/chat/sessions/{sessionID}/clear.
func (h *ChatHandlers) HandleClearSession(w http.ResponseWriter, r *http.Request) {
	h.applySessionAction(w, r, h.chatService.ClearSession)
}

func (h *ChatHandlers) applySessionAction(w http.ResponseWriter, r *http.Request, action func(uuid.UUID) (*models.ChatSessionResponse, error)) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	sess, err := action(id)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, sess)
}

// HandleSendMessage handles POST /api/chat/sessions/{sessionID}/messages.
// The response is written once the bot has replied.
func (h *ChatHandlers) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req models.SendChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := h.chatService.SendMessage(r.Context(), id, req.Content)
	if err != nil {
		respondChatError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleDeleteSession handles DELETE /api/chat/sessions/{sessionID}.
func (h *ChatHandlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	if err := h.chatService.DeleteSession(id); err != nil {
		respondChatError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes mounts the chat session endpoints on r.
func (h *ChatHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/chat/sessions", h.HandleCreateSession)
	r.Get("/chat/sessions/{sessionID}", h.HandleGetSession)
	r.Delete("/chat/sessions/{sessionID}", h.HandleDeleteSession)
	r.Post("/chat/sessions/{sessionID}/open", h.HandleOpenSession)
	r.Post("/chat/sessions/{sessionID}/close", h.HandleCloseSession)
	r.Post("/chat/sessions/{sessionID}/clear", h.HandleClearSession)
	r.Post("/chat/sessions/{sessionID}/messages", h.HandleSendMessage)
}
