package handlers

import (
	"careerpath-backend/internal/chatbot"
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/services"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newInstantChatService(t *testing.T) *services.ChatService {
	t.Helper()
	c, err := chatbot.NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return services.NewChatService(chatbot.NewBot(c, nil), 0)
}

func setupChatRouter(t *testing.T) *chi.Mux {
	t.Helper()
	r := chi.NewRouter()
	NewChatHandlers(newInstantChatService(t)).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string, want int, out interface{}) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != want {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, path, want, resp.Code, resp.Body.String())
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

func TestChatSessionFlow(t *testing.T) {
	r := setupChatRouter(t)

	var sess models.ChatSessionResponse
	doJSON(t, r, http.MethodPost, "/chat/sessions", "", http.StatusCreated, &sess)
	base := "/chat/sessions/" + sess.ID.String()

	doJSON(t, r, http.MethodPost, base+"/open", "", http.StatusOK, &sess)
	if !sess.IsOpen || len(sess.Messages) != 1 || sess.Messages[0].Content != chatbot.WelcomeMessage {
		t.Fatalf("expected welcome after open, got %+v", sess)
	}

	var sent models.SendChatMessageResponse
	doJSON(t, r, http.MethodPost, base+"/messages", `{"content":"I want a career in software"}`, http.StatusOK, &sent)
	if sent.BotMessage == nil || !strings.Contains(sent.BotMessage.Content, "Software Engineering is an excellent choice") {
		t.Fatalf("expected software reply, got %+v", sent.BotMessage)
	}
	if sent.UserMessage.ID != "msg-1" || sent.BotMessage.ID != "msg-2" {
		t.Fatalf("unexpected ids %s, %s", sent.UserMessage.ID, sent.BotMessage.ID)
	}

	doJSON(t, r, http.MethodPost, base+"/clear", "", http.StatusOK, &sess)
	if len(sess.Messages) != 0 {
		t.Fatalf("expected empty log, got %d messages", len(sess.Messages))
	}

	doJSON(t, r, http.MethodPost, base+"/close", "", http.StatusOK, &sess)
	if sess.IsOpen {
		t.Fatal("expected closed session")
	}

	doJSON(t, r, http.MethodDelete, base, "", http.StatusNoContent, nil)
	doJSON(t, r, http.MethodGet, base, "", http.StatusNotFound, nil)
}

func TestChatSendValidation(t *testing.T) {
	r := setupChatRouter(t)

	var sess models.ChatSessionResponse
	doJSON(t, r, http.MethodPost, "/chat/sessions", "", http.StatusCreated, &sess)
	base := "/chat/sessions/" + sess.ID.String()

	doJSON(t, r, http.MethodPost, base+"/messages", `{"content":"   "}`, http.StatusBadRequest, nil)
	doJSON(t, r, http.MethodPost, base+"/messages", `not json`, http.StatusBadRequest, nil)
	doJSON(t, r, http.MethodGet, "/chat/sessions/not-a-uuid", "", http.StatusBadRequest, nil)
	doJSON(t, r, http.MethodPost, "/chat/sessions/"+uuid.NewString()+"/messages", `{"content":"hi"}`, http.StatusNotFound, nil)
}

func TestChatSendSurvivesClientCancel(t *testing.T) {
	c, err := chatbot.NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	think := 150 * time.Millisecond
	svc := services.NewChatService(chatbot.NewBot(c, chatbot.NewThinker(think, think)), 0)
	r := chi.NewRouter()
	NewChatHandlers(svc).RegisterRoutes(r)

	var sess models.ChatSessionResponse
	doJSON(t, r, http.MethodPost, "/chat/sessions", "", http.StatusCreated, &sess)
	base := "/chat/sessions/" + sess.ID.String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timer := time.AfterFunc(20*time.Millisecond, cancel)
	defer timer.Stop()

	req := httptest.NewRequest(http.MethodPost, base+"/messages", strings.NewReader(`{"content":"software career"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	doJSON(t, r, http.MethodGet, base, "", http.StatusOK, &sess)
	if len(sess.Messages) != 2 {
		t.Fatalf("expected user and bot messages, got %+v", sess.Messages)
	}
	last := sess.Messages[1]
	if last.Sender != models.SenderBot || !strings.Contains(last.Content, "Software Engineering is an excellent choice") {
		t.Fatalf("expected software reply after cancel, got %q", last.Content)
	}
}

func TestChatCreateSessionWhenFull(t *testing.T) {
	svc := newInstantChatService(t)
	svc.SetMaxSessions(1)
	r := chi.NewRouter()
	NewChatHandlers(svc).RegisterRoutes(r)

	doJSON(t, r, http.MethodPost, "/chat/sessions", "", http.StatusCreated, nil)

	var errResp models.ErrorResponse
	doJSON(t, r, http.MethodPost, "/chat/sessions", "", http.StatusServiceUnavailable, &errResp)
	if !strings.Contains(errResp.Message, "Too many active chat sessions") {
		t.Fatalf("unexpected error body %+v", errResp)
	}
}
