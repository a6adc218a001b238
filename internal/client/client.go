// Package client is a Go client for the careerpath HTTP API.
package client

import (
	"bytes"
	"careerpath-backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// IsNotConfigured reports whether err is the server's 501 "database not configured" answer.
func IsNotConfigured(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotImplemented
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:8080".
// Chat sends wait for the bot's thinking pause, so the timeout is generous.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var e models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Message != "" {
			apiErr.Message = e.Message
			apiErr.Detail = e.Error
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// SubmitConsultation books a consultation and returns its reference ID.
// It satisfies intake.Submitter.
func (c *Client) SubmitConsultation(ctx context.Context, req models.CreateConsultationRequest) (string, error) {
	var out models.CreateConsultationResponse
	if err := c.do(ctx, http.MethodPost, "/api/consultations", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// ListConsultations fetches the newest bookings. limit <= 0 uses the server default.
func (c *Client) ListConsultations(ctx context.Context, limit int) ([]models.ConsultationResponse, error) {
	path := "/api/consultations"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []models.ConsultationResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCareers(ctx context.Context, query string) ([]models.CareerSummary, error) {
	path := "/api/careers"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out []models.CareerSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCareer(ctx context.Context, slug string) (*models.CareerDetail, error) {
	var out models.CareerDetail
	if err := c.do(ctx, http.MethodGet, "/api/careers/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateChatSession(ctx context.Context) (*models.ChatSessionResponse, error) {
	var out models.ChatSessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/sessions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) chatAction(ctx context.Context, id uuid.UUID, action string) (*models.ChatSessionResponse, error) {
	var out models.ChatSessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/sessions/"+id.String()+"/"+action, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OpenChat(ctx context.Context, id uuid.UUID) (*models.ChatSessionResponse, error) {
	return c.chatAction(ctx, id, "open")
}

func (c *Client) CloseChat(ctx context.Context, id uuid.UUID) (*models.ChatSessionResponse, error) {
	return c.chatAction(ctx, id, "close")
}

func (c *Client) ClearChat(ctx context.Context, id uuid.UUID) (*models.ChatSessionResponse, error) {
	return c.chatAction(ctx, id, "clear")
}

// SendChat posts a message and returns once the bot has answered.
func (c *Client) SendChat(ctx context.Context, id uuid.UUID, content string) (*models.SendChatMessageResponse, error) {
	var out models.SendChatMessageResponse
	body := models.SendChatMessageRequest{Content: content}
	if err := c.do(ctx, http.MethodPost, "/api/chat/sessions/"+id.String()+"/messages", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteChat(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/chat/sessions/"+id.String(), nil, nil)
}
