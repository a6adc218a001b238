package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Error Structs ---

// ErrorResponse defines the standard structure for API errors.
// Error carries the underlying store message on 500 responses only.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// --- Consultation DTOs ---

// ConsultationMode is the preferred contact channel for a consultation.
type ConsultationMode string

const (
	ConsultationModeVideo ConsultationMode = "video"
	ConsultationModeAudio ConsultationMode = "audio"
	ConsultationModeChat  ConsultationMode = "chat"
)

// ConsultationModes lists the accepted modes in display order.
var ConsultationModes = []ConsultationMode{ConsultationModeVideo, ConsultationModeAudio, ConsultationModeChat}

// Valid reports whether m is one of the enumerated modes.
func (m ConsultationMode) Valid() bool {
	for _, mode := range ConsultationModes {
		if m == mode {
			return true
		}
	}
	return false
}

// CreateConsultationRequest defines the body for booking a consultation.
// Field names follow the booking form, hence camelCase.
type CreateConsultationRequest struct {
	FullName      string           `json:"fullName"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	PreferredMode ConsultationMode `json:"preferredMode"`
	PreferredDate string           `json:"preferredDate"` // YYYY-MM-DD
	Concerns      string           `json:"concerns"`
}

// CreateConsultationResponse is returned on a successful booking.
type CreateConsultationResponse struct {
	ID string `json:"id"`
}

// ConsultationResponse is one row of the consultation listing.
type ConsultationResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PreferredMode string    `json:"preferred_mode"`
	PreferredDate string    `json:"preferred_date"`
	Concerns      string    `json:"concerns"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Chat Widget DTOs ---

// ChatSessionResponse is a point-in-time view of a chat widget session.
type ChatSessionResponse struct {
	ID       uuid.UUID     `json:"id"`
	IsOpen   bool          `json:"isOpen"`
	IsTyping bool          `json:"isTyping"`
	Messages []ChatMessage `json:"messages"`
}

// SendChatMessageRequest defines the body for sending a user message to the widget.
type SendChatMessageRequest struct {
	Content string `json:"content"`
}

// SendChatMessageResponse carries both sides of one exchange.
// BotMessage is nil when the reply was discarded because the log was cleared mid-flight.
type SendChatMessageResponse struct {
	UserMessage ChatMessage  `json:"userMessage"`
	BotMessage  *ChatMessage `json:"botMessage,omitempty"`
	Discarded   bool         `json:"discarded"`
}

// --- Career Catalog DTOs ---

// CareerSummary is the card-level view of a career path.
type CareerSummary struct {
	Slug        string   `json:"slug" yaml:"slug"`
	Title       string   `json:"title" yaml:"title"`
	Icon        string   `json:"icon" yaml:"icon"`
	Description string   `json:"description" yaml:"description"`
	Level       string   `json:"level" yaml:"level"`
	Skills      []string `json:"skills" yaml:"skills"`
	Jobs        string   `json:"jobs" yaml:"jobs"`
	Growth      string   `json:"growth" yaml:"growth"`
	Salary      string   `json:"salary" yaml:"salary"`
}

// LearningStep is one stage of a career's learning path.
type LearningStep struct {
	Title    string `json:"title" yaml:"title"`
	Duration string `json:"duration" yaml:"duration"`
}

// CareerDetail is the full career path page.
type CareerDetail struct {
	CareerSummary `yaml:",inline"`

	Overview         string         `json:"overview" yaml:"overview"`
	Responsibilities []string       `json:"responsibilities" yaml:"responsibilities"`
	Requirements     []string       `json:"requirements" yaml:"requirements"`
	LearningPath     []LearningStep `json:"learningPath" yaml:"learning_path"`
	Companies        []string       `json:"companies" yaml:"companies"`
	Locations        []string       `json:"locations" yaml:"locations"`
}
