package handlers

import (
	"careerpath-backend/internal/intake"
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/services"
	"careerpath-backend/pkg/httputil"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	maxRequestBody = 64 << 10

	notConfiguredMessage = "Database is not configured yet. Please set DATABASE_URL."
)

// ConsultationService defines the interface expected from the consultation service.
type ConsultationService interface {
	SubmitConsultation(ctx context.Context, req models.CreateConsultationRequest) (string, error)
	ListConsultations(ctx context.Context, limit int) ([]models.ConsultationResponse, error)
}

type ConsultationHandler struct {
	service ConsultationService
}

func NewConsultationHandler(svc ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: svc}
}

// HandleCreateConsultation handles POST /api/consultations.
func (h *ConsultationHandler) HandleCreateConsultation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req models.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	id, err := h.service.SubmitConsultation(r.Context(), req)
	if err != nil {
		var verr *intake.ValidationError
		switch {
		case errors.Is(err, intake.ErrMissingFields):
			httputil.RespondError(w, http.StatusBadRequest, "Missing required fields")
		case errors.As(err, &verr):
			httputil.RespondError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, services.ErrStoreNotConfigured):
			httputil.RespondError(w, http.StatusNotImplemented, notConfiguredMessage)
		default:
			log.Printf("ERROR [ConsultationHandler] save failed: %v", err)
			httputil.RespondFailure(w, "Failed to save consultation", err)
		}
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, models.CreateConsultationResponse{ID: id})
}

// HandleListConsultations handles GET /api/consultations.
// An optional ?limit= narrows the listing; it never exceeds 200.
func (h *ConsultationHandler) HandleListConsultations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := h.service.ListConsultations(r.Context(), limit)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotConfigured) {
			httputil.RespondError(w, http.StatusNotImplemented, notConfiguredMessage)
			return
		}
		log.Printf("ERROR [ConsultationHandler] list failed: %v", err)
		httputil.RespondFailure(w, "Failed to fetch consultations", err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, list)
}

// RegisterRoutes mounts the consultation endpoints on r.
func (h *ConsultationHandler) RegisterRoutes(r chi.Router) {
	r.Post("/consultations", h.HandleCreateConsultation)
	r.Get("/consultations", h.HandleListConsultations)
}
