package services

import (
	"careerpath-backend/internal/intake"
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Consultation service errors
var (
	ErrConsultationValidation = errors.New("consultation validation failed")
	ErrStoreNotConfigured     = errors.New("database is not configured")
)

const notifyTimeout = 15 * time.Second

// BookingNotifier is told about every stored booking.
type BookingNotifier interface {
	Dispatch(ctx context.Context, c models.Consultation) error
}

// ConsultationService validates and persists consultation bookings.
type ConsultationService struct {
	store     store.Store
	notifier  BookingNotifier
	tracer    trace.Tracer
	submitted metric.Int64Counter
}

// NewConsultationService creates a ConsultationService. A nil store is allowed;
// every operation then fails with ErrStoreNotConfigured.
func NewConsultationService(s store.Store) *ConsultationService {
	submitted, err := otel.Meter("careerpath/consultations").Int64Counter("consultations.submitted",
		metric.WithDescription("Consultation submissions by outcome"))
	if err != nil {
		log.Printf("WARN [ConsultationService] could not create submission counter: %v", err)
	}
	return &ConsultationService{
		store:     s,
		tracer:    otel.Tracer("careerpath/consultations"),
		submitted: submitted,
	}
}

// SetNotifier attaches a destination for booking notifications. Delivery is
// asynchronous and never affects the submission result.
func (s *ConsultationService) SetNotifier(n BookingNotifier) {
	s.notifier = n
}

// Configured reports whether a store is attached.
func (s *ConsultationService) Configured() bool {
	return s.store != nil
}

func (s *ConsultationService) count(ctx context.Context, outcome string) {
	if s.submitted != nil {
		s.submitted.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

// SubmitConsultation checks presence, then format, then persists the request.
// Validation runs before the store check so bad input is a 400 even without a database.
func (s *ConsultationService) SubmitConsultation(ctx context.Context, req models.CreateConsultationRequest) (string, error) {
	ctx, span := s.tracer.Start(ctx, "ConsultationService.SubmitConsultation")
	defer span.End()

	if !intake.HasRequiredFields(req) {
		s.count(ctx, "missing_fields")
		return "", intake.ErrMissingFields
	}
	req = intake.Normalize(req)
	if err := intake.Validate(req); err != nil {
		s.count(ctx, "invalid")
		return "", fmt.Errorf("%w: %w", ErrConsultationValidation, err)
	}
	if s.store == nil {
		s.count(ctx, "not_configured")
		return "", ErrStoreNotConfigured
	}

	date, _ := intake.ParseDate(req.PreferredDate)
	span.SetAttributes(attribute.String("consultation.mode", string(req.PreferredMode)))

	if err := s.store.EnsureConsultationSchema(ctx); err != nil {
		s.count(ctx, "store_error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "ensure schema")
		return "", err
	}

	id, err := s.store.CreateConsultation(ctx, store.CreateConsultationParams{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		PreferredMode: string(req.PreferredMode),
		PreferredDate: date,
		Concerns:      req.Concerns,
	})
	if err != nil {
		s.count(ctx, "store_error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert")
		return "", err
	}

	s.count(ctx, "created")
	log.Printf("[ConsultationService] Stored consultation %s (mode=%s)", id, req.PreferredMode)

	if s.notifier != nil {
		booked := models.Consultation{
			ID:            id,
			FullName:      req.FullName,
			Email:         req.Email,
			Phone:         req.Phone,
			PreferredMode: string(req.PreferredMode),
			PreferredDate: date,
			Concerns:      req.Concerns,
			CreatedAt:     time.Now().UTC(),
		}
		go s.notify(context.WithoutCancel(ctx), booked)
	}
	return id, nil
}

func (s *ConsultationService) notify(ctx context.Context, c models.Consultation) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.Dispatch(ctx, c); err != nil {
		log.Printf("WARN [ConsultationService] Notification for consultation %s incomplete: %v", c.ID, err)
	}
}

// ListConsultations returns up to limit bookings, newest first.
// The result is never nil so it encodes as [] rather than null.
func (s *ConsultationService) ListConsultations(ctx context.Context, limit int) ([]models.ConsultationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ConsultationService.ListConsultations")
	defer span.End()

	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}

	rows, err := s.store.ListConsultations(ctx, store.ClampLimit(limit))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list")
		return nil, err
	}

	resp := make([]models.ConsultationResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, mapConsultationToResponse(row))
	}
	span.SetAttributes(attribute.Int("consultation.count", len(resp)))
	return resp, nil
}

// mapConsultationToResponse converts a stored row to its API shape.
func mapConsultationToResponse(c models.Consultation) models.ConsultationResponse {
	return models.ConsultationResponse{
		ID:            c.ID,
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		PreferredMode: c.PreferredMode,
		PreferredDate: c.PreferredDate.Format(models.DateLayout),
		Concerns:      c.Concerns,
		CreatedAt:     c.CreatedAt,
	}
}
