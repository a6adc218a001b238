package services

import (
	"careerpath-backend/internal/intake"
	"careerpath-backend/internal/models"
	"careerpath-backend/internal/store/memory"
	"context"
	"errors"
	"testing"
	"time"
)

func janeDoe() models.CreateConsultationRequest {
	return models.CreateConsultationRequest{
		FullName:      "Jane Doe",
		Email:         "jane@x.com",
		Phone:         "+15551234567",
		PreferredMode: models.ConsultationModeVideo,
		PreferredDate: "2025-01-01",
		Concerns:      "Feeling anxious lately",
	}
}

func TestSubmitConsultationStoresRow(t *testing.T) {
	mem := memory.New()
	svc := NewConsultationService(mem)
	ctx := context.Background()

	id, err := svc.SubmitConsultation(ctx, janeDoe())
	if err != nil {
		t.Fatalf("SubmitConsultation: %v", err)
	}
	if id == "" || !mem.SchemaEnsured() {
		t.Fatalf("expected id and ensured schema, got %q / %v", id, mem.SchemaEnsured())
	}

	list, err := svc.ListConsultations(ctx, 0)
	if err != nil {
		t.Fatalf("ListConsultations: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 row, got %d", len(list))
	}
	got := list[0]
	if got.ID != id || got.PreferredMode != "video" || got.PreferredDate != "2025-01-01" || got.FullName != "Jane Doe" {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestSubmitConsultationMissingFieldBeforeStoreCheck(t *testing.T) {
	req := janeDoe()
	req.Email = "  "

	svc := NewConsultationService(nil)
	if _, err := svc.SubmitConsultation(context.Background(), req); !errors.Is(err, intake.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	mem := memory.New()
	svc = NewConsultationService(mem)
	if _, err := svc.SubmitConsultation(context.Background(), req); !errors.Is(err, intake.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if mem.Len() != 0 {
		t.Fatalf("expected no row, got %d", mem.Len())
	}
}

func TestSubmitConsultationFormatValidation(t *testing.T) {
	req := janeDoe()
	req.Concerns = "too short"

	mem := memory.New()
	_, err := NewConsultationService(mem).SubmitConsultation(context.Background(), req)
	if !errors.Is(err, ErrConsultationValidation) {
		t.Fatalf("expected ErrConsultationValidation, got %v", err)
	}
	var ve *intake.ValidationError
	if !errors.As(err, &ve) || ve.Field != "concerns" {
		t.Fatalf("expected concerns ValidationError, got %v", err)
	}
	if mem.Len() != 0 {
		t.Fatalf("expected no row, got %d", mem.Len())
	}
}

func TestConsultationServiceWithoutStore(t *testing.T) {
	svc := NewConsultationService(nil)
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}
	if _, err := svc.SubmitConsultation(context.Background(), janeDoe()); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
	if _, err := svc.ListConsultations(context.Background(), 0); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}

func TestConsultationServicePropagatesStoreErrors(t *testing.T) {
	mem := memory.New()
	mem.Fail = errors.New("connection refused")
	svc := NewConsultationService(mem)

	if _, err := svc.SubmitConsultation(context.Background(), janeDoe()); err == nil || err.Error() != "connection refused" {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.ListConsultations(context.Background(), 0); err == nil {
		t.Fatal("expected store error on list")
	}
}

func TestListConsultationsEmptyIsNotNil(t *testing.T) {
	list, err := NewConsultationService(memory.New()).ListConsultations(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListConsultations: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}

type chanNotifier chan models.Consultation

func (c chanNotifier) Dispatch(ctx context.Context, booked models.Consultation) error {
	c <- booked
	return errors.New("slack: channel_not_found")
}

func TestSubmitConsultationNotifiesAfterStore(t *testing.T) {
	notified := make(chanNotifier, 1)
	svc := NewConsultationService(memory.New())
	svc.SetNotifier(notified)

	id, err := svc.SubmitConsultation(context.Background(), janeDoe())
	if err != nil {
		t.Fatalf("notifier failure must not fail the submission: %v", err)
	}
	select {
	case got := <-notified:
		if got.ID != id || got.FullName != "Jane Doe" || got.PreferredDate.Format(models.DateLayout) != "2025-01-01" {
			t.Fatalf("unexpected notification %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification")
	}
}

func TestRejectedConsultationIsNotNotified(t *testing.T) {
	notified := make(chanNotifier, 1)
	svc := NewConsultationService(memory.New())
	svc.SetNotifier(notified)

	req := janeDoe()
	req.Phone = "123"
	if _, err := svc.SubmitConsultation(context.Background(), req); err == nil {
		t.Fatal("expected validation error")
	}
	select {
	case got := <-notified:
		t.Fatalf("unexpected notification %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitConsultationRoundTripsAndTrims(t *testing.T) {
	mem := memory.New()
	svc := NewConsultationService(mem)
	ctx := context.Background()

	want := janeDoe()
	id, err := svc.SubmitConsultation(ctx, want)
	if err != nil {
		t.Fatalf("SubmitConsultation: %v", err)
	}

	padded := janeDoe()
	padded.FullName = "  John Roe \t"
	padded.Email = " john@x.com "
	padded.Concerns = "\n Need help choosing a path \n"
	if _, err := svc.SubmitConsultation(ctx, padded); err != nil {
		t.Fatalf("SubmitConsultation padded: %v", err)
	}

	list, err := svc.ListConsultations(ctx, 0)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d, %v", len(list), err)
	}
	var exact, trimmed models.ConsultationResponse
	for _, row := range list {
		if row.ID == id {
			exact = row
		} else {
			trimmed = row
		}
	}
	if exact.FullName != want.FullName || exact.Email != want.Email || exact.Phone != want.Phone ||
		exact.PreferredMode != string(want.PreferredMode) || exact.PreferredDate != want.PreferredDate || exact.Concerns != want.Concerns {
		t.Fatalf("row does not match submitted payload: %+v", exact)
	}
	if trimmed.FullName != "John Roe" || trimmed.Email != "john@x.com" || trimmed.Concerns != "Need help choosing a path" {
		t.Fatalf("expected trimmed fields, got %+v", trimmed)
	}
}
