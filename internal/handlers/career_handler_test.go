package handlers

import (
	"careerpath-backend/internal/careers"
	"careerpath-backend/internal/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func setupCareerRouter(t *testing.T) *chi.Mux {
	t.Helper()
	catalog, err := careers.Default()
	if err != nil {
		t.Fatalf("careers.Default: %v", err)
	}
	r := chi.NewRouter()
	NewCareerHandler(catalog).RegisterRoutes(r)
	return r
}

func TestListAndGetCareers(t *testing.T) {
	r := setupCareerRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/careers", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var list []models.CareerSummary
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil || len(list) != 8 {
		t.Fatalf("expected 8 careers, got %d (%v)", len(list), err)
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/careers/cybersecurity", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var detail models.CareerDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil || detail.Slug != "cybersecurity" {
		t.Fatalf("unexpected detail %+v (%v)", detail, err)
	}
}

func TestGetUnknownCareer(t *testing.T) {
	r := setupCareerRouter(t)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/careers/astronaut", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
