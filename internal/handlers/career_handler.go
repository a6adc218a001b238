package handlers

import (
	"careerpath-backend/internal/careers"
	"careerpath-backend/pkg/httputil"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CareerHandler serves the read-only career path catalog.
type CareerHandler struct {
	catalog *careers.Catalog
}

func NewCareerHandler(c *careers.Catalog) *CareerHandler {
	return &CareerHandler{catalog: c}
}

// HandleListCareers handles GET /api/careers?q=.
func (h *CareerHandler) HandleListCareers(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.catalog.List(r.URL.Query().Get("q")))
}

// HandleGetCareer handles GET /api/careers/{slug}.
func (h *CareerHandler) HandleGetCareer(w http.ResponseWriter, r *http.Request) {
	career, err := h.catalog.Get(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, careers.ErrCareerNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "Career not found")
			return
		}
		httputil.RespondFailure(w, "Failed to fetch career", err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, career)
}

// RegisterRoutes mounts the catalog endpoints on r.
func (h *CareerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/careers", h.HandleListCareers)
	r.Get("/careers/{slug}", h.HandleGetCareer)
}
