package api

import (
	"careerpath-backend/internal/config"
	"careerpath-backend/internal/handlers"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	ConsultationHandler *handlers.ConsultationHandler
	CareerHandler       *handlers.CareerHandler
	ChatHandler         *handlers.ChatHandlers
	ChatWSHandler       *handlers.ChatWSHandler
	Config              *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestMetricsMiddleware())

	// --- CORS Configuration ---
	origins := deps.Config.AllowedOrigins
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Websockets are long-lived; everything else gets a request timeout.
		if deps.ChatWSHandler != nil {
			deps.ChatWSHandler.RegisterRoutes(r)
		} else {
			log.Println("WARN: ChatWSHandler dependency is nil, skipping chat websocket route.")
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			if deps.ConsultationHandler == nil {
				panic("ConsultationHandler dependency is nil in router setup")
			}
			deps.ConsultationHandler.RegisterRoutes(r)

			if deps.CareerHandler != nil {
				deps.CareerHandler.RegisterRoutes(r)
			} else {
				log.Println("WARN: CareerHandler dependency is nil, skipping /api/careers routes.")
			}

			if deps.ChatHandler != nil {
				deps.ChatHandler.RegisterRoutes(r)
			} else {
				log.Println("WARN: ChatHandler dependency is nil, skipping /api/chat routes.")
			}
		})
	})

	if dir := deps.Config.StaticDir; dir != "" {
		r.NotFound(spaHandler(dir))
		log.Printf("Serving static frontend from %s", dir)
	}

	return r
}

// OriginChecker builds a websocket origin check from the CORS allow-list.
// Requests without an Origin header (non-browser clients) are allowed.
func OriginChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// spaHandler serves files from dir and falls back to index.html for unknown
// non-API paths so client-side routes load. /api/* misses stay JSON 404s.
func spaHandler(dir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
