package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/campusworks/timetable-engine/internal/config"
	"github.com/campusworks/timetable-engine/internal/storage"
	"github.com/campusworks/timetable-engine/internal/timetable"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	repo           storage.Repository
	service        *timetable.Service
	watchHub       *WatchHub
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server. The watch hub is registered with
// the service so every generation is pushed to websocket subscribers.
func NewServer(cfg config.ServerConfig, repo storage.Repository, service *timetable.Service) *Server {
	s := &Server{
		config:         cfg,
		repo:           repo,
		service:        service,
		watchHub:       NewWatchHub(),
		authMiddleware: NewAuthMiddleware(repo),
	}
	service.SetNotifier(s.watchHub)
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (outside versioned API - public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes (protected by authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware.Authenticate)

		// Catalog collections
		r.Route("/programs", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleListPrograms)
			r.With(s.authMiddleware.RequirePermission("catalog:write")).Post("/", s.handleCreateProgram)
			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleGetProgram)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Put("/", s.handleUpdateProgram)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Delete("/", s.handleDeleteProgram)
			})
		})

		r.Route("/courses", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleListCourses)
			r.With(s.authMiddleware.RequirePermission("catalog:write")).Post("/", s.handleCreateCourse)
			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleGetCourse)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Put("/", s.handleUpdateCourse)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Delete("/", s.handleDeleteCourse)
			})
		})

		r.Route("/faculty", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleListFaculty)
			r.With(s.authMiddleware.RequirePermission("catalog:write")).Post("/", s.handleCreateFaculty)
			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleGetFaculty)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Put("/", s.handleUpdateFaculty)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Delete("/", s.handleDeleteFaculty)
			})
		})

		r.Route("/rooms", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleListRooms)
			r.With(s.authMiddleware.RequirePermission("catalog:write")).Post("/", s.handleCreateRoom)
			r.Route("/{id}", func(r chi.Router) {
				r.With(s.authMiddleware.RequirePermission("catalog:read")).Get("/", s.handleGetRoom)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Put("/", s.handleUpdateRoom)
				r.With(s.authMiddleware.RequirePermission("catalog:write")).Delete("/", s.handleDeleteRoom)
			})
		})

		// Timetable
		r.Route("/timetable", func(r chi.Router) {
			r.With(s.authMiddleware.RequirePermission("timetable:generate")).Post("/generate", s.handleGenerate)
			r.With(s.authMiddleware.RequirePermission("timetable:read")).Get("/", s.handleLatest)
			r.With(s.authMiddleware.RequirePermission("timetable:read")).Get("/export", s.handleExport)
			r.With(s.authMiddleware.RequirePermission("timetable:read")).Get("/runs", s.handleListRuns)
			r.With(s.authMiddleware.RequirePermission("timetable:read")).Get("/watch", s.handleWatch)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
