package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"choreboard/internal/handler"
	"choreboard/internal/middleware"
	"choreboard/internal/store"
	ws "choreboard/internal/websocket"
	"choreboard/web"
)

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	authH        *handler.AuthHandler
	dashboardH   *handler.DashboardHandler
	choreH       *handler.ChoreHandler
	apiH         *handler.APIHandler
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	statusStore  *store.StatusStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	choreStore := store.NewChoreStore(db)
	statusStore := store.NewStatusStore(db)
	sessionStore := store.NewSessionStore(db)

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(userStore, sessionStore, logger.With("component", "auth")),
		dashboardH:   handler.NewDashboardHandler(choreStore, statusStore, hub, logger.With("component", "dashboard")),
		choreH:       handler.NewChoreHandler(choreStore, hub, logger.With("component", "chore")),
		apiH:         handler.NewAPIHandler(choreStore, statusStore, logger.With("component", "api")),
		userStore:    userStore,
		sessionStore: sessionStore,
		statusStore:  statusStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// StatusStore returns the status store for the nightly digest.
func (s *Server) StatusStore() *store.StatusStore {
	return s.statusStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /register", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.Handle("GET /static/", http.FileServerFS(web.FS))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	// Apply request logging middleware
	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /logout", s.authH.Logout)

	// Dashboard
	mux.HandleFunc("GET /", s.dashboardH.Page)
	mux.HandleFunc("POST /", s.dashboardH.Submit)
	mux.HandleFunc("GET /dashboard", s.dashboardH.Page)
	mux.HandleFunc("POST /dashboard", s.dashboardH.Submit)

	// Chore management
	mux.HandleFunc("GET /add_chore", s.choreH.ManagePage)
	mux.HandleFunc("POST /add_chore", s.choreH.Add)
	mux.HandleFunc("GET /delete_chore/{id}", s.choreH.Delete)
	mux.HandleFunc("POST /delete_chore/{id}", s.choreH.Delete)

	// Read API
	mux.HandleFunc("GET /api/chores", s.apiH.ListChores)
	mux.HandleFunc("GET /api/statuses", s.apiH.ListStatuses)
	mux.HandleFunc("GET /api/summary", s.apiH.Summary)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
