package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fpt-usermanagement/apiserver/config"
	"github.com/fpt-usermanagement/apiserver/internal/auth"
	"github.com/fpt-usermanagement/apiserver/internal/db"
	"github.com/fpt-usermanagement/apiserver/internal/handlers"
	"github.com/fpt-usermanagement/apiserver/internal/logging"
	"github.com/fpt-usermanagement/apiserver/internal/services"
	"github.com/fpt-usermanagement/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with its full dependency graph.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	logger := logging.New(cfg.Log)

	var (
		userRepo services.UserRepository
		dbConn   *sql.DB
	)
	switch cfg.Database.Driver {
	case "memory":
		userRepo = store.NewMemoryUserStore()
		logger.Warn("using in-memory user store, data will not survive restarts")
	default:
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dbConn = conn
		userRepo = store.NewUserRepository(conn)
	}

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	verifier := auth.NewVerifier(userRepo)
	userService := services.NewUserService(userRepo, verifier, tokens, auth.HashPassword, logger)

	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService)
	})
	router.Route("/api/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		defer s.db.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
