package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fpt-usermanagement/apiserver/internal/auth"
	"github.com/fpt-usermanagement/apiserver/internal/services"
	"github.com/fpt-usermanagement/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// AuthHandler provides the registration and login endpoints.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService) {
	handler := NewAuthHandler(userService)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
}

// RequireAuth enforces bearer-token authentication and injects the token
// subject into the request context.
func RequireAuth(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeFailure(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				writeFailure(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextSubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Register creates a new user account. Declared failures (duplicate username
// or email) travel in the envelope at 200; only unhandled errors become 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Username == "" || req.Email == "" || req.FullName == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "missing required fields")
		return
	}
	if _, err := types.ParseRole(req.Role); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.userService.Register(r.Context(), req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Registration failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeFailure(w, http.StatusBadRequest, "missing credentials")
		return
	}

	resp, err := h.userService.Login(r.Context(), req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Login failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
