package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fpt-usermanagement/apiserver/internal/services"
	"github.com/fpt-usermanagement/apiserver/internal/store"
	"github.com/fpt-usermanagement/apiserver/types"
	"github.com/go-chi/chi/v5"
)

// UserHandler provides HTTP handlers for user management.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user-management routes on the given router. The whole
// subtree requires authentication; list, list-by-role, delete, and
// toggle-status additionally require the admin role.
func UserRouter(r chi.Router, userService *services.UserService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUserHandler(userService)

	r.Use(authMiddleware)
	r.With(handler.requireAdmin).Get("/", handler.GetAllUsers)
	r.With(handler.requireAdmin).Get("/role/{role}", handler.GetUsersByRole)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUserByID)
		r.Put("/", handler.UpdateUser)
		r.With(handler.requireAdmin).Delete("/", handler.DeleteUser)
		r.With(handler.requireAdmin).Patch("/toggle-status", handler.ToggleUserStatus)
	})
}

// requireAdmin loads the caller's record and checks its role, so role changes
// take effect without waiting for token expiry.
func (h *UserHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r.Context())
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		caller, err := h.userService.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeFailure(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeFailure(w, http.StatusInternalServerError, "failed to load user")
			return
		}

		if caller.Role != types.RoleAdmin.String() {
			writeFailure(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to retrieve users: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to retrieve user: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "User retrieved successfully",
		Data:    user,
	})
}

func (h *UserHandler) GetUsersByRole(w http.ResponseWriter, r *http.Request) {
	role, err := types.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to retrieve users: "+err.Error())
		return
	}

	users, err := h.userService.GetUsersByRole(r.Context(), role)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to retrieve users: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.FullName == "" {
		writeFailure(w, http.StatusBadRequest, "missing required fields")
		return
	}

	resp, err := h.userService.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to update user: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.userService.DeleteUser(r.Context(), id)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to delete user: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.userService.ToggleUserStatus(r.Context(), id)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Failed to toggle user status: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func parseUserID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
