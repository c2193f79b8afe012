package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fpt-usermanagement/apiserver/types"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

func userIDFromContext(ctx context.Context) (int, error) {
	value := ctx.Value(contextSubjectKey)
	subject, ok := value.(string)
	if !ok {
		return 0, errors.New("missing subject")
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(subject))
	if err != nil || parsed < 1 {
		return 0, errors.New("invalid subject")
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeFailure emits the generic failure envelope used at the HTTP boundary.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, types.APIResponse{Success: false, Message: message})
}
