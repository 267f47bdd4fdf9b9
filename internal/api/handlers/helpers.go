// Handler helper functions shared across the handlers package.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agritechlabs/sahayak/internal/api/ctxkeys"
)

// writeError writes a JSON error response with the given status code.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// getUserID retrieves user_id from context. Same type+value as the auth
// middleware injection, so no silent type mismatch.
func getUserID(ctx context.Context) (string, error) {
	userID := ctxkeys.Value(ctx, ctxkeys.UserID)
	if userID == "" {
		return "", fmt.Errorf("user_id not found in context")
	}
	return userID, nil
}

// getRole retrieves the role from context.
func getRole(ctx context.Context) (string, error) {
	role := ctxkeys.Value(ctx, ctxkeys.Role)
	if role == "" {
		return "", fmt.Errorf("role not found in context")
	}
	return role, nil
}
