// HTTP handler for login (public endpoint, no auth middleware).
// Verifies credentials against the statically configured user list and
// issues a JWT carrying the user's role.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agritechlabs/sahayak/internal/infra/config"
	pkgauth "github.com/agritechlabs/sahayak/pkg/auth"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	users  []config.User
	tokens *pkgauth.Manager
}

// NewAuthHandler creates an AuthHandler for the configured users.
func NewAuthHandler(users []config.User, tokens *pkgauth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body returned after successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Login handles POST /auth/login.
//
// Response codes:
//   - 200 OK: login successful
//   - 400 Bad Request: invalid JSON or missing required fields
//   - 401 Unauthorized: invalid credentials (generic, doesn't reveal if the user exists)
//   - 500 Internal Server Error: token signing failure
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, ok := h.findUser(req.Username)
	if !ok || !pkgauth.VerifyPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.Name, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:  token,
		UserID: user.Name,
		Role:   user.Role,
	})
}

func (h *AuthHandler) findUser(name string) (config.User, bool) {
	for _, u := range h.users {
		if u.Name == name {
			return u, true
		}
	}
	return config.User{}, false
}
