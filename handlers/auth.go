package handlers

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"recipe-service/models"
	"recipe-service/services"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer issues and validates bearer tokens
type TokenIssuer interface {
	Issue(userID int) (string, error)
	Validate(token string) (*services.TokenClaims, error)
}

// Credentials is the single login accepted by POST /login.
// Only a bcrypt hash of the password is kept in memory.
type Credentials struct {
	Email        string
	PasswordHash []byte
	UserID       int
}

// NewCredentials hashes password with the given bcrypt cost
func NewCredentials(email, password string, userID, cost int) (Credentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hashing admin password: %w", err)
	}
	return Credentials{Email: email, PasswordHash: hash, UserID: userID}, nil
}

// Match reports whether email and password are the configured pair
func (c Credentials) Match(email, password string) bool {
	if email == "" || password == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.Email)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)) == nil
	return emailOK && passwordOK
}

// AuthHandler handles login and guards mutating routes
type AuthHandler struct {
	tokens      TokenIssuer
	credentials Credentials
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(tokens TokenIssuer, credentials Credentials) *AuthHandler {
	return &AuthHandler{tokens: tokens, credentials: credentials}
}

// Login handles POST /login - exchanges the fixed credential pair for a bearer token
func (h *AuthHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Login request")

	// an undecodable body carries no credentials, so it is a mismatch like any other
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logRequest(ctx, "info", "Invalid login body", zap.Error(err))
		req = models.LoginRequest{}
	}

	if !h.credentials.Match(req.Email, req.Password) {
		logRequest(ctx, "info", "Invalid credentials", zap.String("email", req.Email))
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(h.credentials.UserID)
	if err != nil {
		logRequest(ctx, "error", "Failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	logRequest(ctx, "info", "Login successful", zap.Int("user_id", h.credentials.UserID))
	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:   token,
		Message: "Login successful",
	})
}

// Require rejects the request with 401 unless it carries a valid
// "Authorization: Bearer <token>" header
func (h *AuthHandler) Require(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			logRequest(ctx, "info", "Missing Authorization header")
			writeError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" || strings.ContainsAny(token, " \t") {
			logRequest(ctx, "info", "Invalid Authorization format")
			writeError(w, http.StatusUnauthorized, "Invalid Authorization format")
			return
		}

		claims, err := h.tokens.Validate(token)
		if err != nil {
			writeServiceError(ctx, w, err)
			return
		}

		getRequestInfo(ctx).UserID = claims.UserID
		next(ctx, w, r)
	}
}
