package service

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cricket-auction/internal/logger"
	"cricket-auction/pkg/utils"
)

// AuthService issues the admin operator's JWT. There is a single operator
// account, configured through ADMIN_EMAIL and ADMIN_PASSWORD_HASH; session
// handling beyond the bearer token is not a ledger concern.
type AuthService struct {
	Log *logger.Logger
}

// NewAuthService initializes the auth service.
func NewAuthService() *AuthService {
	return &AuthService{Log: logger.NewLogger("auth-service")}
}

// LoginRequest is the request body for operator login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string `json:"token"`
}

// Login authenticates the admin operator and returns a signed JWT.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Log.Error("Failed to decode request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || adminHash == "" {
		s.Log.Error("Admin credentials are not configured")
		respondWithError(w, http.StatusInternalServerError, "Login unavailable")
		return
	}

	if req.Email != adminEmail || utils.CheckPassword(adminHash, req.Password) != nil {
		s.Log.Warn("Failed admin login attempt", "email", req.Email)
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.generateJWT(req.Email)
	if err != nil {
		s.Log.Error("Failed to sign token", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Login unavailable")
		return
	}

	s.Log.Info("Admin logged in", "email", req.Email)
	respondWithJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// generateJWT creates a JWT token for the admin session
func (s *AuthService) generateJWT(email string) (string, error) {
	secretKey := os.Getenv("JWT_SECRET")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(secretKey))
}
