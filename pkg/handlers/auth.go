package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"todoapp/pkg/claims"
	"todoapp/pkg/user"

	jwt "github.com/dgrijalva/jwt-go"
)

type SignupForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SigninForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authDetails is the text shown to users for each rejection.
var authDetails = map[error]string{
	user.ErrMissingCredentials: "Email and password are required",
	user.ErrShortPassword:      "Password must be at least 8 characters",
	user.ErrAlreadyExists:      "User already exists",
	user.ErrInvalidCredentials: "Invalid email or password",
}

func authDetail(err error) string {
	for sentinel, detail := range authDetails {
		if errors.Is(err, sentinel) {
			return detail
		}
	}
	return err.Error()
}

type AuthHandler struct {
	Service  user.ServiceInterface
	Logger   *slog.Logger
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthHandler(service user.ServiceInterface, logger *slog.Logger, secret []byte, ttl time.Duration) *AuthHandler {
	return &AuthHandler{
		Service:  service,
		Logger:   logger,
		Secret:   secret,
		TokenTTL: ttl,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Signup(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, user.ErrMissingCredentials), errors.Is(err, user.ErrShortPassword), errors.Is(err, user.ErrAlreadyExists):
		h.Logger.Info("signup rejected", "email", req.Email, "reason", err.Error())
		writeError(w, http.StatusBadRequest, authDetail(err))
		return
	case err != nil:
		h.Logger.Error("signup", "error", err)
		writeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusOK, map[string]any{
		"message": "User created successfully",
		"email":   u.Email,
	}); ok {
		h.Logger.Info("signup", "user", u.ID)
	}
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Signin(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, user.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, authDetails[user.ErrMissingCredentials])
		return
	case errors.Is(err, user.ErrInvalidCredentials):
		h.Logger.Info("signin", "error", "unauthorized", "email", req.Email)
		writeError(w, http.StatusUnauthorized, authDetails[user.ErrInvalidCredentials])
		return
	case err != nil:
		h.Logger.Error("signin", "error", err)
		writeError(w, http.StatusInternalServerError, "Sign in failed")
		return
	}

	token, err := GenerateToken(u.ID, u.Email, h.Secret, h.TokenTTL)
	if err != nil {
		h.Logger.Error("token signing", "error", err)
		writeError(w, http.StatusInternalServerError, "Sign in failed")
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusOK, map[string]any{
		"token": token,
		"user":  map[string]string{"id": u.ID, "email": u.Email},
	}); ok {
		h.Logger.Info("signin", "user", u.ID)
	}
}

// GenerateToken mints an HS256 token carrying the subject as both "sub" and "user_id".
func GenerateToken(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims.Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	})
	return token.SignedString(secret)
}
