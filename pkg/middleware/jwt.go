package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"todoapp/pkg/claims"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
)

var (
	noSessUrls = map[string]string{
		"/api/auth/signup": http.MethodPost,
		"/api/auth/signin": http.MethodPost,
	}
)

// CheckJWT verifies the HS256 bearer token and stores its claims in the
// request context under claims.TokenContextKey.
func CheckJWT(secret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					if method, ok := noSessUrls[template]; ok && method == r.Method {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				unauthorized(w, "Authorization header missing")
				return
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "Invalid authorization header format. Expected 'Bearer <token>'")
				return
			}

			hashSecretGetter := func(token *jwt.Token) (interface{}, error) {
				method, ok := token.Method.(*jwt.SigningMethodHMAC)
				if !ok || method.Alg() != "HS256" {
					return nil, errors.New("bad sign method")
				}
				return secret, nil
			}

			c := &claims.Claims{}
			token, err := jwt.ParseWithClaims(parts[1], c, hashSecretGetter)
			if err != nil || !token.Valid {
				logger.Debug("jwt rejected", "error", err)
				var vErr *jwt.ValidationError
				if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
					unauthorized(w, "Token has expired")
					return
				}
				unauthorized(w, "Invalid authentication token")
				return
			}
			if c.Identity() == "" {
				unauthorized(w, "Invalid token payload: missing user ID")
				return
			}

			ctx := context.WithValue(r.Context(), claims.TokenContextKey, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
