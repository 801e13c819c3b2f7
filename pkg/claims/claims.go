package claims

import jwt "github.com/dgrijalva/jwt-go"

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

// Claims carries the subject twice: "sub" from StandardClaims and "user_id"
// for consumers that only read the latter.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.StandardClaims
}

// Identity returns the subject, preferring "sub" over "user_id".
func (c *Claims) Identity() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.UserID
}
