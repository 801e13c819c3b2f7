// Package session derives the signed-in identity from the locally stored
// bearer token and decides where unauthenticated views are sent.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

var (
	ErrMissing   = errors.New("session token missing")
	ErrMalformed = errors.New("session token malformed")
	ErrExpired   = errors.New("session token expired")
)

type Route string

const (
	RouteHome   Route = "/"
	RouteSignin Route = "/signin"
	RouteSignup Route = "/signup"
	RouteTasks  Route = "/tasks"
)

func TaskRoute(id string) Route {
	return RouteTasks + Route("/"+id)
}

// Identity is what a valid token says about its holder. ExpiresAt is zero
// when the token never expires.
type Identity struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Validate decodes the claims segment of a JWT-shaped token without checking
// its signature (the backend does that) and reports why it is unusable.
func Validate(token string, now time.Time) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrMissing
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, fmt.Errorf("%w: %d segments", ErrMalformed, len(parts))
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var claims jwt.MapClaims
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil || claims == nil {
		return Identity{}, fmt.Errorf("%w: claims are not a JSON object", ErrMalformed)
	}

	id := Identity{
		UserID: subject(claims),
		Email:  stringClaim(claims, "email"),
	}
	if id.UserID == "" {
		return Identity{}, fmt.Errorf("%w: no sub or user_id claim", ErrMalformed)
	}

	if raw, ok := claims["exp"]; ok && raw != nil {
		exp, err := expiry(raw)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if !exp.IsZero() && !now.Before(exp) {
			return Identity{}, ErrExpired
		}
		id.ExpiresAt = exp
	}

	return id, nil
}

func subject(claims jwt.MapClaims) string {
	if sub := stringClaim(claims, "sub"); sub != "" {
		return sub
	}
	return stringClaim(claims, "user_id")
}

func stringClaim(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// maxExpiry is far enough out to mean "never" and still fits time.Time.
const maxExpiry = 1 << 62

// expiry converts the exp claim. A zero time means the token never expires.
func expiry(raw any) (time.Time, error) {
	n, ok := raw.(json.Number)
	if !ok {
		return time.Time{}, fmt.Errorf("exp is %T, not a number", raw)
	}
	secs, err := n.Float64()
	if err != nil || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return time.Time{}, fmt.Errorf("exp %q is not a number", n)
	}
	switch {
	case secs >= maxExpiry:
		return time.Time{}, nil
	case secs < 0:
		secs = 0
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second))), nil
}
