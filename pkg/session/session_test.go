package session_test

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"todoapp/pkg/session"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func makeToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return token
}

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestValidate(t *testing.T) {
	t.Run("valid sub", func(t *testing.T) {
		token := makeToken(t, jwt.MapClaims{"sub": "u1", "email": "u1@example.com", "exp": now.Add(time.Hour).Unix()})

		id, err := session.Validate(token, now)

		require.NoError(t, err)
		assert.Equal(t, "u1", id.UserID)
		assert.Equal(t, "u1@example.com", id.Email)
		assert.Equal(t, now.Add(time.Hour).Unix(), id.ExpiresAt.Unix())
	})

	t.Run("user_id fallback", func(t *testing.T) {
		token := makeToken(t, jwt.MapClaims{"user_id": "u2", "exp": now.Add(time.Minute).Unix()})

		id, err := session.Validate(token, now)

		require.NoError(t, err)
		assert.Equal(t, "u2", id.UserID)
	})

	t.Run("no exp never expires", func(t *testing.T) {
		id, err := session.Validate(makeToken(t, jwt.MapClaims{"sub": "u1"}), now)

		require.NoError(t, err)
		assert.True(t, id.ExpiresAt.IsZero())
	})

	t.Run("exp beyond int64 never expires", func(t *testing.T) {
		id, err := session.Validate("h."+segment(`{"sub":"u1","exp":1e19}`)+".s", now)

		require.NoError(t, err)
		assert.Equal(t, "u1", id.UserID)
		assert.True(t, id.ExpiresAt.IsZero())
	})

	t.Run("padded standard segment", func(t *testing.T) {
		payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"u1"}`))

		_, err := session.Validate("x."+payload+".y", now)

		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := session.Validate("  ", now)
		assert.ErrorIs(t, err, session.ErrMissing)
	})
}

func TestValidateExpiry(t *testing.T) {
	tests := []struct {
		name string
		exp  any
	}{
		{name: "one second ago", exp: now.Add(-time.Second).Unix()},
		{name: "a day ago", exp: now.Add(-24 * time.Hour).Unix()},
		{name: "exactly now", exp: now.Unix()},
		{name: "epoch", exp: 0},
		{name: "before epoch", exp: -5},
		{name: "far before epoch", exp: -1e19},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := session.Validate(makeToken(t, jwt.MapClaims{"sub": "u1", "exp": test.exp}), now)
			assert.ErrorIs(t, err, session.ErrExpired)
		})
	}

	t.Run("fractional exp just ahead", func(t *testing.T) {
		token := "h." + segment(`{"sub":"u1","exp":`+strconv.FormatInt(now.Unix(), 10)+`.5}`) + ".s"

		_, err := session.Validate(token, now)

		assert.NoError(t, err)
	})
}

func TestValidateMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "one segment", token: "garbage"},
		{name: "two segments", token: "a.b"},
		{name: "four segments", token: "a.b.c.d"},
		{name: "bad base64", token: "a.!!!.c"},
		{name: "not json", token: "a." + segment("not json") + ".c"},
		{name: "json array", token: "a." + segment("[1,2]") + ".c"},
		{name: "json null", token: "a." + segment("null") + ".c"},
		{name: "no subject", token: "a." + segment(`{"exp":99999999999}`) + ".c"},
		{name: "empty subject", token: "a." + segment(`{"sub":"","user_id":""}`) + ".c"},
		{name: "exp is a string", token: "a." + segment(`{"sub":"u1","exp":"tomorrow"}`) + ".c"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				id  session.Identity
				err error
			)
			assert.NotPanics(t, func() { id, err = session.Validate(test.token, now) })
			assert.ErrorIs(t, err, session.ErrMalformed)
			assert.Empty(t, id.UserID)
		})
	}
}

func TestTaskRoute(t *testing.T) {
	assert.Equal(t, session.Route("/tasks/t1"), session.TaskRoute("t1"))
}
