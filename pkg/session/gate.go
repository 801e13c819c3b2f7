package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type Navigator interface {
	Navigate(route Route)
}

type NavigatorFunc func(route Route)

func (f NavigatorFunc) Navigate(route Route) { f(route) }

// Gate is the per-view session context. It holds no token of its own and
// re-reads the store on every check.
type Gate struct {
	store  Store
	nav    Navigator
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Gate)

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func NewGate(store Store, nav Navigator, logger *slog.Logger, opts ...Option) *Gate {
	g := &Gate{
		store:  store,
		nav:    nav,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Current validates the stored token. A token that is present but unusable
// is removed from the store before the cause is returned.
func (g *Gate) Current() (Identity, error) {
	token, err := g.store.Load()
	if err != nil {
		g.logger.Warn("session store unreadable", "error", err)
		return Identity{}, fmt.Errorf("%w: %v", ErrMissing, err)
	}

	id, err := Validate(token, g.now())
	if err != nil {
		if !errors.Is(err, ErrMissing) {
			g.logger.Debug("discarding session token", "error", err)
			g.clear()
		}
		return Identity{}, err
	}
	return id, nil
}

func (g *Gate) IsAuthenticated() bool {
	_, err := g.Current()
	return err == nil
}

func (g *Gate) CurrentUserID() (string, bool) {
	id, err := g.Current()
	if err != nil {
		return "", false
	}
	return id.UserID, true
}

// Token returns the stored bearer token if it is still usable.
func (g *Gate) Token() (string, error) {
	if _, err := g.Current(); err != nil {
		return "", err
	}
	return g.store.Load()
}

// EnforceProtected guards a protected view: on failure the token is cleared
// and the user is sent to signin; the cause is returned for the caller to log.
func (g *Gate) EnforceProtected() (Identity, error) {
	id, err := g.Current()
	if err != nil {
		g.clear()
		g.nav.Navigate(RouteSignin)
		return Identity{}, err
	}
	return id, nil
}

// SignIn persists a freshly issued token. It refuses tokens that would fail
// the gate straight away.
func (g *Gate) SignIn(token string) (Identity, error) {
	id, err := Validate(token, g.now())
	if err != nil {
		return Identity{}, err
	}
	if err := g.store.Save(token); err != nil {
		return Identity{}, fmt.Errorf("save session token: %w", err)
	}
	g.logger.Info("signed in", "user", id.UserID)
	return id, nil
}

// Invalidate handles a token the backend refused even though it looked
// usable here: it is cleared and the user is sent to signin.
func (g *Gate) Invalidate(cause error) {
	g.logger.Debug("session rejected by backend", "error", cause)
	g.clear()
	g.nav.Navigate(RouteSignin)
}

func (g *Gate) Logout() error {
	err := g.store.Clear()
	g.nav.Navigate(RouteSignin)
	return err
}

func (g *Gate) clear() {
	if err := g.store.Clear(); err != nil {
		g.logger.Warn("failed to clear session token", "error", err)
	}
}
