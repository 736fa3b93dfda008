package session

import (
	"context"

	"go.uber.org/zap"
)

// Route classifies the view a user is trying to enter.
type Route int

const (
	// RouteAdmin is any protected admin view.
	RouteAdmin Route = iota
	// RouteLogin is the admin login view.
	RouteLogin
)

func (r Route) String() string {
	switch r {
	case RouteAdmin:
		return "admin"
	case RouteLogin:
		return "login"
	}
	return "unknown"
}

// Decision is the guard's verdict for a navigation.
type Decision int

const (
	Proceed Decision = iota
	RedirectLogin
	StayOnLogin
	RedirectAdminHome
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case RedirectLogin:
		return "redirect-login"
	case StayOnLogin:
		return "stay-on-login"
	case RedirectAdminHome:
		return "redirect-admin-home"
	}
	return "unknown"
}

// TokenChecker verifies a token remotely.
type TokenChecker interface {
	CheckToken(ctx context.Context, token string) error
}

// Guard decides whether a navigation may proceed. It holds no cached
// verdict: every Enter with a token makes a fresh remote check.
type Guard struct {
	sessions *Manager
	checker  TokenChecker
	logger   *zap.Logger
}

// NewGuard creates a Guard.
func NewGuard(sessions *Manager, checker TokenChecker, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{sessions: sessions, checker: checker, logger: logger}
}

// Enter evaluates a navigation to route. Any check failure, including a
// network error, counts as an invalid token and clears the session.
func (g *Guard) Enter(ctx context.Context, route Route) Decision {
	tok := g.sessions.Token()
	if tok == "" {
		if route == RouteLogin {
			return StayOnLogin
		}
		return RedirectLogin
	}

	if err := g.checker.CheckToken(ctx, tok); err != nil {
		g.logger.Info("token rejected", zap.Stringer("route", route), zap.Error(err))
		g.sessions.Invalidate()
		if route == RouteLogin {
			return StayOnLogin
		}
		return RedirectLogin
	}

	if route == RouteLogin {
		return RedirectAdminHome
	}
	return Proceed
}
