package services

import (
	"context"
	"time"
)

// Route is the initial screen Bootstrap decides on.
type Route string

const (
	RouteAuthenticated Route = "authenticated"
	RouteLogin         Route = "login"
)

// sleepFn is a test seam for the splash delay.
var sleepFn = time.Sleep

// Bootstrap reads the persisted session and reports which screen to open.
// The splash is held for at least the configured minimum delay, overlapped
// with the storage read; the delay is cosmetic, not a timeout. Any storage
// failure is logged and treated as "logged out" - startup never fails here.
// When a session exists, the API client is repointed at the backend the
// session was established against.
func (a *authService) Bootstrap(ctx context.Context) Route {
	start := time.Now()

	route := RouteLogin

	sess, err := a.CurrentSession(ctx)
	switch {
	case err != nil:
		a.log.Warn(ctx, "session read failed, routing to login", "error", err)
	case sess != nil:
		if sess.WebAPI != "" {
			a.api.SetBackend(sess.WebAPI)
		}
		a.setState(StateAuthenticated)
		route = RouteAuthenticated
	}

	if remaining := a.splashMinDelay - time.Since(start); remaining > 0 {
		sleepFn(remaining)
	}

	return route
}
