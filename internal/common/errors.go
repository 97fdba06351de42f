// Package common contains shared constants and sentinel errors used across
// erpcli components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Login flow errors.
	ErrNoAccountSelected = errors.New("no account selected")
	ErrLoginInFlight     = errors.New("login already in progress")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Persistence errors. Bootstrap treats these as "logged out", never fatal.
	ErrStorage = errors.New("storage error")
)
