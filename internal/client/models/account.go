// Package models defines the client-side domain types.
package models

// Account is one company binding a username may log into. Accounts are
// produced by the account-resolution call and live only for the duration of
// the login flow; they are never persisted.
type Account struct {
	GlobalUserID string
	GlobalID     string
	LocalID      string
	CompanyName  string
	// WebAPI is the base URL of the backend instance owning this account.
	// Not unique across accounts.
	WebAPI string
}
