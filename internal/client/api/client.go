// Package api implements the HTTP client for the ERP backend's login
// contract: account resolution, primary login, and the auth-user exchange.
package api

import (
	"context"

	"github.com/dmravi/erpcli/internal/client/models"
)

// Client is the surface the services consume. The backend base URL is an
// explicit value on the client, not a package global: callers switch it with
// SetBackend and every subsequent request targets the new base.
type Client interface {
	// ResolveAccounts returns the company bindings available to a username.
	ResolveAccounts(ctx context.Context, username string) ([]models.Account, error)

	// Login performs the primary login for the given account and returns the
	// authenticate id to present to FetchAuthUser. The password must already
	// be encrypted with the credential cipher.
	Login(ctx context.Context, acc models.Account, username, encryptedPassword string) (string, error)

	// FetchAuthUser exchanges an authenticate id for the user profile. The id
	// is sent as the raw Authorization header value.
	FetchAuthUser(ctx context.Context, authenticateID string) (*models.AuthUser, error)

	// SetBackend repoints the client at a different backend base URL.
	SetBackend(base string)

	// Backend reports the base URL requests currently target.
	Backend() string

	Close() error
}
