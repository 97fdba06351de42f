// Package services contains the application services of the erpcli client.
// This file defines the authentication service: account resolution, the
// two-call login sequence, session persistence, and logout.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmravi/erpcli/internal/client/api"
	"github.com/dmravi/erpcli/internal/client/models"
	"github.com/dmravi/erpcli/internal/client/repositories/session"
	"github.com/dmravi/erpcli/internal/common"
	"github.com/dmravi/erpcli/internal/cryptox"
	"github.com/dmravi/erpcli/internal/dbx"
	"github.com/dmravi/erpcli/internal/logging"
)

// encryptFn is an indirection over the credential cipher, swappable in tests.
var encryptFn = cryptox.Encrypt

// LoginState tracks where the current (or last) login attempt stands.
type LoginState int32

const (
	StateIdle LoginState = iota
	StateSubmitting
	StateAwaitingAuthUser
	StateAuthenticated
	StateFailed
)

func (s LoginState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateAwaitingAuthUser:
		return "awaiting auth user"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - ResolveAccounts: list the company bindings for a username.
//   - Login: run the primary login + auth-user exchange and persist the
//     session atomically. Attempts are serialized; a concurrent call fails
//     with common.ErrLoginInFlight and issues no network traffic.
//   - Logout: wipe the persisted session.
//   - CurrentSession: read the persisted session (nil when logged out).
//   - ValidateSession: replay the auth-user call with the stored token.
//   - Bootstrap: decide the initial screen, holding the splash for at least
//     the configured minimum delay. Storage failures route to login.
//
// All methods honor context cancellation.
type AuthService interface {
	ResolveAccounts(ctx context.Context, username string) ([]models.Account, error)
	Login(ctx context.Context, acc *models.Account, username string, password []byte) error
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*models.Session, error)
	ValidateSession(ctx context.Context) error
	Bootstrap(ctx context.Context) Route
	State() LoginState
	Close(ctx context.Context) error
}

type authService struct {
	api            api.Client
	db             *sql.DB
	log            logging.Logger
	splashMinDelay time.Duration

	loginMu sync.Mutex
	state   atomic.Int32
}

// NewAuthService constructs an AuthService bound to the given API client and
// session database. splashMinDelay is the minimum time Bootstrap holds the
// splash before reporting a route.
func NewAuthService(apiClient api.Client, db *sql.DB, log logging.Logger, splashMinDelay time.Duration) AuthService {
	return &authService{api: apiClient, db: db, log: log, splashMinDelay: splashMinDelay}
}

func (a *authService) getSessionRepo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db)
}

func (a *authService) setState(s LoginState) {
	a.state.Store(int32(s))
}

// State reports the current login state. Advisory for UI and tests only;
// the in-flight guard is the mutex, not this value.
func (a *authService) State() LoginState {
	return LoginState(a.state.Load())
}

// ResolveAccounts issues the account-resolution call. Rejections carry the
// server's message; transport failures surface api.ErrUnavailable.
func (a *authService) ResolveAccounts(ctx context.Context, username string) ([]models.Account, error) {
	return a.api.ResolveAccounts(ctx, username)
}

// Login runs the full authentication sequence for the selected account:
//
//  1. Guard: a nil account fails with common.ErrNoAccountSelected before any
//     network call; an attempt already in flight fails with
//     common.ErrLoginInFlight.
//  2. Submitting: encrypt the password and POST the primary login.
//  3. On primary success, pin the API client to the account's backend and
//     fetch the auth user with the returned authenticate id.
//  4. On secondary success, persist the whole session in one transaction and
//     wipe the password.
//
// There are no retries; every failure ends the attempt. If the secondary
// call fails the backend stays pinned to the account's WebAPI.
func (a *authService) Login(ctx context.Context, acc *models.Account, username string, password []byte) error {
	if acc == nil {
		return common.ErrNoAccountSelected
	}
	if !a.loginMu.TryLock() {
		return common.ErrLoginInFlight
	}
	defer a.loginMu.Unlock()

	a.setState(StateSubmitting)

	encrypted, err := encryptFn(password)
	if err != nil {
		a.setState(StateFailed)
		return fmt.Errorf("encrypting password: %w", err)
	}

	authenticateID, err := a.api.Login(ctx, *acc, username, encrypted)
	if err != nil {
		a.setState(StateFailed)
		return fmt.Errorf("login error: %w", err)
	}

	// All calls from here on, this session included, target the account's
	// own backend. Not rolled back on failure.
	a.api.SetBackend(acc.WebAPI)
	a.setState(StateAwaitingAuthUser)

	user, err := a.api.FetchAuthUser(ctx, authenticateID)
	if err != nil {
		a.setState(StateFailed)
		return fmt.Errorf("auth user error: %w", err)
	}

	if err := a.saveSession(ctx, user, acc.WebAPI); err != nil {
		a.setState(StateFailed)
		return fmt.Errorf("%w: saving session: %v", common.ErrStorage, err)
	}

	common.WipeByteArray(password)
	a.setState(StateAuthenticated)
	return nil
}

// saveSession writes every session key in a single transaction so a crash
// can never leave a half-written session behind.
func (a *authService) saveSession(ctx context.Context, user *models.AuthUser, webAPI string) error {
	fields := map[string]string{
		common.KeyUserToken:   user.AuthenticateID,
		common.KeyUserID:      user.UserID,
		common.KeyCompanyID:   user.CompanyID,
		common.KeyCompanyName: user.CompanyName,
		common.KeyUserName:    user.UserName,
		common.KeyName:        user.Name,
		common.KeyUserType:    user.UserType,
		common.KeyUserTypeID:  user.UserTypeID,
		common.KeyBranchID:    user.BranchID,
		common.KeyBranchName:  user.BranchName,
		common.KeyWebAPI:      webAPI,
	}

	return dbx.WithTx(ctx, a.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.getSessionRepo(tx)
		for key, value := range fields {
			if err := repo.Set(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Logout clears the persisted session entirely.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.getSessionRepo(a.db).Clear(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	a.setState(StateIdle)
	return nil
}

// CurrentSession assembles the persisted session. Returns (nil, nil) when no
// token is stored.
func (a *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	fields, err := a.getSessionRepo(a.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorage, err)
	}

	if fields[common.KeyUserToken] == "" {
		return nil, nil
	}

	return &models.Session{
		Token:       fields[common.KeyUserToken],
		UserID:      fields[common.KeyUserID],
		CompanyID:   fields[common.KeyCompanyID],
		CompanyName: fields[common.KeyCompanyName],
		UserName:    fields[common.KeyUserName],
		Name:        fields[common.KeyName],
		UserType:    fields[common.KeyUserType],
		UserTypeID:  fields[common.KeyUserTypeID],
		BranchID:    fields[common.KeyBranchID],
		BranchName:  fields[common.KeyBranchName],
		WebAPI:      fields[common.KeyWebAPI],
	}, nil
}

// ValidateSession replays the auth-user call with the stored token. Used by
// the background watcher and the status command.
func (a *authService) ValidateSession(ctx context.Context) error {
	token, err := a.getSessionRepo(a.db).Get(ctx, common.KeyUserToken)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if token == "" {
		return common.ErrNotAuthenticated
	}

	if _, err := a.api.FetchAuthUser(ctx, token); err != nil {
		return err
	}
	return nil
}

// Close releases resources held by the underlying API client and database.
func (a *authService) Close(ctx context.Context) error {
	if err := a.api.Close(); err != nil {
		return err
	}
	return a.db.Close()
}
