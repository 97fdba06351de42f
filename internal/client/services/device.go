package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmravi/erpcli/internal/client/repositories/session"
	"github.com/dmravi/erpcli/internal/common"
)

// EnsureDeviceID returns the per-install identifier, generating and
// persisting a fresh UUID when none is stored (first run, or first run after
// a logout cleared it).
func EnsureDeviceID(ctx context.Context, db *sql.DB) (string, error) {
	repo := session.NewSQLiteRepository(db)

	id, err := repo.Get(ctx, common.KeyDeviceID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	if err := repo.Set(ctx, common.KeyDeviceID, id); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return id, nil
}
