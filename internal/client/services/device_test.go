package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDeviceID_GeneratesOnceAndIsStable(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first, err := EnsureDeviceID(ctx, db)
	require.NoError(t, err)
	_, err = uuid.Parse(first)
	require.NoError(t, err, "device id must be a UUID")

	second, err := EnsureDeviceID(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEnsureDeviceID_RegeneratedAfterClear(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first, err := EnsureDeviceID(ctx, db)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM session`)
	require.NoError(t, err)

	second, err := EnsureDeviceID(ctx, db)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
