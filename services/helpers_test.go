package services

import (
	"context"
	"testing"

	"recipe-service/database"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dbConn, err := database.OpenMemory(context.Background(), uuid.New().String())
	require.NoError(t, err)
	t.Cleanup(func() { dbConn.Close() })
	return dbConn
}
