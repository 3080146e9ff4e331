package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tsvs/backend/internal/infrastructure/config"
)

// newTestDB opens a migrated in-memory SQLite database
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewDatabase(
		config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		config.LogConfig{Level: "error"},
		time.Second,
		zap.NewNop(),
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	return db.DB
}
