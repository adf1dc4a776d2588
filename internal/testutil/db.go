package testutil

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organiz-api/internal/database"
	"github.com/yukikurage/organiz-api/internal/logging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory sqlite database. The pool is pinned to a
// single connection since every sqlite :memory: connection is its own database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := logging.Discard()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(log, logrus.ErrorLevel))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, log))
	return db
}
