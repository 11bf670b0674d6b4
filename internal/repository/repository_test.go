package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/code-explainer-api/internal/config"
	"github.com/yukikurage/code-explainer-api/internal/database"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&config.Config{
		DBDriver:   config.DriverSQLite,
		DBURL:      ":memory:",
		DBLogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
