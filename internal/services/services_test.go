package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/code-explainer-api/internal/config"
	"github.com/yukikurage/code-explainer-api/internal/database"
	"github.com/yukikurage/code-explainer-api/internal/models"
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

// stubAnalyzer returns a fixed document and records the code it saw.
type stubAnalyzer struct {
	mu     sync.Mutex
	result *models.AnalysisResult
	seen   []string
}

func (a *stubAnalyzer) AnalyzeCode(_ context.Context, code string) *models.AnalysisResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen = append(a.seen, code)
	return a.result
}
