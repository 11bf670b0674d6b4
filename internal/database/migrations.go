package database

import (
	"fmt"

	"github.com/yukikurage/code-explainer-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the users and code_submissions tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.CodeSubmission{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Named indexes are declared on the models; fail loudly if a dialect
	// silently skipped one.
	indexes := []struct {
		model any
		name  string
	}{
		{&models.CodeSubmission{}, "idx_code_submissions_user_created"},
	}
	for _, idx := range indexes {
		if !db.Migrator().HasIndex(idx.model, idx.name) {
			if err := db.Migrator().CreateIndex(idx.model, idx.name); err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}
	}

	return nil
}
