package repository

import (
	"github.com/yukikurage/code-explainer-api/internal/models"
	"github.com/yukikurage/code-explainer-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error


	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether either identifier is taken
	ExistsByUsernameOrEmail(username, email string) (bool, error)
}

// SubmissionRepository defines the interface for code submission data
// access. Every method except Create is scoped to an owner.
type SubmissionRepository interface {
	// Create stores a new submission
	Create(submission *models.CodeSubmission) error

	// ListByOwner returns the owner's submissions, newest first. A nil
	// page returns everything.
	ListByOwner(ownerID uint64, page *utils.PaginationParams) ([]models.CodeSubmission, error)

	// FindByIDAndOwner returns gorm.ErrRecordNotFound when the id does not
	// exist or belongs to someone else
	FindByIDAndOwner(id, ownerID uint64) (*models.CodeSubmission, error)

	// SearchByOwner matches query case-insensitively against code_text and
	// heading
	SearchByOwner(ownerID uint64, query string) ([]models.CodeSubmission, error)

	// DeleteByIDAndOwner returns the number of rows removed (0 or 1)
	DeleteByIDAndOwner(id, ownerID uint64) (int64, error)
}
