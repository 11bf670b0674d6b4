package repository

import (
	"strings"

	"github.com/yukikurage/code-explainer-api/internal/database"
	"github.com/yukikurage/code-explainer-api/internal/models"
	"github.com/yukikurage/code-explainer-api/internal/utils"
	"gorm.io/gorm"
)

// likeEscape is portable across postgres, mysql and sqlite; backslash is not
// (mysql treats it as a string-literal escape).
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create stores a new submission
func (r *GormSubmissionRepository) Create(submission *models.CodeSubmission) error {
	return r.db.Create(submission).Error
}

// ListByOwner returns the owner's submissions, newest first
func (r *GormSubmissionRepository) ListByOwner(ownerID uint64, page *utils.PaginationParams) ([]models.CodeSubmission, error) {
	submissions := []models.CodeSubmission{}

	query := r.db.Scopes(database.OwnedBy(ownerID), database.NewestFirst)
	if page != nil {
		query = query.Scopes(database.Paginate(*page))
	}

	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// FindByIDAndOwner finds a submission the owner holds
func (r *GormSubmissionRepository) FindByIDAndOwner(id, ownerID uint64) (*models.CodeSubmission, error) {
	var submission models.CodeSubmission
	if err := r.db.Where("id = ? AND user_id = ?", id, ownerID).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// SearchByOwner finds the owner's submissions whose code or heading contains
// query, ignoring case. Wildcards in query match literally.
func (r *GormSubmissionRepository) SearchByOwner(ownerID uint64, query string) ([]models.CodeSubmission, error) {
	submissions := []models.CodeSubmission{}

	pattern := "%" + likeReplacer.Replace(strings.ToLower(query)) + "%"
	err := r.db.Scopes(database.OwnedBy(ownerID), database.NewestFirst).
		Where("(LOWER(code_text) LIKE ? ESCAPE '"+likeEscape+"' OR LOWER(heading) LIKE ? ESCAPE '"+likeEscape+"')", pattern, pattern).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// DeleteByIDAndOwner removes the submission only if the owner holds it
func (r *GormSubmissionRepository) DeleteByIDAndOwner(id, ownerID uint64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.CodeSubmission{})
	return result.RowsAffected, result.Error
}
