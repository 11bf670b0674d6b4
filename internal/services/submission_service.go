package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/code-explainer-api/internal/models"
	"github.com/yukikurage/code-explainer-api/internal/repository"
	"github.com/yukikurage/code-explainer-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound     = errors.New("chat not found")
	ErrCodeTextRequired       = errors.New("code_text is required")
	ErrSearchQueryRequired    = errors.New("search query is required")
	ErrFailedToSaveSubmission = errors.New("failed to save submission")
)

// SubmissionService handles code submissions. Every read and delete is
// scoped to the calling user.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	analyzer       CodeAnalyzer
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(submissionRepo repository.SubmissionRepository, analyzer CodeAnalyzer) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		analyzer:       analyzer,
	}
}

// Submit analyzes the code and records the attempt. A failed analysis is
// still recorded, carrying the failure document.
func (s *SubmissionService) Submit(ctx context.Context, ownerID uint64, codeText string) (*models.CodeSubmission, error) {
	if strings.TrimSpace(codeText) == "" {
		return nil, ErrCodeTextRequired
	}

	analysis := s.analyzer.AnalyzeCode(ctx, codeText)
	return s.Create(ownerID, codeText, analysis)
}

// Create stores a submission with an already computed analysis.
func (s *SubmissionService) Create(ownerID uint64, codeText string, analysis *models.AnalysisResult) (*models.CodeSubmission, error) {
	submission := &models.CodeSubmission{
		UserID:         ownerID,
		Heading:        analysis.HeadingOrNil(),
		CodeText:       codeText,
		AnalysisResult: analysis,
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveSubmission, err)
	}
	return submission, nil
}

// ListByOwner returns the owner's submissions, newest first.
func (s *SubmissionService) ListByOwner(ownerID uint64, page *utils.PaginationParams) ([]models.CodeSubmission, error) {
	submissions, err := s.submissionRepo.ListByOwner(ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// GetByIDAndOwner returns nil, nil when the owner has no such submission.
func (s *SubmissionService) GetByIDAndOwner(id, ownerID uint64) (*models.CodeSubmission, error) {
	submission, err := s.submissionRepo.FindByIDAndOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return submission, nil
}

// SearchByOwner returns the owner's submissions whose code or heading
// contains query. No match is an empty slice; an empty query matches all of
// them.
func (s *SubmissionService) SearchByOwner(ownerID uint64, query string) ([]models.CodeSubmission, error) {
	submissions, err := s.submissionRepo.SearchByOwner(ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search submissions: %w", err)
	}
	return submissions, nil
}

// DeleteByIDAndOwner removes a submission. Someone else's submission is
// reported exactly like a missing one.
func (s *SubmissionService) DeleteByIDAndOwner(id, ownerID uint64) error {
	deleted, err := s.submissionRepo.DeleteByIDAndOwner(id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if deleted == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
