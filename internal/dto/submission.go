package dto

import (
	"time"

	"github.com/yukikurage/code-explainer-api/internal/models"
)

// SubmissionDTO is a history entry
type SubmissionDTO struct {
	ID        uint64                 `json:"id"`
	UserID    uint64                 `json:"user_id"`
	Heading   *string                `json:"heading"`
	CodeText  string                 `json:"code_text"`
	AIResult  *models.AnalysisResult `json:"ai_result"`
	CreatedAt time.Time              `json:"created_at"`
}

// SubmitCodeResponse echoes the code with the analysis it received
type SubmitCodeResponse struct {
	CodeText   string                 `json:"code_text"`
	AIResponse *models.AnalysisResult `json:"ai_response"`
}

// ToSubmissionDTO converts a submission to DTO
func ToSubmissionDTO(s models.CodeSubmission) SubmissionDTO {
	return SubmissionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Heading:   s.Heading,
		CodeText:  s.CodeText,
		AIResult:  s.AnalysisResult,
		CreatedAt: s.CreatedAt,
	}
}

// ToSubmissionDTOs converts submissions to DTOs, never returning nil so the
// JSON is [] rather than null
func ToSubmissionDTOs(submissions []models.CodeSubmission) []SubmissionDTO {
	dtos := make([]SubmissionDTO, len(submissions))
	for i, s := range submissions {
		dtos[i] = ToSubmissionDTO(s)
	}
	return dtos
}

// ToSubmitCodeResponse converts a new submission to the submit response
func ToSubmitCodeResponse(s models.CodeSubmission) SubmitCodeResponse {
	return SubmitCodeResponse{
		CodeText:   s.CodeText,
		AIResponse: s.AnalysisResult,
	}
}
