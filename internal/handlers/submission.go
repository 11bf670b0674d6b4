package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/code-explainer-api/internal/dto"
	apierrors "github.com/yukikurage/code-explainer-api/internal/errors"
	"github.com/yukikurage/code-explainer-api/internal/middleware"
	"github.com/yukikurage/code-explainer-api/internal/services"
	"github.com/yukikurage/code-explainer-api/internal/utils"
)

// SubmissionHandler serves code submission and history endpoints. All of
// them require RequireAuth in front.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
	logger            *slog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService, logger *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// SubmitCode analyzes a snippet and stores the result
func (h *SubmissionHandler) SubmitCode(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubmitCodeRequest struct {
		CodeText string `json:"code_text" binding:"required"`
	}

	var req SubmitCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", bindingDetails(err))
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), userID, req.CodeText)
	if err != nil {
		h.respondSubmissionError(c, err)
		return
	}

	if submission.AnalysisResult.Failed() {
		h.logger.WarnContext(c.Request.Context(), "submission stored without analysis",
			"request_id", middleware.GetRequestID(c),
			"username", middleware.GetUsername(c),
			"submission_id", submission.ID,
		)
	}

	c.JSON(http.StatusOK, dto.ToSubmitCodeResponse(*submission))
}

// ListHistory returns the caller's submissions, newest first
func (h *SubmissionHandler) ListHistory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var page *utils.PaginationParams
	if params, ok := utils.GetPaginationParams(c); ok {
		page = &params
	}

	submissions, err := h.submissionService.ListByOwner(userID, page)
	if err != nil {
		h.respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTOs(submissions))
}

// GetHistoryItem returns one of the caller's submissions, or null when the
// caller has no submission with that id
func (h *SubmissionHandler) GetHistoryItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	submission, err := h.submissionService.GetByIDAndOwner(id, userID)
	if err != nil {
		h.respondSubmissionError(c, err)
		return
	}
	if submission == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

// Search finds the caller's submissions whose code or heading contains q
func (h *SubmissionHandler) Search(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	// An empty q matches everything; only a missing one is rejected.
	query, ok := c.GetQuery("q")
	if !ok {
		apierrors.BadRequest(c, services.ErrSearchQueryRequired.Error())
		return
	}

	submissions, err := h.submissionService.SearchByOwner(userID, query)
	if err != nil {
		h.respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTOs(submissions))
}

// DeleteHistoryItem deletes one of the caller's submissions
func (h *SubmissionHandler) DeleteHistoryItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.submissionService.DeleteByIDAndOwner(id, userID); err != nil {
		h.respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "chat deleted successfully",
	})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *SubmissionHandler) respondSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCodeTextRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		h.logger.ErrorContext(c.Request.Context(), "submission request failed", "request_id", middleware.GetRequestID(c), "error", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
