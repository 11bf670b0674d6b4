package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/code-explainer-api/internal/dto"
	apierrors "github.com/yukikurage/code-explainer-api/internal/errors"
	"github.com/yukikurage/code-explainer-api/internal/middleware"
	"github.com/yukikurage/code-explainer-api/internal/services"
)

// TokenIssuer issues access tokens at login.
type TokenIssuer interface {
	Issue(userID uint64, username string) (string, error)
	TTL() time.Duration
}

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	tokens      TokenIssuer
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		logger:      logger,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,max=150"`
		Email    string `json:"email" binding:"required,email,max=255"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", bindingDetails(err))
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusOK, dto.ToRegisterResponse(*user))
}

// Login verifies credentials and issues a bearer token. Credentials are
// accepted as an urlencoded form or as JSON.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", bindingDetails(err))
		return
	}

	user, err := h.authService.Verify(req.Username, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to issue token", "request_id", middleware.GetRequestID(c), "error", err, "user_id", user.ID)
		apierrors.InternalError(c, "Failed to issue access token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:     "user authenticated",
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.tokens.TTL().Seconds()),
	})
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateIdentity):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error())
	default:
		h.logger.ErrorContext(c.Request.Context(), "auth request failed", "request_id", middleware.GetRequestID(c), "error", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
