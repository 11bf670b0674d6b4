package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/code-explainer-api/internal/constants"
	apierrors "github.com/yukikurage/code-explainer-api/internal/errors"
	"github.com/yukikurage/code-explainer-api/internal/services"
)

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (services.Identity, error)
}

// RequireAuth checks the Authorization bearer token and stores the caller's
// identity in the context
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			apierrors.AbortWithError(c, http.StatusUnauthorized,
				apierrors.NewAPIError(apierrors.ErrCodeUnauthorized, "Not authenticated"))
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, services.ErrTokenExpired) {
				reason = "expired"
			}
			logger.DebugContext(c.Request.Context(), "rejected bearer token", "reason", reason, "error", err)

			c.Header("WWW-Authenticate", "Bearer")
			apierrors.AbortWithError(c, http.StatusUnauthorized,
				apierrors.NewAPIError(apierrors.ErrCodeInvalidToken, "Invalid or expired token"))
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUsername, identity.Username)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUsername)
}
