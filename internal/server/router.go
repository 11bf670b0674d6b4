// Package server assembles the HTTP routes.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/code-explainer-api/internal/handlers"
	"github.com/yukikurage/code-explainer-api/internal/middleware"
	"github.com/yukikurage/code-explainer-api/internal/repository"
	"github.com/yukikurage/code-explainer-api/internal/services"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router needs. Tokens is the only
// component holding the signing secret.
type Dependencies struct {
	DB       *gorm.DB
	Tokens   *services.TokenService
	Analyzer services.CodeAnalyzer
	Logger   *slog.Logger
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	userRepo := repository.NewUserRepository(deps.DB)
	submissionRepo := repository.NewSubmissionRepository(deps.DB)

	authService := services.NewAuthService(userRepo)
	submissionService := services.NewSubmissionService(submissionRepo, deps.Analyzer)

	authHandler := handlers.NewAuthHandler(authService, deps.Tokens, deps.Logger)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, deps.Logger)

	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Logger), gin.Recovery())

	r.GET("/health", handlers.Health(deps.DB))

	// Auth routes (public)
	user := r.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
	}

	// Submission routes (protected)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))
	{
		protected.POST("/submit-code", submissionHandler.SubmitCode)
		protected.GET("/api/history", submissionHandler.ListHistory)
		protected.GET("/api/history/:id", submissionHandler.GetHistoryItem)
		protected.GET("/search", submissionHandler.Search)
		protected.DELETE("/history/:id", submissionHandler.DeleteHistoryItem)
	}

	return r
}
