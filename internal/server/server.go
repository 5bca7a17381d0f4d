package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ideaforge/backend/internal/config"
	"github.com/ideaforge/backend/internal/database"
	"github.com/ideaforge/backend/internal/handlers"
	"github.com/ideaforge/backend/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// New wires the handler stack onto an HTTP server. The database service is
// injected so callers own its lifecycle.
func New(cfg *config.Config, db database.Service) *http.Server {
	s := &Server{
		cfg:     cfg,
		db:      db,
		handler: handlers.NewHandler(db.GetDB(), cfg),
	}

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Idea routes (public reads; views are attributed when a valid
		// token rides along)
		api.GET("/ideas", s.handler.Idea.GetIdeas)
		api.GET("/ideas/:id", middleware.OptionalAuth([]byte(s.cfg.JWTSecret)), s.handler.Idea.GetIdea)

		// Comment routes (public reads)
		api.GET("/ideas/:id/comments", s.handler.Comment.GetComments)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware([]byte(s.cfg.JWTSecret)))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			// Idea protected routes
			protected.POST("/ideas", s.handler.Idea.CreateIdea)
			protected.PUT("/ideas/:id", s.handler.Idea.UpdateIdea)
			protected.DELETE("/ideas/:id", s.handler.Idea.DeleteIdea)
			protected.POST("/ideas/:id/vote", s.handler.Vote.VoteIdea)
			protected.POST("/ideas/:id/bookmark", s.handler.Bookmark.ToggleBookmark)

			// Comment protected routes
			protected.POST("/ideas/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/comments/:commentId/vote", s.handler.Vote.VoteComment)
			protected.PUT("/comments/:commentId", s.handler.Comment.UpdateComment)
			protected.DELETE("/comments/:commentId", s.handler.Comment.DeleteComment)

			// User protected routes
			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)
			protected.GET("/preferences", s.handler.User.GetPreferences)
			protected.PUT("/preferences", s.handler.User.UpdatePreferences)
			protected.GET("/bookmarks", s.handler.Bookmark.GetBookmarks)

			// Recommendation routes
			protected.GET("/recommendations/ideas", s.handler.Recommendation.GetRecommendations)
			protected.GET("/recommendations/trending", s.handler.Recommendation.GetTrending)
		}
	}

	return r
}
