package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nepal-egov/polling-backend/internal/database"
	"github.com/nepal-egov/polling-backend/internal/handlers"
	"github.com/nepal-egov/polling-backend/internal/middleware"
	"github.com/nepal-egov/polling-backend/internal/notify"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db := database.New()

	// Create unified handler
	handler := handlers.NewHandler(db.GetDB(), notify.NewSMSFromEnv())

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Uploaded profile photos
	r.Static("/uploads", handlers.UploadDir())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Poll routes (public reads; optional auth so admins see drafts)
		public := api.Group("")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/polls", s.handler.Poll.GetPolls)
			public.GET("/polls/:id", s.handler.Poll.GetPoll)
			public.GET("/polls/:id/results", s.handler.Vote.GetResults)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Account routes
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.PUT("/me", s.handler.User.UpdateProfile)
			protected.POST("/me/photo", s.handler.User.UploadPhoto)
			protected.DELETE("/me/photo", s.handler.User.DeletePhoto)

			// Voting routes
			protected.POST("/polls/:id/vote", s.handler.Vote.CastVote)
			protected.GET("/polls/:id/vote", s.handler.Vote.GetVoteStatus)

			// Admin routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/polls", s.handler.Poll.CreatePoll)
				admin.PUT("/polls/:id", s.handler.Poll.UpdatePoll)
				admin.PATCH("/polls/:id/status", s.handler.Poll.SetPollStatus)
				admin.DELETE("/polls/:id", s.handler.Poll.DeletePoll)

				admin.GET("/users", s.handler.User.ListUsers)
				admin.PUT("/users/:id", s.handler.User.UpdateUser)
				admin.PATCH("/users/:id/role", s.handler.User.SetUserRole)
				admin.DELETE("/users/:id", s.handler.User.DeleteUser)
			}
		}
	}

	return r
}
