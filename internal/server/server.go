package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/config"
	"github.com/avawrights/tech-news/backend/internal/database"
	"github.com/avawrights/tech-news/backend/internal/handlers"
	"github.com/avawrights/tech-news/backend/internal/middleware"
	"github.com/avawrights/tech-news/backend/internal/session"
)

type Server struct {
	cfg      *config.Config
	db       database.Service
	sessions session.Store
	handler  *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer(cfg *config.Config, db database.Service, sessions session.Store) *http.Server {
	handler := handlers.NewHandler(db.GetDB(), sessions)

	newServer := &Server{
		cfg:      cfg,
		db:       db,
		sessions: sessions,
		handler:  handler,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", cfg.Port)
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

	// Every request resolves its session cookie before dispatch.
	r.Use(middleware.LoadSession(s.sessions))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Server-rendered homepage
	if s.cfg.TemplateGlob != "" {
		r.LoadHTMLGlob(s.cfg.TemplateGlob)
		r.GET("/", s.handler.Home.Homepage)
	}

	// API routes
	api := r.Group("/api")
	{
		// User routes (public)
		api.GET("/users", s.handler.User.GetUsers)
		api.GET("/users/:id", s.handler.User.GetUser)
		api.POST("/users", s.handler.Auth.Register)
		api.POST("/users/login", s.handler.Auth.Login)
		api.POST("/users/logout", s.handler.Auth.Logout)
		api.PUT("/users/:id", s.handler.User.UpdateUser)
		api.DELETE("/users/:id", s.handler.User.DeleteUser)

		// Post routes (public reads)
		api.GET("/posts", s.handler.Post.GetPosts)
		api.GET("/posts/:id", s.handler.Post.GetPost)

		// Comment routes (public reads)
		api.GET("/comments", s.handler.Comment.GetComments)

		// Protected routes (authenticated session required)
		protected := api.Group("")
		protected.Use(middleware.RequireLogin())
		{
			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/upvote", s.handler.Post.Upvote)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)

			protected.POST("/comments", s.handler.Comment.CreateComment)
			protected.DELETE("/comments/:id", s.handler.Comment.DeleteComment)
		}
	}

	return r
}
