package handlers

import (
	"gorm.io/gorm"

	"github.com/avawrights/tech-news/backend/internal/repository"
	"github.com/avawrights/tech-news/backend/internal/session"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Post    *PostHandler
	Comment *CommentHandler
	Home    *HomeHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, sessions session.Store) *Handler {
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)

	return &Handler{
		Auth:    NewAuthHandler(users, sessions),
		User:    NewUserHandler(users),
		Post:    NewPostHandler(posts),
		Comment: NewCommentHandler(comments),
		Home:    NewHomeHandler(posts),
	}
}
