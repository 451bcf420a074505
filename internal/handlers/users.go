package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/models"
	"github.com/avawrights/tech-news/backend/internal/repository"
)

type UserHandler struct {
	users *repository.UserRepository
}

func NewUserHandler(users *repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// GetUsers returns all users, passwords excluded.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// If no users, return empty array not null
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user with their posts, comments and voted posts.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No user found with this id"})
		return
	}

	user, err := h.users.GetWithActivity(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No user found with this id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userWithActivity(user))
}

// userWithActivity builds the nested user response by hand so the collections
// always render as arrays, never null.
func userWithActivity(user *models.User) gin.H {
	posts := make([]gin.H, 0, len(user.Posts))
	for _, post := range user.Posts {
		posts = append(posts, gin.H{
			"id":         post.ID,
			"title":      post.Title,
			"post_url":   post.PostURL,
			"created_at": post.CreatedAt,
		})
	}

	comments := make([]gin.H, 0, len(user.Comments))
	for _, comment := range user.Comments {
		entry := gin.H{
			"id":           comment.ID,
			"comment_text": comment.CommentText,
			"post_id":      comment.PostID,
			"created_at":   comment.CreatedAt,
		}
		if comment.Post != nil {
			entry["post"] = gin.H{"title": comment.Post.Title}
		}
		comments = append(comments, entry)
	}

	votedPosts := make([]gin.H, 0, len(user.VotedPosts))
	for _, post := range user.VotedPosts {
		votedPosts = append(votedPosts, gin.H{"title": post.Title})
	}

	return gin.H{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"created_at":  user.CreatedAt,
		"updated_at":  user.UpdatedAt,
		"posts":       posts,
		"comments":    comments,
		"voted_posts": votedPosts,
	}
}

// UpdateUser applies a partial update. A changed password is re-hashed on the
// way in, same as on create.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No user found with this id"})
		return
	}

	var input models.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	patch := map[string]interface{}{}
	if input.Username != nil {
		patch["username"] = *input.Username
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}
	if input.Password != nil {
		patch["password"] = *input.Password
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}

	rows, err := h.users.Update(id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No user found with this id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": rows})
}

// DeleteUser removes a user by id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No user found with this id"})
		return
	}

	rows, err := h.users.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No user found with this id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": rows})
}
