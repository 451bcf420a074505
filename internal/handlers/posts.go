package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/middleware"
	"github.com/avawrights/tech-news/backend/internal/models"
	"github.com/avawrights/tech-news/backend/internal/repository"
)

type PostHandler struct {
	posts *repository.PostRepository
}

func NewPostHandler(posts *repository.PostRepository) *PostHandler {
	return &PostHandler{posts: posts}
}

// GetPosts returns all posts with their live vote counts, comments and
// author usernames.
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.posts.ListWithVoteCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// If no posts, return empty array not null
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
		return
	}

	post, err := h.posts.GetWithVoteCount(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost creates a new post owned by the session user.
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := c.GetInt(middleware.KeyUserID)

	post := models.Post{
		Title:   input.Title,
		PostURL: input.PostURL,
		UserID:  userID,
	}
	if err := h.posts.Create(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.posts.GetWithVoteCount(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, created)
}

// Upvote records a vote by the session user on a post and returns the post
// with its updated vote count.
func (h *PostHandler) Upvote(c *gin.Context) {
	var input models.UpvoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := c.GetInt(middleware.KeyUserID)

	if err := h.posts.Upvote(userID, input.PostID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
		case errors.Is(err, repository.ErrDuplicateVote):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already upvoted this post"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	post, err := h.posts.GetWithVoteCount(input.PostID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost applies a partial update to a post.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	patch := map[string]interface{}{}
	if input.Title != nil {
		patch["title"] = *input.Title
	}
	if input.PostURL != nil {
		patch["post_url"] = *input.PostURL
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields to update"})
		return
	}

	rows, err := h.posts.Update(id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": rows})
}

// DeletePost removes a post by id.
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
		return
	}

	rows, err := h.posts.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No post found with this id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": rows})
}
