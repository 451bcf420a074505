package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/middleware"
	"github.com/avawrights/tech-news/backend/internal/models"
	"github.com/avawrights/tech-news/backend/internal/repository"
)

type CommentHandler struct {
	comments *repository.CommentRepository
}

func NewCommentHandler(comments *repository.CommentRepository) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// GetComments returns all comments with their authors.
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.comments.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	c.JSON(http.StatusOK, comments)
}

// CreateComment creates a comment on a post, authored by the session user.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var input models.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID := c.GetInt(middleware.KeyUserID)

	comment := models.Comment{
		CommentText: input.CommentText,
		PostID:      input.PostID,
		UserID:      userID,
	}
	if err := h.comments.Create(&comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment by id.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No comment found with this id"})
		return
	}

	rows, err := h.comments.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No comment found with this id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": rows})
}
