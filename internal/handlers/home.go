package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/middleware"
	"github.com/avawrights/tech-news/backend/internal/models"
	"github.com/avawrights/tech-news/backend/internal/repository"
)

type HomeHandler struct {
	posts *repository.PostRepository
}

func NewHomeHandler(posts *repository.PostRepository) *HomeHandler {
	return &HomeHandler{posts: posts}
}

// Homepage renders the post listing. The posts are flattened to plain
// attribute maps before they reach the template.
func (h *HomeHandler) Homepage(c *gin.Context) {
	posts, err := h.posts.ListWithVoteCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	viewPosts := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		viewPosts = append(viewPosts, flattenPost(post))
	}

	c.HTML(http.StatusOK, "homepage.tmpl", gin.H{
		"posts":    viewPosts,
		"loggedIn": c.GetBool(middleware.KeyLoggedIn),
		"username": c.GetString(middleware.KeyUsername),
	})
}

// flattenPost reduces a post to the attributes the template renders.
func flattenPost(post models.Post) gin.H {
	comments := make([]gin.H, 0, len(post.Comments))
	for _, comment := range post.Comments {
		commenter := ""
		if comment.User != nil {
			commenter = comment.User.Username
		}
		comments = append(comments, gin.H{
			"comment_text": comment.CommentText,
			"username":     commenter,
			"created_at":   comment.CreatedAt,
		})
	}

	author := ""
	if post.User != nil {
		author = post.User.Username
	}

	return gin.H{
		"id":            post.ID,
		"title":         post.Title,
		"post_url":      post.PostURL,
		"username":      author,
		"vote_count":    post.VoteCount,
		"comment_count": len(post.Comments),
		"comments":      comments,
		"created_at":    post.CreatedAt,
	}
}
