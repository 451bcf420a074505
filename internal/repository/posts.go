package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/avawrights/tech-news/backend/internal/models"
)

// voteCountSelect annotates each post with a correlated count of its votes.
// The count is always computed live so it can never drift from the vote rows.
const voteCountSelect = "posts.*, (SELECT COUNT(*) FROM votes WHERE votes.post_id = posts.id) AS vote_count"

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// ListWithVoteCounts returns all posts, newest first, each annotated with its
// vote_count and carrying its comments (with commenting usernames) and the
// authoring user's username.
func (r *PostRepository) ListWithVoteCounts() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Select(voteCountSelect).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "comment_text", "post_id", "user_id", "created_at")
		}).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Order("posts.created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

// GetWithVoteCount returns a single post in the same shape as ListWithVoteCounts.
func (r *PostRepository) GetWithVoteCount(id int) (*models.Post, error) {
	var post models.Post
	err := r.db.Model(&models.Post{}).
		Select(voteCountSelect).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "comment_text", "post_id", "user_id", "created_at")
		}).
		Preload("Comments.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Create(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(id int, patch map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return 0, fmt.Errorf("update post failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PostRepository) Delete(id int) (int64, error) {
	result := r.db.Delete(&models.Post{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete post failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Upvote records one vote by a user on a post. The post must exist and the
// user must not have voted on it before.
func (r *PostRepository) Upvote(userID, postID int) error {
	var post models.Post
	if err := r.db.Select("id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("query post by id failed: %w", err)
	}

	var existing models.Vote
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
	if err == nil {
		return ErrDuplicateVote
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("query existing vote failed: %w", err)
	}

	vote := models.Vote{UserID: userID, PostID: postID}
	if err := r.db.Create(&vote).Error; err != nil {
		return fmt.Errorf("create vote failed: %w", err)
	}
	return nil
}

// VoteCount returns the live number of votes referencing a post.
func (r *PostRepository) VoteCount(postID int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Vote{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count votes failed: %w", err)
	}
	return count, nil
}
