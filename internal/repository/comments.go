package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avawrights/tech-news/backend/internal/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) List() ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username")
		}).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) Delete(id int) (int64, error) {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete comment failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
