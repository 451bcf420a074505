package repository

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/avawrights/tech-news/backend/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns all users. The password column is never selected.
func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Omit("password").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return users, nil
}

// GetWithActivity returns one user together with their authored posts, their
// comments (each carrying the parent post's title) and the posts they voted
// for, reached through the votes join.
func (r *UserRepository) GetWithActivity(id int) (*models.User, error) {
	var user models.User
	err := r.db.Omit("password").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "post_url", "created_at", "user_id")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "comment_text", "created_at", "user_id", "post_id")
		}).
		Preload("Comments.Post", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Preload("VotedPosts").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// GetByEmail returns a user including the stored password hash, for
// credential verification only.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether either identifier is already taken.
func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check existing user failed: %w", err)
	}
	return count > 0, nil
}

// Create persists a new user, hashing the plaintext password first. Every
// path that stores a password goes through here or Update, so hashing is
// never skipped.
func (r *UserRepository) Create(user *models.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}
	user.Password = string(hashed)

	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

// Update applies a partial update and returns the affected row count. A
// password in the patch is re-hashed before it is stored.
func (r *UserRepository) Update(id int, patch map[string]interface{}) (int64, error) {
	if plaintext, ok := patch["password"].(string); ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
		if err != nil {
			return 0, fmt.Errorf("hash password failed: %w", err)
		}
		patch["password"] = string(hashed)
	}

	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return 0, fmt.Errorf("update user failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes a user and returns the affected row count.
func (r *UserRepository) Delete(id int) (int64, error) {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete user failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func CheckPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
