package models

import "time"

type Comment struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	CommentText string `gorm:"not null" json:"comment_text"`
	UserID      int    `gorm:"not null" json:"user_id"`
	PostID      int    `gorm:"not null" json:"post_id"`
	User        *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post        *Post  `gorm:"foreignKey:PostID" json:"post,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	CommentText string `json:"comment_text" binding:"required,min=1,max=500"`
	PostID      int    `json:"post_id" binding:"required"`
}
