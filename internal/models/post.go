package models

import "time"

type Post struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	PostURL string `gorm:"not null" json:"post_url"`
	UserID  int    `gorm:"not null" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Votes    []Vote    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	// VoteCount is derived at read time from the votes table; it has no column.
	VoteCount int `gorm:"->;-:migration" json:"vote_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	PostURL string `json:"post_url" binding:"required,url"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	PostURL *string `json:"post_url" binding:"omitempty,url"`
}

type UpvoteRequest struct {
	PostID int `json:"post_id" binding:"required"`
}
