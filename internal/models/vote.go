package models

import "time"

// Vote records one user upvoting one post. The composite unique index keeps
// a user from voting the same post twice.
type Vote struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    int       `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
