package repository

import "errors"

var (
	// ErrNotFound signals that no row matched; handlers map it to 404.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateVote signals a second vote by the same user on the same post.
	ErrDuplicateVote = errors.New("user already voted on this post")
)
