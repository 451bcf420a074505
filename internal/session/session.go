// Package session implements the server-side session store. A client holds
// only an opaque token in an HttpOnly cookie; everything else lives in the
// store.
package session

import (
	"context"
	"errors"
)

// CookieName is the cookie that carries the opaque session token.
const CookieName = "tech_news_session"

// ErrNoSession signals that a token does not resolve to a stored session,
// because it expired, was destroyed, or never existed.
var ErrNoSession = errors.New("no such session")

// Session is the server-side record of an authenticated client.
type Session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	LoggedIn bool   `json:"logged_in"`
}

// Store is the session capability: create, read and destroy, keyed by an
// opaque token. Create must durably persist the session before returning so
// callers can respond to the client only after the session exists.
type Store interface {
	Create(ctx context.Context, sess Session) (string, error)
	Get(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}
