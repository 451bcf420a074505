package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/session"
)

// Context keys set by LoadSession.
const (
	KeySessionToken = "session_token"
	KeyUserID       = "user_id"
	KeyUsername     = "username"
	KeyLoggedIn     = "logged_in"
)

// LoadSession resolves the session cookie on every request and exposes the
// session fields on the Gin context. Requests without a valid session pass
// through anonymous.
func LoadSession(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), token)
		if err != nil {
			// Stale cookie; treat the client as anonymous.
			c.Next()
			return
		}

		c.Set(KeySessionToken, token)
		c.Set(KeyUserID, sess.UserID)
		c.Set(KeyUsername, sess.Username)
		c.Set(KeyLoggedIn, sess.LoggedIn)
		c.Next()
	}
}

// RequireLogin rejects requests that do not carry an authenticated session.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		loggedIn, exists := c.Get(KeyLoggedIn)
		if !exists || loggedIn != true {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "You must be logged in to do that"})
			return
		}
		c.Next()
	}
}
