package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avawrights/tech-news/backend/internal/middleware"
	"github.com/avawrights/tech-news/backend/internal/models"
	"github.com/avawrights/tech-news/backend/internal/repository"
	"github.com/avawrights/tech-news/backend/internal/session"
)

type AuthHandler struct {
	users    *repository.UserRepository
	sessions session.Store
}

func NewAuthHandler(users *repository.UserRepository, sessions session.Store) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// Register handles user registration. The session is persisted before the
// response is written, so the client never acts on a session that was not
// durably stored.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	taken, err := h.users.ExistsByUsernameOrEmail(input.Username, input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username or email already exists"})
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
	if err := h.users.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.promoteSession(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login verifies credentials and promotes the session to authenticated.
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No user with that email address!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !repository.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Incorrect password!"})
		return
	}

	if err := h.promoteSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "message": "You are now logged in!"})
}

// Logout destroys the active session. Logging out of an anonymous session is
// a 404, matching the original application's behavior.
func (h *AuthHandler) Logout(c *gin.Context) {
	loggedIn, _ := c.Get(middleware.KeyLoggedIn)
	if loggedIn != true {
		c.Status(http.StatusNotFound)
		return
	}

	token := c.GetString(middleware.KeySessionToken)
	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil && !errors.Is(err, session.ErrNoSession) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// promoteSession stores an authenticated session and hands the client its
// token as an HttpOnly cookie.
func (h *AuthHandler) promoteSession(c *gin.Context, user *models.User) error {
	token, err := h.sessions.Create(c.Request.Context(), session.Session{
		UserID:   user.ID,
		Username: user.Username,
		LoggedIn: true,
	})
	if err != nil {
		return err
	}

	c.SetCookie(session.CookieName, token, 0, "/", "", false, true)
	return nil
}
