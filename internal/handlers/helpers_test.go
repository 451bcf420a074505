package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/avawrights/tech-news/backend/internal/database"
	"github.com/avawrights/tech-news/backend/internal/middleware"
	"github.com/avawrights/tech-news/backend/internal/session"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, database.Migrate(db))

	return db
}

// setupTestApp wires a fresh Gin engine with the API routes under test.
func setupTestApp(db *gorm.DB, store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandler(db, store)

	r := gin.New()
	r.Use(middleware.LoadSession(store))

	api := r.Group("/api")
	api.GET("/users", h.User.GetUsers)
	api.GET("/users/:id", h.User.GetUser)
	api.POST("/users", h.Auth.Register)
	api.POST("/users/login", h.Auth.Login)
	api.POST("/users/logout", h.Auth.Logout)
	api.PUT("/users/:id", h.User.UpdateUser)
	api.DELETE("/users/:id", h.User.DeleteUser)

	api.GET("/posts", h.Post.GetPosts)
	api.GET("/posts/:id", h.Post.GetPost)
	api.GET("/comments", h.Comment.GetComments)

	protected := api.Group("")
	protected.Use(middleware.RequireLogin())
	protected.POST("/posts", h.Post.CreatePost)
	protected.PUT("/posts/upvote", h.Post.Upvote)
	protected.PUT("/posts/:id", h.Post.UpdatePost)
	protected.DELETE("/posts/:id", h.Post.DeletePost)
	protected.POST("/comments", h.Comment.CreateComment)
	protected.DELETE("/comments/:id", h.Comment.DeleteComment)

	return r
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(r http.Handler, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie extracts the session cookie from a response, if present.
func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	return nil
}

// registerUser registers a user through the API and returns the decoded body
// plus the session cookie handed out with the response.
func registerUser(t *testing.T, r http.Handler, username, email, password string) (map[string]interface{}, *http.Cookie) {
	t.Helper()

	w := doJSON(r, "POST", "/api/users", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	cookie := sessionCookie(w)
	require.NotNil(t, cookie, "register response must set the session cookie")

	return body, cookie
}

