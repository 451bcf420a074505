package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avawrights/tech-news/backend/internal/session"
)

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	tests := []struct {
		name           string
		requestBody    map[string]string
		expectedStatus int
	}{
		{
			name: "valid signup",
			requestBody: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "missing username",
			requestBody: map[string]string{
				"email":    "test2@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "malformed email",
			requestBody: map[string]string{
				"username": "testuser2",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			requestBody: map[string]string{
				"username": "testuser3",
				"email":    "test3@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			requestBody: map[string]string{
				"username": "testuser",
				"email":    "test4@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(app, "POST", "/api/users", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestRegisterNeverReturnsPassword(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	body, _ := registerUser(t, app, "nina", "nina@x.com", "pw1secret")

	assert.NotZero(t, body["id"])
	assert.Equal(t, "nina", body["username"])
	assert.Equal(t, "nina@x.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestRegisterPersistsSessionBeforeResponding(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	body, cookie := registerUser(t, app, "nina", "nina@x.com", "pw1secret")

	// The token the client received must already resolve to a stored,
	// authenticated session.
	sess, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.True(t, sess.LoggedIn)
	assert.Equal(t, int(body["id"].(float64)), sess.UserID)
	assert.Equal(t, "nina", sess.Username)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	registerUser(t, app, "nina", "nina@x.com", "pw1secret")

	tests := []struct {
		name            string
		requestBody     map[string]string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "unknown email",
			requestBody: map[string]string{
				"email":    "nobody@x.com",
				"password": "pw1secret",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "No user with that email address!",
		},
		{
			name: "wrong password",
			requestBody: map[string]string{
				"email":    "nina@x.com",
				"password": "wrong",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Incorrect password!",
		},
		{
			name: "valid credentials",
			requestBody: map[string]string{
				"email":    "nina@x.com",
				"password": "pw1secret",
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "You are now logged in!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(app, "POST", "/api/users/login", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMessage, body["message"])
		})
	}
}

func TestLoginFailuresShareShape(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	registerUser(t, app, "nina", "nina@x.com", "pw1secret")

	unknown := doJSON(app, "POST", "/api/users/login", map[string]string{
		"email": "nobody@x.com", "password": "pw1secret",
	})
	wrong := doJSON(app, "POST", "/api/users/login", map[string]string{
		"email": "nina@x.com", "password": "wrong",
	})

	// Same status and structure whether the email or the password was bad.
	assert.Equal(t, unknown.Code, wrong.Code)

	var unknownBody, wrongBody map[string]interface{}
	require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &unknownBody))
	require.NoError(t, json.Unmarshal(wrong.Body.Bytes(), &wrongBody))
	assert.Contains(t, unknownBody, "message")
	assert.Contains(t, wrongBody, "message")
}

func TestLoginResponseOmitsPassword(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	registerUser(t, app, "nina", "nina@x.com", "pw1secret")

	w := doJSON(app, "POST", "/api/users/login", map[string]string{
		"email": "nina@x.com", "password": "pw1secret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "nina", body.User["username"])
	assert.NotContains(t, body.User, "password")
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	_, cookie := registerUser(t, app, "nina", "nina@x.com", "pw1secret")

	w := doJSON(app, "POST", "/api/users/logout", nil, cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The session is gone server-side.
	_, err := store.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, session.ErrNoSession)

	// A second logout with the stale cookie is anonymous again.
	w = doJSON(app, "POST", "/api/users/logout", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogoutAnonymousIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	w := doJSON(app, "POST", "/api/users/logout", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestRegisterGetLoginScenario walks the register → fetch → bad-login flow
// end to end.
func TestRegisterGetLoginScenario(t *testing.T) {
	db := setupTestDB(t)
	store := session.NewMemoryStore()
	app := setupTestApp(db, store)

	body, _ := registerUser(t, app, "nina", "nina@x.com", "pw1")
	id := int(body["id"].(float64))

	w := doJSON(app, "GET", "/api/users/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.NotContains(t, fetched, "password")
	assert.Equal(t, []interface{}{}, fetched["posts"])
	assert.Equal(t, []interface{}{}, fetched["comments"])
	assert.Equal(t, []interface{}{}, fetched["voted_posts"])

	w = doJSON(app, "POST", "/api/users/login", map[string]string{
		"email": "nina@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var loginBody map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginBody))
	assert.Equal(t, "Incorrect password!", loginBody["message"])
}
