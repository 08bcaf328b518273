package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	w := doJSON(router, "POST", "/api/register", "", gin.H{
		"full_name": "Sita Sharma",
		"email":     "sita@example.com.np",
		"password":  "secret123",
		"phone":     "+9779800000000",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "Sita Sharma", user["full_name"])
	assert.Equal(t, "user", user["role"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	payload := gin.H{
		"full_name": "Sita Sharma",
		"email":     "sita@example.com.np",
		"password":  "secret123",
	}
	w := doJSON(router, "POST", "/api/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/register", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Email already registered", body["error"])
}

func TestRegister_InvalidInput(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"full_name": "A", "password": "secret123"}},
		{"bad email", gin.H{"full_name": "A", "email": "not-an-email", "password": "secret123"}},
		{"short password", gin.H{"full_name": "A", "email": "a@b.com", "password": "123"}},
		{"missing name", gin.H{"email": "a@b.com", "password": "secret123"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, "POST", "/api/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	w := doJSON(router, "POST", "/api/register", "", gin.H{
		"full_name": "Ram Thapa",
		"email":     "ram@example.com.np",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/api/login", "", gin.H{
		"email":    "ram@example.com.np",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	// Wrong password and unknown account both come back 401
	w = doJSON(router, "POST", "/api/login", "", gin.H{
		"email":    "ram@example.com.np",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/api/login", "", gin.H{
		"email":    "nobody@example.com.np",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	router, db := setupTestEnvironment(t)
	user, token := seedUser(t, db, "user")

	w := doJSON(router, "GET", "/api/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, user.Email, body["email"])
	// Password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "not-a-real-hash")

	w = doJSON(router, "GET", "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
