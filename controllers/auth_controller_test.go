package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsTokenAndProfile(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username":  "amina",
		"full_name": "Amina Njoya",
		"email":     "amina@example.com",
		"password":  "secret123",
		"country":   "CM",
		"city":      "Douala",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "amina", data["username"])
	assert.Equal(t, "Amina Njoya", data["fullName"])
	assert.NotEmpty(t, data["token"])
	assert.NotZero(t, data["userId"])
}

func TestRegisterMissingFields(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "amina",
		"email":    "amina@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, db, _ := newTestRouter(t)
	createTestUser(t, db, "amina", "amina@example.com")

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username":  "other",
		"full_name": "Someone Else",
		"email":     "amina@example.com",
		"password":  "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["message"], "already exists")
}

func TestLogin(t *testing.T) {
	r, db, _ := newTestRouter(t)
	createTestUser(t, db, "amina", "amina@example.com")

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "amina@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "amina@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, db, _ := newTestRouter(t)
	user := createTestUser(t, db, "amina", "amina@example.com")

	w := doJSON(r, http.MethodPut, "/api/users/1", "", map[string]interface{}{"city": "Yaoundé"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPut, "/api/users/1", "Bearer not-a-token", map[string]interface{}{"city": "Yaoundé"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPut, "/api/users/1", authHeader(t, user), map[string]interface{}{"city": "Yaoundé"})
	assert.Equal(t, http.StatusOK, w.Code)
}
