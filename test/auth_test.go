package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/auth/packets"
)

func TestSignupLoginAndProfile(t *testing.T) {
	router, _, token := newTestEnv(t)

	// profile without token
	w := doJSON(router, http.MethodGet, "/api/admin/auth/current_profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// profile with token
	w = doJSON(router, http.MethodGet, "/api/admin/auth/current_profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody[packets.ProfileResponse](t, w)
	assert.Equal(t, "admin@example.com", profile.Email)

	// login with the same credentials
	w = doJSON(router, http.MethodPost, "/api/admin/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// wrong password
	w = doJSON(router, http.MethodPost, "/api/admin/auth/login", "", map[string]any{
		"email":    "admin@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	router, _, _ := newTestEnv(t)

	w := doJSON(router, http.MethodPost, "/api/admin/auth/signup", "", map[string]any{
		"email":    "admin@example.com",
		"password": "anotherpassword",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
