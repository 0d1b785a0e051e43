package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ReturnsUserAndToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing name", body: map[string]string{"email": "a@x.com", "password": "secret1"}},
		{name: "malformed email", body: map[string]string{"name": "Alice", "email": "nope", "password": "secret1"}},
		{name: "short password", body: map[string]string{"name": "Alice", "email": "a@x.com", "password": "five5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	body := map[string]string{"name": "Alice", "email": "a@x.com", "password": "secret1"}
	rec := env.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.registerAndLogin("Alice", "a@x.com", "secret1")

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "unknown email", body: map[string]string{"email": "ghost@x.com", "password": "secret1"}},
		{name: "wrong password", body: map[string]string{"email": "a@x.com", "password": "wrong-1"}},
	}

	var bodies []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/auth/login", "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
			bodies = append(bodies, rec.Body.String())
		})
	}

	// constant-shape error: no hint whether the email exists
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}
