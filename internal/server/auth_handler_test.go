package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-wizard/internal/schemas"
)

func newTestAuthHandler() *AuthHandler {
	// No user service: these tests only exercise request validation, which
	// rejects before any service call.
	return NewAuthHandler(nil, testJWTService())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestRegister_InvalidBody(t *testing.T) {
	h := newTestAuthHandler()
	w := postJSON(t, h.Register, "/users", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"name": "Avery", "password": "long-enough-pw"}`},
		{name: "bad email", body: `{"name": "Avery", "email": "not-an-email", "password": "long-enough-pw"}`},
		{name: "short password", body: `{"name": "Avery", "email": "a@example.com", "password": "short"}`},
		{name: "missing name", body: `{"email": "a@example.com", "password": "long-enough-pw"}`},
	}

	h := newTestAuthHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Register, "/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestLogin_ValidationFailures(t *testing.T) {
	h := newTestAuthHandler()

	w := postJSON(t, h.Login, "/auth/login", `{"email": "a@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, h.Login, "/auth/login", `{"password": "whatever"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMe_MissingAuthContext(t *testing.T) {
	h := newTestAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	h.GetMe(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrEmailAlreadyExists{Email: "a@example.com"}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrInvalidCredentials{}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrUserNotFound{}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrNodeNotFound{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "type", Message: "required"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&schemas.ValidationError{
		Errors: []schemas.FieldError{{Field: "networked", Message: "is required"}},
	}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(assert.AnError))
}
