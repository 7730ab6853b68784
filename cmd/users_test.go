package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userView struct {
	User struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Token    string `json:"token"`
	} `json:"user"`
}

type errorView struct {
	ErrorMessage string            `json:"errorMessage"`
	ErrorDetails map[string]string `json:"errorDetails"`
}

func TestSignupCreatesUser(t *testing.T) {
	app, repo := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := ts.postJSON(t, "/auth/signup", "",
		`{"user": {"email": "anna@example.com", "username": "anna", "password": "correct-horse"}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got userView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "anna", got.User.Username)
	assert.Equal(t, "anna@example.com", got.User.Email)
	assert.NotEmpty(t, got.User.Token)

	stored, err := repo.GetUserByEmail(context.Background(), "anna@example.com")
	require.NoError(t, err)

	match, err := stored.IsPasswordMatch("correct-horse")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestSignupValidation(t *testing.T) {
	app, repo := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := ts.postJSON(t, "/auth/signup", "",
		`{"user": {"email": "not-an-email", "username": "ab", "password": "short"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got errorView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotEmpty(t, got.ErrorDetails["email"])
	assert.NotEmpty(t, got.ErrorDetails["username"])
	assert.NotEmpty(t, got.ErrorDetails["password"])
	assert.Empty(t, repo.users)
}

func TestSignupDuplicateUsername(t *testing.T) {
	app, repo := newTestApplication(t)
	repo.addUser("anna", "anna@example.com")
	ts := newTestServer(t, app)

	resp, body := ts.postJSON(t, "/auth/signup", "",
		`{"user": {"email": "other@example.com", "username": "anna", "password": "correct-horse"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got errorView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.NotEmpty(t, got.ErrorDetails["username"])
	assert.Len(t, repo.users, 1)
}

func TestLogin(t *testing.T) {
	app, repo := newTestApplication(t)
	user := repo.addUser("anna", "anna@example.com")
	require.NoError(t, user.SetPassword("correct-horse"))
	ts := newTestServer(t, app)

	resp, body := ts.postJSON(t, "/auth/login", "",
		`{"user": {"email": "anna@example.com", "password": "correct-horse"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got userView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "anna", got.User.Username)
	assert.NotEmpty(t, got.User.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	app, repo := newTestApplication(t)
	user := repo.addUser("anna", "anna@example.com")
	require.NoError(t, user.SetPassword("correct-horse"))
	ts := newTestServer(t, app)

	resp, body := ts.postJSON(t, "/auth/login", "",
		`{"user": {"email": "anna@example.com", "password": "wrong-horse99"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got errorView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Invalid credentials", got.ErrorMessage)
}

func TestLoginUnknownEmail(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := ts.postJSON(t, "/auth/login", "",
		`{"user": {"email": "nobody@example.com", "password": "whatever-pass"}}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got errorView
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Invalid credentials", got.ErrorMessage)
}

func TestLoginPageEchoesNext(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, body := ts.get(t, "/auth/login?next=%2Fcreate%2F", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Detail string `json:"detail"`
		Next   string `json:"next"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "/create/", got.Next)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app)

	resp, _ := ts.get(t, "/", "not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenIssuedAtSignupAuthenticatesRequests(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app)

	_, body := ts.postJSON(t, "/auth/signup", "",
		`{"user": {"email": "anna@example.com", "username": "anna", "password": "correct-horse"}}`)

	var got userView
	require.NoError(t, json.Unmarshal([]byte(body), &got))

	resp, _ := ts.get(t, "/create/", got.User.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
