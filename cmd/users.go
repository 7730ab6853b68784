package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/core"
	"github.com/yatube/yatube/internal/validator"
)

const tokenLifetime = 24 * time.Hour

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	type signupPayload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	type SignupRequest struct {
		signupPayload `json:"user"`
	}

	var signupRequest SignupRequest

	if err := app.readJSON(w, r, &signupRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			Message: err.Error(),
			Err:     err,
		})
		return
	}

	user := &auth.User{
		Email:             strings.TrimSpace(signupRequest.Email),
		Username:          strings.TrimSpace(signupRequest.Username),
		PlaintextPassword: signupRequest.Password,
	}

	v := validator.New()
	v.CheckNotBlank(user.Email, "email", "must be provided")
	v.CheckEmail(user.Email, "must be a valid email address")
	v.CheckNotBlank(user.Username, "username", "must be provided")
	v.Check(len(user.Username) >= 3, "username", "must be at least 3 characters long")
	v.CheckNotBlank(user.PlaintextPassword, "password", "must be provided")
	v.Check(len(user.PlaintextPassword) >= 8, "password", "must be at least 8 characters long")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{Fields: v.Errors})
		return
	}

	if err := user.SetPassword(user.PlaintextPassword); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.core.CreateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "Email address is already in use")
			app.badRequestResponse(w, r, &AppError{Fields: v.Errors})
			return
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "Username is already in use")
			app.badRequestResponse(w, r, &AppError{Fields: v.Errors})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	token, err := app.auth.GenerateToken(user, tokenLifetime)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	type loginPayload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	type LoginRequest struct {
		loginPayload `json:"user"`
	}

	var loginRequest LoginRequest

	if err := app.readJSON(w, r, &loginRequest); err != nil {
		app.badRequestResponse(w, r, &AppError{
			Message: err.Error(),
			Err:     err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(loginRequest.Email, "email", "must be provided")
	v.CheckEmail(loginRequest.Email, "must be a valid email address")
	v.CheckNotBlank(loginRequest.Password, "password", "must be provided")

	if !v.IsValid() {
		app.badRequestResponse(w, r, &AppError{Fields: v.Errors})
		return
	}

	user, err := app.core.GetUserByEmail(r.Context(), loginRequest.Email)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.badRequestResponse(w, r, &AppError{
				Message: "Invalid credentials",
				Err:     err,
			})
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	match, err := user.IsPasswordMatch(loginRequest.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !match {
		app.badRequestResponse(w, r, &AppError{
			Message: "Invalid credentials",
		})
		return
	}

	token, err := app.auth.GenerateToken(user, tokenLifetime)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// loginPage is the target of the login_required redirect; it echoes the
// return path so a client can come back after authenticating.
func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	response := envelope{
		"detail": "authentication required",
		"next":   r.URL.Query().Get("next"),
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func userResponse(user *auth.User, token string) envelope {
	user.Token = token
	return envelope{"user": user}
}
