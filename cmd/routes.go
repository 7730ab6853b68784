package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/yatube/yatube/internal/cache"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	// Public pages
	router.HandlerFunc(http.MethodGet, "/", app.cachePage(cache.DefaultTTL, app.index))
	router.HandlerFunc(http.MethodGet, "/group/:slug/", app.groupPosts)
	router.HandlerFunc(http.MethodGet, "/profile/:username/", app.profile)
	router.HandlerFunc(http.MethodGet, "/posts/:post_id/", app.postDetail)
	router.HandlerFunc(http.MethodGet, "/about/author/", app.aboutAuthor)
	router.HandlerFunc(http.MethodGet, "/about/tech/", app.aboutTech)

	// Pages requiring an authenticated user
	router.HandlerFunc(http.MethodGet, "/create/", app.requireAuthenticatedUser(app.postCreate))
	router.HandlerFunc(http.MethodPost, "/create/", app.requireAuthenticatedUser(app.postCreate))
	router.HandlerFunc(http.MethodGet, "/posts/:post_id/edit/", app.requireAuthenticatedUser(app.postEdit))
	router.HandlerFunc(http.MethodPost, "/posts/:post_id/edit/", app.requireAuthenticatedUser(app.postEdit))
	router.HandlerFunc(http.MethodPost, "/posts/:post_id/comment/", app.requireAuthenticatedUser(app.addComment))
	router.HandlerFunc(http.MethodGet, "/follow/", app.requireAuthenticatedUser(app.followIndex))
	router.HandlerFunc(http.MethodGet, "/profile/:username/follow/", app.requireAuthenticatedUser(app.profileFollow))
	router.HandlerFunc(http.MethodGet, "/profile/:username/unfollow/", app.requireAuthenticatedUser(app.profileUnfollow))

	// Identity provider
	router.HandlerFunc(http.MethodPost, "/auth/signup", app.signup)
	router.HandlerFunc(http.MethodPost, "/auth/login", app.login)
	router.HandlerFunc(http.MethodGet, "/auth/login", app.loginPage)

	return app.recoverPanic(app.authenticate(router))
}
