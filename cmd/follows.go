package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/yatube/yatube/internal/core"
	"github.com/yatube/yatube/internal/pagination"
)

const followIndexURL = "/follow/"

// followIndex lists posts by every author the current user follows, newest
// first.
func (app *application) followIndex(w http.ResponseWriter, r *http.Request) {
	user, _ := app.auth.GetAuthenticatedUser(r)

	posts, err := app.core.ListPostsByFollowedAuthors(r.Context(), user.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	pageObj := pagination.Paginate(posts, pagination.PageSize, r.URL.Query().Get("page"))

	if err := app.writeJSON(w, http.StatusOK, envelope{"page_obj": pageObj}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// profileFollow creates the subscription edge. Following twice is a no-op and
// following yourself is silently ignored.
func (app *application) profileFollow(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	author, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalErrorResponse(w, r, err)
		return
	}

	user, _ := app.auth.GetAuthenticatedUser(r)
	if user.ID != author.ID {
		if err := app.core.FollowAuthor(r.Context(), user.ID, author.ID); err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	http.Redirect(w, r, followIndexURL, http.StatusFound)
}

// profileUnfollow removes the edge; unfollowing someone you never followed is
// also a no-op.
func (app *application) profileUnfollow(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	username := params.ByName("username")

	author, err := app.core.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalErrorResponse(w, r, err)
		return
	}

	user, _ := app.auth.GetAuthenticatedUser(r)
	if err := app.core.UnfollowAuthor(r.Context(), user.ID, author.ID); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, followIndexURL, http.StatusFound)
}
