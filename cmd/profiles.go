package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/yatube/yatube/internal/core"
	"github.com/yatube/yatube/internal/pagination"
	"github.com/yatube/yatube/models"
)

func (app *application) profile(w http.ResponseWriter, r *http.Request) {
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

	posts, err := app.core.ListPostsByAuthor(r.Context(), author.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	pageObj := pagination.Paginate(posts, pagination.PageSize, r.URL.Query().Get("page"))

	// Anonymous visitors always see following=false.
	following := false
	if user, authErr := app.auth.GetAuthenticatedUser(r); authErr == nil {
		following, err = app.core.IsFollowing(r.Context(), user.ID, author.ID)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	response := envelope{
		"page_obj":  pageObj,
		"author":    models.Author{ID: author.ID, Username: author.Username},
		"following": following,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
