package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/core"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/utils/collectionutils"
	"github.com/yatube/yatube/internal/utils/functional"
	"github.com/yatube/yatube/models"
)

func (app *application) addComment(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readIDParam(r, "post_id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	post, err := app.core.GetPostByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalErrorResponse(w, r, err)
		return
	}

	form, err := forms.ParseCommentForm(r)
	if err != nil {
		app.badRequestResponse(w, r, &AppError{Message: err.Error(), Err: err})
		return
	}

	v := form.Validate()
	if v.IsValid() {
		user, _ := app.auth.GetAuthenticatedUser(r)
		comment := &models.Comment{
			Text:     form.Text,
			AuthorID: user.ID,
			PostID:   post.ID,
		}

		if _, err := app.core.CreateComment(r.Context(), comment); err != nil {
			if errors.Is(err, core.NoRecordFound) {
				app.notFoundResponse(w, r)
				return
			}
			app.internalErrorResponse(w, r, err)
			return
		}

		http.Redirect(w, r, postDetailURL(post.ID), http.StatusFound)
		return
	}

	comments, err := app.loadCommentsWithAuthors(r.Context(), post.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	// The failure path intentionally renders the post-create view with only
	// the comment form and the existing comments.
	response := envelope{
		"form_comment": commentFormView{Text: form.Text, Errors: v.Errors},
		"comments":     comments,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// loadCommentsWithAuthors fetches a post's comments and batch-loads their
// authors with a single IN query instead of one lookup per comment.
func (app *application) loadCommentsWithAuthors(ctx context.Context, postID int64) ([]*models.Comment, error) {
	comments, err := app.core.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIdList := functional.Map(comments, func(comment *models.Comment) int64 {
		return comment.AuthorID
	})

	authors, err := app.core.GetUsersByIdList(ctx, authorIdList)
	if err != nil {
		return nil, err
	}

	authorById := collectionutils.Associate(authors, func(user *auth.User) (int64, *auth.User) {
		return user.ID, user
	})

	for _, comment := range comments {
		if author := collectionutils.GetOrDefault(authorById, comment.AuthorID, nil); author != nil {
			comment.Author = &models.Author{ID: author.ID, Username: author.Username}
		}
	}

	return comments, nil
}
