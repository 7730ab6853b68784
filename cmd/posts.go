package main

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/yatube/yatube/internal/core"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/pagination"
	"github.com/yatube/yatube/internal/utils/stringutils"
	"github.com/yatube/yatube/models"
)

// postFormView mirrors the post form back to the client, with whatever the
// user submitted plus per-field errors.
type postFormView struct {
	Text   string            `json:"text"`
	Group  string            `json:"group"`
	Errors map[string]string `json:"errors"`
}

type commentFormView struct {
	Text   string            `json:"text"`
	Errors map[string]string `json:"errors"`
}

func emptyPostFormView() postFormView {
	return postFormView{Errors: map[string]string{}}
}

// index is the global feed. Responses are cached by the cachePage middleware,
// so a freshly created or deleted post may not show up for the length of the
// cache window.
func (app *application) index(w http.ResponseWriter, r *http.Request) {
	posts, err := app.core.ListPosts(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	pageObj := pagination.Paginate(posts, pagination.PageSize, r.URL.Query().Get("page"))

	if err := app.writeJSON(w, http.StatusOK, envelope{"page_obj": pageObj}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) groupPosts(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	slug := params.ByName("slug")

	group, err := app.core.GetGroupBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, core.NoRecordFound) {
			app.notFoundResponse(w, r)
			return
		}
		app.internalErrorResponse(w, r, err)
		return
	}

	posts, err := app.core.ListPostsByGroup(r.Context(), group.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	pageObj := pagination.Paginate(posts, pagination.PageSize, r.URL.Query().Get("page"))

	response := envelope{
		"group":    group,
		"page_obj": pageObj,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) postDetail(w http.ResponseWriter, r *http.Request) {
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

	amountOfPosts, err := app.core.CountPostsByAuthor(r.Context(), post.AuthorID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	comments, err := app.loadCommentsWithAuthors(r.Context(), post.ID)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"post":            post,
		"form":            commentFormView{Errors: map[string]string{}},
		"comments":        comments,
		"amount_of_posts": amountOfPosts,
		"text30":          stringutils.TruncateRunes(post.Text, 30),
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) postCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := app.auth.GetAuthenticatedUser(r)

	if r.Method == http.MethodGet {
		response := envelope{
			"form":    emptyPostFormView(),
			"is_edit": false,
		}
		if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	form, err := forms.ParsePostForm(r)
	if err != nil {
		app.badRequestResponse(w, r, &AppError{Message: err.Error(), Err: err})
		return
	}

	v := form.Validate()
	if v.IsValid() && form.GroupID != nil {
		if groupErr := app.checkGroupExists(r, *form.GroupID); groupErr != nil {
			if !errors.Is(groupErr, core.NoRecordFound) {
				app.internalErrorResponse(w, r, groupErr)
				return
			}
			v.AddError("group", "must reference an existing group")
		}
	}

	if !v.IsValid() {
		// Validation failures re-render the form, they are not an error
		// status.
		response := envelope{
			"form":    postFormView{Text: form.Text, Group: form.Group, Errors: v.Errors},
			"is_edit": false,
		}
		if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  form.GroupID,
	}

	if form.Image != nil {
		imageRef, err := app.saveImage(form.Image)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
		post.Image = &imageRef
	}

	if _, err := app.core.CreatePost(r.Context(), post); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
}

func (app *application) postEdit(w http.ResponseWriter, r *http.Request) {
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

	// Non-owners are bounced to the post page, not shown an error.
	user, _ := app.auth.GetAuthenticatedUser(r)
	if user.ID != post.AuthorID {
		http.Redirect(w, r, postDetailURL(post.ID), http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		response := envelope{
			"form":    prefilledPostFormView(post),
			"post":    post,
			"is_edit": true,
		}
		if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	form, err := forms.ParsePostForm(r)
	if err != nil {
		app.badRequestResponse(w, r, &AppError{Message: err.Error(), Err: err})
		return
	}

	v := form.Validate()
	if v.IsValid() && form.GroupID != nil {
		if groupErr := app.checkGroupExists(r, *form.GroupID); groupErr != nil {
			if !errors.Is(groupErr, core.NoRecordFound) {
				app.internalErrorResponse(w, r, groupErr)
				return
			}
			v.AddError("group", "must reference an existing group")
		}
	}

	if !v.IsValid() {
		response := envelope{
			"form":    postFormView{Text: form.Text, Group: form.Group, Errors: v.Errors},
			"post":    post,
			"is_edit": true,
		}
		if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	post.Text = form.Text
	post.GroupID = form.GroupID
	if form.Image != nil {
		imageRef, err := app.saveImage(form.Image)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
		post.Image = &imageRef
	}

	if _, err := app.core.UpdatePost(r.Context(), post); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, postDetailURL(post.ID), http.StatusFound)
}

func (app *application) checkGroupExists(r *http.Request, groupID int64) error {
	_, err := app.core.GetGroupByID(r.Context(), groupID)
	return err
}

func (app *application) saveImage(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	return app.store.Save(header.Filename, file)
}

func prefilledPostFormView(post *models.Post) postFormView {
	view := emptyPostFormView()
	view.Text = post.Text
	if post.GroupID != nil {
		view.Group = strconv.FormatInt(*post.GroupID, 10)
	}
	return view
}

func postDetailURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}
