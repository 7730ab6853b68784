// Package forms holds the two user-facing forms of the platform: the post
// form (create and edit) and the comment form. Both parse from urlencoded or
// multipart bodies and validate into per-field error maps.
package forms

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/yatube/yatube/internal/validator"
)

// Uploaded images are buffered up to this many bytes in memory before
// spilling to disk.
const maxFormMemory = 10 << 20

// PostForm binds the text, optional group and optional image of a post.
type PostForm struct {
	Text    string
	Group   string
	GroupID *int64
	Image   *multipart.FileHeader
}

func ParsePostForm(r *http.Request) (*PostForm, error) {
	form := &PostForm{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		_, header, err := r.FormFile("image")
		if err != nil && err != http.ErrMissingFile {
			return nil, err
		}
		form.Image = header
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}

	form.Text = r.FormValue("text")
	form.Group = strings.TrimSpace(r.FormValue("group"))

	return form, nil
}

// Validate fills GroupID as a side effect when the group field parses.
func (f *PostForm) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Text, "text", "must be provided")

	if f.Group != "" {
		groupID, err := strconv.ParseInt(f.Group, 10, 64)
		if err != nil {
			v.AddError("group", "must be a valid group id")
		} else {
			f.GroupID = &groupID
		}
	}

	if f.Image != nil {
		if err := sniffImage(f.Image); err != nil {
			v.AddError("image", "must be a valid image file")
		}
	}

	return v
}

// CommentForm binds the single text field of a comment.
type CommentForm struct {
	Text string
}

func ParseCommentForm(r *http.Request) (*CommentForm, error) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}

	return &CommentForm{Text: r.FormValue("text")}, nil
}

func (f *CommentForm) Validate() *validator.Validator {
	v := validator.New()
	v.CheckNotBlank(f.Text, "text", "must be provided")

	return v
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func sniffImage(header *multipart.FileHeader) error {
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	_, _, err = image.DecodeConfig(file)
	return err
}
