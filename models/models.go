package models

import "time"

// Author is the public slice of a user that gets embedded in posts and
// comments when the author relation is eagerly loaded.
type Author struct {
	ID       int64  `json:"-"`
	Username string `json:"username"`
}

// Group is a topical channel posts can be published to. Groups are created
// out-of-band; the handlers only ever read them.
type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Post is a single authored entry. PubDate is set once at creation and never
// updated. GroupID and Image are optional.
type Post struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID int64     `json:"-"`
	Author   *Author   `json:"author,omitempty"`
	GroupID  *int64    `json:"group,omitempty"`
	Image    *string   `json:"image,omitempty"`
}

// Comment is a reply to a post. Comments sort oldest-first, the opposite of
// posts.
type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	AuthorID int64     `json:"-"`
	Author   *Author   `json:"author,omitempty"`
	PostID   int64     `json:"-"`
	Created  time.Time `json:"created"`
}

// Follow is a directed subscription edge. The (UserID, AuthorID) pair is
// unique in storage.
type Follow struct {
	UserID   int64
	AuthorID int64
}
