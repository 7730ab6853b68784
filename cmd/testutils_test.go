package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/config"
	"github.com/yatube/yatube/internal/core"
	"github.com/yatube/yatube/models"
)

// fakeRepo is an in-memory repository used by handler tests.
type fakeRepo struct {
	mu       sync.Mutex
	nextID   int64
	users    []*auth.User
	groups   []*models.Group
	posts    []*models.Post
	comments []*models.Comment
	follows  []models.Follow
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (f *fakeRepo) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

// --- test fixtures ---

func (f *fakeRepo) addUser(username, email string) *auth.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &auth.User{ID: f.id(), Username: username, Email: email}
	f.users = append(f.users, user)
	return user
}

func (f *fakeRepo) addGroup(title, slug string) *models.Group {
	f.mu.Lock()
	defer f.mu.Unlock()
	group := &models.Group{ID: f.id(), Title: title, Slug: slug, Description: title}
	f.groups = append(f.groups, group)
	return group
}

func (f *fakeRepo) addPost(author *auth.User, text string, groupID *int64, pubDate time.Time) *models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	post := &models.Post{
		ID:       f.id(),
		Text:     text,
		PubDate:  pubDate,
		AuthorID: author.ID,
		Author:   &models.Author{ID: author.ID, Username: author.Username},
		GroupID:  groupID,
	}
	f.posts = append(f.posts, post)
	return post
}

func (f *fakeRepo) addComment(post *models.Post, author *auth.User, text string, created time.Time) *models.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment := &models.Comment{
		ID:       f.id(),
		Text:     text,
		AuthorID: author.ID,
		PostID:   post.ID,
		Created:  created,
	}
	f.comments = append(f.comments, comment)
	return comment
}

func (f *fakeRepo) deletePost(postID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.posts[:0]
	for _, post := range f.posts {
		if post.ID != postID {
			kept = append(kept, post)
		}
	}
	f.posts = kept
}

func (f *fakeRepo) followCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.follows)
}

func (f *fakeRepo) postByID(postID int64) *models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, post := range f.posts {
		if post.ID == postID {
			return post
		}
	}
	return nil
}

// --- userRepository ---

func (f *fakeRepo) CreateUser(ctx context.Context, user *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return core.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return core.ErrDuplicateUsername
		}
	}
	user.ID = f.id()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, core.NoRecordFound
}

func (f *fakeRepo) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, core.NoRecordFound
}

func (f *fakeRepo) GetUsersByIdList(ctx context.Context, userIdList []int64) ([]*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[int64]bool, len(userIdList))
	for _, id := range userIdList {
		wanted[id] = true
	}
	var result []*auth.User
	for _, user := range f.users {
		if wanted[user.ID] {
			result = append(result, user)
		}
	}
	return result, nil
}

// --- groupRepository ---

func (f *fakeRepo) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, group := range f.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, core.NoRecordFound
}

func (f *fakeRepo) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, group := range f.groups {
		if group.ID == id {
			return group, nil
		}
	}
	return nil, core.NoRecordFound
}

// --- postRepository ---

func sortNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})
}

func (f *fakeRepo) ListPosts(ctx context.Context) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := append([]*models.Post(nil), f.posts...)
	sortNewestFirst(result)
	return result, nil
}

func (f *fakeRepo) ListPostsByGroup(ctx context.Context, groupID int64) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Post
	for _, post := range f.posts {
		if post.GroupID != nil && *post.GroupID == groupID {
			result = append(result, post)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (f *fakeRepo) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Post
	for _, post := range f.posts {
		if post.AuthorID == authorID {
			result = append(result, post)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (f *fakeRepo) CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	posts, _ := f.ListPostsByAuthor(ctx, authorID)
	return int64(len(posts)), nil
}

func (f *fakeRepo) ListPostsByFollowedAuthors(ctx context.Context, userID int64) ([]*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	followed := make(map[int64]bool)
	for _, follow := range f.follows {
		if follow.UserID == userID {
			followed[follow.AuthorID] = true
		}
	}
	var result []*models.Post
	for _, post := range f.posts {
		if followed[post.AuthorID] {
			result = append(result, post)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (f *fakeRepo) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, post := range f.posts {
		if post.ID == id {
			clone := *post
			return &clone, nil
		}
	}
	return nil, core.NoRecordFound
}

func (f *fakeRepo) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post.GroupID != nil {
		found := false
		for _, group := range f.groups {
			if group.ID == *post.GroupID {
				found = true
			}
		}
		if !found {
			return nil, core.NoRecordFound
		}
	}
	post.ID = f.id()
	post.PubDate = time.Now()
	for _, user := range f.users {
		if user.ID == post.AuthorID {
			post.Author = &models.Author{ID: user.ID, Username: user.Username}
		}
	}
	f.posts = append(f.posts, post)
	return post, nil
}

func (f *fakeRepo) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, stored := range f.posts {
		if stored.ID == post.ID {
			stored.Text = post.Text
			stored.GroupID = post.GroupID
			stored.Image = post.Image
			return stored, nil
		}
	}
	return nil, core.NoRecordFound
}

// --- commentRepository ---

func (f *fakeRepo) ListCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Comment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			result = append(result, comment)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Created.Equal(result[j].Created) {
			return result[i].Created.Before(result[j].Created)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (f *fakeRepo) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for _, post := range f.posts {
		if post.ID == comment.PostID {
			found = true
		}
	}
	if !found {
		return nil, core.NoRecordFound
	}
	comment.ID = f.id()
	comment.Created = time.Now()
	f.comments = append(f.comments, comment)
	return comment, nil
}

// --- followRepository ---

func (f *fakeRepo) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, follow := range f.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FollowAuthor(ctx context.Context, userID, authorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, follow := range f.follows {
		if follow.UserID == userID && follow.AuthorID == authorID {
			return nil
		}
	}
	f.follows = append(f.follows, models.Follow{UserID: userID, AuthorID: authorID})
	return nil
}

func (f *fakeRepo) UnfollowAuthor(ctx context.Context, userID, authorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.follows[:0]
	for _, follow := range f.follows {
		if follow.UserID != userID || follow.AuthorID != authorID {
			kept = append(kept, follow)
		}
	}
	f.follows = kept
	return nil
}

// fakeStore records saved images without touching the disk.
type fakeStore struct {
	mu    sync.Mutex
	saved []string
}

func (s *fakeStore) Save(filename string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := "posts/fake-" + filename
	s.saved = append(s.saved, ref)
	return ref, nil
}

func newTestApplication(t *testing.T) (*application, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	app := &application{
		config: &config.Config{Addr: ":0"},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		core:   repo,
		auth:   auth.New("test-secret"),
		cache:  cache.NewMemoryCache(),
		store:  &fakeStore{},
	}

	return app, repo
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, app *application) *testServer {
	t.Helper()

	ts := httptest.NewServer(app.routes())
	t.Cleanup(ts.Close)

	// Redirects are part of the contract under test, never follow them.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

func authTokenFor(t *testing.T, app *application, user *auth.User) string {
	t.Helper()

	token, err := app.auth.GenerateToken(user, time.Hour)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func (ts *testServer) get(t *testing.T, urlPath, token string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+urlPath, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	return ts.do(t, req)
}

func (ts *testServer) postForm(t *testing.T, urlPath, token string, form url.Values) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+urlPath, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	return ts.do(t, req)
}

func (ts *testServer) postJSON(t *testing.T, urlPath, token, body string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+urlPath, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	return ts.do(t, req)
}
