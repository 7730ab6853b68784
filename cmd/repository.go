package main

import (
	"context"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/models"
)

// Handlers reach storage only through these interfaces so they stay testable
// without a database. *core.Core satisfies all of them.

type userRepository interface {
	CreateUser(ctx context.Context, user *auth.User) error
	GetUserByEmail(ctx context.Context, email string) (*auth.User, error)
	GetUserByUsername(ctx context.Context, username string) (*auth.User, error)
	GetUsersByIdList(ctx context.Context, userIdList []int64) ([]*auth.User, error)
}

type groupRepository interface {
	GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetGroupByID(ctx context.Context, id int64) (*models.Group, error)
}

type postRepository interface {
	ListPosts(ctx context.Context) ([]*models.Post, error)
	ListPostsByGroup(ctx context.Context, groupID int64) ([]*models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error)
	ListPostsByFollowedAuthors(ctx context.Context, userID int64) ([]*models.Post, error)
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error)
}

type commentRepository interface {
	ListCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
}

type followRepository interface {
	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
	FollowAuthor(ctx context.Context, userID, authorID int64) error
	UnfollowAuthor(ctx context.Context, userID, authorID int64) error
}

type repository interface {
	userRepository
	groupRepository
	postRepository
	commentRepository
	followRepository
}
