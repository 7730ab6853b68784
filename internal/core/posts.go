package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"github.com/yatube/yatube/internal/utils/databaseutils"
	"github.com/yatube/yatube/models"
)

// Every post query eagerly joins the author so list pages never go back to
// the database per row.
const postSelect = `
	SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image, u.username
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

func scanPost(rows *sql.Rows) (*models.Post, error) {
	post := &models.Post{Author: &models.Author{}}
	if err := rows.Scan(
		&post.ID,
		&post.Text,
		&post.PubDate,
		&post.AuthorID,
		&post.GroupID,
		&post.Image,
		&post.Author.Username,
	); err != nil {
		return nil, xerrors.New(err)
	}
	post.Author.ID = post.AuthorID

	return post, nil
}

// ListPosts returns every post, newest first.
func (c *Core) ListPosts(ctx context.Context) ([]*models.Post, error) {
	query := postSelect + `
		ORDER BY p.pub_date DESC, p.id DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}

func (c *Core) ListPostsByGroup(ctx context.Context, groupID int64) ([]*models.Post, error) {
	query := postSelect + `
		WHERE p.group_id = $1
		ORDER BY p.pub_date DESC, p.id DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, groupID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}

func (c *Core) ListPostsByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	query := postSelect + `
		WHERE p.author_id = $1
		ORDER BY p.pub_date DESC, p.id DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, authorID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}

func (c *Core) CountPostsByAuthor(ctx context.Context, authorID int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM posts WHERE author_id = $1
	`

	count, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (int64, error) {
		var count int64
		if err := rows.Scan(&count); err != nil {
			return 0, xerrors.New(err)
		}
		return count, nil
	}, authorID)

	if err != nil {
		return 0, xerrors.New(err)
	}

	return count, nil
}

// ListPostsByFollowedAuthors returns posts whose author the given user
// follows, newest first.
func (c *Core) ListPostsByFollowedAuthors(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := postSelect + `
		JOIN follows f ON f.author_id = p.author_id
		WHERE f.user_id = $1
		ORDER BY p.pub_date DESC, p.id DESC
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return posts, nil
}

func (c *Core) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := postSelect + `
		WHERE p.id = $1
	`

	post, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanPost, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return post, nil
}

// CreatePost persists a new post. The group reference is verified inside the
// same transaction as the insert; a missing group surfaces as NoRecordFound.
// PubDate is assigned by the database at insert time and never changes.
func (c *Core) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	insertSQL := `
		INSERT INTO posts (text, pub_date, author_id, group_id, image)
		VALUES ($1, now(), $2, $3, $4)
		RETURNING id, pub_date
	`

	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Post, error) {
		if post.GroupID != nil {
			if _, err := c.GetGroupByID(txCtx, *post.GroupID); err != nil {
				return nil, err
			}
		}

		_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, insertSQL, func(rows *sql.Rows) (*models.Post, error) {
			if err := rows.Scan(&post.ID, &post.PubDate); err != nil {
				return nil, xerrors.New(err)
			}
			return post, nil
		}, post.Text, post.AuthorID, post.GroupID, post.Image)

		if err != nil {
			return nil, xerrors.New(err)
		}

		return post, nil
	})
}

// UpdatePost rewrites text, group and image in place. Author and pub_date are
// deliberately not part of the statement.
func (c *Core) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	updateSQL := `
		UPDATE posts
		SET text = $1, group_id = $2, image = $3
		WHERE id = $4
		RETURNING pub_date
	`

	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Post, error) {
		if post.GroupID != nil {
			if _, err := c.GetGroupByID(txCtx, *post.GroupID); err != nil {
				return nil, err
			}
		}

		_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, updateSQL, func(rows *sql.Rows) (*models.Post, error) {
			if err := rows.Scan(&post.PubDate); err != nil {
				return nil, xerrors.New(err)
			}
			return post, nil
		}, post.Text, post.GroupID, post.Image, post.ID)

		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return nil, xerrors.New(NoRecordFound)
			default:
				return nil, xerrors.New(err)
			}
		}

		return post, nil
	})
}
