package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/yatube/yatube/internal/utils/databaseutils"
	"github.com/yatube/yatube/models"
)

// ListCommentsByPost returns the post's comments oldest first. Authors are
// not joined here; callers batch-load them (see GetUsersByIdList).
func (c *Core) ListCommentsByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, text, author_id, post_id, created
		FROM comments
		WHERE post_id = $1
		ORDER BY created ASC, id ASC
	`

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.Comment, error) {
		comment := &models.Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.AuthorID,
			&comment.PostID,
			&comment.Created,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return comment, nil
	}, postID)

	if err != nil {
		return nil, xerrors.New(err)
	}

	return comments, nil
}

// CreateComment inserts a comment after re-checking the parent post inside
// the same transaction; a vanished post surfaces as NoRecordFound.
func (c *Core) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	insertSQL := `
		INSERT INTO comments (text, author_id, post_id, created)
		VALUES ($1, $2, $3, now())
		RETURNING id, created
	`

	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Comment, error) {
		if _, err := c.GetPostByID(txCtx, comment.PostID); err != nil {
			return nil, err
		}

		_, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, insertSQL, func(rows *sql.Rows) (*models.Comment, error) {
			if err := rows.Scan(&comment.ID, &comment.Created); err != nil {
				return nil, xerrors.New(err)
			}
			return comment, nil
		}, comment.Text, comment.AuthorID, comment.PostID)

		if err != nil {
			return nil, xerrors.New(err)
		}

		return comment, nil
	})
}
