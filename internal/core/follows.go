package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/yatube/yatube/internal/utils/databaseutils"
)

func (c *Core) IsFollowing(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2
		)
	`

	following, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (bool, error) {
		var following bool
		if err := rows.Scan(&following); err != nil {
			return false, xerrors.New(err)
		}
		return following, nil
	}, userID, authorID)

	if err != nil {
		return false, xerrors.New(err)
	}

	return following, nil
}

// FollowAuthor creates the (user, author) edge with get-or-create semantics:
// following twice leaves exactly one edge behind.
func (c *Core) FollowAuthor(ctx context.Context, userID, authorID int64) error {
	insertSQL := `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, insertSQL, userID, authorID); err != nil {
		return xerrors.New(err)
	}

	return nil
}

// UnfollowAuthor removes the edge; removing a non-existent edge is not an
// error.
func (c *Core) UnfollowAuthor(ctx context.Context, userID, authorID int64) error {
	deleteSQL := `
		DELETE FROM follows
		WHERE user_id = $1 AND author_id = $2
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, userID, authorID); err != nil {
		return xerrors.New(err)
	}

	return nil
}
