package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"

	"github.com/yatube/yatube/internal/utils/databaseutils"
	"github.com/yatube/yatube/models"
)

func (c *Core) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE slug = $1
	`

	return c.getGroup(ctx, query, slug)
}

func (c *Core) GetGroupByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE id = $1
	`

	return c.getGroup(ctx, query, id)
}

func (c *Core) getGroup(ctx context.Context, query string, arg any) (*models.Group, error) {
	group, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (*models.Group, error) {
		group := &models.Group{}
		if err := rows.Scan(
			&group.ID,
			&group.Title,
			&group.Slug,
			&group.Description,
		); err != nil {
			return nil, xerrors.New(err)
		}
		return group, nil
	}, arg)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return group, nil
}
