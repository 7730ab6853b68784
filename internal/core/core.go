package core

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/yatube/yatube/internal/utils/databaseutils"
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
	session     databaseutils.Session
}

func NewCore(dbConn *sql.DB, log *slog.Logger) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: databaseutils.NewSQLTemplate(dbConn, 3*time.Second),
		session:     databaseutils.NewSession(dbConn),
	}
}
