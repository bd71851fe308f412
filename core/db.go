package core

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// DB is a connection pool from which every store operation acquires its own
// connection, released before the operation returns.
type DB interface {
	Connx(ctx context.Context) (*sqlx.Conn, error)
	Rebind(query string) string
	DriverName() string
}

var _ DB = (*sqlx.DB)(nil)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
