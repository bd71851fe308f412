// Package sqlxrepos implements the core repositories on top of jmoiron/sqlx.
// Every repository method acquires its own connection and releases it before returning.
package sqlxrepos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

type constraint int

const (
	noConstraint constraint = iota
	uniqueConstraint
	foreignKeyConstraint
	checkConstraint
)

// violatedConstraint classifies a driver error as a constraint violation, if it is one.
func violatedConstraint(err error) constraint {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return uniqueConstraint
		case sqlite3.ErrConstraintForeignKey:
			return foreignKeyConstraint
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return checkConstraint
		}
		return noConstraint
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return uniqueConstraint
		case "23503": // foreign_key_violation
			return foreignKeyConstraint
		case "23514", "23502": // check_violation, not_null_violation
			return checkConstraint
		}
	}
	return noConstraint
}

// withConn runs fn on a connection of its own, released on every exit path.
func withConn(ctx context.Context, db core.DB, fn func(conn *sqlx.Conn) error) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquiring connection")
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

// withTx runs fn in a transaction on a connection of its own.
// The transaction is committed if fn succeeds and rolled back otherwise.
func withTx(ctx context.Context, db core.DB, fn func(tx *sqlx.Tx) error) error {
	return withConn(ctx, db, func(conn *sqlx.Conn) (err error) {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return errors.Wrap(err, "beginning transaction")
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		if err = fn(tx); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return errors.Wrap(err, "committing transaction")
		}
		return nil
	})
}

func orderBy(ordering []core.DBOrdering) string {
	if len(ordering) == 0 {
		return ""
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}
