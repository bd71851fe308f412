package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/user"
)

type userRepository struct {
	db core.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := repo.db.Rebind(`INSERT INTO users (username, password) VALUES (?, ?) RETURNING id`)
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &usr.ID, q, usr.Username, usr.Password)
	})
	if err != nil {
		if violatedConstraint(err) == uniqueConstraint {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	var usr user.User
	q := repo.db.Rebind(`SELECT id, username, password FROM users WHERE username = ?`)
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &usr, q, username)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user")
	}
	return usr, nil
}
