package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/student"
)

type studentRepository struct {
	db core.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db core.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	q := repo.db.Rebind(`INSERT INTO students (roll_no, name) VALUES (?, ?) RETURNING id`)
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &st.ID, q, st.RollNo, st.Name)
	})
	if err != nil {
		if violatedConstraint(err) == uniqueConstraint {
			return student.Student{}, student.ErrRollNoExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, ordering ...core.DBOrdering) ([]student.Student, error) {
	students := make([]student.Student, 0)
	q := `SELECT id, roll_no, name FROM students` + orderBy(ordering)
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &students, q)
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, id int64) error {
	q := repo.db.Rebind(`DELETE FROM students WHERE id = ?`)
	return withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, q, id)
		if err != nil {
			return errors.Wrap(err, "deleting student")
		}
		cnt, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "deleting student")
		}
		if cnt == 0 {
			return student.ErrNotFound
		}
		return nil
	})
}
