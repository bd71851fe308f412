package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

// recordRow is an attendance table row. Exactly one of StudentID and EmployeeID is set,
// depending on UserType.
type recordRow struct {
	ID         int64      `db:"id"`
	StudentID  null.Int64 `db:"student_id"`
	EmployeeID null.Int64 `db:"employee_id"`
	Date       string     `db:"date"`
	Status     string     `db:"status"`
	UserType   string     `db:"user_type"`
}

func boilRecord(rec attendance.Record) (recordRow, error) {
	row := recordRow{ID: rec.ID, Date: rec.Date, Status: string(rec.Status)}
	switch sub := rec.Subject.(type) {
	case attendance.StudentSubject:
		row.StudentID = null.Int64From(sub.StudentID)
	case attendance.EmployeeSubject:
		row.EmployeeID = null.Int64From(sub.EmployeeID)
	default:
		return recordRow{}, core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: "subject", Error: "unknown attendance subject"})
	}
	row.UserType = string(rec.Subject.Kind())
	return row, nil
}

func unboilRecord(row recordRow) (attendance.Record, error) {
	rec := attendance.Record{ID: row.ID, Date: row.Date, Status: attendance.Status(row.Status)}
	switch attendance.Kind(row.UserType) {
	case attendance.KindStudent:
		if !row.StudentID.Valid {
			return attendance.Record{}, errors.Errorf("record %d: student record without student_id", row.ID)
		}
		rec.Subject = attendance.StudentSubject{StudentID: row.StudentID.Int64}
	case attendance.KindEmployee:
		if !row.EmployeeID.Valid {
			return attendance.Record{}, errors.Errorf("record %d: employee record without employee_id", row.ID)
		}
		rec.Subject = attendance.EmployeeSubject{EmployeeID: row.EmployeeID.Int64}
	default:
		return attendance.Record{}, errors.Errorf("record %d: unknown user_type %q", row.ID, row.UserType)
	}
	return rec, nil
}

type attendanceRepository struct {
	db core.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db core.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) InsertRecords(ctx context.Context, recs []attendance.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows := make([]recordRow, 0, len(recs))
	for _, rec := range recs {
		row, err := boilRecord(rec)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	q := `INSERT INTO attendance (student_id, employee_id, date, status, user_type)
		VALUES (:student_id, :employee_id, :date, :status, :user_type)`
	return withTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, q)
		if err != nil {
			return errors.Wrap(err, "preparing insert")
		}
		defer func() { _ = stmt.Close() }()

		for i, row := range rows {
			if _, err := stmt.ExecContext(ctx, row); err != nil {
				if violatedConstraint(err) != noConstraint {
					return errors.Wrapf(core.ErrConstraintViolation, "inserting record %d: %v", i+1, err)
				}
				return errors.Wrapf(err, "inserting record %d", i+1)
			}
		}
		return nil
	})
}

func (repo attendanceRepository) QueryRecords(ctx context.Context, filter attendance.ReportFilter) ([]attendance.Record, error) {
	q := `SELECT id, student_id, employee_id, date, status, user_type FROM attendance`
	var args []interface{}
	if filter.Date != "" {
		q += ` WHERE date = ?`
		args = append(args, filter.Date)
	}
	q = repo.db.Rebind(q + ` ORDER BY id ASC`)

	var rows []recordRow
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, q, args...)
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}

	recs := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := unboilRecord(row)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (repo attendanceRepository) QueryStudentReport(ctx context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error) {
	q := `SELECT students.roll_no, students.name, attendance.date, attendance.status
		FROM attendance
		JOIN students ON students.id = attendance.student_id
		WHERE attendance.user_type = ?`
	args := []interface{}{string(attendance.KindStudent)}
	if filter.Date != "" {
		q += ` AND attendance.date = ?`
		args = append(args, filter.Date)
	}
	q = repo.db.Rebind(q + ` ORDER BY attendance.id ASC`)

	rows := make([]attendance.ReportRow, 0)
	err := withConn(ctx, repo.db, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &rows, q, args...)
	})
	if err != nil {
		return nil, errors.Wrap(err, "querying student report")
	}
	return rows, nil
}
