package attendance_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/student"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	sqlxrepos "github.com/trezcool/mahudhurio/storage/database/sqlx"
	"github.com/trezcool/mahudhurio/tests"
)

type fixture struct {
	db       *sqlx.DB
	stSvc    student.Service
	svc      attendance.Service
	students []student.Student
}

func setup(t *testing.T) fixture {
	db := testutil.PrepareDB(t)
	stRepo := sqlxrepos.NewStudentRepository(db)
	stSvc := student.NewService(stRepo, &logsvc.NopLogger{})
	return fixture{
		db:    db,
		stSvc: stSvc,
		svc:   attendance.NewService(sqlxrepos.NewAttendanceRepository(db), stSvc, &logsvc.NopLogger{}),
		students: []student.Student{
			testutil.CreateStudent(t, stRepo, "R1", "Ann"),
			testutil.CreateStudent(t, stRepo, "R2", "Bob"),
			testutil.CreateStudent(t, stRepo, "R3", "Cid"),
		},
	}
}

func TestService_NewSession(t *testing.T) {
	fx := setup(t)

	sess, err := fx.svc.NewSession(context.Background())
	require.NoError(t, err)

	entries := sess.Entries()
	require.Len(t, entries, len(fx.students))
	for i, e := range entries {
		assert.Equal(t, fx.students[i], e.Student)
		assert.False(t, e.IsSet())
	}
}

func TestService_Commit(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	sess, err := fx.svc.NewSession(ctx)
	require.NoError(t, err)

	t.Run("no session", func(t *testing.T) {
		_, err := fx.svc.Commit(ctx, nil, "2024-05-01")
		assert.True(t, errors.Is(err, core.ErrInvalidInput))
	})

	t.Run("nothing staged", func(t *testing.T) {
		cnt, err := fx.svc.Commit(ctx, sess, "2024-05-01")
		require.NoError(t, err)
		assert.Zero(t, cnt)
	})

	require.NoError(t, sess.SetStatus(fx.students[0].ID, attendance.StatusPresent))
	require.NoError(t, sess.SetStatus(fx.students[2].ID, attendance.StatusLate))
	before := sess.Entries()

	t.Run("blank date", func(t *testing.T) {
		_, err := fx.svc.Commit(ctx, sess, " ")
		assert.True(t, errors.Is(err, core.ErrInvalidInput))
	})

	t.Run("commit", func(t *testing.T) {
		cnt, err := fx.svc.Commit(ctx, sess, "2024-05-01")
		require.NoError(t, err)
		assert.Equal(t, 2, cnt)
		assert.Equal(t, before, sess.Entries(), "Commit() must not alter the session")
	})

	t.Run("commit again", func(t *testing.T) {
		cnt, err := fx.svc.Commit(ctx, sess, "2024-05-02")
		require.NoError(t, err)
		assert.Equal(t, 2, cnt)
	})

	rows, err := fx.svc.Report(ctx, attendance.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, []attendance.ReportRow{
		{RollNo: "R1", Name: "Ann", Date: "2024-05-01", Status: attendance.StatusPresent},
		{RollNo: "R3", Name: "Cid", Date: "2024-05-01", Status: attendance.StatusLate},
		{RollNo: "R1", Name: "Ann", Date: "2024-05-02", Status: attendance.StatusPresent},
		{RollNo: "R3", Name: "Cid", Date: "2024-05-02", Status: attendance.StatusLate},
	}, rows)
}

func TestService_Commit_atomic(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	sess, err := fx.svc.NewSession(ctx)
	require.NoError(t, err)
	for _, st := range fx.students {
		require.NoError(t, sess.SetStatus(st.ID, attendance.StatusAbsent))
	}
	before := sess.Entries()

	// the last staged student no longer exists: its insert violates the foreign key
	require.NoError(t, fx.stSvc.Remove(ctx, fx.students[2].ID))

	cnt, err := fx.svc.Commit(ctx, sess, "2024-05-01")
	assert.True(t, errors.Is(err, core.ErrConstraintViolation), "Commit() error = %v", err)
	assert.Zero(t, cnt)
	assert.Equal(t, before, sess.Entries())

	recs, err := fx.svc.Records(ctx, attendance.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestService_Report(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	sess, err := fx.svc.NewSession(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.SetStatus(fx.students[1].ID, attendance.StatusAbsent))
	_, err = fx.svc.Commit(ctx, sess, "2024-05-01")
	require.NoError(t, err)
	_, err = fx.svc.Commit(ctx, sess, "2024-05-02")
	require.NoError(t, err)

	empID := testutil.CreateEmployee(t, fx.db, "E1", "Eve")
	_, err = fx.db.Exec(`INSERT INTO attendance (employee_id, date, status, user_type) VALUES (?, ?, ?, ?)`,
		empID, "2024-05-01", "Present", "employee")
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter attendance.ReportFilter
		want   []attendance.ReportRow
	}{
		{
			name: "all dates",
			want: []attendance.ReportRow{
				{RollNo: "R2", Name: "Bob", Date: "2024-05-01", Status: attendance.StatusAbsent},
				{RollNo: "R2", Name: "Bob", Date: "2024-05-02", Status: attendance.StatusAbsent},
			},
		},
		{
			name:   "one date",
			filter: attendance.ReportFilter{Date: "2024-05-02"},
			want: []attendance.ReportRow{
				{RollNo: "R2", Name: "Bob", Date: "2024-05-02", Status: attendance.StatusAbsent},
			},
		},
		{name: "no match", filter: attendance.ReportFilter{Date: "2024-05-03"}, want: []attendance.ReportRow{}},
		{name: "padded date", filter: attendance.ReportFilter{Date: " 2024-05-02 "}, want: []attendance.ReportRow{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := fx.svc.Report(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}

	recs, err := fx.svc.Records(ctx, attendance.ReportFilter{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, attendance.StudentSubject{StudentID: fx.students[1].ID}, recs[0].Subject)
	assert.Equal(t, attendance.EmployeeSubject{EmployeeID: empID}, recs[1].Subject)
	assert.Equal(t, attendance.KindEmployee, recs[1].Subject.Kind())
}

func TestService_Report_dateAsCommitted(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	sess, err := fx.svc.NewSession(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.SetStatus(fx.students[0].ID, attendance.StatusPresent))
	_, err = fx.svc.Commit(ctx, sess, " 2024-05-01 ")
	require.NoError(t, err)

	tests := []struct {
		name    string
		date    string
		wantLen int
	}{
		{name: "same text", date: " 2024-05-01 ", wantLen: 1},
		{name: "trimmed text", date: "2024-05-01", wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := fx.svc.Report(ctx, attendance.ReportFilter{Date: tt.date})
			require.NoError(t, err)
			require.Len(t, rows, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, " 2024-05-01 ", rows[0].Date)
			}

			recs, err := fx.svc.Records(ctx, attendance.ReportFilter{Date: tt.date})
			require.NoError(t, err)
			assert.Len(t, recs, tt.wantLen)
		})
	}
}
