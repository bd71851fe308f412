package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/report"
	"github.com/trezcool/mahudhurio/core/student"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	sqlxrepos "github.com/trezcool/mahudhurio/storage/database/sqlx"
	"github.com/trezcool/mahudhurio/tests"
)

func TestExportCommittedAttendance(t *testing.T) {
	db := testutil.PrepareDB(t)
	ctx := context.Background()
	stSvc := student.NewService(sqlxrepos.NewStudentRepository(db), &logsvc.NopLogger{})
	attSvc := attendance.NewService(sqlxrepos.NewAttendanceRepository(db), stSvc, &logsvc.NopLogger{})
	exp := report.NewExporter(attSvc, &logsvc.NopLogger{})

	alice, err := stSvc.Add(ctx, student.NewStudent{RollNo: "R1", Name: "Alice"})
	require.NoError(t, err)
	_, err = stSvc.Add(ctx, student.NewStudent{RollNo: "R2", Name: "Bob"})
	require.NoError(t, err)

	sess, err := attSvc.NewSession(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.SetStatus(alice.ID, attendance.StatusPresent))
	cnt, err := attSvc.Commit(ctx, sess, "2024-01-10")
	require.NoError(t, err)
	require.Equal(t, 1, cnt)

	// staged but uncommitted statuses are not exported
	require.NoError(t, sess.SetStatus(alice.ID, attendance.StatusAbsent))

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, exp.ExportDelimited(ctx, path, attendance.ReportFilter{}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Roll No,Name,Date,Status\r\nR1,Alice,2024-01-10,Present\r\n", string(content))
}
