package attendance

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/student"
)

type (
	Repository interface {
		// InsertRecords inserts all records in a single transaction: either all of them are
		// committed or none is.
		InsertRecords(ctx context.Context, recs []Record) error
		// QueryRecords returns the records of every kind of subject, in insertion order.
		QueryRecords(ctx context.Context, filter ReportFilter) ([]Record, error)
		// QueryStudentReport joins student records with the students' identity.
		QueryStudentReport(ctx context.Context, filter ReportFilter) ([]ReportRow, error)
	}

	// Roster lists the students an attendance Session is seeded from.
	Roster interface {
		List(ctx context.Context) ([]student.Student, error)
	}

	Service interface {
		NewSession(ctx context.Context) (*Session, error)
		Commit(ctx context.Context, sess *Session, date string) (int, error)
		Report(ctx context.Context, filter ReportFilter) ([]ReportRow, error)
		Records(ctx context.Context, filter ReportFilter) ([]Record, error)
	}

	service struct {
		repo   Repository
		roster Roster
		log    core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, roster Roster, logger core.Logger) Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(roster, "roster"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &service{repo: repo, roster: roster, log: logger}
}

// NewSession starts an attendance sheet with every student of the roster and no status set.
func (svc *service) NewSession(ctx context.Context) (*Session, error) {
	students, err := svc.roster.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	return newSession(students), nil
}

// Commit records the staged status of every student that has one, dated `date`.
// Students without a status are skipped. It returns the number of records written.
// The Session is left as is, whatever the outcome.
func (svc *service) Commit(ctx context.Context, sess *Session, date string) (int, error) {
	if sess == nil {
		return 0, core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: "session", Error: "no attendance session"})
	}
	if err := core.ValidateStruct(commitDate{Date: date}); err != nil {
		return 0, err
	}

	recs := sess.records(date)
	if len(recs) == 0 {
		svc.log.Info("attendance committed", map[string]interface{}{"session": sess.ID.String(), "date": date, "count": 0})
		return 0, nil
	}
	if err := svc.repo.InsertRecords(ctx, recs); err != nil {
		svc.log.Error("attendance commit failed", err, map[string]interface{}{"session": sess.ID.String(), "date": date})
		return 0, err
	}
	svc.log.Info("attendance committed", map[string]interface{}{"session": sess.ID.String(), "date": date, "count": len(recs)})
	return len(recs), nil
}

// Report returns the committed student attendance matching `filter`.
func (svc *service) Report(ctx context.Context, filter ReportFilter) ([]ReportRow, error) {
	return svc.repo.QueryStudentReport(ctx, filter)
}

// Records returns the committed records matching `filter`, students' and employees' alike.
func (svc *service) Records(ctx context.Context, filter ReportFilter) ([]Record, error) {
	return svc.repo.QueryRecords(ctx, filter)
}
