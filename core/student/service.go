package student

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
)

var (
	// errors
	ErrNotFound     = errors.Wrap(core.ErrNotFound, "student")
	ErrRollNoExists = core.NewDuplicateKeyError("roll_no", "a student with this roll number already exists")
)

type (
	Repository interface {
		// CreateStudent fails with ErrRollNoExists if the roll number is taken.
		CreateStudent(ctx context.Context, st Student) (Student, error)
		// QueryStudents returns all students, by default in insertion order.
		QueryStudents(ctx context.Context, ordering ...core.DBOrdering) ([]Student, error)
		// DeleteStudent deletes the student and, by cascade, its attendance records.
		// It fails with ErrNotFound if no student has this ID.
		DeleteStudent(ctx context.Context, id int64) error
	}

	Service interface {
		Add(ctx context.Context, ns NewStudent) (Student, error)
		Remove(ctx context.Context, id int64) error
		List(ctx context.Context) ([]Student, error)
	}

	service struct {
		repo Repository
		log  core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, logger core.Logger) Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &service{repo: repo, log: logger}
}

func (svc *service) Add(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	st, err := svc.repo.CreateStudent(ctx, Student{RollNo: ns.RollNo, Name: ns.Name})
	if err != nil {
		return Student{}, err
	}
	svc.log.Info("student added", map[string]interface{}{"id": st.ID, "roll_no": st.RollNo})
	return st, nil
}

func (svc *service) Remove(ctx context.Context, id int64) error {
	if err := svc.repo.DeleteStudent(ctx, id); err != nil {
		return err
	}
	svc.log.Info("student removed", map[string]interface{}{"id": id})
	return nil
}

func (svc *service) List(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, core.DBOrdering{Field: "id", Ascending: true})
}
