package attendance

import (
	"strings"

	"github.com/trezcool/mahudhurio/core"
)

type Status string

// Statuses
const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate}

func (s Status) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseStatus maps `s` to one of Statuses, ignoring case and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	s = core.CleanString(s, true /* lower */)
	for _, status := range Statuses {
		if strings.ToLower(string(status)) == s {
			return status, nil
		}
	}
	return "", core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: "status", Error: statusText})
}

// Kind is stored as the record's user_type.
type Kind string

// Kinds
const (
	KindStudent  Kind = "student"
	KindEmployee Kind = "employee"
)

// Subject is who a Record is about: a StudentSubject or an EmployeeSubject.
type Subject interface {
	Kind() Kind
	isSubject()
}

type StudentSubject struct {
	StudentID int64
}

func (StudentSubject) Kind() Kind { return KindStudent }
func (StudentSubject) isSubject() {}

type EmployeeSubject struct {
	EmployeeID int64
}

func (EmployeeSubject) Kind() Kind { return KindEmployee }
func (EmployeeSubject) isSubject() {}

// Record is a committed attendance entry. Records are never updated.
type Record struct {
	ID      int64
	Subject Subject
	Date    string
	Status  Status
}

// ReportRow is a student Record joined with the student's identity.
type ReportRow struct {
	RollNo string `db:"roll_no" json:"roll_no"`
	Name   string `db:"name" json:"name"`
	Date   string `db:"date" json:"date"`
	Status Status `db:"status" json:"status"`
}

// ReportFilter restricts a report to the records of a single Date, if set.
// Dates are compared as stored, byte for byte.
type ReportFilter struct {
	Date string
}
