package attendance

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/student"
)

// ErrNotStaged is returned when a student is not part of the Session.
var ErrNotStaged = errors.Wrap(core.ErrNotFound, "student not in session")

// Entry is a student of the roster with the Status chosen for it, if any.
type Entry struct {
	Student student.Student
	Status  Status // empty until set
}

func (e Entry) IsSet() bool { return e.Status != "" }

// Session holds the statuses staged for a single attendance sheet until they
// are committed. It is never persisted and is not safe for concurrent use.
type Session struct {
	ID      uuid.UUID
	entries []Entry
	index   map[int64]int // {student ID: entries idx}
}

func newSession(students []student.Student) *Session {
	sess := &Session{
		ID:      uuid.New(),
		entries: make([]Entry, 0, len(students)),
		index:   make(map[int64]int, len(students)),
	}
	for _, st := range students {
		sess.index[st.ID] = len(sess.entries)
		sess.entries = append(sess.entries, Entry{Student: st})
	}
	return sess
}

// SetStatus overwrites the staged status of a student.
func (sess *Session) SetStatus(studentID int64, status Status) error {
	idx, ok := sess.index[studentID]
	if !ok {
		return ErrNotStaged
	}
	if err := core.ValidateStruct(stagedStatus{Status: status}); err != nil {
		return err
	}
	sess.entries[idx].Status = status
	return nil
}

// ClearStatus unsets the staged status of a student, so that no record is
// committed for it.
func (sess *Session) ClearStatus(studentID int64) error {
	idx, ok := sess.index[studentID]
	if !ok {
		return ErrNotStaged
	}
	sess.entries[idx].Status = ""
	return nil
}

// Entries returns a copy of the staged entries in roster order.
func (sess *Session) Entries() []Entry {
	entries := make([]Entry, len(sess.entries))
	copy(entries, sess.entries)
	return entries
}

// StudentByRollNo finds the staged entry of the student with the given roll number.
func (sess *Session) StudentByRollNo(rollNo string) (Entry, bool) {
	rollNo = core.CleanString(rollNo)
	for _, e := range sess.entries {
		if e.Student.RollNo == rollNo {
			return e, true
		}
	}
	return Entry{}, false
}

// records builds a Record for every entry with a status, dated `date`.
func (sess *Session) records(date string) []Record {
	recs := make([]Record, 0, len(sess.entries))
	for _, e := range sess.entries {
		if !e.IsSet() {
			continue
		}
		recs = append(recs, Record{
			Subject: StudentSubject{StudentID: e.Student.ID},
			Date:    date,
			Status:  e.Status,
		})
	}
	return recs
}
