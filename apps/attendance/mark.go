package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

// mark stages the ROLL_NO=STATUS arguments in a new session and commits it.
// Students of the roster that are not named get no record.
func (cli *commandLine) mark(args []string) error {
	cmd := cli.newFlagSet("mark")
	uname := cmd.String("username", "", "The logged in user's username. The password will be prompted next.")
	date := cmd.String("date", "", "The date of the attendance, as free text (eg. 2024-05-01).")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}
	if *uname == "" || cmd.NArg() == 0 {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	if _, err := cli.login(ctx, *uname); err != nil {
		return err
	}

	sess, err := cli.attSvc.NewSession(ctx)
	if err != nil {
		return err
	}
	for _, arg := range cmd.Args() {
		if err := stage(sess, arg); err != nil {
			return err
		}
	}

	cnt, err := cli.attSvc.Commit(ctx, sess, *date)
	if err != nil {
		return err
	}
	cli.printSuccess("%d attendance record(s) saved for %s.", cnt, *date)
	return nil
}

func stage(sess *attendance.Session, arg string) error {
	rollNo, value, ok := strings.Cut(arg, "=")
	if !ok {
		return core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: arg, Error: "expected ROLL_NO=STATUS"})
	}
	entry, found := sess.StudentByRollNo(rollNo)
	if !found {
		return errors.Wrapf(attendance.ErrNotStaged, "roll number %q", core.CleanString(rollNo))
	}
	status, err := attendance.ParseStatus(value)
	if err != nil {
		return err
	}
	return sess.SetStatus(entry.Student.ID, status)
}
