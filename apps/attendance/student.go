package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/mahudhurio/core/student"
)

func (cli *commandLine) student(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	cmd := cli.newFlagSet("student " + args[0])
	uname := cmd.String("username", "", "The logged in user's username. The password will be prompted next.")
	var (
		rollNo, name *string
		id           *int64
	)
	switch args[0] {
	case "add":
		rollNo = cmd.String("roll", "", "The new student's roll number.")
		name = cmd.String("name", "", "The new student's name.")
	case "remove":
		id = cmd.Int64("id", 0, "The ID of the student to remove, as shown by 'student list'.")
	case "list": // pass
	default:
		cli.printUsage()
		return errHelp
	}
	if err := cli.parse(cmd, args[1:]); err != nil {
		return err
	}
	if *uname == "" || (id != nil && *id == 0) {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	if _, err := cli.login(ctx, *uname); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		st, err := cli.stSvc.Add(ctx, student.NewStudent{RollNo: *rollNo, Name: *name})
		if err != nil {
			return err
		}
		cli.printSuccess("Student %s %q added with ID %d.", st.RollNo, st.Name, st.ID)
	case "remove":
		if err := cli.stSvc.Remove(ctx, *id); err != nil {
			return err
		}
		cli.printSuccess("Student %d removed.", *id)
	case "list":
		students, err := cli.stSvc.List(ctx)
		if err != nil {
			return err
		}
		cli.printStudents(students)
	}
	return nil
}

func (cli *commandLine) printStudents(students []student.Student) {
	if len(students) == 0 {
		_, _ = fmt.Fprintln(cli.out, "No students.")
		return
	}
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tRoll No\tName")
	for _, st := range students {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", st.ID, st.RollNo, st.Name)
	}
	_ = tw.Flush()
}
