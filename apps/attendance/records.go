package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/mahudhurio/core/attendance"
)

func (cli *commandLine) records(args []string) error {
	cmd := cli.newFlagSet("records")
	uname := cmd.String("username", "", "The logged in user's username. The password will be prompted next.")
	date := cmd.String("date", "", "Only show the attendance of this date.")
	all := cmd.Bool("all", false, "Show the raw records of students and employees.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}
	if *uname == "" {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	if _, err := cli.login(ctx, *uname); err != nil {
		return err
	}

	filter := attendance.ReportFilter{Date: *date}
	if *all {
		recs, err := cli.attSvc.Records(ctx, filter)
		if err != nil {
			return err
		}
		cli.printRecords(recs)
		return nil
	}
	rows, err := cli.attSvc.Report(ctx, filter)
	if err != nil {
		return err
	}
	cli.printReport(rows)
	return nil
}

func (cli *commandLine) printReport(rows []attendance.ReportRow) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(cli.out, "No attendance recorded.")
		return
	}
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "Roll No\tName\tDate\tStatus")
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.RollNo, row.Name, row.Date, row.Status)
	}
	_ = tw.Flush()
}

func (cli *commandLine) printRecords(recs []attendance.Record) {
	if len(recs) == 0 {
		_, _ = fmt.Fprintln(cli.out, "No attendance recorded.")
		return
	}
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tType\tSubject ID\tDate\tStatus")
	for _, rec := range recs {
		var subjectID int64
		switch sub := rec.Subject.(type) {
		case attendance.StudentSubject:
			subjectID = sub.StudentID
		case attendance.EmployeeSubject:
			subjectID = sub.EmployeeID
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", rec.ID, rec.Subject.Kind(), subjectID, rec.Date, rec.Status)
	}
	_ = tw.Flush()
}
