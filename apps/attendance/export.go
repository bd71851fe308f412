package main

import (
	"context"
	"strings"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// Export formats
const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

func (cli *commandLine) export(args []string) error {
	cmd := cli.newFlagSet("export")
	uname := cmd.String("username", "", "The logged in user's username. The password will be prompted next.")
	format := cmd.String("format", formatCSV, "The report's format: csv or xlsx.")
	out := cmd.String("out", "", "The path of the report file. An existing file is replaced.")
	date := cmd.String("date", "", "Only export the attendance of this date.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}
	*format = strings.ToLower(*format)
	if *uname == "" || *out == "" || (*format != formatCSV && *format != formatXLSX) {
		cmd.Usage()
		return errHelp
	}

	ctx := context.Background()
	if _, err := cli.login(ctx, *uname); err != nil {
		return err
	}

	filter := attendance.ReportFilter{Date: *date}
	var err error
	if *format == formatXLSX {
		err = cli.exporter.ExportSpreadsheet(ctx, *out, filter)
	} else {
		err = cli.exporter.ExportDelimited(ctx, *out, filter)
	}
	if err != nil {
		return err
	}
	cli.printSuccess("Report exported to %s.", *out)
	return nil
}
