package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/mahudhurio/core/attendance"
)

// SheetName is the title of the worksheet holding the report.
const SheetName = "Attendance Report"

func encodeSpreadsheet(w io.Writer, rows []attendance.ReportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet so that the workbook has a single worksheet
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "naming worksheet")
	}

	header := make([]interface{}, 0, len(Header))
	for _, h := range Header {
		header = append(header, h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.RollNo, row.Name, row.Date, string(row.Status)}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "writing row %d", i+2)
		}
	}
	_, err := f.WriteTo(w)
	return err
}
