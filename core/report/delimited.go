package report

import (
	"encoding/csv"
	"io"

	"github.com/trezcool/mahudhurio/core/attendance"
)

func encodeDelimited(w io.Writer, rows []attendance.ReportRow) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.RollNo, row.Name, row.Date, string(row.Status)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
