package report

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

// Header is the first row of every exported report.
var Header = []string{"Roll No", "Name", "Date", "Status"}

type (
	// Source provides the committed attendance to export.
	Source interface {
		Report(ctx context.Context, filter attendance.ReportFilter) ([]attendance.ReportRow, error)
	}

	Exporter interface {
		// ExportDelimited writes a comma separated report to path.
		ExportDelimited(ctx context.Context, path string, filter attendance.ReportFilter) error
		// ExportSpreadsheet writes a single worksheet XLSX report to path.
		ExportSpreadsheet(ctx context.Context, path string, filter attendance.ReportFilter) error
	}

	exporter struct {
		src Source
		log core.Logger
	}

	// encodeFunc serializes rows to w.
	encodeFunc func(w io.Writer, rows []attendance.ReportRow) error
)

var _ Exporter = (*exporter)(nil)

func NewExporter(src Source, logger core.Logger) Exporter {
	vala.BeginValidation().Validate(
		vala.IsNotNil(src, "src"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &exporter{src: src, log: logger}
}

func (e *exporter) ExportDelimited(ctx context.Context, path string, filter attendance.ReportFilter) error {
	return e.export(ctx, path, filter, "csv", encodeDelimited)
}

func (e *exporter) ExportSpreadsheet(ctx context.Context, path string, filter attendance.ReportFilter) error {
	return e.export(ctx, path, filter, "xlsx", encodeSpreadsheet)
}

func (e *exporter) export(ctx context.Context, path string, filter attendance.ReportFilter, format string, encode encodeFunc) error {
	if core.CleanString(path) == "" {
		return core.NewValidationError(core.ErrInvalidInput, core.FieldError{Field: "path", Error: "this field is required"})
	}
	rows, err := e.src.Report(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "querying report")
	}
	if err := writeFileAtomic(path, rows, encode); err != nil {
		e.log.Error("report export failed", err, map[string]interface{}{"path": path, "format": format})
		return err
	}
	e.log.Info("report exported", map[string]interface{}{"path": path, "format": format, "rows": len(rows)})
	return nil
}

// writeFileAtomic encodes rows into a temporary file next to path, then renames it to path.
// On failure, the temporary file is removed and path is left untouched.
func writeFileAtomic(path string, rows []attendance.ReportRow, encode encodeFunc) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return core.NewIOError(path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = encode(tmp, rows); err != nil {
		return core.NewIOError(path, err)
	}
	if err = tmp.Sync(); err != nil {
		return core.NewIOError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return core.NewIOError(path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return core.NewIOError(path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return core.NewIOError(path, err)
	}
	return nil
}
