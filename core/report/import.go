package report

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

var (
	// StudentColumns is the expected column order of a roster spreadsheet.
	StudentColumns = []string{"Name", "Grade Level", "Email", "Phone", "Status", "Parent Name", "Parent Email", "Parent Phone"}

	ErrNoSheet = errors.New("spreadsheet does not contain any sheets")
)

// StudentRow is one roster line, with its 1-based spreadsheet row number.
type StudentRow struct {
	Row     int
	Student student.NewStudent
}

// ReadStudents parses the first sheet of an XLSX roster. The first row is a
// header and is skipped, as are blank rows. Rows are not validated here.
func ReadStudents(r io.Reader) ([]StudentRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening spreadsheet")
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rows of %s", sheet)
	}

	parsed := make([]StudentRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue // header
		}
		col := func(n int) string {
			if n < len(row) {
				return core.CleanString(row[n])
			}
			return ""
		}
		parsed = append(parsed, StudentRow{
			Row: i + 1,
			Student: student.NewStudent{
				Name:        col(0),
				GradeLevel:  col(1),
				Email:       col(2),
				Phone:       col(3),
				Status:      student.Status(strings.ToLower(col(4))),
				ParentName:  col(5),
				ParentEmail: col(6),
				ParentPhone: col(7),
			},
		})
	}
	return parsed, nil
}

// WriteStudentTemplate writes an empty roster with the expected header row.
func WriteStudentTemplate(w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "closing xlsx")
		}
	}()
	if err = setRow(f, f.GetSheetName(0), 1, StudentColumns); err != nil {
		return err
	}
	return errors.Wrap(f.Write(w), "writing xlsx")
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
