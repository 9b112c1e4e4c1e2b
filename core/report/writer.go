package report

import (
	"encoding/csv"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core"
)

type Format string

// Formats
const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat defaults to PDF when s is empty.
func ParseFormat(s string) (Format, error) {
	switch f := Format(core.CleanString(s, true /* lower */)); f {
	case "":
		return FormatPDF, nil
	case FormatCSV, FormatPDF, FormatXLSX:
		return f, nil
	}
	return "", core.NewValidationError(ErrUnsupportedFormat, core.FieldError{Field: "format", Error: ErrUnsupportedFormat.Error()})
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Write renders r to w in the given format.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	}
	return ErrUnsupportedFormat
}

// WriteCSV writes the headers and rows only; the summary is left out.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Headers); err != nil {
		return errors.Wrap(err, "writing csv headers")
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return errors.Wrap(err, "writing csv rows")
	}
	return nil
}

const (
	pdfMargin     = 20.0
	pdfCellHeight = 8.0
	pdfMaxCellLen = 12
)

func truncate(s string) string {
	r := []rune(s)
	if len(r) > pdfMaxCellLen {
		return string(r[:pdfMaxCellLen]) + "..."
	}
	return s
}

func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()

	// title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, r.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated on: "+r.GeneratedAt.Format("Jan 2, 2006 3:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	// summary
	if len(r.Summary) > 0 {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, "Summary")
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range r.Summary {
			pdf.Cell(0, 6, line.String())
			pdf.Ln(6)
		}
		pdf.Ln(9)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Detailed Records")
	pdf.Ln(10)

	if len(r.Headers) > 0 {
		cellWidth := (pageWidth - 2*pdfMargin) / float64(len(r.Headers))

		pdf.SetFont("Helvetica", "B", 9)
		for _, h := range r.Headers {
			pdf.CellFormat(cellWidth, pdfCellHeight, truncate(h), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range r.Rows {
			for _, cell := range row {
				pdf.CellFormat(cellWidth, pdfCellHeight, truncate(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "writing pdf")
	}
	return nil
}

const summarySheet = "Summary"

// WriteXLSX writes the table on a first sheet named after the kind and the summary on a second one.
func WriteXLSX(w io.Writer, r Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "closing xlsx")
		}
	}()

	sheet := core.Capitalize(string(r.Kind))
	if sheet == "" {
		sheet = "Report"
	}
	if err = f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	if err = setRow(f, sheet, 1, r.Headers); err != nil {
		return err
	}
	for i, row := range r.Rows {
		if err = setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if len(r.Summary) > 0 {
		if _, err = f.NewSheet(summarySheet); err != nil {
			return errors.Wrap(err, "creating summary sheet")
		}
		for i, line := range r.Summary {
			if err = setRow(f, summarySheet, i+1, []string{line.Label, line.Value}); err != nil {
				return err
			}
		}
	}

	if err = f.Write(w); err != nil {
		return errors.Wrap(err, "writing xlsx")
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "locating xlsx row")
	}
	cells := make([]interface{}, 0, len(values))
	for _, v := range values {
		cells = append(cells, v)
	}
	if err = f.SetSheetRow(sheet, cell, &cells); err != nil {
		return errors.Wrapf(err, "writing xlsx row %d", row)
	}
	return nil
}
