// Package report shapes grades and attendance into printable tables and
// writes them as CSV, PDF or XLSX.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/grade"
)

type Kind string

// Kinds
const (
	KindGrades     Kind = "grades"
	KindAttendance Kind = "attendance"
)

var (
	GradeHeaders      = []string{"Student Name", "Assignment", "Category", "Score", "Max Score", "Percentage", "Grade", "Date"}
	AttendanceHeaders = []string{"Student Name", "Date", "Status", "Reason"}

	ErrUnknownKind = errors.New("unknown report kind")
)

// ParseKind accepts "grades" and "attendance".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(core.CleanString(s, true /* lower */)); k {
	case KindGrades, KindAttendance:
		return k, nil
	}
	return "", core.NewValidationError(ErrUnknownKind, core.FieldError{Field: "kind", Error: ErrUnknownKind.Error()})
}

type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Report is a table ready to be written in any Format.
type Report struct {
	Kind        Kind          `json:"kind"`
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generated_at"`
	Headers     []string      `json:"headers"`
	Rows        [][]string    `json:"rows"`
	Summary     []SummaryLine `json:"summary"`
}

// FileName is the download name of the report, e.g. "grade_report_2024-01-10.pdf".
func (r Report) FileName(f Format) string {
	var base string
	switch {
	case f == FormatPDF:
		base = strings.ReplaceAll(strings.ToLower(r.Title), " ", "_")
	case r.Kind == KindGrades:
		base = "grades_report"
	default:
		base = "attendance_report"
	}
	return base + "_" + core.DayKey(r.GeneratedAt) + "." + string(f)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// GradeRows shapes one row per grade in GradeHeaders order.
// A grade whose percentage cannot be computed shows "-" as percentage and band.
func GradeRows(grades []grade.Grade, names derive.Names) [][]string {
	rows := make([][]string, 0, len(grades))
	for _, g := range grades {
		pct, band := "-", "-"
		if p, err := derive.Percentage(g.Score, g.MaxScore); err == nil {
			pct = derive.FormatPercentage(p)
			band = derive.BandFor(p).Label()
		}
		rows = append(rows, []string{
			names.Name(g.StudentID),
			g.AssignmentName,
			string(g.Category),
			formatNumber(g.Score),
			formatNumber(g.MaxScore),
			pct,
			band,
			g.Date.Format(core.DisplayLayout),
		})
	}
	return rows
}

// AttendanceRows shapes one row per record in AttendanceHeaders order.
func AttendanceRows(records []attendance.Record, names derive.Names) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		reason := r.Reason
		if reason == "" {
			reason = "-"
		}
		rows = append(rows, []string{
			names.Name(r.StudentID),
			r.Date.Format(core.DisplayLayout),
			r.Status.Label(),
			reason,
		})
	}
	return rows
}

func GradeReport(grades []grade.Grade, names derive.Names, now time.Time) Report {
	sum := derive.SummarizeGrades(grades)
	return Report{
		Kind:        KindGrades,
		Title:       "Grade Report",
		GeneratedAt: now,
		Headers:     GradeHeaders,
		Rows:        GradeRows(grades, names),
		Summary: []SummaryLine{
			{Label: "Total Grades", Value: strconv.Itoa(sum.TotalGrades)},
			{Label: "Average Score", Value: derive.FormatPercentage(sum.AverageScore)},
			{Label: "Excellent (90%+)", Value: strconv.Itoa(sum.ExcellentCount)},
			{Label: "Needs Improvement (<70%)", Value: strconv.Itoa(sum.NeedsImprovementCount)},
		},
	}
}

func AttendanceReport(records []attendance.Record, names derive.Names, now time.Time) Report {
	sum := derive.SummarizeAttendance(records)
	return Report{
		Kind:        KindAttendance,
		Title:       "Attendance Report",
		GeneratedAt: now,
		Headers:     AttendanceHeaders,
		Rows:        AttendanceRows(records, names),
		Summary: []SummaryLine{
			{Label: "Total Records", Value: strconv.Itoa(sum.Total)},
			{Label: "Present", Value: strconv.Itoa(sum.Present)},
			{Label: "Absent", Value: strconv.Itoa(sum.Absent)},
			{Label: "Late", Value: strconv.Itoa(sum.Late)},
			{Label: "Excused", Value: strconv.Itoa(sum.Excused)},
			{Label: "Attendance Rate", Value: derive.FormatPercentage(sum.Rate)},
		},
	}
}

func (l SummaryLine) String() string {
	return fmt.Sprintf("%s: %s", l.Label, l.Value)
}
