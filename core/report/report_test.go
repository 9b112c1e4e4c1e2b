package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

var (
	jan10 = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	names = derive.NamesByID([]student.Student{
		{ID: 1, Name: "Amy Lee"},
		{ID: 2, Name: "Bruno Diaz"},
		{ID: 3, Name: "Chen Wu"},
	})
)

func testGrades() []grade.Grade {
	return []grade.Grade{
		{ID: 1, StudentID: 1, AssignmentName: "Fractions Quiz", Category: grade.CategoryQuiz, Score: 45, MaxScore: 50, Date: jan10},
		{ID: 2, StudentID: 2, AssignmentName: "Essay, Draft 2", Category: grade.CategoryHomework, Score: 16, MaxScore: 20, Date: jan10.AddDate(0, 0, 1)},
		{ID: 3, StudentID: 9, AssignmentName: "Science Project", Category: grade.CategoryProject, Score: 38, MaxScore: 40, Date: jan10.AddDate(0, 0, 2)},
		{ID: 4, StudentID: 1, AssignmentName: "Bonus Quiz", Category: grade.CategoryQuiz, Score: 3, MaxScore: 0, Date: jan10.AddDate(0, 0, 3)},
		{ID: 5, StudentID: 3, AssignmentName: "Unit Test 1", Category: grade.CategoryTest, Score: 13.5, MaxScore: 20, Date: jan10.AddDate(0, 0, 4)},
	}
}

func testRecords() []attendance.Record {
	return []attendance.Record{
		{ID: 1, StudentID: 1, Date: jan10, Status: attendance.StatusPresent},
		{ID: 2, StudentID: 2, Date: jan10, Status: attendance.StatusLate, Reason: "Bus was late"},
		{ID: 3, StudentID: 9, Date: jan10.AddDate(0, 0, 1), Status: attendance.StatusExcused, Reason: attendance.ExcusedReason},
		{ID: 4, StudentID: 3, Date: jan10.AddDate(0, 0, 1), Status: attendance.StatusAbsent, Reason: `Said "sick"`},
	}
}

func TestGradeReport(t *testing.T) {
	r := GradeReport(testGrades(), names, jan10)

	assert.Equal(t, GradeHeaders, r.Headers)
	assert.Len(t, r.Rows, 5)
	assert.Equal(t, []SummaryLine{
		{Label: "Total Grades", Value: "5"},
		{Label: "Average Score", Value: "83.1%"},
		{Label: "Excellent (90%+)", Value: "2"},
		{Label: "Needs Improvement (<70%)", Value: "1"},
	}, r.Summary)
}

func TestAttendanceReport(t *testing.T) {
	r := AttendanceReport(testRecords(), names, jan10)

	assert.Equal(t, AttendanceHeaders, r.Headers)
	assert.Equal(t, []string{"Amy Lee", "Jan 10, 2024", "Present", "-"}, r.Rows[0])
	assert.Equal(t, SummaryLine{Label: "Attendance Rate", Value: "25.0%"}, r.Summary[len(r.Summary)-1])
}

func TestReport_FileName(t *testing.T) {
	grades := GradeReport(nil, names, jan10)
	att := AttendanceReport(nil, names, jan10)

	tests := []struct {
		name   string
		report Report
		format Format
		want   string
	}{
		{name: "grades pdf", report: grades, format: FormatPDF, want: "grade_report_2024-01-10.pdf"},
		{name: "grades csv", report: grades, format: FormatCSV, want: "grades_report_2024-01-10.csv"},
		{name: "grades xlsx", report: grades, format: FormatXLSX, want: "grades_report_2024-01-10.xlsx"},
		{name: "attendance pdf", report: att, format: FormatPDF, want: "attendance_report_2024-01-10.pdf"},
		{name: "attendance csv", report: att, format: FormatCSV, want: "attendance_report_2024-01-10.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.FileName(tt.format); got != tt.want {
				t.Errorf("FileName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatPDF},
		{in: "CSV", want: FormatCSV},
		{in: " xlsx ", want: FormatXLSX},
		{in: "docx", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))

	tests := []struct {
		name   string
		report Report
	}{
		{name: "grades_report", report: GradeReport(testGrades(), names, jan10)},
		{name: "attendance_report", report: AttendanceReport(testRecords(), names, jan10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.report, FormatCSV))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, GradeReport(testGrades(), names, jan10), FormatPDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "not a pdf document")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, AttendanceReport(testRecords(), names, jan10), FormatXLSX))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Attendance", "Summary"}, f.GetSheetList())
	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	assert.Equal(t, AttendanceHeaders, rows[0])
	assert.Equal(t, []string{"Chen Wu", "Jan 11, 2024", "Absent", `Said "sick"`}, rows[4])

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Records", "4"}, summary[0])
}

func TestReadStudents(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Grade Level", "Email", "Phone"},
		{" Amy Lee ", "5th Grade", "amy@school.test", "555-0101", "Pending"},
		{},
		{"Bruno Diaz", "6th Grade", "bruno@school.test", "555-0102", "", "Ana Diaz", "ana@home.test"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	got, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Equal(t, []StudentRow{
		{Row: 2, Student: student.NewStudent{
			Name: "Amy Lee", GradeLevel: "5th Grade", Email: "amy@school.test", Phone: "555-0101", Status: student.StatusPending,
		}},
		{Row: 4, Student: student.NewStudent{
			Name: "Bruno Diaz", GradeLevel: "6th Grade", Email: "bruno@school.test", Phone: "555-0102",
			ParentName: "Ana Diaz", ParentEmail: "ana@home.test",
		}},
	}, got)
}

func TestReadStudents_notASpreadsheet(t *testing.T) {
	_, err := ReadStudents(bytes.NewBufferString("name,email\n"))
	assert.Error(t, err)
}

func TestWriteStudentTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStudentTemplate(&buf))

	got, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}
