package views

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/student"
)

// AttendanceRow is one line of the grid: a student and their status on the selected day.
type AttendanceRow struct {
	Student student.Student    `json:"student"`
	Status  attendance.Status  `json:"status"`
	Record  *attendance.Record `json:"record"`
}

type AttendanceView struct {
	Status  Status                   `json:"status"`
	Date    string                   `json:"date"`
	Rows    []AttendanceRow          `json:"rows"`
	Counts  derive.StatusCounts      `json:"counts"`
	Summary derive.AttendanceSummary `json:"summary"`
}

// Attendance is the daily attendance grid.
type Attendance struct {
	page
	students []student.Student
	records  []attendance.Record
	day      time.Time
}

func NewAttendance(svcs Services) *Attendance {
	return &Attendance{page: page{svcs: svcs}, day: svcs.now()}
}

func (c *Attendance) Load(ctx context.Context) error {
	snap, err := c.svcs.load(ctx, fetchStudents|fetchAttendance)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.fail("loading attendance", err)
	}
	c.students, c.records = snap.students, snap.records
	c.succeed()
	return nil
}

// SetDate selects the day shown by the grid.
func (c *Attendance) SetDate(day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = day.UTC()
}

func (c *Attendance) Date() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.day
}

func (c *Attendance) View() AttendanceView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dayRecords := derive.RecordsOn(c.day, c.records)
	rows := make([]AttendanceRow, 0, len(c.students))
	for _, s := range c.students {
		row := AttendanceRow{Student: s, Status: attendance.StatusUnmarked}
		if r, ok := derive.FindRecord(s.ID, c.day, dayRecords); ok {
			r := r
			row.Status = r.Status
			row.Record = &r
		}
		rows = append(rows, row)
	}
	return AttendanceView{
		Status:  c.status,
		Date:    core.DayKey(c.day),
		Rows:    rows,
		Counts:  derive.CountStatuses(c.students, c.day, dayRecords),
		Summary: derive.SummarizeAttendance(dayRecords),
	}
}

// Mark sets the status of one student on the selected day.
func (c *Attendance) Mark(ctx context.Context, studentID int, status attendance.Status) (attendance.Record, error) {
	written, err := c.Bulk(ctx, []attendance.Mark{{StudentID: studentID, Date: c.Date(), Status: status}})
	if err != nil {
		return attendance.Record{}, err
	}
	return written[0], nil
}

// MarkAll sets the same status for every student on the selected day.
func (c *Attendance) MarkAll(ctx context.Context, status attendance.Status) ([]attendance.Record, error) {
	c.mu.RLock()
	marks := derive.MarkAll(c.students, c.day, status)
	c.mu.RUnlock()
	return c.Bulk(ctx, marks)
}

// Bulk upserts marks against the loaded records. Records written before a
// failure are kept in the snapshot.
func (c *Attendance) Bulk(ctx context.Context, marks []attendance.Mark) ([]attendance.Record, error) {
	if err := c.svcs.Attendance.ValidateMarks(marks); err != nil {
		return nil, err
	}

	c.mu.RLock()
	plan := derive.PlanAttendanceUpsert(marks, c.records)
	c.mu.RUnlock()

	written, err := c.svcs.Attendance.Apply(ctx, plan)

	c.mu.Lock()
	for _, r := range written {
		c.records = replaceRecord(c.records, r)
	}
	c.mu.Unlock()

	return written, err
}

func (c *Attendance) DeleteRecord(ctx context.Context, id int) error {
	if err := c.svcs.Attendance.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	c.records = removeRecord(c.records, id)
	c.mu.Unlock()
	return nil
}

// Report builds the attendance report. A zero day reports every record.
func (c *Attendance) Report(day time.Time) report.Report {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := c.records
	if !day.IsZero() {
		records = derive.RecordsOn(day, records)
	}
	return report.AttendanceReport(records, derive.NamesByID(c.students), c.svcs.now())
}
