package views

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

const recentGradesLen = 5

type StudentDetailView struct {
	Status       Status                   `json:"status"`
	Student      student.Student          `json:"student"`
	RecentGrades []GradeRow               `json:"recent_grades"`
	GradeStats   derive.GradeStats        `json:"grade_stats"`
	Attendance   derive.AttendanceSummary `json:"attendance"`
	Performance  derive.Performance       `json:"performance"`
}

// StudentDetail is the profile page of one student.
type StudentDetail struct {
	page
	id      int
	student student.Student
	grades  []grade.Grade
	records []attendance.Record
}

func NewStudentDetail(svcs Services, id int) *StudentDetail {
	return &StudentDetail{page: page{svcs: svcs}, id: id}
}

// Load fails with student.ErrNotFound when the student does not exist.
func (c *StudentDetail) Load(ctx context.Context) error {
	var (
		s       student.Student
		grades  []grade.Grade
		records []attendance.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s, err = c.svcs.Students.GetByID(gctx, c.id)
		return errors.Wrap(err, "getting student")
	})
	g.Go(func() (err error) {
		grades, err = c.svcs.Grades.QueryAll(gctx)
		return errors.Wrap(err, "querying grades")
	})
	g.Go(func() (err error) {
		records, err = c.svcs.Attendance.QueryAll(gctx)
		return errors.Wrap(err, "querying attendance")
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.fail("loading student detail", err)
	}
	c.student = s
	c.grades = derive.GradesOf(c.id, grades)
	c.records = derive.RecordsOf(c.id, records)
	c.succeed()
	return nil
}

func (c *StudentDetail) View() StudentDetailView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	recent := derive.RecentGrades(c.grades, recentGradesLen)
	rows := make([]GradeRow, 0, len(recent))
	for _, g := range recent {
		rows = append(rows, newGradeRow(g, c.student.Name))
	}
	return StudentDetailView{
		Status:       c.status,
		Student:      c.student,
		RecentGrades: rows,
		GradeStats:   derive.AggregateStats(c.grades),
		Attendance:   derive.SummarizeAttendance(c.records),
		Performance:  derive.StudentPerformance(c.id, c.grades),
	}
}
