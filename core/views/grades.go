package views

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/student"
)

// GradeRow is a grade as listed on the page. Percentage is nil when the max score is invalid.
type GradeRow struct {
	grade.Grade
	StudentName string      `json:"student_name"`
	Percentage  *float64    `json:"percentage"`
	Band        derive.Band `json:"band,omitempty"`
}

func newGradeRow(g grade.Grade, name string) GradeRow {
	row := GradeRow{Grade: g, StudentName: name}
	if pct, err := derive.Percentage(g.Score, g.MaxScore); err == nil {
		row.Band = derive.BandFor(pct)
		pct = derive.Round1(pct)
		row.Percentage = &pct
	}
	return row
}

type GradesView struct {
	Status   Status            `json:"status"`
	Filter   grade.QueryFilter `json:"filter"`
	Grades   []GradeRow        `json:"grades"`
	Stats    derive.GradeStats `json:"stats"`
	Students []student.Student `json:"students"`
}

// Grades is the grade book page.
type Grades struct {
	page
	students  []student.Student
	grades    []grade.Grade
	filter    grade.QueryFilter
	orderings []core.DBOrdering
}

func NewGrades(svcs Services) *Grades {
	return &Grades{page: page{svcs: svcs}}
}

func (c *Grades) Load(ctx context.Context) error {
	snap, err := c.svcs.load(ctx, fetchStudents|fetchGrades)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.fail("loading grades", err)
	}
	c.students, c.grades = snap.students, snap.grades
	c.succeed()
	return nil
}

func (c *Grades) SetFilter(f grade.QueryFilter) {
	f.Clean()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

func (c *Grades) SetOrdering(orderings []core.DBOrdering) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orderings = orderings
}

// filtered returns the visible grades. Callers hold mu.
func (c *Grades) filtered() []grade.Grade {
	grades := derive.FilterGrades(c.grades, derive.NamesByID(c.students), c.filter)
	derive.SortGrades(grades, c.orderings)
	return grades
}

// View lists the filtered grades; Stats cover the filtered grades only.
func (c *Grades) View() GradesView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := derive.NamesByID(c.students)
	grades := c.filtered()
	rows := make([]GradeRow, 0, len(grades))
	for _, g := range grades {
		rows = append(rows, newGradeRow(g, names.Name(g.StudentID)))
	}

	students := make([]student.Student, len(c.students))
	copy(students, c.students)
	return GradesView{
		Status:   c.status,
		Filter:   c.filter,
		Grades:   rows,
		Stats:    derive.AggregateStats(grades),
		Students: students,
	}
}

// Report builds the grade report of the filtered grades.
func (c *Grades) Report() report.Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return report.GradeReport(c.filtered(), derive.NamesByID(c.students), c.svcs.now())
}

// Assignments lists the assignments due within [from, to]; zero bounds are open.
func (c *Grades) Assignments(from, to time.Time) []derive.Assignment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := derive.Assignments(c.grades)
	if from.IsZero() && to.IsZero() {
		return all
	}
	if to.IsZero() {
		to = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return derive.AssignmentsBetween(all, from, to)
}

func (c *Grades) Upcoming(days int) []derive.Assignment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return derive.UpcomingAssignments(derive.Assignments(c.grades), c.svcs.now(), days)
}

func (c *Grades) Create(ctx context.Context, ng grade.NewGrade) (grade.Grade, error) {
	g, err := c.svcs.Grades.Create(ctx, ng)
	if err != nil {
		return grade.Grade{}, err
	}
	c.mu.Lock()
	c.grades = replaceGrade(c.grades, g)
	c.mu.Unlock()
	return g, nil
}

func (c *Grades) Update(ctx context.Context, id int, ug grade.UpdateGrade) (grade.Grade, error) {
	g, err := c.svcs.Grades.Update(ctx, id, ug)
	if err != nil {
		return grade.Grade{}, err
	}
	c.mu.Lock()
	c.grades = replaceGrade(c.grades, g)
	c.mu.Unlock()
	return g, nil
}

func (c *Grades) Delete(ctx context.Context, id int) error {
	if err := c.svcs.Grades.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	c.grades = removeGrade(c.grades, id)
	c.mu.Unlock()
	return nil
}
