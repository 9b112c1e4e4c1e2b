package views

import (
	"context"

	"github.com/trezcool/darasa/core/derive"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/student"
)

type StudentsView struct {
	Status   Status            `json:"status"`
	Search   string            `json:"search"`
	Total    int               `json:"total"`
	Students []student.Student `json:"students"`
}

// Students is the roster page.
type Students struct {
	page
	students []student.Student
	search   string
}

func NewStudents(svcs Services) *Students {
	return &Students{page: page{svcs: svcs}}
}

func (c *Students) Load(ctx context.Context) error {
	snap, err := c.svcs.load(ctx, fetchStudents)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.fail("loading students", err)
	}
	c.students = snap.students
	c.succeed()
	return nil
}

func (c *Students) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
}

func (c *Students) View() StudentsView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return StudentsView{
		Status:   c.status,
		Search:   c.search,
		Total:    len(c.students),
		Students: derive.FilterStudents(c.students, c.search),
	}
}

func (c *Students) Create(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	s, err := c.svcs.Students.Create(ctx, ns)
	if err != nil {
		return student.Student{}, err
	}
	c.mu.Lock()
	c.students = replaceStudent(c.students, s)
	c.mu.Unlock()
	return s, nil
}

func (c *Students) Update(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	s, err := c.svcs.Students.Update(ctx, id, us)
	if err != nil {
		return student.Student{}, err
	}
	c.mu.Lock()
	c.students = replaceStudent(c.students, s)
	c.mu.Unlock()
	return s, nil
}

func (c *Students) Delete(ctx context.Context, id int) error {
	if err := c.svcs.Students.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	c.students = removeStudent(c.students, id)
	c.mu.Unlock()
	return nil
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Created []student.Student `json:"created"`
	Errors  []RowError        `json:"errors"`
}

// Import creates one student per roster row. Invalid rows are reported
// and skipped; a store failure stops the import.
func (c *Students) Import(ctx context.Context, rows []report.StudentRow) (ImportResult, error) {
	res := ImportResult{Created: make([]student.Student, 0, len(rows)), Errors: make([]RowError, 0)}
	for _, row := range rows {
		s, err := c.Create(ctx, row.Student)
		if err != nil {
			if isInputError(err) {
				res.Errors = append(res.Errors, RowError{Row: row.Row, Error: c.svcs.describe(err)})
				continue
			}
			return res, err
		}
		res.Created = append(res.Created, s)
	}
	return res, nil
}
