// Package views holds one controller per dashboard page. A controller loads
// what its page needs from the services, keeps the last good snapshot, and
// patches it locally after each mutation.
package views

import (
	"context"
	"strings"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// Services groups what the controllers read from and write to.
type Services struct {
	Students   *student.Service
	Grades     *grade.Service
	Attendance *attendance.Service
	Logger     core.Logger
	Translator ut.Translator    // optional, for row errors
	Now        func() time.Time // defaults to time.Now().UTC()
}

func (s Services) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func isInputError(err error) bool {
	switch errors.Cause(err).(type) {
	case validator.ValidationErrors, *core.ValidationError:
		return true
	}
	return false
}

// describe renders input errors as "field: message; field: message".
func (s Services) describe(err error) string {
	var flds []core.FieldError
	switch vErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		if s.Translator != nil {
			flds = core.TranslateErrors(vErr, s.Translator)
		}
	case *core.ValidationError:
		flds = vErr.Fields
	}
	if len(flds) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(flds))
	for _, f := range flds {
		msgs = append(msgs, f.Field+": "+f.Error)
	}
	return strings.Join(msgs, "; ")
}

// Status is the load state of a page, as the client renders it.
type Status struct {
	Loaded   bool      `json:"loaded"`
	Err      string    `json:"error,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

// page holds the shared load bookkeeping of every controller.
type page struct {
	mu     sync.RWMutex
	svcs   Services
	status Status
}

// fail keeps the previous snapshot and records the error for the error view.
// Callers hold mu.
func (p *page) fail(op string, err error) error {
	p.status.Err = err.Error()
	if p.svcs.Logger != nil && !core.IsNotFound(err) {
		p.svcs.Logger.Error(op+" failed", err)
	}
	return errors.Wrap(err, op)
}

// Callers hold mu.
func (p *page) succeed() {
	p.status = Status{Loaded: true, LoadedAt: p.svcs.now()}
}

func (p *page) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// snapshot is the three collections a page may need.
type snapshot struct {
	students []student.Student
	grades   []grade.Grade
	records  []attendance.Record
}

type fetch int

const (
	fetchStudents fetch = 1 << iota
	fetchGrades
	fetchAttendance
)

// load fetches the requested collections concurrently and joins them.
// Any failure fails the whole load.
func (s Services) load(ctx context.Context, what fetch) (snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)

	if what&fetchStudents != 0 {
		g.Go(func() (err error) {
			snap.students, err = s.Students.QueryAll(ctx)
			return errors.Wrap(err, "querying students")
		})
	}
	if what&fetchGrades != 0 {
		g.Go(func() (err error) {
			snap.grades, err = s.Grades.QueryAll(ctx)
			return errors.Wrap(err, "querying grades")
		})
	}
	if what&fetchAttendance != 0 {
		g.Go(func() (err error) {
			snap.records, err = s.Attendance.QueryAll(ctx)
			return errors.Wrap(err, "querying attendance")
		})
	}

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func replaceStudent(list []student.Student, s student.Student) []student.Student {
	for i := range list {
		if list[i].ID == s.ID {
			list[i] = s
			return list
		}
	}
	return append(list, s)
}

func removeStudent(list []student.Student, id int) []student.Student {
	kept := list[:0]
	for _, s := range list {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return kept
}

func replaceGrade(list []grade.Grade, g grade.Grade) []grade.Grade {
	for i := range list {
		if list[i].ID == g.ID {
			list[i] = g
			return list
		}
	}
	return append(list, g)
}

func removeGrade(list []grade.Grade, id int) []grade.Grade {
	kept := list[:0]
	for _, g := range list {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return kept
}

func replaceRecord(list []attendance.Record, r attendance.Record) []attendance.Record {
	for i := range list {
		if list[i].ID == r.ID {
			list[i] = r
			return list
		}
	}
	return append(list, r)
}

func removeRecord(list []attendance.Record, id int) []attendance.Record {
	kept := list[:0]
	for _, r := range list {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	return kept
}
