package testutil

import (
	"context"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/apps/shared"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
)

// Stack is a full set of in-memory repositories and services.
type Stack struct {
	Validate   *validator.Validate
	Translator ut.Translator

	StudentRepo    student.Repository
	GradeRepo      grade.Repository
	AttendanceRepo attendance.Repository

	Students   *student.Service
	Grades     *grade.Service
	Attendance *attendance.Service
}

func NewValidator() (*validator.Validate, ut.Translator) {
	translator := shared.NewTranslator()
	return shared.NewValidator(translator), translator
}

// NewStack wires services on top of the given repositories.
func NewStack(students student.Repository, grades grade.Repository, records attendance.Repository) *Stack {
	validate, translator := NewValidator()
	return &Stack{
		Validate:       validate,
		Translator:     translator,
		StudentRepo:    students,
		GradeRepo:      grades,
		AttendanceRepo: records,
		Students:       student.NewService(students, validate),
		Grades:         grade.NewService(grades, students, validate),
		Attendance:     attendance.NewService(records, students, validate),
	}
}

// NewMemoryStack wires services on top of a fresh in-memory store.
func NewMemoryStack(t *testing.T) *Stack {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return NewStack(
		dummydb.NewStudentRepository(db),
		dummydb.NewGradeRepository(db),
		dummydb.NewAttendanceRepository(db),
	)
}

func CreateStudent(t *testing.T, repo student.Repository, name, gradeLevel, email string) student.Student {
	s, err := repo.Create(context.Background(), student.Student{
		Name:           name,
		GradeLevel:     gradeLevel,
		Email:          email,
		Phone:          "555-0100",
		Status:         student.StatusActive,
		EnrollmentDate: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return s
}

func CreateGrade(
	t *testing.T,
	repo grade.Repository,
	studentID int,
	assignment string,
	category grade.Category,
	score, maxScore float64,
	date time.Time,
) grade.Grade {
	g, err := repo.Create(context.Background(), grade.Grade{
		StudentID:      studentID,
		AssignmentName: assignment,
		Category:       category,
		Score:          score,
		MaxScore:       maxScore,
		Date:           date.UTC(),
	})
	if err != nil {
		t.Fatalf("createGrade() failed: %v", err)
	}
	return g
}

func CreateRecord(
	t *testing.T,
	repo attendance.Repository,
	studentID int,
	date time.Time,
	status attendance.Status,
	reason ...string,
) attendance.Record {
	r := attendance.Record{StudentID: studentID, Date: date.UTC(), Status: status}
	if len(reason) > 0 {
		r.Reason = reason[0]
	}
	r, err := repo.Create(context.Background(), r)
	if err != nil {
		t.Fatalf("createRecord() failed: %v", err)
	}
	return r
}

func Float(f float64) *float64 { return &f }

func String(s string) *string { return &s }
