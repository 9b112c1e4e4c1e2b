package grade_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/tests"
)

func TestService_Create(t *testing.T) {
	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	valid := func() grade.NewGrade {
		return grade.NewGrade{
			StudentID:      1,
			AssignmentName: " Fractions Quiz ",
			Category:       "Quiz",
			Score:          testutil.Float(45),
			MaxScore:       testutil.Float(50),
			Date:           jan10,
		}
	}

	tests := []struct {
		name      string
		modify    func(ng *grade.NewGrade)
		wantField string // validator field, or core.FieldError field
	}{
		{name: "valid", modify: func(ng *grade.NewGrade) {}},
		{name: "zero score", modify: func(ng *grade.NewGrade) { ng.Score = testutil.Float(0) }},
		{name: "score equals max", modify: func(ng *grade.NewGrade) { ng.Score = testutil.Float(50) }},
		{name: "missing student", modify: func(ng *grade.NewGrade) { ng.StudentID = 0 }, wantField: "student_id"},
		{name: "unknown student", modify: func(ng *grade.NewGrade) { ng.StudentID = 7 }, wantField: "student_id"},
		{name: "missing assignment", modify: func(ng *grade.NewGrade) { ng.AssignmentName = " " }, wantField: "assignment_name"},
		{name: "missing category", modify: func(ng *grade.NewGrade) { ng.Category = "" }, wantField: "category"},
		{name: "unknown category", modify: func(ng *grade.NewGrade) { ng.Category = "lab" }, wantField: "category"},
		{name: "missing score", modify: func(ng *grade.NewGrade) { ng.Score = nil }, wantField: "score"},
		{name: "negative score", modify: func(ng *grade.NewGrade) { ng.Score = testutil.Float(-1) }, wantField: "score"},
		{name: "missing max score", modify: func(ng *grade.NewGrade) { ng.MaxScore = nil }, wantField: "max_score"},
		{name: "zero max score", modify: func(ng *grade.NewGrade) { ng.MaxScore = testutil.Float(0) }, wantField: "max_score"},
		{name: "score above max", modify: func(ng *grade.NewGrade) { ng.Score = testutil.Float(51) }, wantField: "score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := testutil.NewMemoryStack(t)
			testutil.CreateStudent(t, stack.StudentRepo, "Amy Lee", "5th Grade", "amy@school.test")
			ng := valid()
			tt.modify(&ng)

			g, err := stack.Grades.Create(context.Background(), ng)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, 1, g.ID)
				assert.Equal(t, "Fractions Quiz", g.AssignmentName)
				assert.Equal(t, grade.CategoryQuiz, g.Category)
				assert.Equal(t, jan10, g.Date)
				return
			}

			require.Error(t, err)
			switch e := errors.Cause(err).(type) {
			case validator.ValidationErrors:
				assert.Equal(t, tt.wantField, e[0].Field())
			case *core.ValidationError:
				assert.Equal(t, tt.wantField, e.Fields[0].Field)
			default:
				t.Fatalf("Create() error type = %T, want an input error", err)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	stack := testutil.NewMemoryStack(t)
	ctx := context.Background()
	s := testutil.CreateStudent(t, stack.StudentRepo, "Amy Lee", "5th Grade", "amy@school.test")
	g := testutil.CreateGrade(t, stack.GradeRepo, s.ID, "Quiz 1", grade.CategoryQuiz, 8, 10, time.Now())

	tests := []struct {
		name    string
		update  grade.UpdateGrade
		wantErr bool
		check   func(t *testing.T, got grade.Grade)
	}{
		{
			name:   "score only",
			update: grade.UpdateGrade{Score: testutil.Float(9)},
			check:  func(t *testing.T, got grade.Grade) { assert.Equal(t, 9.0, got.Score) },
		},
		{
			name:    "score above stored max",
			update:  grade.UpdateGrade{Score: testutil.Float(11)},
			wantErr: true,
		},
		{
			name:   "score and max together",
			update: grade.UpdateGrade{Score: testutil.Float(18), MaxScore: testutil.Float(20)},
			check: func(t *testing.T, got grade.Grade) {
				assert.Equal(t, 18.0, got.Score)
				assert.Equal(t, 20.0, got.MaxScore)
				assert.Equal(t, "Quiz 1", got.AssignmentName)
			},
		},
		{
			name:    "unknown student",
			update:  grade.UpdateGrade{StudentID: func() *int { i := 99; return &i }()},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stack.Grades.Update(ctx, g.ID, tt.update)
			if (err != nil) != tt.wantErr {
				t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}

	_, err := stack.Grades.Update(ctx, 42, grade.UpdateGrade{})
	assert.Equal(t, grade.ErrNotFound, err)
}
