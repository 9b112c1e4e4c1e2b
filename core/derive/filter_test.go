package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

var (
	amy   = student.Student{ID: 1, Name: "Amy Lee", GradeLevel: "5th Grade", Email: "amy.lee@school.test"}
	bruno = student.Student{ID: 2, Name: "Bruno Diaz", GradeLevel: "6th Grade", Email: "bruno@school.test"}
	chen  = student.Student{ID: 3, Name: "Chen Wu", GradeLevel: "Kindergarten", Email: "cwu@school.test"}

	jan10 = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
)

func testGrades() []grade.Grade {
	return []grade.Grade{
		{ID: 1, StudentID: 1, AssignmentName: "Fractions Quiz", Category: grade.CategoryQuiz, Score: 45, MaxScore: 50, Date: jan10},
		{ID: 2, StudentID: 2, AssignmentName: "Essay Draft", Category: grade.CategoryHomework, Score: 16, MaxScore: 20, Date: jan10.AddDate(0, 0, 1)},
		{ID: 3, StudentID: 3, AssignmentName: "Unit Test 1", Category: grade.CategoryTest, Score: 60, MaxScore: 100, Date: jan10.AddDate(0, 0, 2)},
		{ID: 4, StudentID: 9, AssignmentName: "Science Project", Category: grade.CategoryProject, Score: 38, MaxScore: 40, Date: jan10.AddDate(0, 0, 3)},
		{ID: 5, StudentID: 1, AssignmentName: "Bonus Quiz", Category: grade.CategoryQuiz, Score: 3, MaxScore: 0, Date: jan10.AddDate(0, 0, 4)},
	}
}

func gradeIDs(grades []grade.Grade) []int {
	ids := make([]int, 0, len(grades))
	for _, g := range grades {
		ids = append(ids, g.ID)
	}
	return ids
}

func pct(f float64) *float64 { return &f }

func TestNames_Name(t *testing.T) {
	names := NamesByID([]student.Student{amy, bruno})
	assert.Equal(t, "Amy Lee", names.Name(1))
	assert.Equal(t, UnknownStudent, names.Name(42))
}

func TestFilterStudents(t *testing.T) {
	students := []student.Student{amy, bruno, chen}
	tests := []struct {
		name string
		term string
		want []student.Student
	}{
		{name: "empty term", term: "", want: students},
		{name: "blank term", term: "   ", want: students},
		{name: "name lower case", term: "amy", want: []student.Student{amy}},
		{name: "grade level", term: "kinder", want: []student.Student{chen}},
		{name: "email", term: "BRUNO@", want: []student.Student{bruno}},
		{name: "shared substring", term: "school.test", want: students},
		{name: "no match", term: "zed", want: []student.Student{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterStudents(students, tt.term))
		})
	}
}

func TestFilterGrades(t *testing.T) {
	names := NamesByID([]student.Student{amy, bruno, chen})
	tests := []struct {
		name   string
		filter grade.QueryFilter
		want   []int
	}{
		{name: "no filter", filter: grade.QueryFilter{}, want: []int{1, 2, 3, 4, 5}},
		{name: "search assignment", filter: grade.QueryFilter{Search: "quiz"}, want: []int{1, 5}},
		{name: "search student name", filter: grade.QueryFilter{Search: "bruno"}, want: []int{2}},
		{name: "search never matches unknown student", filter: grade.QueryFilter{Search: "unknown"}, want: []int{}},
		{name: "category", filter: grade.QueryFilter{Category: grade.CategoryTest}, want: []int{3}},
		{name: "assignment", filter: grade.QueryFilter{Assignment: "PROJECT"}, want: []int{4}},
		{name: "min pct", filter: grade.QueryFilter{MinPct: pct(90)}, want: []int{1, 4}},
		{name: "max pct", filter: grade.QueryFilter{MaxPct: pct(80)}, want: []int{2, 3}},
		{name: "pct range", filter: grade.QueryFilter{MinPct: pct(70), MaxPct: pct(90)}, want: []int{1, 2}},
		{name: "combined", filter: grade.QueryFilter{Search: "amy", Category: grade.CategoryQuiz, MinPct: pct(50)}, want: []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterGrades(testGrades(), names, tt.filter)
			assert.Equal(t, tt.want, gradeIDs(got))
		})
	}
}

func TestFilterGrades_idempotent(t *testing.T) {
	names := NamesByID([]student.Student{amy, bruno, chen})
	filters := []grade.QueryFilter{
		{},
		{Search: "a"},
		{Category: grade.CategoryQuiz, MaxPct: pct(95)},
		{Assignment: "test", MinPct: pct(10)},
	}
	for _, f := range filters {
		once := FilterGrades(testGrades(), names, f)
		twice := FilterGrades(once, names, f)
		assert.Equal(t, once, twice)
	}
}

func TestFilterGrades_doesNotMutateInput(t *testing.T) {
	grades := testGrades()
	_ = FilterGrades(grades, Names{}, grade.QueryFilter{Category: grade.CategoryTest})
	assert.Equal(t, testGrades(), grades)
}

func TestSortGrades(t *testing.T) {
	tests := []struct {
		name      string
		orderings []core.DBOrdering
		want      []int
	}{
		{name: "none", want: []int{1, 2, 3, 4, 5}},
		{name: "date desc", orderings: []core.DBOrdering{{Field: OrderByDate}}, want: []int{5, 4, 3, 2, 1}},
		{name: "score asc", orderings: []core.DBOrdering{{Field: OrderByScore, Ascending: true}}, want: []int{5, 2, 4, 1, 3}},
		{name: "percentage desc", orderings: []core.DBOrdering{{Field: OrderByPercentage}}, want: []int{4, 1, 2, 3, 5}},
		{name: "category then id desc", orderings: []core.DBOrdering{{Field: OrderByCategory, Ascending: true}, {Field: OrderByID}}, want: []int{2, 4, 5, 1, 3}},
		{name: "unknown field", orderings: []core.DBOrdering{{Field: "password"}}, want: []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grades := testGrades()
			SortGrades(grades, tt.orderings)
			assert.Equal(t, tt.want, gradeIDs(grades))
		})
	}
}
