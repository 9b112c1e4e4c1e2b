package derive

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

func TestAggregateStats(t *testing.T) {
	got := AggregateStats(testGrades())

	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 81.3, got.Average) // (90 + 80 + 60 + 95) / 4
	assert.Equal(t, map[Band]int{
		BandExcellent:        2,
		BandGood:             1,
		BandSatisfactory:     0,
		BandNeedsImprovement: 1,
	}, got.ByBand)
	assert.Equal(t, map[grade.Category]int{
		grade.CategoryQuiz:     2,
		grade.CategoryHomework: 1,
		grade.CategoryTest:     1,
		grade.CategoryProject:  1,
	}, got.ByCategory)
	assert.Equal(t, map[grade.Category]float64{
		grade.CategoryQuiz:     90,
		grade.CategoryHomework: 80,
		grade.CategoryTest:     60,
		grade.CategoryProject:  95,
	}, got.CategoryAverages)
}

func TestAggregateStats_empty(t *testing.T) {
	got := AggregateStats(nil)
	assert.Equal(t, 0, got.Total)
	assert.False(t, math.IsNaN(got.Average))
	assert.Equal(t, 0.0, got.Average)
	assert.Len(t, got.ByBand, len(Bands))
}

func TestSummarizeGrades(t *testing.T) {
	assert.Equal(t, GradeSummary{
		TotalGrades:           5,
		AverageScore:          81.3,
		ExcellentCount:        2,
		NeedsImprovementCount: 1,
	}, SummarizeGrades(testGrades()))
}

func TestRecentGrades(t *testing.T) {
	assert.Equal(t, []int{5, 4, 3}, gradeIDs(RecentGrades(testGrades(), 3)))
	assert.Len(t, RecentGrades(testGrades(), 10), 5)
}

func TestStudentPerformance(t *testing.T) {
	got := StudentPerformance(1, testGrades())
	assert.Equal(t, 1, got.StudentID)
	assert.Equal(t, 2, got.TotalAssignments)
	if assert.Len(t, got.Trend, 1) { // the zero max score grade has no percentage
		assert.Equal(t, 90.0, got.Trend[0].Percentage)
		assert.Equal(t, "Fractions Quiz", got.Trend[0].AssignmentName)
	}
	assert.Equal(t, map[grade.Category]float64{grade.CategoryQuiz: 90}, got.CategoryAverages)
}

func TestUpcomingAssignments(t *testing.T) {
	all := Assignments(testGrades())
	now := jan10.AddDate(0, 0, 1)

	got := UpcomingAssignments(all, now, 2)
	ids := make([]int, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int{2, 3, 4}, ids)

	between := AssignmentsBetween(all, jan10, jan10)
	if assert.Len(t, between, 1) {
		assert.Equal(t, "Fractions Quiz", between[0].Name)
	}
}

func TestRecentActivity(t *testing.T) {
	names := NamesByID([]student.Student{amy, bruno, chen})
	got := RecentActivity(testGrades(), names, 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, 1, got[0].Grade.StudentID)
		assert.Equal(t, "Amy Lee", got[0].StudentName)
		assert.Equal(t, Band(""), got[0].Band)
		assert.Equal(t, UnknownStudent, got[1].StudentName)
		assert.Equal(t, 95.0, got[1].Percentage)
		assert.Equal(t, BandExcellent, got[1].Band)
	}
}

func TestDashboard(t *testing.T) {
	students := []student.Student{amy, bruno, chen, {ID: 4, Name: "Dana"}}
	records := testRecords()

	got := Dashboard(students, testGrades(), records, time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, DashboardStats{
		TotalStudents:     4,
		AverageGrade:      81.3,
		AttendanceRate:    50,
		PresentToday:      2,
		RecentAssignments: 5,
	}, got)

	empty := Dashboard(nil, nil, []attendance.Record{}, jan10)
	assert.Equal(t, DashboardStats{}, empty)
}
