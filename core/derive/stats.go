package derive

import (
	"sort"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// GradeStats aggregates a set of grades.
// Grades with an invalid max score count in Total and ByCategory only.
type GradeStats struct {
	Total            int                        `json:"total"`
	Average          float64                    `json:"average"`
	ByBand           map[Band]int               `json:"by_band"`
	ByCategory       map[grade.Category]int     `json:"by_category"`
	CategoryAverages map[grade.Category]float64 `json:"category_averages"`
}

func AggregateStats(grades []grade.Grade) GradeStats {
	stats := GradeStats{
		Total:            len(grades),
		ByBand:           make(map[Band]int, len(Bands)),
		ByCategory:       make(map[grade.Category]int),
		CategoryAverages: make(map[grade.Category]float64),
	}
	for _, b := range Bands {
		stats.ByBand[b] = 0
	}

	var sum float64
	var scored int
	catSums := make(map[grade.Category]float64)
	catScored := make(map[grade.Category]int)
	for _, g := range grades {
		stats.ByCategory[g.Category]++
		pct, err := Percentage(g.Score, g.MaxScore)
		if err != nil {
			continue
		}
		sum += pct
		scored++
		stats.ByBand[BandFor(pct)]++
		catSums[g.Category] += pct
		catScored[g.Category]++
	}

	if scored > 0 {
		stats.Average = Round1(sum / float64(scored))
	}
	for cat, n := range catScored {
		stats.CategoryAverages[cat] = Round1(catSums[cat] / float64(n))
	}
	return stats
}

// GradeSummary is the summary printed under a grade report.
type GradeSummary struct {
	TotalGrades           int     `json:"total_grades"`
	AverageScore          float64 `json:"average_score"`
	ExcellentCount        int     `json:"excellent_count"`
	NeedsImprovementCount int     `json:"needs_improvement_count"`
}

func SummarizeGrades(grades []grade.Grade) GradeSummary {
	stats := AggregateStats(grades)
	return GradeSummary{
		TotalGrades:           stats.Total,
		AverageScore:          stats.Average,
		ExcellentCount:        stats.ByBand[BandExcellent],
		NeedsImprovementCount: stats.ByBand[BandNeedsImprovement],
	}
}

// GradesOf keeps the grades of one student.
func GradesOf(studentID int, grades []grade.Grade) []grade.Grade {
	kept := make([]grade.Grade, 0)
	for _, g := range grades {
		if g.StudentID == studentID {
			kept = append(kept, g)
		}
	}
	return kept
}

// RecentGrades returns up to n grades, newest first.
func RecentGrades(grades []grade.Grade, n int) []grade.Grade {
	sorted := make([]grade.Grade, len(grades))
	copy(sorted, grades)
	SortGrades(sorted, []core.DBOrdering{{Field: OrderByDate}, {Field: OrderByID}})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

type TrendPoint struct {
	GradeID        int            `json:"grade_id"`
	Date           time.Time      `json:"date"`
	AssignmentName string         `json:"assignment_name"`
	Category       grade.Category `json:"category"`
	Percentage     float64        `json:"percentage"`
}

// Performance describes how one student is doing over time.
type Performance struct {
	StudentID        int                        `json:"student_id"`
	Trend            []TrendPoint               `json:"trend"`
	CategoryAverages map[grade.Category]float64 `json:"category_averages"`
	TotalAssignments int                        `json:"total_assignments"`
}

func StudentPerformance(studentID int, grades []grade.Grade) Performance {
	own := GradesOf(studentID, grades)
	SortGrades(own, []core.DBOrdering{{Field: OrderByDate, Ascending: true}, {Field: OrderByID, Ascending: true}})

	trend := make([]TrendPoint, 0, len(own))
	for _, g := range own {
		pct, err := Percentage(g.Score, g.MaxScore)
		if err != nil {
			continue
		}
		trend = append(trend, TrendPoint{
			GradeID:        g.ID,
			Date:           g.Date,
			AssignmentName: g.AssignmentName,
			Category:       g.Category,
			Percentage:     Round1(pct),
		})
	}
	return Performance{
		StudentID:        studentID,
		Trend:            trend,
		CategoryAverages: AggregateStats(own).CategoryAverages,
		TotalAssignments: len(own),
	}
}

// Assignment is a grade seen from the calendar: its date is the due date.
type Assignment struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	DueDate   time.Time      `json:"due_date"`
	Category  grade.Category `json:"category"`
	StudentID int            `json:"student_id"`
	Score     float64        `json:"score"`
	MaxScore  float64        `json:"max_score"`
}

func Assignments(grades []grade.Grade) []Assignment {
	assignments := make([]Assignment, 0, len(grades))
	for _, g := range grades {
		assignments = append(assignments, Assignment{
			ID:        g.ID,
			Name:      g.AssignmentName,
			DueDate:   g.Date,
			Category:  g.Category,
			StudentID: g.StudentID,
			Score:     g.Score,
			MaxScore:  g.MaxScore,
		})
	}
	return assignments
}

// AssignmentsBetween keeps the assignments due within [from, to], bounds inclusive.
func AssignmentsBetween(assignments []Assignment, from, to time.Time) []Assignment {
	kept := make([]Assignment, 0)
	for _, a := range assignments {
		if !a.DueDate.Before(from) && !a.DueDate.After(to) {
			kept = append(kept, a)
		}
	}
	return kept
}

// UpcomingAssignments keeps the assignments due within the next days, soonest first.
func UpcomingAssignments(assignments []Assignment, now time.Time, days int) []Assignment {
	upcoming := AssignmentsBetween(assignments, now, now.Add(time.Duration(days)*24*time.Hour))
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate) })
	return upcoming
}

type Activity struct {
	Grade       grade.Grade `json:"grade"`
	StudentName string      `json:"student_name"`
	Percentage  float64     `json:"percentage"`
	Band        Band        `json:"band"`
}

// RecentActivity lists the n latest grades with their student name.
func RecentActivity(grades []grade.Grade, names Names, n int) []Activity {
	recent := RecentGrades(grades, n)
	activity := make([]Activity, 0, len(recent))
	for _, g := range recent {
		act := Activity{Grade: g, StudentName: names.Name(g.StudentID)}
		if pct, err := Percentage(g.Score, g.MaxScore); err == nil {
			act.Percentage = Round1(pct)
			act.Band = BandFor(pct)
		}
		activity = append(activity, act)
	}
	return activity
}

// DashboardStats are the headline numbers of the dashboard.
// AttendanceRate is present today over the number of students, not over today's records.
type DashboardStats struct {
	TotalStudents     int     `json:"total_students"`
	AverageGrade      float64 `json:"average_grade"`
	AttendanceRate    float64 `json:"attendance_rate"`
	PresentToday      int     `json:"present_today"`
	RecentAssignments int     `json:"recent_assignments"`
}

func Dashboard(students []student.Student, grades []grade.Grade, records []attendance.Record, today time.Time) DashboardStats {
	stats := DashboardStats{
		TotalStudents:     len(students),
		AverageGrade:      AggregateStats(grades).Average,
		RecentAssignments: len(grades),
	}
	for _, r := range RecordsOn(today, records) {
		if r.Status == attendance.StatusPresent {
			stats.PresentToday++
		}
	}
	if stats.TotalStudents > 0 {
		stats.AttendanceRate = Round1(float64(stats.PresentToday) / float64(stats.TotalStudents) * 100)
	}
	return stats
}
