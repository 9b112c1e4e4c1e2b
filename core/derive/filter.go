package derive

import (
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// UnknownStudent is shown in place of a student that no longer exists.
const UnknownStudent = "Unknown Student"

// Names maps student IDs to names.
type Names map[int]string

func NamesByID(students []student.Student) Names {
	names := make(Names, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}
	return names
}

func (n Names) Lookup(id int) (string, bool) {
	name, ok := n[id]
	return name, ok
}

// Name never fails: missing students resolve to UnknownStudent.
func (n Names) Name(id int) string {
	if name, ok := n[id]; ok {
		return name
	}
	return UnknownStudent
}

// FilterStudents does a case-insensitive match of term on one of
// Student.Name, Student.GradeLevel or Student.Email.
func FilterStudents(students []student.Student, term string) []student.Student {
	term = core.CleanString(term)
	filtered := make([]student.Student, 0, len(students))
	for _, s := range students {
		if term == "" ||
			core.ContainsFold(s.Name, term) ||
			core.ContainsFold(s.GradeLevel, term) ||
			core.ContainsFold(s.Email, term) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterGrades applies an AND of the filter predicates, one after the other.
// Search matches the assignment name or the resolved student name; the
// UnknownStudent placeholder is never matched. Grades whose percentage cannot
// be computed are dropped as soon as a percentage bound is set.
func FilterGrades(grades []grade.Grade, names Names, filter grade.QueryFilter) []grade.Grade {
	filter.Clean()
	filtered := make([]grade.Grade, len(grades))
	copy(filtered, grades)

	if filter.Search != "" {
		filtered = keepGrades(filtered, func(g grade.Grade) bool {
			if core.ContainsFold(g.AssignmentName, filter.Search) {
				return true
			}
			name, ok := names.Lookup(g.StudentID)
			return ok && core.ContainsFold(name, filter.Search)
		})
	}
	if filter.Category != "" {
		filtered = keepGrades(filtered, func(g grade.Grade) bool {
			return g.Category == filter.Category
		})
	}
	if filter.Assignment != "" {
		filtered = keepGrades(filtered, func(g grade.Grade) bool {
			return core.ContainsFold(g.AssignmentName, filter.Assignment)
		})
	}
	if filter.MinPct != nil || filter.MaxPct != nil {
		minPct, maxPct := 0.0, 100.0
		if filter.MinPct != nil {
			minPct = *filter.MinPct
		}
		if filter.MaxPct != nil {
			maxPct = *filter.MaxPct
		}
		filtered = keepGrades(filtered, func(g grade.Grade) bool {
			pct, err := Percentage(g.Score, g.MaxScore)
			return err == nil && pct >= minPct && pct <= maxPct
		})
	}
	return filtered
}

func keepGrades(grades []grade.Grade, keep func(grade.Grade) bool) []grade.Grade {
	kept := make([]grade.Grade, 0, len(grades))
	for _, g := range grades {
		if keep(g) {
			kept = append(kept, g)
		}
	}
	return kept
}

// Grade ordering fields
const (
	OrderByID         = "id"
	OrderByDate       = "date"
	OrderByScore      = "score"
	OrderByPercentage = "percentage"
	OrderByAssignment = "assignment_name"
	OrderByCategory   = "category"
	OrderByStudent    = "student_id"
)

// SortGrades sorts grades in place. Unknown fields are ignored; ties keep their order.
func SortGrades(grades []grade.Grade, orderings []core.DBOrdering) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(grades, func(i, j int) bool {
		for _, ord := range orderings {
			c := compareGrades(grades[i], grades[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compareGrades(a, b grade.Grade, field string) int {
	switch field {
	case OrderByID:
		return compareInts(a.ID, b.ID)
	case OrderByDate:
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	case OrderByScore:
		return compareFloats(a.Score, b.Score)
	case OrderByPercentage:
		pa, _ := Percentage(a.Score, a.MaxScore)
		pb, _ := Percentage(b.Score, b.MaxScore)
		return compareFloats(pa, pb)
	case OrderByAssignment:
		return strings.Compare(strings.ToLower(a.AssignmentName), strings.ToLower(b.AssignmentName))
	case OrderByCategory:
		return strings.Compare(string(a.Category), string(b.Category))
	case OrderByStudent:
		return compareInts(a.StudentID, b.StudentID)
	}
	return 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
