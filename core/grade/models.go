package grade

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Category string

// Categories
const (
	CategoryHomework      Category = "homework"
	CategoryQuiz          Category = "quiz"
	CategoryTest          Category = "test"
	CategoryProject       Category = "project"
	CategoryParticipation Category = "participation"
	CategoryFinal         Category = "final"
)

var Categories = []Category{
	CategoryHomework, CategoryQuiz, CategoryTest, CategoryProject, CategoryParticipation, CategoryFinal,
}

func (c Category) IsValid() bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Grade is one scored assignment of a student.
// Score <= MaxScore is only checked on input; stored grades are trusted as-is.
type Grade struct {
	ID             int       `json:"id"`
	StudentID      int       `json:"student_id"`
	AssignmentName string    `json:"assignment_name"`
	Category       Category  `json:"category"`
	Score          float64   `json:"score"`
	MaxScore       float64   `json:"max_score"`
	Date           time.Time `json:"date"` // UTC
}

// NewGrade contains information needed to record a new Grade.
type NewGrade struct {
	StudentID      int       `json:"student_id" validate:"required,gt=0"`
	AssignmentName string    `json:"assignment_name" validate:"required,notblank"`
	Category       Category  `json:"category" validate:"required,category"`
	Score          *float64  `json:"score" validate:"required,gte=0"`
	MaxScore       *float64  `json:"max_score" validate:"required,gt=0"`
	Date           time.Time `json:"date"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.AssignmentName = core.CleanString(ng.AssignmentName)
	ng.Category = Category(core.CleanString(string(ng.Category), true /* lower */))
	return validate.Struct(ng)
}

// UpdateGrade defines what information may be provided to modify an existing Grade.
// Only non-nil fields are applied.
type UpdateGrade struct {
	StudentID      *int       `json:"student_id" validate:"omitempty,gt=0"`
	AssignmentName *string    `json:"assignment_name" validate:"omitempty,notblank"`
	Category       *Category  `json:"category" validate:"omitempty,category"`
	Score          *float64   `json:"score" validate:"omitempty,gte=0"`
	MaxScore       *float64   `json:"max_score" validate:"omitempty,gt=0"`
	Date           *time.Time `json:"date"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	if ug.AssignmentName != nil {
		*ug.AssignmentName = core.CleanString(*ug.AssignmentName)
	}
	if ug.Category != nil {
		*ug.Category = Category(core.CleanString(string(*ug.Category), true /* lower */))
	}
	return validate.Struct(ug)
}

// Apply returns a copy of g with the provided fields replaced.
func (ug UpdateGrade) Apply(g Grade) Grade {
	if ug.StudentID != nil {
		g.StudentID = *ug.StudentID
	}
	if ug.AssignmentName != nil {
		g.AssignmentName = *ug.AssignmentName
	}
	if ug.Category != nil {
		g.Category = *ug.Category
	}
	if ug.Score != nil {
		g.Score = *ug.Score
	}
	if ug.MaxScore != nil {
		g.MaxScore = *ug.MaxScore
	}
	if ug.Date != nil {
		g.Date = ug.Date.UTC()
	}
	return g
}

// QueryFilter holds the grade list filters as sent by clients.
// MinPct and MaxPct are percentages; nil means unbounded (0 / 100).
type QueryFilter struct {
	Search     string   `json:"search" query:"search"`
	Category   Category `json:"category" query:"category"`
	Assignment string   `json:"assignment" query:"assignment"`
	MinPct     *float64 `json:"min_pct" query:"-"`
	MaxPct     *float64 `json:"max_pct" query:"-"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Assignment = core.CleanString(qf.Assignment)
	qf.Category = Category(core.CleanString(string(qf.Category), true /* lower */))
}
