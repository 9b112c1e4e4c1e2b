package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Status string

// Statuses
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

var (
	Statuses = []Status{StatusActive, StatusInactive, StatusPending}

	GradeLevels = []string{
		"Kindergarten",
		"1st Grade", "2nd Grade", "3rd Grade", "4th Grade", "5th Grade", "6th Grade",
		"7th Grade", "8th Grade", "9th Grade", "10th Grade", "11th Grade", "12th Grade",
	}
)

type Student struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	GradeLevel     string    `json:"grade_level"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	EnrollmentDate time.Time `json:"enrollment_date"` // UTC, zero when unknown
	Status         Status    `json:"status"`
	ParentName     string    `json:"parent_name"`
	ParentEmail    string    `json:"parent_email"`
	ParentPhone    string    `json:"parent_phone"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name           string    `json:"name" validate:"required,notblank"`
	GradeLevel     string    `json:"grade_level" validate:"required,gradelevel"`
	Email          string    `json:"email" validate:"required,email"`
	Phone          string    `json:"phone" validate:"required,notblank"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         Status    `json:"status" validate:"omitempty,studentstatus"`
	ParentName     string    `json:"parent_name"`
	ParentEmail    string    `json:"parent_email" validate:"omitempty,email"`
	ParentPhone    string    `json:"parent_phone"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.GradeLevel = core.CleanString(ns.GradeLevel)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.ParentName = core.CleanString(ns.ParentName)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	ns.ParentPhone = core.CleanString(ns.ParentPhone)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Only non-nil fields are applied.
type UpdateStudent struct {
	Name           *string    `json:"name" validate:"omitempty,notblank"`
	GradeLevel     *string    `json:"grade_level" validate:"omitempty,gradelevel"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Phone          *string    `json:"phone" validate:"omitempty,notblank"`
	EnrollmentDate *time.Time `json:"enrollment_date"`
	Status         *Status    `json:"status" validate:"omitempty,studentstatus"`
	ParentName     *string    `json:"parent_name"`
	ParentEmail    *string    `json:"parent_email" validate:"omitempty,email"`
	ParentPhone    *string    `json:"parent_phone"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	cleanPtr(us.Name, false)
	cleanPtr(us.GradeLevel, false)
	cleanPtr(us.Email, true)
	cleanPtr(us.Phone, false)
	cleanPtr(us.ParentName, false)
	cleanPtr(us.ParentEmail, true)
	cleanPtr(us.ParentPhone, false)
	return validate.Struct(us)
}

// Apply returns a copy of s with the provided fields replaced.
func (us UpdateStudent) Apply(s Student) Student {
	if us.Name != nil {
		s.Name = *us.Name
	}
	if us.GradeLevel != nil {
		s.GradeLevel = *us.GradeLevel
	}
	if us.Email != nil {
		s.Email = *us.Email
	}
	if us.Phone != nil {
		s.Phone = *us.Phone
	}
	if us.EnrollmentDate != nil {
		s.EnrollmentDate = us.EnrollmentDate.UTC()
	}
	if us.Status != nil {
		s.Status = *us.Status
	}
	if us.ParentName != nil {
		s.ParentName = *us.ParentName
	}
	if us.ParentEmail != nil {
		s.ParentEmail = *us.ParentEmail
	}
	if us.ParentPhone != nil {
		s.ParentPhone = *us.ParentPhone
	}
	return s
}

func cleanPtr(s *string, lower bool) {
	if s != nil {
		*s = core.CleanString(*s, lower)
	}
}
