package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Status string

// Statuses
const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"

	// StatusUnmarked means no record exists for the student on that day.
	// It is derived only: never stored and never accepted as input.
	StatusUnmarked Status = "unmarked"
)

// ExcusedReason is the reason given to excused records created without one.
const ExcusedReason = "Excused absence"

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

// IsValid reports whether s can be stored.
func (s Status) IsValid() bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Label is the capitalised status, as shown in reports.
func (s Status) Label() string {
	return core.Capitalize(string(s))
}

// Record is the attendance of one student on one calendar day.
type Record struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	Date      time.Time `json:"date"` // UTC
	Status    Status    `json:"status"`
	Reason    string    `json:"reason"`
}

// Day is the calendar day key of the record.
func (r Record) Day() string {
	return core.DayKey(r.Date)
}

// NewRecord contains information needed to record attendance.
type NewRecord struct {
	StudentID int       `json:"student_id" validate:"required,gt=0"`
	Date      time.Time `json:"date" validate:"required"`
	Status    Status    `json:"status" validate:"required,attstatus"`
	Reason    string    `json:"reason"`
}

func (nr *NewRecord) Validate(validate *validator.Validate) error {
	nr.Status = Status(core.CleanString(string(nr.Status), true /* lower */))
	nr.Reason = core.CleanString(nr.Reason)
	return validate.Struct(nr)
}

// UpdateRecord defines what information may be provided to modify an existing Record.
// Only non-nil fields are applied.
type UpdateRecord struct {
	Date   *time.Time `json:"date"`
	Status *Status    `json:"status" validate:"omitempty,attstatus"`
	Reason *string    `json:"reason"`
}

func (ur *UpdateRecord) Validate(validate *validator.Validate) error {
	if ur.Status != nil {
		*ur.Status = Status(core.CleanString(string(*ur.Status), true /* lower */))
	}
	if ur.Reason != nil {
		*ur.Reason = core.CleanString(*ur.Reason)
	}
	return validate.Struct(ur)
}

// Apply returns a copy of r with the provided fields replaced.
func (ur UpdateRecord) Apply(r Record) Record {
	if ur.Date != nil {
		r.Date = ur.Date.UTC()
	}
	if ur.Status != nil {
		r.Status = *ur.Status
	}
	if ur.Reason != nil {
		r.Reason = *ur.Reason
	}
	return r
}

// Mark sets the status of a student on a given day.
type Mark struct {
	StudentID int       `json:"student_id" validate:"required,gt=0"`
	Date      time.Time `json:"date" validate:"required"`
	Status    Status    `json:"status" validate:"required,attstatus"`
}

// Plan is the result of planning a bulk attendance upsert.
// It holds at most one entry per (StudentID, day).
type Plan struct {
	Creates []Record `json:"creates"`
	Updates []Record `json:"updates"`
}

func (p Plan) Len() int {
	return len(p.Creates) + len(p.Updates)
}
