package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("attendance record")
	ErrUnknownStudent = errors.New("student does not exist")
	ErrDayTaken       = errors.New("student already has a record on that day")
)

type (
	// Repository owns the attendance collection.
	// QueryAll returns a copy ordered by ID. Create ignores the incoming ID and assigns max(ID)+1.
	// One record per (StudentID, day) is not enforced here: callers go through a Plan.
	Repository interface {
		QueryAll(ctx context.Context) ([]Record, error)
		GetByID(ctx context.Context, id int) (Record, error)
		Create(ctx context.Context, r Record) (Record, error)
		Update(ctx context.Context, r Record) (Record, error)
		Delete(ctx context.Context, id int) error
	}

	// StudentGetter resolves the student a record belongs to.
	StudentGetter interface {
		GetByID(ctx context.Context, id int) (student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentGetter
		validate *validator.Validate
	}
)

func NewService(repo Repository, students StudentGetter, validate *validator.Validate) *Service {
	return &Service{repo: repo, students: students, validate: validate}
}

func (svc *Service) Create(ctx context.Context, nr NewRecord) (Record, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Record{}, err
	}
	if _, err := svc.students.GetByID(ctx, nr.StudentID); err != nil {
		if core.IsNotFound(err) {
			return Record{}, core.NewValidationError(ErrUnknownStudent, core.FieldError{Field: "student_id", Error: ErrUnknownStudent.Error()})
		}
		return Record{}, err
	}
	if err := svc.checkDayFree(ctx, nr.StudentID, nr.Date, 0); err != nil {
		return Record{}, err
	}
	return svc.repo.Create(ctx, Record{
		StudentID: nr.StudentID,
		Date:      nr.Date.UTC(),
		Status:    nr.Status,
		Reason:    nr.Reason,
	})
}

// checkDayFree fails when another record than exceptID already covers the student on day.
func (svc *Service) checkDayFree(ctx context.Context, studentID int, day time.Time, exceptID int) error {
	records, err := svc.repo.QueryAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.ID != exceptID && r.StudentID == studentID && core.SameDay(r.Date, day) {
			return core.NewValidationError(ErrDayTaken, core.FieldError{Field: "date", Error: ErrDayTaken.Error()})
		}
	}
	return nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Record, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Record, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ur UpdateRecord) (Record, error) {
	if err := ur.Validate(svc.validate); err != nil {
		return Record{}, err
	}
	r, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if ur.Date != nil && !core.SameDay(r.Date, *ur.Date) {
		if err := svc.checkDayFree(ctx, r.StudentID, *ur.Date, r.ID); err != nil {
			return Record{}, err
		}
	}
	return svc.repo.Update(ctx, ur.Apply(r))
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}

// ValidateMarks checks every mark before any planning happens.
func (svc *Service) ValidateMarks(marks []Mark) error {
	for i := range marks {
		marks[i].Status = Status(core.CleanString(string(marks[i].Status), true /* lower */))
		if err := svc.validate.Struct(marks[i]); err != nil {
			return err
		}
	}
	return nil
}

// Apply executes a Plan, updates first. It stops at the first failure and
// returns the records written so far.
func (svc *Service) Apply(ctx context.Context, plan Plan) ([]Record, error) {
	written := make([]Record, 0, plan.Len())
	for _, r := range plan.Updates {
		updated, err := svc.repo.Update(ctx, r)
		if err != nil {
			return written, err
		}
		written = append(written, updated)
	}
	for _, r := range plan.Creates {
		created, err := svc.repo.Create(ctx, r)
		if err != nil {
			return written, err
		}
		written = append(written, created)
	}
	return written, nil
}
