package grade

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
	ErrNotFound        = core.NewNotFoundError("grade")
	ErrScoreExceedsMax = errors.New("score cannot exceed max score")
	ErrUnknownStudent  = errors.New("student does not exist")
)

type (
	// Repository owns the grade collection.
	// QueryAll returns a copy ordered by ID. Create ignores the incoming ID and assigns max(ID)+1.
	Repository interface {
		QueryAll(ctx context.Context) ([]Grade, error)
		GetByID(ctx context.Context, id int) (Grade, error)
		Create(ctx context.Context, g Grade) (Grade, error)
		Update(ctx context.Context, g Grade) (Grade, error)
		Delete(ctx context.Context, id int) error
	}

	// StudentGetter resolves the student a grade is recorded for.
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

func (svc *Service) checkStudent(ctx context.Context, id int) error {
	if _, err := svc.students.GetByID(ctx, id); err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(ErrUnknownStudent, core.FieldError{Field: "student_id", Error: ErrUnknownStudent.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ng NewGrade) (Grade, error) {
	if err := ng.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	if err := svc.checkStudent(ctx, ng.StudentID); err != nil {
		return Grade{}, err
	}
	date := ng.Date.UTC()
	if ng.Date.IsZero() {
		date = time.Now().UTC()
	}
	return svc.repo.Create(ctx, Grade{
		StudentID:      ng.StudentID,
		AssignmentName: ng.AssignmentName,
		Category:       ng.Category,
		Score:          *ng.Score,
		MaxScore:       *ng.MaxScore,
		Date:           date,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Grade, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGrade) (Grade, error) {
	if err := ug.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	g, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return Grade{}, err
	}
	if ug.StudentID != nil && *ug.StudentID != g.StudentID {
		if err = svc.checkStudent(ctx, *ug.StudentID); err != nil {
			return Grade{}, err
		}
	}
	g = ug.Apply(g)
	if err = checkScore(g); err != nil {
		return Grade{}, err
	}
	return svc.repo.Update(ctx, g)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
