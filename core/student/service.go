package student

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("student")
)

type (
	// Repository owns the student collection.
	// QueryAll returns a copy ordered by ID. Create ignores the incoming ID and assigns max(ID)+1.
	Repository interface {
		QueryAll(ctx context.Context) ([]Student, error)
		GetByID(ctx context.Context, id int) (Student, error)
		Create(ctx context.Context, s Student) (Student, error)
		Update(ctx context.Context, s Student) (Student, error)
		Delete(ctx context.Context, id int) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	enrolled := ns.EnrollmentDate.UTC()
	if ns.EnrollmentDate.IsZero() {
		enrolled = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return svc.repo.Create(ctx, Student{
		Name:           ns.Name,
		GradeLevel:     ns.GradeLevel,
		Email:          ns.Email,
		Phone:          ns.Phone,
		EnrollmentDate: enrolled,
		Status:         ns.Status,
		ParentName:     ns.ParentName,
		ParentEmail:    ns.ParentEmail,
		ParentPhone:    ns.ParentPhone,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	s, err := svc.repo.GetByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	return svc.repo.Update(ctx, us.Apply(s))
}

// Delete does not cascade: grades and attendance of the student are kept
// and resolve to the "Unknown Student" name from then on.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, id)
}
