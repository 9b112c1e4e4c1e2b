package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/student"
)

var studentTable = table{
	name: "students",
	columns: []string{
		"name", "grade_level", "email", "phone", "enrollment_date", "status",
		"parent_name", "parent_email", "parent_phone",
	},
	notFound: student.ErrNotFound,
}

type studentRow struct {
	ID             int         `db:"id"`
	Name           string      `db:"name"`
	GradeLevel     string      `db:"grade_level"`
	Email          string      `db:"email"`
	Phone          string      `db:"phone"`
	EnrollmentDate null.Time   `db:"enrollment_date"`
	Status         string      `db:"status"`
	ParentName     null.String `db:"parent_name"`
	ParentEmail    null.String `db:"parent_email"`
	ParentPhone    null.String `db:"parent_phone"`
}

func toStudentRow(s student.Student) studentRow {
	return studentRow{
		ID:             s.ID,
		Name:           s.Name,
		GradeLevel:     s.GradeLevel,
		Email:          s.Email,
		Phone:          s.Phone,
		EnrollmentDate: null.NewTime(s.EnrollmentDate.UTC(), !s.EnrollmentDate.IsZero()),
		Status:         string(s.Status),
		ParentName:     null.NewString(s.ParentName, s.ParentName != ""),
		ParentEmail:    null.NewString(s.ParentEmail, s.ParentEmail != ""),
		ParentPhone:    null.NewString(s.ParentPhone, s.ParentPhone != ""),
	}
}

func (r studentRow) student() student.Student {
	s := student.Student{
		ID:          r.ID,
		Name:        r.Name,
		GradeLevel:  r.GradeLevel,
		Email:       r.Email,
		Phone:       r.Phone,
		Status:      student.Status(r.Status),
		ParentName:  r.ParentName.String,
		ParentEmail: r.ParentEmail.String,
		ParentPhone: r.ParentPhone.String,
	}
	if r.EnrollmentDate.Valid {
		s.EnrollmentDate = r.EnrollmentDate.Time.UTC()
	}
	return s
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) QueryAll(ctx context.Context) ([]student.Student, error) {
	rows, err := queryAll[studentRow](ctx, repo.db, studentTable)
	if err != nil {
		return nil, err
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.student())
	}
	return students, nil
}

func (repo studentRepository) GetByID(ctx context.Context, id int) (student.Student, error) {
	row, err := getByID[studentRow](ctx, repo.db, studentTable, id)
	if err != nil {
		return student.Student{}, err
	}
	return row.student(), nil
}

func (repo studentRepository) Create(ctx context.Context, s student.Student) (student.Student, error) {
	id, err := create(ctx, repo.db, studentTable, func(id int) interface{} {
		s.ID = id
		return toStudentRow(s)
	})
	if err != nil {
		return student.Student{}, err
	}
	s.ID = id
	return s, nil
}

func (repo studentRepository) Update(ctx context.Context, s student.Student) (student.Student, error) {
	if err := update(ctx, repo.db, studentTable, toStudentRow(s)); err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo studentRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, repo.db, studentTable, id)
}
