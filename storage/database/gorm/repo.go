package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// model is a table row that converts back to its domain value T.
type model[T any] interface {
	domain() T
}

// repository implements the CRUD contract shared by every entity.
type repository[T any, M model[T]] struct {
	db       *gorm.DB
	notFound error
	toModel  func(T) M
	getID    func(T) int
	setID    func(*T, int)
}

func (repo *repository[T, M]) QueryAll(ctx context.Context) ([]T, error) {
	var models []M
	if err := repo.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, core.NewStoreError("query", err)
	}
	rows := make([]T, 0, len(models))
	for _, m := range models {
		rows = append(rows, m.domain())
	}
	return rows, nil
}

func (repo *repository[T, M]) GetByID(ctx context.Context, id int) (T, error) {
	var m M
	if err := repo.db.WithContext(ctx).First(&m, id).Error; err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, repo.notFound
		}
		return zero, core.NewStoreError("get", err)
	}
	return m.domain(), nil
}

// Create assigns max(id)+1 and inserts within one transaction.
func (repo *repository[T, M]) Create(ctx context.Context, row T) (T, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var id int
		if err := tx.Model(new(M)).Select("COALESCE(MAX(id), 0) + 1").Scan(&id).Error; err != nil {
			return err
		}
		repo.setID(&row, id)
		m := repo.toModel(row)
		return tx.Create(&m).Error
	})
	if err != nil {
		var zero T
		return zero, core.NewStoreError("create", err)
	}
	return row, nil
}

func (repo *repository[T, M]) Update(ctx context.Context, row T) (T, error) {
	m := repo.toModel(row)
	res := repo.db.WithContext(ctx).Model(new(M)).Where("id = ?", repo.getID(row)).Select("*").Updates(&m)
	if res.Error != nil {
		var zero T
		return zero, core.NewStoreError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		var zero T
		return zero, repo.notFound
	}
	return row, nil
}

func (repo *repository[T, M]) Delete(ctx context.Context, id int) error {
	res := repo.db.WithContext(ctx).Delete(new(M), id)
	if res.Error != nil {
		return core.NewStoreError("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.notFound
	}
	return nil
}

type studentRepository struct {
	*repository[student.Student, Student]
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *gorm.DB) student.Repository {
	return &studentRepository{&repository[student.Student, Student]{
		db:       db,
		notFound: student.ErrNotFound,
		toModel:  toStudentModel,
		getID:    func(s student.Student) int { return s.ID },
		setID:    func(s *student.Student, id int) { s.ID = id },
	}}
}

type gradeRepository struct {
	*repository[grade.Grade, Grade]
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *gorm.DB) grade.Repository {
	return &gradeRepository{&repository[grade.Grade, Grade]{
		db:       db,
		notFound: grade.ErrNotFound,
		toModel:  toGradeModel,
		getID:    func(g grade.Grade) int { return g.ID },
		setID:    func(g *grade.Grade, id int) { g.ID = id },
	}}
}

type attendanceRepository struct {
	*repository[attendance.Record, AttendanceRecord]
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &attendanceRepository{&repository[attendance.Record, AttendanceRecord]{
		db:       db,
		notFound: attendance.ErrNotFound,
		toModel:  toAttendanceModel,
		getID:    func(r attendance.Record) int { return r.ID },
		setID:    func(r *attendance.Record, id int) { r.ID = id },
	}}
}
