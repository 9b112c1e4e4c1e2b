package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/grade"
)

var gradeTable = table{
	name:     "grades",
	columns:  []string{"student_id", "assignment_name", "category", "score", "max_score", "date"},
	notFound: grade.ErrNotFound,
}

type gradeRow struct {
	ID             int       `db:"id"`
	StudentID      int       `db:"student_id"`
	AssignmentName string    `db:"assignment_name"`
	Category       string    `db:"category"`
	Score          float64   `db:"score"`
	MaxScore       float64   `db:"max_score"`
	Date           time.Time `db:"date"`
}

func toGradeRow(g grade.Grade) gradeRow {
	return gradeRow{
		ID:             g.ID,
		StudentID:      g.StudentID,
		AssignmentName: g.AssignmentName,
		Category:       string(g.Category),
		Score:          g.Score,
		MaxScore:       g.MaxScore,
		Date:           g.Date.UTC(),
	}
}

func (r gradeRow) grade() grade.Grade {
	return grade.Grade{
		ID:             r.ID,
		StudentID:      r.StudentID,
		AssignmentName: r.AssignmentName,
		Category:       grade.Category(r.Category),
		Score:          r.Score,
		MaxScore:       r.MaxScore,
		Date:           r.Date.UTC(),
	}
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo gradeRepository) QueryAll(ctx context.Context) ([]grade.Grade, error) {
	rows, err := queryAll[gradeRow](ctx, repo.db, gradeTable)
	if err != nil {
		return nil, err
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.grade())
	}
	return grades, nil
}

func (repo gradeRepository) GetByID(ctx context.Context, id int) (grade.Grade, error) {
	row, err := getByID[gradeRow](ctx, repo.db, gradeTable, id)
	if err != nil {
		return grade.Grade{}, err
	}
	return row.grade(), nil
}

func (repo gradeRepository) Create(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	id, err := create(ctx, repo.db, gradeTable, func(id int) interface{} {
		g.ID = id
		return toGradeRow(g)
	})
	if err != nil {
		return grade.Grade{}, err
	}
	g.ID = id
	return g, nil
}

func (repo gradeRepository) Update(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	if err := update(ctx, repo.db, gradeTable, toGradeRow(g)); err != nil {
		return grade.Grade{}, err
	}
	return g, nil
}

func (repo gradeRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, repo.db, gradeTable, id)
}
