package dummydb

import "github.com/trezcool/darasa/core/grade"

type gradeRepository struct {
	*repository[grade.Grade]
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{&repository[grade.Grade]{
		db:       db.grade,
		notFound: grade.ErrNotFound,
		getID:    func(g grade.Grade) int { return g.ID },
		setID:    func(g *grade.Grade, id int) { g.ID = id },
	}}
}
