package dummydb

import "github.com/trezcool/darasa/core/student"

type studentRepository struct {
	*repository[student.Student]
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{&repository[student.Student]{
		db:       db.student,
		notFound: student.ErrNotFound,
		getID:    func(s student.Student) int { return s.ID },
		setID:    func(s *student.Student, id int) { s.ID = id },
	}}
}
