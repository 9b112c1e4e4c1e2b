package dummydb

import "github.com/trezcool/darasa/core/attendance"

type attendanceRepository struct {
	*repository[attendance.Record]
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{&repository[attendance.Record]{
		db:       db.attendance,
		notFound: attendance.ErrNotFound,
		getID:    func(r attendance.Record) int { return r.ID },
		setID:    func(r *attendance.Record, id int) { r.ID = id },
	}}
}
