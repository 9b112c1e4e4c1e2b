package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/attendance"
)

var attendanceTable = table{
	name:     "attendance",
	columns:  []string{"student_id", "date", "status", "reason"},
	notFound: attendance.ErrNotFound,
}

type attendanceRow struct {
	ID        int         `db:"id"`
	StudentID int         `db:"student_id"`
	Date      time.Time   `db:"date"`
	Status    string      `db:"status"`
	Reason    null.String `db:"reason"`
}

func toAttendanceRow(r attendance.Record) attendanceRow {
	return attendanceRow{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date.UTC(),
		Status:    string(r.Status),
		Reason:    null.NewString(r.Reason, r.Reason != ""),
	}
}

func (r attendanceRow) record() attendance.Record {
	return attendance.Record{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date.UTC(),
		Status:    attendance.Status(r.Status),
		Reason:    r.Reason.String,
	}
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (repo attendanceRepository) QueryAll(ctx context.Context) ([]attendance.Record, error) {
	rows, err := queryAll[attendanceRow](ctx, repo.db, attendanceTable)
	if err != nil {
		return nil, err
	}
	records := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

func (repo attendanceRepository) GetByID(ctx context.Context, id int) (attendance.Record, error) {
	row, err := getByID[attendanceRow](ctx, repo.db, attendanceTable, id)
	if err != nil {
		return attendance.Record{}, err
	}
	return row.record(), nil
}

func (repo attendanceRepository) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	id, err := create(ctx, repo.db, attendanceTable, func(id int) interface{} {
		r.ID = id
		return toAttendanceRow(r)
	})
	if err != nil {
		return attendance.Record{}, err
	}
	r.ID = id
	return r, nil
}

func (repo attendanceRepository) Update(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	if err := update(ctx, repo.db, attendanceTable, toAttendanceRow(r)); err != nil {
		return attendance.Record{}, err
	}
	return r, nil
}

func (repo attendanceRepository) Delete(ctx context.Context, id int) error {
	return remove(ctx, repo.db, attendanceTable, id)
}
