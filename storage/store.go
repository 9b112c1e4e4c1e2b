// Package storage opens the repositories of the configured database engine.
package storage

import (
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/storage/database"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	gormrepos "github.com/trezcool/darasa/storage/database/gorm"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

var ErrUnknownEngine = errors.New("unknown database engine")

// Store holds one repository per collection.
type Store struct {
	Engine     string
	Students   student.Repository
	Grades     grade.Repository
	Attendance attendance.Repository

	close func() error
}

// Close releases the underlying connection. Safe to call on memory stores.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to conf.Database.Engine. Postgres databases are created and migrated first.
func Open(conf *core.Config) (*Store, error) {
	switch engine := conf.Database.Engine; engine {
	case core.EngineMemory, "":
		db, err := dummydb.Open()
		if err != nil {
			return nil, err
		}
		return &Store{
			Engine:     core.EngineMemory,
			Students:   dummydb.NewStudentRepository(db),
			Grades:     dummydb.NewGradeRepository(db),
			Attendance: dummydb.NewAttendanceRepository(db),
		}, nil

	case core.EngineSQLite:
		db, err := gormrepos.Open(conf.Database.Path)
		if err != nil {
			return nil, err
		}
		return &Store{
			Engine:     engine,
			Students:   gormrepos.NewStudentRepository(db),
			Grades:     gormrepos.NewGradeRepository(db),
			Attendance: gormrepos.NewAttendanceRepository(db),
			close:      func() error { return gormrepos.Close(db) },
		}, nil

	case core.EnginePostgres:
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}
		sqlDB, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		db := sqlxrepos.NewDB(sqlDB)
		return &Store{
			Engine:     engine,
			Students:   sqlxrepos.NewStudentRepository(db),
			Grades:     sqlxrepos.NewGradeRepository(db),
			Attendance: sqlxrepos.NewAttendanceRepository(db),
			close:      db.Close,
		}, nil

	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", engine)
	}
}
