// Package gormrepos stores the collections in a single SQLite file.
package gormrepos

import (
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (or creates) the SQLite file at path and migrates its schema.
// Use ":memory:" for a throwaway store.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	sqlDB.SetMaxOpenConns(1) // sqlite has a single writer; also keeps ":memory:" to one database

	if err = db.AutoMigrate(&Student{}, &Grade{}, &AttendanceRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrating sqlite database")
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
