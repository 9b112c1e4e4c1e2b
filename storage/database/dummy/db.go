// Package dummydb is an in-memory store. It is safe for concurrent use and
// always hands out copies.
package dummydb

import (
	"sort"
	"sync"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

type (
	DB struct {
		student    *table[student.Student]
		grade      *table[grade.Grade]
		attendance *table[attendance.Record]
	}

	table[T any] struct {
		sync.RWMutex
		rows map[int]T
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:    newTable[student.Student](),
		grade:      newTable[grade.Grade](),
		attendance: newTable[attendance.Record](),
	}
	return db, nil
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

// nextID is max(ID)+1, so IDs of deleted trailing rows are handed out again.
// Callers hold the write lock.
func (t *table[T]) nextID() int {
	var max int
	for id := range t.rows {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// all returns the rows ordered by ID. Callers hold the read lock.
func (t *table[T]) all() []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}
