package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
)

// NewDB wraps a postgres connection opened by database.Open.
func NewDB(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

// table describes how one collection is laid out. Columns exclude "id".
type table struct {
	name     string
	columns  []string
	notFound error
}

func (t table) selectQuery() string {
	return fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

func (t table) insertQuery() string {
	return fmt.Sprintf(
		"INSERT INTO %s (id, %s) VALUES (:id, :%s)",
		t.name, strings.Join(t.columns, ", "), strings.Join(t.columns, ", :"),
	)
}

func (t table) updateQuery() string {
	sets := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		sets = append(sets, col+" = :"+col)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", t.name, strings.Join(sets, ", "))
}

func queryAll[R any](ctx context.Context, db *sqlx.DB, t table) ([]R, error) {
	rows := make([]R, 0)
	if err := db.SelectContext(ctx, &rows, t.selectQuery()+" ORDER BY id"); err != nil {
		return nil, core.NewStoreError("querying "+t.name, err)
	}
	return rows, nil
}

func getByID[R any](ctx context.Context, db *sqlx.DB, t table, id int) (R, error) {
	var row R
	if err := db.GetContext(ctx, &row, db.Rebind(t.selectQuery()+" WHERE id = ?"), id); err != nil {
		return row, t.trapNoRowsErr(err, "getting "+t.name)
	}
	return row, nil
}

// create assigns max(id)+1 under a table lock, then inserts the row built for that id.
func create(ctx context.Context, db *sqlx.DB, t table, build func(id int) interface{}) (id int, err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, core.NewStoreError("inserting into "+t.name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("LOCK TABLE %s IN EXCLUSIVE MODE", t.name)); err != nil {
		return 0, core.NewStoreError("locking "+t.name, err)
	}
	if err = tx.GetContext(ctx, &id, fmt.Sprintf("SELECT COALESCE(MAX(id), 0) + 1 FROM %s", t.name)); err != nil {
		return 0, core.NewStoreError("assigning "+t.name+" id", err)
	}
	if _, err = tx.NamedExecContext(ctx, t.insertQuery(), build(id)); err != nil {
		return 0, core.NewStoreError("inserting into "+t.name, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, core.NewStoreError("inserting into "+t.name, err)
	}
	return id, nil
}

func update(ctx context.Context, db *sqlx.DB, t table, row interface{}) error {
	res, err := db.NamedExecContext(ctx, t.updateQuery(), row)
	if err != nil {
		return core.NewStoreError("updating "+t.name, err)
	}
	return t.checkAffected(res, "updating "+t.name)
}

func remove(ctx context.Context, db *sqlx.DB, t table, id int) error {
	res, err := db.ExecContext(ctx, db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name)), id)
	if err != nil {
		return core.NewStoreError("deleting from "+t.name, err)
	}
	return t.checkAffected(res, "deleting from "+t.name)
}

// trapNoRowsErr maps psql "no rows" err to the table's not found error
func (t table) trapNoRowsErr(err error, op string) error {
	if err == sql.ErrNoRows {
		return t.notFound
	}
	return core.NewStoreError(op, err)
}

func (t table) checkAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return core.NewStoreError(op, err)
	}
	if n == 0 {
		return t.notFound
	}
	return nil
}
