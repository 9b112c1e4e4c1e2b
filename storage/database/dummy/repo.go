package dummydb

import (
	"context"

	"github.com/trezcool/darasa/core"
)

// repository implements the CRUD contract shared by every entity.
type repository[T any] struct {
	db       *table[T]
	notFound error
	getID    func(T) int
	setID    func(*T, int)
}

func (repo *repository[T]) checkCtx(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return core.NewStoreError(op, err)
	}
	return nil
}

func (repo *repository[T]) QueryAll(ctx context.Context) ([]T, error) {
	if err := repo.checkCtx(ctx, "query"); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.all(), nil
}

func (repo *repository[T]) GetByID(ctx context.Context, id int) (T, error) {
	var zero T
	if err := repo.checkCtx(ctx, "get"); err != nil {
		return zero, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	if row, ok := repo.db.rows[id]; ok {
		return row, nil
	}
	return zero, repo.notFound
}

func (repo *repository[T]) Create(ctx context.Context, row T) (T, error) {
	var zero T
	if err := repo.checkCtx(ctx, "create"); err != nil {
		return zero, err
	}
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.setID(&row, repo.db.nextID())
	repo.db.rows[repo.getID(row)] = row
	return row, nil
}

func (repo *repository[T]) Update(ctx context.Context, row T) (T, error) {
	var zero T
	if err := repo.checkCtx(ctx, "update"); err != nil {
		return zero, err
	}
	repo.db.Lock()
	defer repo.db.Unlock()

	id := repo.getID(row)
	if _, ok := repo.db.rows[id]; !ok {
		return zero, repo.notFound
	}
	repo.db.rows[id] = row
	return row, nil
}

func (repo *repository[T]) Delete(ctx context.Context, id int) error {
	if err := repo.checkCtx(ctx, "delete"); err != nil {
		return err
	}
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return repo.notFound
	}
	delete(repo.db.rows, id)
	return nil
}
