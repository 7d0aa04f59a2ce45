package selector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/pkg/pgerr"
)

type S[T any] struct {
	DB bun.IDB
}

func New[T any](db bun.IDB) S[T] {
	return S[T]{
		DB: db,
	}
}

// In returns a selector bound to idb, usually a transaction.
func (r S[T]) In(idb bun.IDB) S[T] {
	return S[T]{
		DB: idb,
	}
}

func (r S[T]) SelectOne(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	var model T
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pgerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &model, nil
}

// SelectOptional is SelectOne that reports a missing row as (nil, nil).
func (r S[T]) SelectOptional(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) (*T, error) {
	m, err := r.SelectOne(ctx, fn)
	if errors.Is(err, pgerr.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

func (r S[T]) SelectMany(ctx context.Context, fn func(q *bun.SelectQuery) *bun.SelectQuery) ([]*T, error) {
	model := make([]*T, 0)
	err := fn(r.DB.NewSelect().Model(&model)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pgerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return model, nil
}
