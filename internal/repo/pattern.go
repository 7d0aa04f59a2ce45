package repo

import (
	"context"

	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/repo/selector"
)

type Pattern struct {
	sel selector.S[model.Pattern]
}

func NewPattern(db *bun.DB) *Pattern {
	return &Pattern{sel: selector.New[model.Pattern](db)}
}

func (r *Pattern) GetPatterns(ctx context.Context) ([]*model.Pattern, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("track_id ASC", "difficulty ASC")
	})
}
