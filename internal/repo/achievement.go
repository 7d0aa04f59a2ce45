package repo

import (
	"context"

	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/repo/selector"
)

type Achievement struct {
	sel selector.S[model.Achievement]
}

func NewAchievement(db *bun.DB) *Achievement {
	return &Achievement{sel: selector.New[model.Achievement](db)}
}

func (r *Achievement) GetAchievements(ctx context.Context) ([]*model.Achievement, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.ExcludeColumn("earned_count").Order("achievement_index ASC")
	})
}

// IncrementEarnedCount bumps the global earned counter of every listed achievement by one.
func (r *Achievement) IncrementEarnedCount(ctx context.Context, idb bun.IDB, indices []int) error {
	if len(indices) == 0 {
		return nil
	}
	_, err := idb.NewUpdate().
		Model((*model.Achievement)(nil)).
		Set("earned_count = earned_count + 1").
		Where("achievement_index IN (?)", bun.In(indices)).
		Exec(ctx)
	return err
}
