package repo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/repo/selector"
)

const rankBatchSize = 500

type Player struct {
	sel selector.S[model.Player]
}

func NewPlayer(db *bun.DB) *Player {
	return &Player{sel: selector.New[model.Player](db)}
}

func (r *Player) GetPlayer(ctx context.Context, playerID string) (*model.Player, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("p.player_id = ?", playerID)
	})
}

// GetForUpdate loads the player row and locks it until idb commits. A player
// seen for the first time is created with zeroed aggregates.
func (r *Player) GetForUpdate(ctx context.Context, idb bun.IDB, playerID string) (*model.Player, error) {
	player := &model.Player{
		PlayerID: playerID,
		PlayerStats: model.PlayerStats{
			RecentPlay: []string{},
		},
		AchievementState: model.AchievementState{
			Unlocked:    []int{},
			OwnedAlias:  []int{},
			OwnedBanner: []int{},
		},
		RankHistory: []int{},
	}
	if _, err := idb.NewInsert().
		Model(player).
		On("CONFLICT (player_id) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, err
	}

	return r.sel.In(idb).SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("p.player_id = ?", playerID).For("UPDATE")
	})
}

// UpdateStats writes every aggregate column in a single statement.
func (r *Player) UpdateStats(ctx context.Context, idb bun.IDB, playerID string, stats model.PlayerStats) error {
	p := &model.Player{PlayerID: playerID, PlayerStats: stats}
	return r.update(ctx, idb, p,
		"rating", "score_sum", "accuracy", "playtime", "recent_play", "ap", "fc", "clear", "first_place_count")
}

func (r *Player) UpdateAchievementState(ctx context.Context, idb bun.IDB, playerID string, state model.AchievementState) error {
	p := &model.Player{PlayerID: playerID, AchievementState: state}
	return r.update(ctx, idb, p, "unlocked", "owned_alias", "owned_banner")
}

func (r *Player) update(ctx context.Context, idb bun.IDB, p *model.Player, columns ...string) error {
	res, err := idb.NewUpdate().
		Model(p).
		Column(columns...).
		Set("updated_at = current_timestamp").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pgerr.ErrNotFound.Msg("player %s not found", p.PlayerID)
	}
	return nil
}

// ListByRating returns every player ordered by rating, highest first. Ties keep
// a stable order by player id.
func (r *Player) ListByRating(ctx context.Context, idb bun.IDB) ([]*model.Player, error) {
	return r.sel.In(idb).SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Column("player_id", "rating", "rank", "rank_history").
			Order("p.rating DESC", "p.player_id ASC")
	})
}

// UpdateRanks persists rank and rank_history of players in batches.
func (r *Player) UpdateRanks(ctx context.Context, idb bun.IDB, players []*model.Player) error {
	for start := 0; start < len(players); start += rankBatchSize {
		end := start + rankBatchSize
		if end > len(players) {
			end = len(players)
		}
		batch := players[start:end]
		if _, err := idb.NewUpdate().
			Model(&batch).
			Column("rank", "rank_history").
			Bulk().
			Exec(ctx); err != nil {
			return errors.Wrapf(err, "repo: failed to update ranks of batch starting at %d", start)
		}
	}
	return nil
}
