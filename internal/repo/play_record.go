package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/repo/selector"
)

type PlayRecord struct {
	db  *bun.DB
	sel selector.S[model.PlayRecord]
}

func NewPlayRecord(db *bun.DB) *PlayRecord {
	return &PlayRecord{
		db:  db,
		sel: selector.New[model.PlayRecord](db),
	}
}

func whereKey(q *bun.SelectQuery, key model.RecordKey) *bun.SelectQuery {
	return q.
		Where("pr.player_id = ?", key.PlayerID).
		Where("pr.track_id = ?", key.TrackID).
		Where("pr.difficulty = ?", key.Difficulty)
}

func (r *PlayRecord) GetByIndex(ctx context.Context, index string) (*model.PlayRecord, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("pr.record_index = ?", index)
	})
}

// GetBest returns the row holding isBest for key, or nil when the key has no plays.
func (r *PlayRecord) GetBest(ctx context.Context, idb bun.IDB, key model.RecordKey) (*model.PlayRecord, error) {
	return r.sel.In(idb).SelectOptional(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return whereKey(q, key).Where("pr.is_best")
	})
}

// GetRatingBest returns the single row carrying a non-zero rating for key, or nil.
func (r *PlayRecord) GetRatingBest(ctx context.Context, idb bun.IDB, key model.RecordKey) (*model.PlayRecord, error) {
	return r.sel.In(idb).SelectOptional(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return whereKey(q, key).
			Where("pr.rating > 0").
			Order("pr.rating DESC", "pr.record_id ASC").
			Limit(1)
	})
}

func (r *PlayRecord) Create(ctx context.Context, idb bun.IDB, record *model.PlayRecord) error {
	_, err := idb.NewInsert().
		Model(record).
		Returning("record_id, created_at").
		Exec(ctx)
	return err
}

func (r *PlayRecord) RetireBest(ctx context.Context, idb bun.IDB, recordID int64) error {
	return r.updateOne(ctx, idb, recordID, "is_best = FALSE")
}

func (r *PlayRecord) RetireRating(ctx context.Context, idb bun.IDB, recordID int64) error {
	return r.updateOne(ctx, idb, recordID, "rating = 0")
}

func (r *PlayRecord) updateOne(ctx context.Context, idb bun.IDB, recordID int64, set string) error {
	res, err := idb.NewUpdate().
		Model((*model.PlayRecord)(nil)).
		Set(set).
		Where("record_id = ?", recordID).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return errors.Errorf("repo: expected one play record %d to update, got %d", recordID, n)
	}
	return nil
}

// OutranksOthers reports whether record is strictly greater than every other
// player's best on the same track and difficulty.
func (r *PlayRecord) OutranksOthers(ctx context.Context, idb bun.IDB, key model.RecordKey, record int64) (bool, error) {
	exists, err := idb.NewSelect().
		Model((*model.PlayRecord)(nil)).
		Where("pr.track_id = ?", key.TrackID).
		Where("pr.difficulty = ?", key.Difficulty).
		Where("pr.player_id <> ?", key.PlayerID).
		Where("pr.is_best").
		Where("pr.record >= ?", record).
		Exists(ctx)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// GetPlayerBests returns a player's best row of every difficulty on a track, hardest first.
func (r *PlayRecord) GetPlayerBests(ctx context.Context, playerID, trackID string) ([]*model.PlayRecord, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("pr.player_id = ?", playerID).
			Where("pr.track_id = ?", trackID).
			Where("pr.is_best").
			Order("pr.difficulty DESC")
	})
}

// GetLeaderboard returns the best rows of a (track, difficulty) ordered by column.
// column must come from constant.LeaderboardOrderColumns.
func (r *PlayRecord) GetLeaderboard(ctx context.Context, trackID string, difficulty int, column string, desc bool, limit int) ([]*model.PlayRecord, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("pr.track_id = ?", trackID).
			Where("pr.difficulty = ?", difficulty).
			Where("pr.is_best").
			OrderExpr("pr.? "+direction(desc), bun.Ident(column)).
			Order("pr.record_id ASC").
			Limit(limit)
	})
}

// GetPosition returns the 1-based position of playerID on the leaderboard, or 0
// when the player has no best row there.
func (r *PlayRecord) GetPosition(ctx context.Context, trackID string, difficulty int, column string, desc bool, playerID string) (int, error) {
	ranked := r.db.NewSelect().
		Model((*model.PlayRecord)(nil)).
		Column("pr.player_id").
		ColumnExpr("ROW_NUMBER() OVER (ORDER BY pr.? "+direction(desc)+", pr.record_id ASC) AS position", bun.Ident(column)).
		Where("pr.track_id = ?", trackID).
		Where("pr.difficulty = ?", difficulty).
		Where("pr.is_best")

	var position int
	err := r.db.NewSelect().
		TableExpr("(?) AS ranked", ranked).
		Column("position").
		Where("player_id = ?", playerID).
		Scan(ctx, &position)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return position, nil
}

func direction(desc bool) string {
	if desc {
		return "DESC"
	}
	return "ASC"
}
