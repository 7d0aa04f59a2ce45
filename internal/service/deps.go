package service

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/util/playverifs"
)

// TxRunner runs fn in a transaction, committing when fn returns nil.
type TxRunner interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx bun.Tx) error) error
}

type PlayRecordStore interface {
	GetBest(ctx context.Context, idb bun.IDB, key model.RecordKey) (*model.PlayRecord, error)
	GetRatingBest(ctx context.Context, idb bun.IDB, key model.RecordKey) (*model.PlayRecord, error)
	Create(ctx context.Context, idb bun.IDB, record *model.PlayRecord) error
	RetireBest(ctx context.Context, idb bun.IDB, recordID int64) error
	RetireRating(ctx context.Context, idb bun.IDB, recordID int64) error
	OutranksOthers(ctx context.Context, idb bun.IDB, key model.RecordKey, record int64) (bool, error)
}

type PlayerStore interface {
	GetForUpdate(ctx context.Context, idb bun.IDB, playerID string) (*model.Player, error)
	UpdateStats(ctx context.Context, idb bun.IDB, playerID string, stats model.PlayerStats) error
	UpdateAchievementState(ctx context.Context, idb bun.IDB, playerID string, state model.AchievementState) error
}

type EarnedCounter interface {
	IncrementEarnedCount(ctx context.Context, idb bun.IDB, indices []int) error
}

type RankStore interface {
	ListByRating(ctx context.Context, idb bun.IDB) ([]*model.Player, error)
	UpdateRanks(ctx context.Context, idb bun.IDB, players []*model.Player) error
}

type PlayVerifier interface {
	Verify(ctx context.Context, play *types.PlayRecordRequest) *playverifs.Violation
}

// LeaderboardInvalidator drops cached leaderboards of a (track, difficulty).
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context, trackID string, difficulty int)
}

// PlayArchiver keeps the raw submission of an accepted play. Best effort.
type PlayArchiver interface {
	Archive(ctx context.Context, record *model.PlayRecord, play *types.PlayRecordRequest)
}

// EventNotifier hands notifications over to the delivery queue. Best effort.
type EventNotifier interface {
	NotifyRecord(ctx context.Context, n *types.RecordNotification)
	NotifyAchievements(ctx context.Context, n *types.AchievementNotification)
}
