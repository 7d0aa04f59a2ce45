package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/keylock"
	"urlate.dev/backend/internal/pkg/observability"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/repo"
)

const rankHistoryLockKey = "job:rankhistory"

// RankHistory snapshots the global rating rank of every player.
type RankHistory struct {
	DB      TxRunner
	Locker  keylock.Locker
	Players RankStore
}

func NewRankHistory(conf *appconfig.Config, db *bun.DB, rs *redsync.Redsync, playerRepo *repo.Player) *RankHistory {
	return &RankHistory{
		DB:      db,
		Locker:  keylock.NewRedsync(rs, conf.RankHistoryTimeout, 1),
		Players: playerRepo,
	}
}

// AssignRanks pushes the rank of every player onto its history. players must be
// ordered by rating, highest first. Equal ratings share a rank.
func AssignRanks(players []*model.Player) {
	rank := 0
	for i, p := range players {
		if i == 0 || p.Rating != players[i-1].Rating {
			rank = i + 1
		}
		p.PushRank(rank)
	}
}

// Run takes one snapshot. Only one instance runs it at a time; a concurrent run
// fails with ErrBusy.
func (s *RankHistory) Run(ctx context.Context) (*types.RankHistoryResponse, error) {
	start := time.Now()
	L := log.Ctx(ctx).With().Str("job", "rankhistory").Logger()

	lease, err := s.Locker.Acquire(ctx, rankHistoryLockKey)
	if errors.Is(err, keylock.ErrBusy) {
		return nil, pgerr.ErrBusy.Msg("rank history is already running")
	} else if err != nil {
		return nil, storageError(ctx, "rankhistory.lock", err)
	}
	defer lease.Release(context.Background())

	// one consistent read of the rating order; concurrent submissions cannot tear it
	var players []*model.Player
	err = s.DB.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, func(ctx context.Context, tx bun.Tx) error {
		players, err = s.Players.ListByRating(ctx, tx)
		return err
	})
	if err != nil {
		return nil, storageError(ctx, "rankhistory.read", err)
	}

	AssignRanks(players)

	err = s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.Players.UpdateRanks(ctx, tx, players)
	})
	if err != nil {
		return nil, storageError(ctx, "rankhistory.write", err)
	}

	took := time.Since(start)
	observability.WorkerRankHistoryDuration.Set(took.Seconds())
	L.Info().
		Str("evt.name", "rankhistory.done").
		Int("players", len(players)).
		Dur("took", took).
		Msg("rank history snapshot taken")

	return &types.RankHistoryResponse{
		Players: len(players),
		TookMs:  took.Milliseconds(),
	}, nil
}
