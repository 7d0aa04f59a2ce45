package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/keylock"
	"urlate.dev/backend/internal/pkg/pgerr"
)

func acquirePlayer(ctx context.Context, locker keylock.Locker, playerID string) (keylock.Lease, error) {
	lease, err := locker.Acquire(ctx, keylock.PlayerKey(playerID))
	if errors.Is(err, keylock.ErrBusy) {
		log.Ctx(ctx).Warn().
			Str("evt.name", "player.lock.busy").
			Str("player_id", playerID).
			Err(err).
			Msg("player lock is held by another submission")
		return nil, pgerr.ErrBusy
	} else if err != nil {
		return nil, storageError(ctx, "player.lock", err)
	}
	return lease, nil
}

// storageError passes coded errors through and turns anything else into a
// retryable storage failure.
func storageError(ctx context.Context, evt string, err error) error {
	var pe *pgerr.Error
	if errors.As(err, &pe) {
		return pe
	}

	log.Ctx(ctx).Error().
		Str("evt.name", evt+".failed").
		Err(err).
		Msg("storage operation failed")
	return pgerr.ErrStorage
}

func recordView(r *model.PlayRecord) *types.RecordView {
	var v types.RecordView
	if err := copier.Copy(&v, r); err != nil {
		log.Error().Err(err).Msg("failed to copy play record into view")
	}
	return &v
}

func recordViews(rs []*model.PlayRecord) []*types.RecordView {
	views := make([]*types.RecordView, 0, len(rs))
	for _, r := range rs {
		views = append(views, recordView(r))
	}
	return views
}
