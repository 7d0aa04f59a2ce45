package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/core/achievement"
	"urlate.dev/backend/internal/core/reward"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/keylock"
	"urlate.dev/backend/internal/pkg/observability"
	"urlate.dev/backend/internal/repo"
)

type Achievement struct {
	DB           TxRunner
	Locker       keylock.Locker
	Registry     *achievement.Registry
	Catalog      reward.Catalog
	Players      PlayerStore
	EarnedCounts EarnedCounter
	Notifier     EventNotifier
}

func NewAchievement(
	db *bun.DB,
	locker keylock.Locker,
	catalog *Catalog,
	playerRepo *repo.Player,
	achievementRepo *repo.Achievement,
	notifier *Notifier,
) *Achievement {
	return &Achievement{
		DB:           db,
		Locker:       locker,
		Registry:     achievement.NewRegistry(),
		Catalog:      catalog,
		Players:      playerRepo,
		EarnedCounts: achievementRepo,
		Notifier:     notifier,
	}
}

// ReportContext evaluates a context event for playerID and unlocks every
// achievement it newly satisfies. It returns the newly unlocked definitions,
// which is empty when nothing new was earned.
func (s *Achievement) ReportContext(ctx context.Context, playerID string, contextName string, payload []byte) ([]*model.Achievement, error) {
	c := achievement.Context(contextName)

	evaluated := s.Registry.Evaluate(ctx, c, payload)
	if len(evaluated) == 0 {
		return []*model.Achievement{}, nil
	}

	unlocked, err := s.unlock(ctx, playerID, c, evaluated)
	if err != nil {
		return nil, err
	}
	if len(unlocked) == 0 {
		return []*model.Achievement{}, nil
	}

	observability.AchievementsUnlocked.WithLabelValues(string(c)).Add(float64(len(unlocked)))
	log.Ctx(ctx).Info().
		Str("evt.name", "achievement.unlocked").
		Str("player_id", playerID).
		Str("context", string(c)).
		Ints("indices", lo.Map(unlocked, func(a *model.Achievement, _ int) int { return a.AchievementIndex })).
		Msg("achievements unlocked")

	s.Notifier.NotifyAchievements(ctx, &types.AchievementNotification{
		PlayerID:     playerID,
		Context:      string(c),
		Achievements: unlocked,
		UnlockedAt:   time.Now(),
	})

	return unlocked, nil
}

func (s *Achievement) unlock(ctx context.Context, playerID string, c achievement.Context, evaluated []achievement.Index) ([]*model.Achievement, error) {
	lease, err := acquirePlayer(ctx, s.Locker, playerID)
	if err != nil {
		return nil, err
	}
	defer lease.Release(context.Background())

	var unlocked []*model.Achievement
	err = s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.Players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return errors.Wrap(err, "load player")
		}

		out := reward.Dispatch(player.AchievementState, evaluated, c, s.Catalog)
		if len(out.Missing) > 0 {
			log.Ctx(ctx).Warn().
				Str("evt.name", "achievement.definition.missing").
				Interface("indices", out.Missing).
				Msg("evaluated achievements have no catalog definition")
		}
		if out.Empty() {
			return nil
		}

		indices := lo.Map(out.Unlocked, func(a *model.Achievement, _ int) int { return a.AchievementIndex })
		if err := s.EarnedCounts.IncrementEarnedCount(ctx, tx, indices); err != nil {
			return errors.Wrap(err, "increment earned count")
		}
		if err := s.Players.UpdateAchievementState(ctx, tx, playerID, out.State); err != nil {
			return errors.Wrap(err, "update achievement state")
		}

		unlocked = out.Unlocked
		return nil
	})
	if err != nil {
		return nil, storageError(ctx, "achievement.unlock", err)
	}

	return unlocked, nil
}
