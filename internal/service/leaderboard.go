package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"urlate.dev/backend/internal/app/appconfig"
	"urlate.dev/backend/internal/constant"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/cache"
	"urlate.dev/backend/internal/repo"
)

type LeaderboardSource interface {
	GetLeaderboard(ctx context.Context, trackID string, difficulty int, column string, desc bool, limit int) ([]*model.PlayRecord, error)
	GetPosition(ctx context.Context, trackID string, difficulty int, column string, desc bool, playerID string) (int, error)
}

type Leaderboard struct {
	Records LeaderboardSource
	Cache   *cache.Set[[]*types.RecordView]
	Conf    *appconfig.Config
}

func NewLeaderboard(conf *appconfig.Config, playRecordRepo *repo.PlayRecord, client *redis.Client) *Leaderboard {
	return &Leaderboard{
		Records: playRecordRepo,
		Cache:   cache.NewSet[[]*types.RecordView](client, "leaderboard"),
		Conf:    conf,
	}
}

func leaderboardPrefix(trackID string, difficulty int) string {
	return trackID + "|" + strconv.Itoa(difficulty) + "|"
}

// GetLeaderboard returns the top best records of a (track, difficulty) and the
// position of requester, which may be empty.
func (s *Leaderboard) GetLeaderboard(ctx context.Context, trackID string, difficulty int, query *types.LeaderboardQuery, requester string) (*types.LeaderboardResponse, error) {
	order := strings.ToLower(query.Order)
	if order == "" {
		order = constant.LeaderboardOrderRecord
	}
	column := constant.LeaderboardOrderColumns[order]
	desc := !strings.EqualFold(query.Sort, constant.SortAsc)

	key := leaderboardPrefix(trackID, difficulty) + order + "|" + strconv.FormatBool(desc)

	var views []*types.RecordView
	_, err := s.Cache.MutexGetSet(ctx, key, &views, func(ctx context.Context) ([]*types.RecordView, error) {
		records, err := s.Records.GetLeaderboard(ctx, trackID, difficulty, column, desc, constant.LeaderboardLimit)
		if err != nil {
			return nil, err
		}
		return recordViews(records), nil
	}, s.Conf.LeaderboardCacheTTL)
	if err != nil {
		return nil, storageError(ctx, "leaderboard.get", err)
	}

	resp := &types.LeaderboardResponse{Records: views}
	if requester != "" {
		position, err := s.Records.GetPosition(ctx, trackID, difficulty, column, desc, requester)
		if err != nil {
			return nil, storageError(ctx, "leaderboard.position", err)
		}
		resp.Position = position
	}

	return resp, nil
}

func (s *Leaderboard) Invalidate(ctx context.Context, trackID string, difficulty int) {
	if err := s.Cache.DeletePrefix(ctx, leaderboardPrefix(trackID, difficulty)); err != nil {
		log.Ctx(ctx).Warn().
			Str("evt.name", "leaderboard.invalidate.failed").
			Str("track_id", trackID).
			Int("difficulty", difficulty).
			Err(err).
			Msg("failed to invalidate leaderboard cache")
	}
}
