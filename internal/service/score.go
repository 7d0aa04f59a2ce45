package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/core/aggregate"
	"urlate.dev/backend/internal/core/grading"
	"urlate.dev/backend/internal/core/ledger"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/keylock"
	"urlate.dev/backend/internal/pkg/observability"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/repo"
	"urlate.dev/backend/internal/util/playverifs"
)

type Score struct {
	DB          TxRunner
	Locker      keylock.Locker
	Verifier    PlayVerifier
	PlayRecords PlayRecordStore
	Players     PlayerStore
	Leaderboard LeaderboardInvalidator
	PlayLog     PlayArchiver
	Notifier    EventNotifier

	// NewIndex generates public record indices.
	NewIndex func() string
}

func NewScore(
	db *bun.DB,
	locker keylock.Locker,
	verifiers *playverifs.PlayVerifiers,
	playRecordRepo *repo.PlayRecord,
	playerRepo *repo.Player,
	leaderboard *Leaderboard,
	playLog *PlayLog,
	notifier *Notifier,
) *Score {
	return &Score{
		DB:          db,
		Locker:      locker,
		Verifier:    verifiers,
		PlayRecords: playRecordRepo,
		Players:     playerRepo,
		Leaderboard: leaderboard,
		PlayLog:     playLog,
		Notifier:    notifier,
		NewIndex: func() string {
			return ulid.Make().String()
		},
	}
}

type ledgered struct {
	record     *model.PlayRecord
	ratingDiff int
	place      ledger.FirstPlace
}

// SubmitScore grades play, records it and folds it into the player's statistics.
// Nothing is written when the play fails verification.
func (s *Score) SubmitScore(ctx context.Context, play *types.PlayRecordRequest) (*types.PlayRecordResponse, error) {
	L := log.Ctx(ctx).With().
		Str("player_id", play.PlayerID).
		Str("track_id", play.TrackID).
		Int("difficulty", play.Difficulty).
		Logger()

	if violation := s.Verifier.Verify(ctx, play); violation != nil {
		L.Info().
			Str("evt.name", "score.rejected").
			Str("verifier", violation.Name).
			Str("reason", violation.Message).
			Msg("play rejected")
		observability.PlaySubmissions.WithLabelValues("rejected", "").Inc()
		return nil, violation.Err()
	}

	result, err := grading.Grade(play.Judgement)
	if err != nil {
		return nil, pgerr.ErrInvalidReq.Msg("%s", err)
	}

	rating, err := ledger.Rating(play.Record, result.Accuracy, play.Difficulty)
	if err != nil {
		return nil, pgerr.ErrInvalidReq.Msg("%s", err)
	}

	start := time.Now()
	out, err := s.commit(ctx, play, result, rating)
	if err != nil {
		observability.PlaySubmissions.WithLabelValues("failed", string(result.Rank)).Inc()
		return nil, err
	}
	observability.PlaySubmitDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	observability.PlaySubmissions.WithLabelValues("accepted", string(result.Rank)).Inc()

	L.Info().
		Str("evt.name", "score.accepted").
		Str("index", out.record.RecordIndex).
		Bool("is_best", out.record.IsBest).
		Int("first_place", int(out.place)).
		Int("rating_diff", out.ratingDiff).
		Msg("play accepted")

	// past this point the play is committed; everything below is best effort
	if out.record.IsBest {
		s.Leaderboard.Invalidate(ctx, play.TrackID, play.Difficulty)
	}
	s.PlayLog.Archive(ctx, out.record, play)
	s.Notifier.NotifyRecord(ctx, &types.RecordNotification{
		PlayerID:     play.PlayerID,
		Record:       recordView(out.record),
		IsGlobalBest: out.place == ledger.GlobalBest,
		RatingDiff:   out.ratingDiff,
		AcceptedAt:   out.record.CreatedAt,
	})

	return &types.PlayRecordResponse{
		Rank:         result.Rank,
		Medal:        result.Medal,
		Accuracy:     result.Accuracy,
		IsBest:       out.record.IsBest,
		IsGlobalBest: out.place == ledger.GlobalBest,
		Index:        out.record.RecordIndex,
		RatingDiff:   out.ratingDiff,
	}, nil
}

// commit runs the ledger and aggregate update for play under the player lock in
// one transaction.
func (s *Score) commit(ctx context.Context, play *types.PlayRecordRequest, result grading.Result, rating int) (*ledgered, error) {
	lease, err := acquirePlayer(ctx, s.Locker, play.PlayerID)
	if err != nil {
		return nil, err
	}
	defer lease.Release(context.Background())

	key := model.RecordKey{
		PlayerID:   play.PlayerID,
		TrackID:    play.TrackID,
		Difficulty: play.Difficulty,
	}

	var out *ledgered
	err = s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		player, err := s.Players.GetForUpdate(ctx, tx, play.PlayerID)
		if err != nil {
			return errors.Wrap(err, "load player")
		}
		best, err := s.PlayRecords.GetBest(ctx, tx, key)
		if err != nil {
			return errors.Wrap(err, "load best record")
		}
		ratingBest, err := s.PlayRecords.GetRatingBest(ctx, tx, key)
		if err != nil {
			return errors.Wrap(err, "load rating best")
		}

		d := ledger.Decide(ledger.Input{
			Record:            play.Record,
			Medal:             result.Medal,
			Rating:            rating,
			CurrentBest:       best,
			CurrentRatingBest: ratingBest,
		})

		if d.RetireBest {
			if err := s.PlayRecords.RetireBest(ctx, tx, best.RecordID); err != nil {
				return errors.Wrap(err, "retire best record")
			}
		}
		if d.RetireRating {
			if err := s.PlayRecords.RetireRating(ctx, tx, ratingBest.RecordID); err != nil {
				return errors.Wrap(err, "retire rating best")
			}
		}

		record := &model.PlayRecord{
			RecordIndex: s.NewIndex(),
			PlayerID:    play.PlayerID,
			TrackID:     play.TrackID,
			Difficulty:  play.Difficulty,
			Rank:        result.Rank,
			Record:      play.Record,
			MaxCombo:    play.MaxCombo,
			Medal:       result.Medal,
			MedalPeak:   d.MedalPeak,
			Accuracy:    result.Accuracy,
			Rating:      d.Rating,
			Judgement:   play.Judgement,
			IsBest:      d.IsBest,
		}
		if err := s.PlayRecords.Create(ctx, tx, record); err != nil {
			return errors.Wrap(err, "create play record")
		}

		beats := false
		if d.IsBest {
			if beats, err = s.PlayRecords.OutranksOthers(ctx, tx, key, play.Record); err != nil {
				return errors.Wrap(err, "compare global best")
			}
		}
		place := ledger.Place(d.IsBest, beats)

		stats := aggregate.Apply(player.PlayerStats, aggregate.Input{
			RecordIndex: record.RecordIndex,
			Record:      play.Record,
			Accuracy:    result.Accuracy,
			IsBest:      d.IsBest,
			MedalDelta:  d.MedalDelta,
			RatingDiff:  d.RatingDiff,
			FirstPlace:  place,
		})
		if err := s.Players.UpdateStats(ctx, tx, play.PlayerID, stats); err != nil {
			return errors.Wrap(err, "update player stats")
		}

		out = &ledgered{
			record:     record,
			ratingDiff: d.RatingDiff,
			place:      place,
		}
		return nil
	})
	if err != nil {
		return nil, storageError(ctx, "score.commit", err)
	}

	return out, nil
}
