// Package aggregate folds a ledgered play into a player's lifetime statistics.
package aggregate

import (
	"urlate.dev/backend/internal/core/grading"
	"urlate.dev/backend/internal/core/ledger"
	"urlate.dev/backend/internal/model"
)

type Input struct {
	RecordIndex string
	Record      int64
	Accuracy    float64
	IsBest      bool
	MedalDelta  int
	RatingDiff  int
	FirstPlace  ledger.FirstPlace
}

// Apply returns the statistics after in. s is not modified.
func Apply(s model.PlayerStats, in Input) model.PlayerStats {
	next := s

	if in.IsBest {
		delta := in.MedalDelta
		if delta >= grading.TierPerfect {
			next.AP++
			delta -= grading.TierPerfect
		}
		if delta >= grading.TierCombo {
			next.FC++
			delta -= grading.TierCombo
		}
		if delta >= grading.TierClear {
			next.Clear++
		}
	}

	next.Rating += int64(in.RatingDiff)
	next.ScoreSum += in.Record
	next.Accuracy = grading.Round((s.Accuracy*float64(s.Playtime)+in.Accuracy)/float64(s.Playtime+1), 2)
	next.Playtime = s.Playtime + 1

	recent := make([]string, 0, model.RecentPlayLimit)
	recent = append(recent, in.RecordIndex)
	for _, idx := range s.RecentPlay {
		if len(recent) == model.RecentPlayLimit {
			break
		}
		recent = append(recent, idx)
	}
	next.RecentPlay = recent

	if in.FirstPlace == ledger.GlobalBest {
		next.FirstPlaceCount++
	}

	return next
}
