// Package ledger decides how a graded play changes the best-record and
// rating-best rows of its (player, track, difficulty) key.
package ledger

import (
	"math"

	"github.com/pkg/errors"

	"urlate.dev/backend/internal/core/grading"
	"urlate.dev/backend/internal/model"
)

// MaxRecord is the highest score a single play can report.
const MaxRecord = 100_000_000

var ErrRatingInput = errors.New("ledger: rating input out of bounds")

// FirstPlace reports where a stored play landed.
type FirstPlace int

const (
	NotBest FirstPlace = iota
	PersonalBest
	GlobalBest
)

type Input struct {
	Record int64
	Medal  grading.Medal
	Rating int

	// CurrentBest is the row with is_best set for the key, nil if the key has none.
	CurrentBest *model.PlayRecord
	// CurrentRatingBest is the row holding the non-zero rating for the key, nil if none.
	CurrentRatingBest *model.PlayRecord
}

type Decision struct {
	IsBest     bool
	RetireBest bool

	// Rating is the value stored on the new row; zero unless it beats the rating best.
	Rating       int
	RetireRating bool
	RatingDiff   int

	MedalPeak  grading.Medal
	MedalDelta int
}

// Rating is round(record / MaxRecord * accuracy * difficulty).
func Rating(record int64, accuracy float64, difficulty int) (int, error) {
	switch {
	case record < 0 || record > MaxRecord:
		return 0, errors.Wrapf(ErrRatingInput, "record %d", record)
	case math.IsNaN(accuracy) || accuracy < 0 || accuracy > 100:
		return 0, errors.Wrapf(ErrRatingInput, "accuracy %v", accuracy)
	case difficulty < 0:
		return 0, errors.Wrapf(ErrRatingInput, "difficulty %d", difficulty)
	}

	return int(math.Round(float64(record) / MaxRecord * accuracy * float64(difficulty))), nil
}

func Decide(in Input) Decision {
	var d Decision

	var prevPeak grading.Medal
	switch {
	case in.CurrentBest == nil:
		d.IsBest = true
	case in.Record > in.CurrentBest.Record:
		d.IsBest = true
		d.RetireBest = true
		prevPeak = in.CurrentBest.MedalPeak
	}

	if d.IsBest {
		// medal tiers are bits; only bits never held by an earlier best count
		d.MedalPeak = prevPeak | in.Medal
		d.MedalDelta = int(d.MedalPeak - prevPeak)
	}

	switch {
	case in.Rating <= 0:
	case in.CurrentRatingBest == nil:
		d.Rating = in.Rating
		d.RatingDiff = in.Rating
	case in.Rating > in.CurrentRatingBest.Rating:
		d.Rating = in.Rating
		d.RetireRating = true
		d.RatingDiff = in.Rating - in.CurrentRatingBest.Rating
	}

	return d
}

// Place folds the personal decision and the global comparison into a FirstPlace.
func Place(isBest bool, beatsEveryoneElse bool) FirstPlace {
	switch {
	case !isBest:
		return NotBest
	case beatsEveryoneElse:
		return GlobalBest
	default:
		return PersonalBest
	}
}
