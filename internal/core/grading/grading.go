// Package grading derives accuracy, rank letter and medal tier from the judgement
// counts of a single play.
package grading

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrEmptyPlay         = errors.New("play has no judgements")
	ErrNegativeJudgement = errors.New("judgement counts must not be negative")
	ErrJudgementOverflow = errors.New("judgement count exceeds the per-play limit")
	ErrIntegrity         = errors.New("claimed grade does not match derived grade")
)

type Rank string

const (
	RankSS Rank = "SS"
	RankS  Rank = "S"
	RankA  Rank = "A"
	RankB  Rank = "B"
	RankC  Rank = "C"
	RankF  Rank = "F"
)

// Medal is a set of tier bits: clear (1), no-miss (2) and perfect (4).
// A full combo is a cleared no-miss play.
type Medal int

const (
	MedalNone       Medal = 0
	MedalClear      Medal = 1
	MedalNoMiss     Medal = 2
	MedalFullCombo  Medal = 3
	MedalAllPerfect Medal = 7
)

// Tier weights used when decomposing a medal increase into lifetime counters.
const (
	TierPerfect = 4
	TierCombo   = 2
	TierClear   = 1
)

// MaxJudgements bounds every single judgement count so totals and weighted sums
// never overflow.
const MaxJudgements = 1 << 20

type Judgement struct {
	Perfect int `json:"perfect"`
	Great   int `json:"great"`
	Good    int `json:"good"`
	Bad     int `json:"bad"`
	Miss    int `json:"miss"`
	Bullet  int `json:"bullet"`
}

func (j Judgement) Total() int {
	return j.Perfect + j.Great + j.Good + j.Bad + j.Miss + j.Bullet
}

// Clean reports whether the play has no bad, miss or bullet judgement.
func (j Judgement) Clean() bool {
	return j.Bad == 0 && j.Miss == 0 && j.Bullet == 0
}

func (j Judgement) counts() [6]int {
	return [6]int{j.Perfect, j.Great, j.Good, j.Bad, j.Miss, j.Bullet}
}

// Check rejects negative counts and counts above MaxJudgements.
func (j Judgement) Check() error {
	for _, n := range j.counts() {
		if n < 0 {
			return ErrNegativeJudgement
		}
		if n > MaxJudgements {
			return ErrJudgementOverflow
		}
	}
	return nil
}

type Result struct {
	Accuracy float64 `json:"accuracy"`
	Rank     Rank    `json:"rank"`
	Medal    Medal   `json:"medal"`
}

func Grade(j Judgement) (Result, error) {
	if err := j.Check(); err != nil {
		return Result{}, err
	}
	total := j.Total()
	if total == 0 {
		return Result{}, ErrEmptyPlay
	}

	accuracy := Accuracy(j)
	rank := rankOf(accuracy, j)

	medal := MedalClear
	if rank == RankF {
		medal = MedalNone
	}
	if j.Clean() {
		if medal == MedalNone {
			medal = MedalNoMiss
		} else {
			medal = MedalFullCombo
		}
		if j.Good == 0 && j.Great == 0 && j.Perfect != 0 {
			medal = MedalAllPerfect
		}
	}

	return Result{
		Accuracy: accuracy,
		Rank:     rank,
		Medal:    medal,
	}, nil
}

// Accuracy weights perfect/great/good/bad as 10/7/5/3 tenths and rounds the
// percentage to one decimal. Callers must reject empty plays first.
func Accuracy(j Judgement) float64 {
	weighted := 10*j.Perfect + 7*j.Great + 5*j.Good + 3*j.Bad
	return Round(float64(weighted)*10/float64(j.Total()), 1)
}

func rankOf(accuracy float64, j Judgement) Rank {
	switch {
	case accuracy >= 98 && j.Clean():
		return RankSS
	case accuracy >= 95:
		return RankS
	case accuracy >= 90:
		return RankA
	case accuracy >= 80:
		return RankB
	case accuracy >= 70:
		return RankC
	default:
		return RankF
	}
}

// Verify compares a client-claimed grade with the derived one. Claimed accuracy
// is compared at one-decimal precision without rounding it first.
func Verify(claimedRank string, claimedAccuracy float64, r Result) error {
	if Rank(claimedRank) != r.Rank {
		return errors.Wrapf(ErrIntegrity, "rank: claimed %q, derived %q", claimedRank, r.Rank)
	}
	if math.Abs(claimedAccuracy-r.Accuracy) > 1e-6 {
		return errors.Wrapf(ErrIntegrity, "accuracy: claimed %v, derived %v", claimedAccuracy, r.Accuracy)
	}
	return nil
}

func Round(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}
