package achievement

import (
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"urlate.dev/backend/internal/core/grading"
)

type judgeEvent struct {
	grading.Judgement
	Medal grading.Medal
}

var judgeFields = []string{"perfect", "great", "good", "bad", "miss", "bullet"}

func parseJudge(payload []byte) (judgeEvent, error) {
	if !gjson.ValidBytes(payload) {
		return judgeEvent{}, errors.Wrap(ErrInvalidPayload, "payload is not json")
	}

	results := gjson.GetManyBytes(payload, judgeFields...)
	counts := make([]int, len(judgeFields))
	for i, res := range results {
		if res.Type != gjson.Number {
			return judgeEvent{}, errors.Wrapf(ErrInvalidPayload, "%s: expected a number", judgeFields[i])
		}
		if res.Num != math.Trunc(res.Num) || math.Abs(res.Num) > grading.MaxJudgements {
			return judgeEvent{}, errors.Wrapf(ErrInvalidPayload, "%s: expected a count, got %s", judgeFields[i], res.Raw)
		}
		counts[i] = int(res.Int())
	}

	j := grading.Judgement{
		Perfect: counts[0],
		Great:   counts[1],
		Good:    counts[2],
		Bad:     counts[3],
		Miss:    counts[4],
		Bullet:  counts[5],
	}
	r, err := grading.Grade(j)
	if err != nil {
		return judgeEvent{}, errors.Wrap(ErrInvalidPayload, err.Error())
	}

	return judgeEvent{Judgement: j, Medal: r.Medal}, nil
}

var judgePredicates = []Predicate[judgeEvent]{
	{
		Index: AllPerfect,
		Name:  "all_perfect",
		Match: func(e judgeEvent) bool { return e.Medal == grading.MedalAllPerfect },
	},
	{
		Index: FullCombo,
		Name:  "full_combo",
		Match: func(e judgeEvent) bool { return e.Medal >= grading.MedalNoMiss },
	},
	{
		Index: OneGood,
		Name:  "one_good",
		Match: func(e judgeEvent) bool {
			return e.Medal >= grading.MedalNoMiss && e.Good == 1 && e.Great == 0
		},
	},
	{
		Index: OneGreat,
		Name:  "one_great",
		Match: func(e judgeEvent) bool {
			return e.Medal >= grading.MedalNoMiss && e.Great == 1 && e.Good == 0
		},
	},
	{
		Index: AllOne,
		Name:  "all_one",
		Match: func(e judgeEvent) bool {
			return e.Perfect == 1 && e.Great == 1 && e.Good == 1 && e.Bad == 1 && e.Miss == 1 && e.Bullet == 1
		},
	},
	{
		Index: OneMiss,
		Name:  "one_miss",
		Match: func(e judgeEvent) bool {
			oneOf := (e.Miss == 1 && e.Bullet == 0) || (e.Miss == 0 && e.Bullet == 1)
			return oneOf && e.Bad == 0 && e.Good == 0 && e.Great == 0
		},
	},
	{
		Index: OneBad,
		Name:  "one_bad",
		Match: func(e judgeEvent) bool {
			return e.Bad == 1 && e.Miss == 0 && e.Bullet == 0 && e.Good == 0 && e.Great == 0
		},
	},
}
