package achievement

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// RankTiers lists the leaderboard tiers from highest to lowest.
var RankTiers = []Index{Rank1, Rank10, Rank50, Rank100}

type rankEvent map[Index]bool

var rankFlags = map[Index]string{
	Rank1:   "rank1",
	Rank10:  "rank10",
	Rank50:  "rank50",
	Rank100: "rank100",
}

func parseRank(payload []byte) (rankEvent, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errors.Wrap(ErrInvalidPayload, "payload is not json")
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, errors.Wrap(ErrInvalidPayload, "payload is not an object")
	}

	e := rankEvent{}
	for idx, key := range rankFlags {
		v := root.Get(key)
		switch v.Type {
		case gjson.Null:
			// absent flags are unset
		case gjson.True, gjson.False:
			e[idx] = v.Bool()
		default:
			return nil, errors.Wrapf(ErrInvalidPayload, "%s: expected a boolean", key)
		}
	}
	return e, nil
}

func rankPredicate(idx Index) Predicate[rankEvent] {
	return Predicate[rankEvent]{
		Index: idx,
		Name:  rankFlags[idx],
		Match: func(e rankEvent) bool { return e[idx] },
	}
}

var rankPredicates = []Predicate[rankEvent]{
	rankPredicate(Rank1),
	rankPredicate(Rank10),
	rankPredicate(Rank50),
	rankPredicate(Rank100),
}
