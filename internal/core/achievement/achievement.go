// Package achievement maps an event context and its payload to the set of
// achievements the event satisfies. Evaluation never looks at what a player
// already owns.
package achievement

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Context string

const (
	ContextTutorialClear Context = "TUTORIAL_CLEAR"
	ContextJudge         Context = "JUDGE"
	ContextRank          Context = "RANK"
)

type Index int

const (
	TutorialClear Index = iota
	AllPerfect
	FullCombo
	OneGood
	OneGreat
	AllOne
	OneMiss
	OneBad
	Rank1
	Rank10
	Rank50
	Rank100
)

// ErrInvalidPayload marks a payload that is missing or does not have the shape a
// context requires.
var ErrInvalidPayload = errors.New("invalid achievement payload")

// Predicate is one named condition of a context.
type Predicate[E any] struct {
	Index Index
	Name  string
	Match func(E) bool
}

type evaluator func(payload []byte) ([]Index, error)

// Registry holds the evaluators of every supported context. It is built once
// and read concurrently.
type Registry struct {
	contexts map[Context]evaluator
}

func NewRegistry() *Registry {
	r := &Registry{contexts: map[Context]evaluator{}}
	r.contexts[ContextTutorialClear] = func([]byte) ([]Index, error) {
		return []Index{TutorialClear}, nil
	}
	register(r, ContextJudge, parseJudge, judgePredicates)
	register(r, ContextRank, parseRank, rankPredicates)
	return r
}

func register[E any](r *Registry, c Context, parse func([]byte) (E, error), predicates []Predicate[E]) {
	r.contexts[c] = func(payload []byte) ([]Index, error) {
		event, err := parse(payload)
		if err != nil {
			return nil, err
		}

		matched := []Index{}
		for _, p := range predicates {
			if p.Match(event) {
				matched = append(matched, p.Index)
			}
		}
		return matched, nil
	}
}

// Evaluate returns the achievements satisfied by the event in ascending index
// order. Unknown contexts and malformed payloads yield nothing.
func (r *Registry) Evaluate(ctx context.Context, c Context, payload []byte) []Index {
	eval, ok := r.contexts[c]
	if !ok {
		log.Ctx(ctx).Debug().
			Str("evt.name", "achievement.context.unknown").
			Str("context", string(c)).
			Msg("unknown achievement context")
		return []Index{}
	}

	matched, err := eval(payload)
	if err != nil {
		log.Ctx(ctx).Debug().
			Str("evt.name", "achievement.payload.invalid").
			Str("context", string(c)).
			Err(err).
			Msg("achievement payload rejected")
		return []Index{}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	return matched
}
