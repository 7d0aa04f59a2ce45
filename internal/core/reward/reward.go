// Package reward turns evaluated achievements into newly unlocked ones and
// applies their rewards to a player's achievement state.
package reward

import (
	"github.com/samber/lo"

	"urlate.dev/backend/internal/core/achievement"
	"urlate.dev/backend/internal/model"
)

// Catalog is a read-only view over achievement definitions.
type Catalog interface {
	Achievement(idx achievement.Index) (*model.Achievement, bool)
}

type Outcome struct {
	// Unlocked holds the definitions unlocked by this dispatch, in evaluation order.
	Unlocked []*model.Achievement
	State    model.AchievementState
	// Missing lists evaluated indices without a catalog definition. They are not unlocked.
	Missing []achievement.Index
}

func (o Outcome) Empty() bool {
	return len(o.Unlocked) == 0
}

// Dispatch computes the state after unlocking every evaluated achievement not yet
// in state. When nothing is new the returned state equals the input.
func Dispatch(state model.AchievementState, evaluated []achievement.Index, c achievement.Context, cat Catalog) Outcome {
	var out Outcome

	for _, idx := range lo.Uniq(evaluated) {
		if state.HasUnlocked(int(idx)) {
			continue
		}
		def, ok := cat.Achievement(idx)
		if !ok {
			out.Missing = append(out.Missing, idx)
			continue
		}
		out.Unlocked = append(out.Unlocked, def)
	}

	if out.Empty() {
		out.State = state
		return out
	}

	next := state.Clone()
	for _, def := range out.Unlocked {
		next.Unlocked = append(next.Unlocked, def.AchievementIndex)

		for _, r := range def.Rewards {
			switch r.Kind {
			case model.RewardKindAlias:
				if c != achievement.ContextRank {
					next.OwnedAlias = addUnique(next.OwnedAlias, r.Value)
				}
			case model.RewardKindBanner:
				next.OwnedBanner = addUnique(next.OwnedBanner, r.Value)
			}
		}
	}

	if c == achievement.ContextRank {
		next.OwnedAlias = lo.Without(next.OwnedAlias, rankAliases(cat)...)
		if tier, ok := highestTier(evaluated); ok {
			if def, ok := cat.Achievement(tier); ok {
				next.OwnedAlias = append(next.OwnedAlias, aliasesOf(def)...)
			}
		}
	}

	out.State = next
	return out
}

func addUnique(s []int, v int) []int {
	if lo.Contains(s, v) {
		return s
	}
	return append(s, v)
}

func aliasesOf(def *model.Achievement) []int {
	var aliases []int
	for _, r := range def.Rewards {
		if r.Kind == model.RewardKindAlias {
			aliases = append(aliases, r.Value)
		}
	}
	return aliases
}

func rankAliases(cat Catalog) []int {
	var aliases []int
	for _, tier := range achievement.RankTiers {
		if def, ok := cat.Achievement(tier); ok {
			aliases = append(aliases, aliasesOf(def)...)
		}
	}
	return aliases
}

func highestTier(evaluated []achievement.Index) (achievement.Index, bool) {
	for _, tier := range achievement.RankTiers {
		if lo.Contains(evaluated, tier) {
			return tier, true
		}
	}
	return 0, false
}
