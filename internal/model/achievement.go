package model

import (
	"github.com/uptrace/bun"
)

type RewardKind string

const (
	RewardKindAlias  RewardKind = "alias"
	RewardKindBanner RewardKind = "banner"
	// RewardKindReward is reserved; rewards of this kind are accepted and ignored.
	RewardKindReward RewardKind = "reward"
)

type Reward struct {
	Kind  RewardKind `json:"kind"`
	Value int        `json:"value"`
}

// Achievement is a static catalog entry. EarnedCount is the only column mutated at
// runtime and is never read back into the in-memory catalog.
type Achievement struct {
	bun.BaseModel `bun:"achievements,alias:a"`

	AchievementIndex int               `bun:",pk" json:"index"`
	Context          string            `json:"context"`
	Title            map[string]string `bun:"type:jsonb" json:"title"`
	Detail           map[string]string `bun:"type:jsonb" json:"detail"`
	Rewards          []Reward          `bun:"type:jsonb" json:"rewards"`
	EarnedCount      int64             `json:"-"`
}
