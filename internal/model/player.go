package model

import (
	"time"

	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

const (
	RecentPlayLimit  = 10
	RankHistoryLimit = 30
)

type Player struct {
	bun.BaseModel `bun:"players,alias:p"`

	PlayerID string `bun:",pk" json:"playerId"`
	Nickname string `json:"nickname"`

	PlayerStats
	AchievementState

	// Rank is the global position by rating as of the last rank-history snapshot.
	Rank        null.Int  `json:"rank"`
	RankHistory []int     `bun:"type:jsonb" json:"rankHistory"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// PlayerStats are the lifetime aggregates folded from every graded play.
type PlayerStats struct {
	Rating          int64    `json:"rating"`
	ScoreSum        int64    `json:"scoreSum"`
	Accuracy        float64  `json:"accuracy"`
	Playtime        int      `json:"playtime"`
	RecentPlay      []string `bun:"type:jsonb" json:"recentPlay"`
	AP              int      `bun:"ap" json:"ap"`
	FC              int      `bun:"fc" json:"fc"`
	Clear           int      `json:"clear"`
	FirstPlaceCount int      `json:"firstPlaceCount"`
}

type AchievementState struct {
	Unlocked    []int `bun:"type:jsonb" json:"unlocked"`
	OwnedAlias  []int `bun:"type:jsonb" json:"ownedAlias"`
	OwnedBanner []int `bun:"type:jsonb" json:"ownedBanner"`
}

func (s AchievementState) HasUnlocked(index int) bool {
	return lo.Contains(s.Unlocked, index)
}

// Clone returns a copy whose slices do not alias s.
func (s AchievementState) Clone() AchievementState {
	return AchievementState{
		Unlocked:    append([]int{}, s.Unlocked...),
		OwnedAlias:  append([]int{}, s.OwnedAlias...),
		OwnedBanner: append([]int{}, s.OwnedBanner...),
	}
}

// PushRank appends a rank snapshot, keeping the most recent RankHistoryLimit entries.
func (p *Player) PushRank(rank int) {
	p.Rank = null.IntFrom(int64(rank))
	p.RankHistory = append(p.RankHistory, rank)
	if len(p.RankHistory) > RankHistoryLimit {
		p.RankHistory = p.RankHistory[len(p.RankHistory)-RankHistoryLimit:]
	}
}
