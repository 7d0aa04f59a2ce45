package types

import (
	"time"

	"gopkg.in/guregu/null.v3"

	"urlate.dev/backend/internal/model"
)

type ProfileResponse struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`

	model.PlayerStats

	OwnedAlias  []int `json:"ownedAlias"`
	OwnedBanner []int `json:"ownedBanner"`

	Rank        null.Int  `json:"rank"`
	RankHistory []int     `json:"rankHistory"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
