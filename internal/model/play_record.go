package model

import (
	"time"

	"github.com/uptrace/bun"

	"urlate.dev/backend/internal/core/grading"
)

// PlayRecord is one accepted play. Rows are never deleted; at most one row per
// RecordKey has IsBest set, and at most one row per RecordKey has a non-zero Rating.
type PlayRecord struct {
	bun.BaseModel `bun:"play_records,alias:pr"`

	RecordID    int64             `bun:",pk,autoincrement" json:"-"`
	RecordIndex string            `bun:",unique" json:"index"`
	PlayerID    string            `json:"playerId"`
	TrackID     string            `json:"trackId"`
	Difficulty  int               `json:"difficulty"`
	Rank        grading.Rank      `json:"rank"`
	Record      int64             `json:"record"`
	MaxCombo    int               `json:"maxCombo"`
	Medal       grading.Medal     `json:"medal"`
	MedalPeak   grading.Medal     `json:"-"`
	Accuracy    float64           `json:"accuracy"`
	Rating      int               `json:"rating"`
	Judgement   grading.Judgement `bun:"type:jsonb" json:"judgement"`
	IsBest      bool              `json:"isBest"`
	CreatedAt   time.Time         `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}

type RecordKey struct {
	PlayerID   string
	TrackID    string
	Difficulty int
}
