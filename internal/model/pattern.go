package model

import "github.com/uptrace/bun"

// Pattern is the chart of a track at one difficulty tier.
type Pattern struct {
	bun.BaseModel `bun:"patterns,alias:pt"`

	TrackID    string  `bun:",pk" json:"trackId"`
	Difficulty int     `bun:",pk" json:"difficulty"`
	Level      int     `json:"level"`
	Notes      int     `json:"notes"`
	BPM        float64 `bun:"bpm" json:"bpm"`
}
