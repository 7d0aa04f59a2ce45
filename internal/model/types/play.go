package types

import (
	"time"

	"urlate.dev/backend/internal/core/grading"
)

// PlayRecordRequest is one submitted play. PlayerID comes from the gateway header.
type PlayRecordRequest struct {
	PlayerID string `json:"-"`

	TrackID    string            `json:"trackId" validate:"required,urlateid"`
	Difficulty int               `json:"difficulty" validate:"gte=0,lte=100"`
	Judgement  grading.Judgement `json:"judgement"`
	Record     int64             `json:"record" validate:"gte=0,lte=100000000"`
	MaxCombo   int               `json:"maxCombo" validate:"gte=0"`

	// claimed grade, cross-checked against the judgements
	Rank     string  `json:"rank" validate:"required,oneof=SS S A B C F"`
	Accuracy float64 `json:"accuracy" validate:"gte=0,lte=100"`

	ClientVersion string `json:"clientVersion,omitempty" validate:"omitempty,lte=32,semverprefixed"`
	Platform      string `json:"platform,omitempty" validate:"omitempty,lte=32"`
}

type PlayRecordResponse struct {
	Rank         grading.Rank  `json:"rank"`
	Medal        grading.Medal `json:"medal"`
	Accuracy     float64       `json:"accuracy"`
	IsBest       bool          `json:"isBest"`
	IsGlobalBest bool          `json:"isGlobalBest"`
	Index        string        `json:"index"`
	RatingDiff   int           `json:"ratingDiff"`
}

// RecordView is the public shape of a stored play.
type RecordView struct {
	RecordIndex string        `json:"index"`
	PlayerID    string        `json:"playerId"`
	TrackID     string        `json:"trackId"`
	Difficulty  int           `json:"difficulty"`
	Rank        grading.Rank  `json:"rank"`
	Record      int64         `json:"record"`
	MaxCombo    int           `json:"maxCombo"`
	Medal       grading.Medal `json:"medal"`
	Accuracy    float64       `json:"accuracy"`
	Rating      int           `json:"rating"`
	IsBest      bool          `json:"isBest"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type LeaderboardQuery struct {
	Order string `query:"order" validate:"omitempty,leaderboardorder"`
	Sort  string `query:"sort" validate:"omitempty,caseinsensitiveoneof=asc desc"`
}

type LeaderboardResponse struct {
	Records []*RecordView `json:"records"`
	// Position is the requester's 1-based position, 0 when absent.
	Position int `json:"position"`
}
