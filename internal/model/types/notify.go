package types

import (
	"time"

	"urlate.dev/backend/internal/model"
)

// RecordNotification is published once per accepted play.
type RecordNotification struct {
	PlayerID     string      `json:"playerId"`
	Record       *RecordView `json:"record"`
	IsGlobalBest bool        `json:"isGlobalBest"`
	RatingDiff   int         `json:"ratingDiff"`
	AcceptedAt   time.Time   `json:"acceptedAt"`
}

// AchievementNotification is published once per non-empty unlock batch.
type AchievementNotification struct {
	PlayerID     string               `json:"playerId"`
	Context      string               `json:"context"`
	Achievements []*model.Achievement `json:"achievements"`
	UnlockedAt   time.Time            `json:"unlockedAt"`
}

// NotificationEnvelope is the body POSTed to the notification sink.
type NotificationEnvelope struct {
	Secret string `json:"secret"`
	Data   any    `json:"data"`
}

type RankHistoryResponse struct {
	Players int   `json:"players"`
	TookMs  int64 `json:"tookMs"`
}
