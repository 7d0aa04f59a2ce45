package types

import (
	"encoding/json"

	"urlate.dev/backend/internal/model"
)

type ReportContextRequest struct {
	Context string          `json:"context" validate:"required,lte=32"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ReportContextResponse struct {
	Unlocked []*model.Achievement `json:"unlocked"`
}
