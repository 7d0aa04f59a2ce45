package playverifs

import (
	"context"

	"urlate.dev/backend/internal/core/grading"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/pgerr"
)

// ClaimVerifier rejects plays whose claimed rank or accuracy disagree with the
// grade derived from their judgements.
type ClaimVerifier struct{}

// ensure ClaimVerifier conforms to Verifier
var _ Verifier = (*ClaimVerifier)(nil)

func NewClaimVerifier() *ClaimVerifier {
	return &ClaimVerifier{}
}

func (c *ClaimVerifier) Name() string {
	return "claim"
}

func (c *ClaimVerifier) Verify(ctx context.Context, play *types.PlayRecordRequest) *Rejection {
	result, err := grading.Grade(play.Judgement)
	if err != nil {
		return &Rejection{
			Code:    pgerr.ErrInvalidReq,
			Message: err.Error(),
		}
	}

	if err := grading.Verify(play.Rank, play.Accuracy, result); err != nil {
		return &Rejection{
			Code:    pgerr.ErrIntegrity,
			Message: err.Error(),
		}
	}

	return nil
}
