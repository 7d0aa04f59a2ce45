package playverifs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/observability"
)

var tracer = otel.Tracer("playverifs")

type Verifier interface {
	Name() string
	Verify(ctx context.Context, play *types.PlayRecordRequest) *Rejection
}

type PlayVerifiers []Verifier

func NewPlayVerifiers(judgementVerifier *JudgementVerifier, claimVerifier *ClaimVerifier, rejectRuleVerifier *RejectRuleVerifier) *PlayVerifiers {
	return &PlayVerifiers{
		judgementVerifier,
		claimVerifier,
		rejectRuleVerifier,
	}
}

// Verify runs every verifier in order and stops at the first rejection.
func (verifiers PlayVerifiers) Verify(ctx context.Context, play *types.PlayRecordRequest) *Violation {
	for _, pipe := range verifiers {
		start := time.Now()

		name := pipe.Name()

		ctx, span := tracer.
			Start(ctx, "playverifs.verifier."+name)

		rejection := pipe.Verify(ctx, play)
		if rejection != nil {
			span.SetAttributes(attribute.String("rejection.code", rejection.Code.ErrorCode))
			span.SetStatus(codes.Error, rejection.Message)
		}
		span.End()

		observability.PlayVerifyDuration.
			WithLabelValues(name).
			Observe(time.Since(start).Seconds())

		if rejection != nil {
			return &Violation{
				Name:      name,
				Rejection: *rejection,
			}
		}
	}

	return nil
}
