package playverifs

import (
	"context"
	"fmt"
	"time"

	"github.com/antonmedv/expr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"

	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/pgerr"
	"urlate.dev/backend/internal/repo"
)

var ErrExprMatched = errors.New("reject expr matched")

type RejectRuleSource interface {
	GetAllActiveRejectRules(ctx context.Context) ([]*model.RejectRule, error)
}

type RejectRuleVerifier struct {
	RejectRuleRepo RejectRuleSource
}

// ensure RejectRuleVerifier conforms to Verifier
var _ Verifier = (*RejectRuleVerifier)(nil)

func NewRejectRuleVerifier(rejectRuleRepo *repo.RejectRule) *RejectRuleVerifier {
	return &RejectRuleVerifier{
		RejectRuleRepo: rejectRuleRepo,
	}
}

func (d *RejectRuleVerifier) Name() string {
	return "reject_rule"
}

// PlayContext is the environment reject rule expressions are evaluated in.
type PlayContext struct {
	Play  *types.PlayRecordRequest
	Total int
}

func (PlayContext) SemVerCompare(a, b string) int {
	return semver.Compare(a, b)
}

func (d *RejectRuleVerifier) Verify(ctx context.Context, play *types.PlayRecordRequest) *Rejection {
	rejectRules, err := d.RejectRuleRepo.GetAllActiveRejectRules(ctx)
	if err != nil {
		return &Rejection{
			Code:    pgerr.ErrStorage,
			Message: err.Error(),
		}
	}

	playContext := PlayContext{
		Play:  play,
		Total: play.Judgement.Total(),
	}

	start := time.Now()
	defer func() {
		if l := log.Trace(); l.Enabled() {
			l.Dur("duration", time.Since(start)).
				Int("rules", len(rejectRules)).
				Msg("reject rule(s) evaluated")
		}
	}()

	for _, rejectRule := range rejectRules {
		result, err := expr.Eval(rejectRule.Expr, playContext)
		if err != nil {
			log.Error().
				Str("evt.name", "verifier.reject_rule.expr_eval_error").
				Interface("context", playContext).
				Int("reject_rule.rule_id", rejectRule.RuleID).
				Err(err).
				Msgf("failed to evaluate reject rule %d", rejectRule.RuleID)
			continue
		}

		if d.resultHandler(result) {
			log.Warn().
				Str("evt.name", "verifier.reject_rule.rejected").
				Interface("context", playContext).
				Int("reject_rule.rule_id", rejectRule.RuleID).
				Msg("reject rule matched, rejecting play")

			return &Rejection{
				Code:    pgerr.ErrIntegrity,
				Message: errors.Wrap(ErrExprMatched, fmt.Sprintf("rule %d", rejectRule.RuleID)).Error(),
			}
		}
	}

	return nil
}

func (d *RejectRuleVerifier) resultHandler(result any) bool {
	switch r := result.(type) {
	case bool:
		return r
	default:
		log.Error().Msgf("reject rule expr result type %T is not supported", result)
		return false
	}
}
