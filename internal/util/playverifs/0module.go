package playverifs

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("playverifs", fx.Provide(
		NewClaimVerifier,
		NewJudgementVerifier,
		NewRejectRuleVerifier,
		NewPlayVerifiers,
	))
}
