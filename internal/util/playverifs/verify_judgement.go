package playverifs

import (
	"context"
	"fmt"

	"urlate.dev/backend/internal/core/grading"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/pgerr"
)

// PatternLookup resolves the chart a play was made on.
type PatternLookup interface {
	Pattern(trackID string, difficulty int) (*model.Pattern, bool)
}

type JudgementVerifier struct {
	Patterns PatternLookup
}

// ensure JudgementVerifier conforms to Verifier
var _ Verifier = (*JudgementVerifier)(nil)

func NewJudgementVerifier(patterns PatternLookup) *JudgementVerifier {
	return &JudgementVerifier{
		Patterns: patterns,
	}
}

func (j *JudgementVerifier) Name() string {
	return "judgement"
}

func (j *JudgementVerifier) Verify(ctx context.Context, play *types.PlayRecordRequest) *Rejection {
	reject := func(format string, args ...any) *Rejection {
		return &Rejection{
			Code:    pgerr.ErrInvalidReq,
			Message: fmt.Sprintf(format, args...),
		}
	}

	jd := play.Judgement
	counts := []struct {
		name string
		n    int
	}{
		{"perfect", jd.Perfect},
		{"great", jd.Great},
		{"good", jd.Good},
		{"bad", jd.Bad},
		{"miss", jd.Miss},
		{"bullet", jd.Bullet},
	}
	for _, c := range counts {
		if c.n < 0 {
			return reject("judgement %s is negative: %d", c.name, c.n)
		}
		if c.n > grading.MaxJudgements {
			return reject("judgement %s exceeds %d: %d", c.name, grading.MaxJudgements, c.n)
		}
	}

	total := jd.Total()
	if total == 0 {
		return reject("play has no judgements")
	}
	if play.MaxCombo > total {
		return reject("max combo %d exceeds judgement total %d", play.MaxCombo, total)
	}

	pattern, ok := j.Patterns.Pattern(play.TrackID, play.Difficulty)
	if !ok {
		return reject("unknown pattern: track %s, difficulty %d", play.TrackID, play.Difficulty)
	}
	if pattern.Notes > 0 && play.MaxCombo > pattern.Notes {
		return reject("max combo %d exceeds the %d notes of the pattern", play.MaxCombo, pattern.Notes)
	}

	return nil
}
