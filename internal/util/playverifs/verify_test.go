package playverifs

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlate.dev/backend/internal/core/grading"
	"urlate.dev/backend/internal/model"
	"urlate.dev/backend/internal/model/types"
	"urlate.dev/backend/internal/pkg/pgerr"
)

type patternMap map[string]*model.Pattern

func (m patternMap) Pattern(trackID string, difficulty int) (*model.Pattern, bool) {
	p, ok := m[trackID]
	if !ok || p.Difficulty != difficulty {
		return nil, false
	}
	return p, true
}

type ruleList struct {
	rules []*model.RejectRule
	err   error
}

func (r ruleList) GetAllActiveRejectRules(context.Context) ([]*model.RejectRule, error) {
	return r.rules, r.err
}

var patterns = patternMap{
	"kyoukai": {TrackID: "kyoukai", Difficulty: 12, Level: 12, Notes: 20},
}

func play() *types.PlayRecordRequest {
	return &types.PlayRecordRequest{
		PlayerID:      "p1",
		TrackID:       "kyoukai",
		Difficulty:    12,
		Judgement:     grading.Judgement{Perfect: 10},
		Record:        100_000_000,
		MaxCombo:      10,
		Rank:          "SS",
		Accuracy:      100,
		ClientVersion: "v1.1.0",
	}
}

func TestJudgementVerifier(t *testing.T) {
	v := NewJudgementVerifier(patterns)

	tests := []struct {
		name   string
		mutate func(p *types.PlayRecordRequest)
		ok     bool
	}{
		{"valid", func(p *types.PlayRecordRequest) {}, true},
		{"negative count", func(p *types.PlayRecordRequest) { p.Judgement.Miss = -1 }, false},
		{"empty play", func(p *types.PlayRecordRequest) { p.Judgement = grading.Judgement{}; p.MaxCombo = 0 }, false},
		{"count above limit", func(p *types.PlayRecordRequest) {
			p.Judgement = grading.Judgement{Perfect: grading.MaxJudgements + 1}
		}, false},
		{"counts wrapping the total", func(p *types.PlayRecordRequest) {
			p.Judgement = grading.Judgement{Perfect: math.MaxInt, Great: math.MaxInt, Good: 3}
			p.MaxCombo = 1
		}, false},
		{"combo above total", func(p *types.PlayRecordRequest) { p.MaxCombo = 11 }, false},
		{"unknown track", func(p *types.PlayRecordRequest) { p.TrackID = "nope" }, false},
		{"unknown difficulty", func(p *types.PlayRecordRequest) { p.Difficulty = 3 }, false},
		{"combo above notes", func(p *types.PlayRecordRequest) {
			p.Judgement = grading.Judgement{Perfect: 30}
			p.MaxCombo = 21
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := play()
			tt.mutate(p)
			rejection := v.Verify(context.Background(), p)
			if tt.ok {
				assert.Nil(t, rejection)
				return
			}
			require.NotNil(t, rejection)
			assert.True(t, errors.Is(rejection.Code, pgerr.ErrInvalidReq))
		})
	}
}

func TestClaimVerifier(t *testing.T) {
	v := NewClaimVerifier()

	assert.Nil(t, v.Verify(context.Background(), play()))

	p := play()
	p.Rank = "S"
	rejection := v.Verify(context.Background(), p)
	require.NotNil(t, rejection)
	assert.True(t, errors.Is(rejection.Code, pgerr.ErrIntegrity))

	p = play()
	p.Accuracy = 99.9
	rejection = v.Verify(context.Background(), p)
	require.NotNil(t, rejection)
	assert.True(t, errors.Is(rejection.Code, pgerr.ErrIntegrity))
}

func TestRejectRuleVerifier(t *testing.T) {
	rules := []*model.RejectRule{
		{RuleID: 1, Expr: `Play.Record >`},
		{RuleID: 2, Expr: `Total`},
		{RuleID: 3, Expr: `SemVerCompare(Play.ClientVersion, "v1.2.0") < 0 && Play.Record == 100000000`},
	}
	v := &RejectRuleVerifier{RejectRuleRepo: ruleList{rules: rules}}

	rejection := v.Verify(context.Background(), play())
	require.NotNil(t, rejection)
	assert.True(t, errors.Is(rejection.Code, pgerr.ErrIntegrity))
	assert.Contains(t, rejection.Message, "rule 3")

	p := play()
	p.ClientVersion = "v1.2.1"
	assert.Nil(t, v.Verify(context.Background(), p))

	broken := &RejectRuleVerifier{RejectRuleRepo: ruleList{err: errors.New("connection refused")}}
	rejection = broken.Verify(context.Background(), play())
	require.NotNil(t, rejection)
	assert.True(t, errors.Is(rejection.Code, pgerr.ErrStorage))
}

type countingVerifier struct {
	name      string
	calls     int
	rejection *Rejection
}

func (c *countingVerifier) Name() string { return c.name }

func (c *countingVerifier) Verify(context.Context, *types.PlayRecordRequest) *Rejection {
	c.calls++
	return c.rejection
}

func TestPlayVerifiersStopAtFirstRejection(t *testing.T) {
	first := &countingVerifier{name: "first"}
	second := &countingVerifier{name: "second", rejection: &Rejection{Code: pgerr.ErrIntegrity, Message: "nope"}}
	third := &countingVerifier{name: "third"}

	violation := PlayVerifiers{first, second, third}.Verify(context.Background(), play())
	require.NotNil(t, violation)
	assert.Equal(t, "second", violation.Name)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)

	err := violation.Err()
	assert.True(t, errors.Is(err, pgerr.ErrIntegrity))
	assert.Equal(t, "second: nope", err.Message)

	assert.Nil(t, PlayVerifiers{first, third}.Verify(context.Background(), play()))
}
