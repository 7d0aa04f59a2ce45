package grading

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	type testCase struct {
		name   string
		args   Judgement
		expect Result
	}

	testCases := []testCase{
		{
			name:   "all perfect",
			args:   Judgement{Perfect: 10},
			expect: Result{Accuracy: 100, Rank: RankSS, Medal: MedalAllPerfect},
		},
		{
			name:   "full combo with greats",
			args:   Judgement{Perfect: 90, Great: 10},
			expect: Result{Accuracy: 97, Rank: RankS, Medal: MedalFullCombo},
		},
		{
			name:   "ss requires clean play",
			args:   Judgement{Perfect: 999, Miss: 1},
			expect: Result{Accuracy: 99.9, Rank: RankS, Medal: MedalClear},
		},
		{
			name:   "failed but no miss",
			args:   Judgement{Good: 10},
			expect: Result{Accuracy: 50, Rank: RankF, Medal: MedalNoMiss},
		},
		{
			name:   "failed with misses",
			args:   Judgement{Perfect: 1, Miss: 9},
			expect: Result{Accuracy: 10, Rank: RankF, Medal: MedalNone},
		},
		{
			name:   "bullet breaks combo",
			args:   Judgement{Perfect: 50, Bullet: 1},
			expect: Result{Accuracy: 98, Rank: RankS, Medal: MedalClear},
		},
		{
			name:   "bad weighted at three tenths",
			args:   Judgement{Perfect: 7, Bad: 3},
			expect: Result{Accuracy: 79, Rank: RankC, Medal: MedalClear},
		},
		{
			name:   "one of each",
			args:   Judgement{1, 1, 1, 1, 1, 1},
			expect: Result{Accuracy: 41.7, Rank: RankF, Medal: MedalNone},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Grade(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, r)
		})
	}
}

func TestGradeRankThresholdsAreClosed(t *testing.T) {
	// 19 perfect + 1 good = (19 + 0.5) / 20 = 97.5
	r, err := Grade(Judgement{Perfect: 19, Good: 1})
	require.NoError(t, err)
	assert.Equal(t, 97.5, r.Accuracy)
	assert.Equal(t, RankS, r.Rank)

	// 9 perfect + 1 good = 95.0 exactly
	r, err = Grade(Judgement{Perfect: 9, Good: 1})
	require.NoError(t, err)
	assert.Equal(t, 95.0, r.Accuracy)
	assert.Equal(t, RankS, r.Rank)

	// 4 perfect + 1 good = 90.0 exactly
	r, err = Grade(Judgement{Perfect: 4, Good: 1})
	require.NoError(t, err)
	assert.Equal(t, 90.0, r.Accuracy)
	assert.Equal(t, RankA, r.Rank)

	// 3 perfect + 2 good = 80.0
	r, err = Grade(Judgement{Perfect: 3, Good: 2})
	require.NoError(t, err)
	assert.Equal(t, RankB, r.Rank)

	// 7 perfect + 3 miss = 70.0
	r, err = Grade(Judgement{Perfect: 7, Miss: 3})
	require.NoError(t, err)
	assert.Equal(t, 70.0, r.Accuracy)
	assert.Equal(t, RankC, r.Rank)
}

func TestGradeAccuracyBounds(t *testing.T) {
	for perfect := 0; perfect <= 6; perfect++ {
		for great := 0; great <= 6; great++ {
			for bad := 0; bad <= 6; bad++ {
				for miss := 0; miss <= 6; miss++ {
					j := Judgement{Perfect: perfect, Great: great, Good: 1, Bad: bad, Miss: miss}
					r, err := Grade(j)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, r.Accuracy, 0.0)
					assert.LessOrEqual(t, r.Accuracy, 100.0)
					assert.Equal(t, Round(r.Accuracy, 1), r.Accuracy)
				}
			}
		}
	}
}

func TestGradeRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		args   Judgement
		expect error
	}{
		{"empty", Judgement{}, ErrEmptyPlay},
		{"negative", Judgement{Perfect: 10, Miss: -1}, ErrNegativeJudgement},
		{"wrapping total", Judgement{Perfect: math.MaxInt, Great: math.MaxInt, Good: 3}, ErrJudgementOverflow},
		{"one count above limit", Judgement{Perfect: MaxJudgements + 1}, ErrJudgementOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Grade(tc.args)
			assert.ErrorIs(t, err, tc.expect)
		})
	}
}

func TestGradeAtLimit(t *testing.T) {
	j := Judgement{Perfect: MaxJudgements, Great: MaxJudgements, Good: MaxJudgements, Bad: MaxJudgements, Miss: MaxJudgements, Bullet: MaxJudgements}
	r, err := Grade(j)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Accuracy, 0.0)
	assert.LessOrEqual(t, r.Accuracy, 100.0)
}

func TestVerify(t *testing.T) {
	r, err := Grade(Judgement{Perfect: 10})
	require.NoError(t, err)

	assert.NoError(t, Verify("SS", 100, r))
	assert.True(t, errors.Is(Verify("S", 100, r), ErrIntegrity))
	assert.True(t, errors.Is(Verify("SS", 99.9, r), ErrIntegrity))
	assert.True(t, errors.Is(Verify("SS", 100.04, r), ErrIntegrity))
}
