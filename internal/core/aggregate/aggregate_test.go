package aggregate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"urlate.dev/backend/internal/core/ledger"
	"urlate.dev/backend/internal/model"
)

func TestApplyRunningAccuracy(t *testing.T) {
	var s model.PlayerStats

	s = Apply(s, Input{RecordIndex: "a", Accuracy: 80.0})
	assert.Equal(t, 80.00, s.Accuracy)
	assert.Equal(t, 1, s.Playtime)

	s = Apply(s, Input{RecordIndex: "b", Accuracy: 90.0})
	assert.Equal(t, 85.00, s.Accuracy)
	assert.Equal(t, 2, s.Playtime)

	s = Apply(s, Input{RecordIndex: "c", Accuracy: 90.0})
	assert.Equal(t, 86.67, s.Accuracy)
}

func TestApplyRecentPlay(t *testing.T) {
	var s model.PlayerStats
	for i := 0; i < 25; i++ {
		s = Apply(s, Input{RecordIndex: fmt.Sprintf("r%02d", i), Accuracy: 100})
		assert.LessOrEqual(t, len(s.RecentPlay), model.RecentPlayLimit)
		assert.Equal(t, fmt.Sprintf("r%02d", i), s.RecentPlay[0])
	}

	want := []string{"r24", "r23", "r22", "r21", "r20", "r19", "r18", "r17", "r16", "r15"}
	assert.Equal(t, want, s.RecentPlay)
}

func TestApplyDoesNotAliasInput(t *testing.T) {
	s := model.PlayerStats{RecentPlay: []string{"x"}}
	next := Apply(s, Input{RecordIndex: "y", Accuracy: 50})

	assert.Equal(t, []string{"x"}, s.RecentPlay)
	assert.Equal(t, 0, s.Playtime)
	assert.Equal(t, []string{"y", "x"}, next.RecentPlay)
}

func TestApplyMedalCounters(t *testing.T) {
	tests := []struct {
		name          string
		isBest        bool
		delta         int
		ap, fc, clear int
	}{
		{"all perfect from nothing", true, 7, 1, 1, 1},
		{"all perfect from full combo", true, 4, 1, 0, 0},
		{"full combo from clear", true, 2, 0, 1, 0},
		{"clear only", true, 1, 0, 0, 1},
		{"ap and clear", true, 5, 1, 0, 1},
		{"no change", true, 0, 0, 0, 0},
		{"not a best", false, 7, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Apply(model.PlayerStats{}, Input{IsBest: tt.isBest, MedalDelta: tt.delta, Accuracy: 100})
			assert.Equal(t, tt.ap, s.AP)
			assert.Equal(t, tt.fc, s.FC)
			assert.Equal(t, tt.clear, s.Clear)
		})
	}
}

func TestApplyTotals(t *testing.T) {
	s := model.PlayerStats{Rating: 100, ScoreSum: 1000, FirstPlaceCount: 2}

	s = Apply(s, Input{Record: 500, RatingDiff: 20, Accuracy: 100, IsBest: true, FirstPlace: ledger.PersonalBest})
	assert.EqualValues(t, 120, s.Rating)
	assert.EqualValues(t, 1500, s.ScoreSum)
	assert.Equal(t, 2, s.FirstPlaceCount)

	s = Apply(s, Input{Record: 700, Accuracy: 100, IsBest: true, FirstPlace: ledger.GlobalBest})
	assert.EqualValues(t, 2200, s.ScoreSum)
	assert.Equal(t, 3, s.FirstPlaceCount)
}
