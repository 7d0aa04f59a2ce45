package achievement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateTutorialClear(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []Index{TutorialClear}, r.Evaluate(context.Background(), ContextTutorialClear, nil))
	// the evaluator is stateless, a repeated event yields the same set
	assert.Equal(t, []Index{TutorialClear}, r.Evaluate(context.Background(), ContextTutorialClear, []byte(`{}`)))
}

func TestEvaluateUnknownContext(t *testing.T) {
	r := NewRegistry()

	got := r.Evaluate(context.Background(), Context("SKIN_PURCHASE"), []byte(`{"x":1}`))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluateJudge(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []Index
	}{
		{
			name:    "all perfect",
			payload: `{"perfect":100,"great":0,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{AllPerfect, FullCombo},
		},
		{
			name:    "full combo",
			payload: `{"perfect":90,"great":5,"good":5,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{FullCombo},
		},
		{
			name:    "one good",
			payload: `{"perfect":99,"great":0,"good":1,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{FullCombo, OneGood},
		},
		{
			name:    "one great",
			payload: `{"perfect":99,"great":1,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{FullCombo, OneGreat},
		},
		{
			name:    "one good and one great",
			payload: `{"perfect":98,"great":1,"good":1,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{FullCombo},
		},
		{
			name:    "all one",
			payload: `{"perfect":1,"great":1,"good":1,"bad":1,"miss":1,"bullet":1}`,
			want:    []Index{AllOne},
		},
		{
			name:    "one miss",
			payload: `{"perfect":99,"great":0,"good":0,"bad":0,"miss":1,"bullet":0}`,
			want:    []Index{OneMiss},
		},
		{
			name:    "one bullet",
			payload: `{"perfect":99,"great":0,"good":0,"bad":0,"miss":0,"bullet":1}`,
			want:    []Index{OneMiss},
		},
		{
			name:    "miss and bullet",
			payload: `{"perfect":98,"great":0,"good":0,"bad":0,"miss":1,"bullet":1}`,
			want:    []Index{},
		},
		{
			name:    "one bad",
			payload: `{"perfect":99,"great":0,"good":0,"bad":1,"miss":0,"bullet":0}`,
			want:    []Index{OneBad},
		},
		{
			name:    "missing field",
			payload: `{"perfect":99,"great":0,"good":0,"bad":1,"miss":0}`,
			want:    []Index{},
		},
		{
			name:    "string count",
			payload: `{"perfect":"99","great":0,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{},
		},
		{
			name:    "empty play",
			payload: `{"perfect":0,"great":0,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{},
		},
		{
			name:    "negative count",
			payload: `{"perfect":10,"great":-1,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{},
		},
		{
			name:    "fractional count",
			payload: `{"perfect":10.9,"great":0,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{},
		},
		{
			name:    "counts wrapping the total",
			payload: `{"perfect":9223372036854775807,"great":9223372036854775807,"good":3,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{},
		},
		{
			name:    "count above limit",
			payload: `{"perfect":1048577,"great":0,"good":0,"bad":0,"miss":0,"bullet":0}`,
			want:    []Index{},
		},
		{
			name:    "not json",
			payload: `perfect=10`,
			want:    []Index{},
		},
		{
			name:    "no payload",
			payload: ``,
			want:    []Index{},
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Evaluate(context.Background(), ContextJudge, []byte(tt.payload))
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateRank(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []Index
	}{
		{"single tier", `{"rank50":true}`, []Index{Rank50}},
		{"every tier", `{"rank1":true,"rank10":true,"rank50":true,"rank100":true}`, []Index{Rank1, Rank10, Rank50, Rank100}},
		{"false flags", `{"rank1":false,"rank10":true}`, []Index{Rank10}},
		{"no flags", `{}`, nil},
		{"wrong type", `{"rank1":1}`, nil},
		{"array", `[true]`, nil},
		{"missing", ``, nil},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Evaluate(context.Background(), ContextRank, []byte(tt.payload))
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
