package riskprofile

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultScorer(t *testing.T) *Scorer {
	t.Helper()
	table, err := LoadTable("")
	require.NoError(t, err)
	scorer, err := NewScorer(table, zerolog.Nop())
	require.NoError(t, err)
	return scorer
}

func TestScorer_EmptyAnswersResolveToConservative(t *testing.T) {
	scorer := newDefaultScorer(t)

	assessment := scorer.Assess(Answers{})

	assert.Equal(t, 0, assessment.RawScore)
	assert.Equal(t, Conservative, assessment.Aversion)
	assert.Equal(t, Conservative, scorer.DefaultAversion())
	assert.Equal(t, "Conservative", assessment.Profile.Name)
}

func TestScorer_Score(t *testing.T) {
	scorer := newDefaultScorer(t)

	tests := []struct {
		name     string
		answers  Answers
		expected int
	}{
		{
			name:     "single choice",
			answers:  Answers{"q1_1": Single("Under 25")},
			expected: 5,
		},
		{
			name:     "multi-select sums penalties",
			answers:  Answers{"q2_5": Multi("Home purchase", "Business investment")},
			expected: -4,
		},
		{
			name:     "unknown question ignored",
			answers:  Answers{"q9_9": Single("Yes"), "q6_1": Single("Yes")},
			expected: 5,
		},
		{
			name:     "unknown option ignored",
			answers:  Answers{"q6_1": Single("Maybe later"), "q6_3": Single("No")},
			expected: 1,
		},
		{
			name: "mixed",
			answers: Answers{
				"q1_1": Single("Under 25"),
				"q2_5": Multi("Home purchase", "None"),
				"q4_3": Single("Buy more"),
			},
			expected: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.Score(tt.answers))
		})
	}
}

func TestScorer_ClassifyBoundaries(t *testing.T) {
	scorer := newDefaultScorer(t)

	tests := []struct {
		score    int
		expected Aversion
	}{
		{-10, Conservative},
		{0, Conservative},
		{30, Conservative},
		{31, Balanced},
		{47, Balanced},
		{48, Aggressive},
		{64, Aggressive},
		{65, VeryAggressive},
		{81, VeryAggressive},
		{82, VeryConservative},
		{200, VeryConservative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, scorer.Classify(tt.score), "score %d", tt.score)
	}
}

func TestScorer_ClassifyAlwaysAllowedBucket(t *testing.T) {
	scorer := newDefaultScorer(t)

	for score := -50; score <= 150; score++ {
		assert.True(t, scorer.Classify(score).Valid(), "score %d", score)
	}
}

func TestScorer_TableIsCopied(t *testing.T) {
	table := &Table{
		Questions:        map[string]map[string]int{"q": {"a": 40}},
		Buckets:          []Bucket{{MaxScore: 30, Aversion: Conservative}},
		OverflowAversion: VeryConservative,
	}
	scorer, err := NewScorer(table, zerolog.Nop())
	require.NoError(t, err)

	table.Questions["q"]["a"] = 1
	table.Buckets[0].MaxScore = 100

	assert.Equal(t, 40, scorer.Score(Answers{"q": Single("a")}))
	assert.Equal(t, VeryConservative, scorer.Classify(40))
}

func TestNewScorer_RejectsInvalidTable(t *testing.T) {
	_, err := NewScorer(&Table{OverflowAversion: Balanced}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestProfileFor(t *testing.T) {
	for _, a := range Aversions {
		assert.NotEqual(t, "Unclassified", ProfileFor(a).Name, a.String())
	}
	assert.Equal(t, "Very Aggressive", ProfileFor(VeryAggressive).Name)
	assert.Equal(t, "Unclassified", ProfileFor(Aversion(4)).Name)
}
