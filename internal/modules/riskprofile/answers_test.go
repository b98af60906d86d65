package riskprofile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers([]byte(`{"q1_1":"Under 25","q2_5":["Home purchase","None"],"q3_1":null}`))
	require.NoError(t, err)

	require.Len(t, answers, 2)
	assert.Equal(t, Single("Under 25"), answers["q1_1"])
	assert.Equal(t, Multi("Home purchase", "None"), answers["q2_5"])
	assert.NotContains(t, answers, "q3_1")
	assert.Equal(t, []string{"q1_1", "q2_5"}, answers.QuestionIDs())
}

func TestParseAnswers_Empty(t *testing.T) {
	answers, err := ParseAnswers([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestParseAnswers_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"q1_1":`},
		{"empty body", ``},
		{"array", `["Under 25"]`},
		{"null", `null`},
		{"number value", `{"q1_1": 5}`},
		{"object value", `{"q1_1": {"a": "b"}}`},
		{"non-string option", `{"q2_5": ["None", 3]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnswers([]byte(tt.body))
			assert.ErrorIs(t, err, ErrMalformedAnswers)
		})
	}
}

func TestAnswer_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Answers{"a": Single("x"), "b": Multi("y", "z")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":["y","z"]}`, string(data))

	round, err := ParseAnswers(data)
	require.NoError(t, err)
	assert.Equal(t, Single("x"), round["a"])
	assert.Equal(t, Multi("y", "z"), round["b"])
}
