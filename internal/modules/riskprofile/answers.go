package riskprofile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedAnswers is returned when a payload is not a question-id to answer mapping.
var ErrMalformedAnswers = errors.New("malformed answers")

// Answer holds the option(s) selected for one question.
type Answer struct {
	Options []string
	Multi   bool
}

// Single builds a single-choice answer.
func Single(option string) Answer {
	return Answer{Options: []string{option}}
}

// Multi builds a multi-select answer.
func Multi(options ...string) Answer {
	return Answer{Options: options, Multi: true}
}

// MarshalJSON encodes single answers as a string and multi-select answers as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Multi && len(a.Options) == 1 {
		return json.Marshal(a.Options[0])
	}
	opts := a.Options
	if opts == nil {
		opts = []string{}
	}
	return json.Marshal(opts)
}

// Answers maps question ids to answers.
type Answers map[string]Answer

// QuestionIDs returns the answered question ids in sorted order.
func (a Answers) QuestionIDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ParseAnswers decodes a JSON object whose values are either a string or an array of
// strings. Null values are treated as unanswered.
func ParseAnswers(data []byte) (Answers, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnswers, err)
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedAnswers)
	}

	answers := make(Answers, len(obj))
	for id, value := range obj {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			answers[id] = Single(v)
		case []interface{}:
			options := make([]string, 0, len(v))
			for i, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: question %s option %d is not a string", ErrMalformedAnswers, id, i)
				}
				options = append(options, s)
			}
			answers[id] = Multi(options...)
		default:
			return nil, fmt.Errorf("%w: question %s has unsupported value type %T", ErrMalformedAnswers, id, value)
		}
	}

	return answers, nil
}
