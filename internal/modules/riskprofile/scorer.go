package riskprofile

import (
	"github.com/rs/zerolog"
)

// Scorer scores questionnaires against an immutable table.
// It is safe for concurrent use.
type Scorer struct {
	table *Table
	log   zerolog.Logger
}

// NewScorer validates table and returns a scorer holding a private copy of it.
func NewScorer(table *Table, log zerolog.Logger) (*Scorer, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	return &Scorer{
		table: table.clone(),
		log:   log.With().Str("component", "risk_scorer").Logger(),
	}, nil
}

// Score sums the points of every selected option. Questions or options missing from
// the table contribute nothing.
func (s *Scorer) Score(answers Answers) int {
	total := 0
	for id, answer := range answers {
		points, ok := s.table.Questions[id]
		if !ok {
			s.log.Debug().Str("question", id).Msg("Ignoring unknown question")
			continue
		}
		for _, option := range answer.Options {
			total += points[option]
		}
	}
	return total
}

// Classify maps a raw score to its bucket. Upper bounds are inclusive.
func (s *Scorer) Classify(rawScore int) Aversion {
	for _, b := range s.table.Buckets {
		if rawScore <= b.MaxScore {
			return b.Aversion
		}
	}
	return s.table.OverflowAversion
}

// DefaultAversion is the bucket an empty questionnaire resolves to.
func (s *Scorer) DefaultAversion() Aversion {
	return s.Classify(0)
}

// Assess scores and classifies answers in one step.
func (s *Scorer) Assess(answers Answers) Assessment {
	raw := s.Score(answers)
	a := s.Classify(raw)

	s.log.Debug().
		Int("answered", len(answers)).
		Int("raw_score", raw).
		Int("aversion", int(a)).
		Msg("Assessed questionnaire")

	return Assessment{
		RawScore: raw,
		Aversion: a,
		Profile:  ProfileFor(a),
	}
}
