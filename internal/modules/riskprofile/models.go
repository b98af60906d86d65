// Package riskprofile turns questionnaire answers into a risk-aversion coefficient.
package riskprofile

import "fmt"

// Aversion is the risk-aversion coefficient A used by the optimizer.
// Smaller values are more risk tolerant.
type Aversion int

// Allowed aversion buckets.
const (
	VeryAggressive   Aversion = 1
	Aggressive       Aversion = 3
	Balanced         Aversion = 5
	Conservative     Aversion = 7
	VeryConservative Aversion = 10
)

// Aversions lists every allowed bucket in ascending order.
var Aversions = []Aversion{VeryAggressive, Aggressive, Balanced, Conservative, VeryConservative}

// Valid reports whether a is one of the allowed buckets.
func (a Aversion) Valid() bool {
	switch a {
	case VeryAggressive, Aggressive, Balanced, Conservative, VeryConservative:
		return true
	}
	return false
}

// Float64 returns A as the scalar the optimizer consumes.
func (a Aversion) Float64() float64 {
	return float64(a)
}

func (a Aversion) String() string {
	return fmt.Sprintf("A=%d", int(a))
}

// Profile is the human readable label for a bucket.
type Profile struct {
	Name        string `json:"profile"`
	Description string `json:"description"`
}

// ProfileFor returns the label for an aversion bucket.
func ProfileFor(a Aversion) Profile {
	switch a {
	case VeryConservative:
		return Profile{Name: "Very Conservative", Description: "Capital preservation"}
	case Conservative:
		return Profile{Name: "Conservative", Description: "Modest returns, low volatility"}
	case Balanced:
		return Profile{Name: "Balanced", Description: "Moderate growth & income"}
	case Aggressive:
		return Profile{Name: "Aggressive", Description: "Long-term growth"}
	case VeryAggressive:
		return Profile{Name: "Very Aggressive", Description: "Maximize returns"}
	default:
		return Profile{Name: "Unclassified"}
	}
}

// Assessment is the full outcome of scoring one questionnaire.
type Assessment struct {
	RawScore int      `json:"rawScore"`
	Aversion Aversion `json:"aversion"`
	Profile  Profile  `json:"profile"`
}
