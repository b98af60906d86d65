package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCSV splits a comma-separated string and returns trimmed non-empty values.
// Returns nil for empty/whitespace-only input.
func ParseCSV(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, v := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

// ParseFloatList parses repeated query values, each of which may itself be
// comma-separated, into a flat list of floats in order.
func ParseFloatList(values []string) ([]float64, error) {
	var out []float64
	for _, v := range values {
		for _, item := range ParseCSV(v) {
			f, err := strconv.ParseFloat(item, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q: %w", item, err)
			}
			out = append(out, f)
		}
	}
	return out, nil
}
