package service

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/jask/foodboard/internal/food"
)

// minFuzzyLen keeps one- and two-letter queries from matching everything.
const minFuzzyLen = 3

// Filter returns the foods matching query, preserving order. A food matches
// when its name or description contains the query, or when a word of its
// name is a near miss of it (typos such as "soupe" for "soup").
func Filter(foods []food.Food, query string) []food.Food {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return foods
	}
	out := make([]food.Food, 0, len(foods))
	for _, f := range foods {
		if matches(f, q) {
			out = append(out, f)
		}
	}
	return out
}

func matches(f food.Food, q string) bool {
	name := strings.ToLower(f.Name)
	if strings.Contains(name, q) || strings.Contains(strings.ToLower(f.Description), q) {
		return true
	}
	if utf8.RuneCountInString(q) < minFuzzyLen {
		return false
	}
	for _, word := range strings.Fields(name) {
		if closeEnough(word, q) {
			return true
		}
	}
	return false
}

func closeEnough(a, b string) bool {
	dist := levenshtein.ComputeDistance(a, b)
	maxlen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return float64(dist)/float64(maxlen) < 0.4
}
