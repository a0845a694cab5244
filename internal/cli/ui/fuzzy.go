package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the largest edit distance still offered as a suggestion
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions caps the number of suggestions returned
	DefaultMaxSuggestions = 3
)

// FuzzyOptions configures FindSimilar. Zero values select the defaults.
type FuzzyOptions struct {
	MaxDistance    int
	MaxSuggestions int
	CaseSensitive  bool
}

// FindSimilar returns the candidates closest to target, nearest first.
// A candidate qualifies when it is within MaxDistance edits of target or
// contains it as a prefix, so "enzyme" suggests "enzyme_substrate".
//
//	FindSimilar("SIGNR", []string{"SIGNOR", "CORUM", "PhosphoSite"}, nil)
//	// ["SIGNOR"]
func FindSimilar(target string, candidates []string, opts *FuzzyOptions) []string {
	o := FuzzyOptions{}
	if opts != nil {
		o = *opts
	}
	if o.MaxDistance == 0 {
		o.MaxDistance = DefaultMaxDistance
	}
	if o.MaxSuggestions == 0 {
		o.MaxSuggestions = DefaultMaxSuggestions
	}

	type match struct {
		value    string
		distance int
	}
	var matches []match

	norm := func(s string) string {
		if o.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	t := norm(target)
	if t == "" {
		return nil
	}
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		c := norm(candidate)
		dist := LevenshteinDistance(t, c)
		if dist > o.MaxDistance && strings.HasPrefix(c, t) {
			dist = o.MaxDistance
		}
		if dist <= o.MaxDistance {
			matches = append(matches, match{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	if len(matches) > o.MaxSuggestions {
		matches = matches[:o.MaxSuggestions]
	}
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.value
	}
	return result
}

// LevenshteinDistance is the minimum number of single-rune insertions,
// deletions or substitutions turning a into b.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
