// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Chamber defaults
const (
	DefaultChamberSize       = 350
	DefaultGovernmentKeyword = "government"
	DefaultMixedGroupKeyword = "mixed"
	DefaultMixedGroupLabel   = "Mixed Group"
)

// Ranking windows
const (
	DefaultConsensusWindow = 5
	DefaultAnomalyWindow   = 3
	DefaultPartyWindow     = 5
	DefaultDeputyWindow    = 10
)

// OutcomeCategory is the bucket a finalized initiative falls into.
type OutcomeCategory int

const (
	OutcomePending OutcomeCategory = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeNeutral
)

func (c OutcomeCategory) String() string {
	switch c {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeNeutral:
		return "neutral"
	default:
		return "pending"
	}
}

// OutcomeRule maps any status containing one of Keywords (case-sensitive)
// to Category.
type OutcomeRule struct {
	Category OutcomeCategory
	Keywords []string
}

// Matches reports whether status contains one of the rule's keywords.
func (r OutcomeRule) Matches(status string) bool {
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(status, kw) {
			return true
		}
	}
	return false
}

// DefaultOutcomeRules returns the standard status table. Order matters:
// the first matching rule wins.
func DefaultOutcomeRules() []OutcomeRule {
	return []OutcomeRule{
		{Category: OutcomeSuccess, Keywords: []string{"Approved", "Ratified"}},
		{Category: OutcomeFailure, Keywords: []string{"Rejected", "Repealed"}},
		{Category: OutcomeNeutral, Keywords: []string{"Withdrawn", "Lapsed"}},
	}
}

// Options tunes the analyzers for a particular chamber. Zero values fall
// back to the defaults above.
type Options struct {
	ChamberSize       int
	GovernmentKeyword string
	MixedGroupKeyword string
	MixedGroupLabel   string
	OutcomeRules      []OutcomeRule

	ConsensusWindow int
	AnomalyWindow   int
	PartyWindow     int
	DeputyWindow    int
}

// DefaultOptions returns the settings for a 350-seat chamber.
func DefaultOptions() Options {
	return Options{
		ChamberSize:       DefaultChamberSize,
		GovernmentKeyword: DefaultGovernmentKeyword,
		MixedGroupKeyword: DefaultMixedGroupKeyword,
		MixedGroupLabel:   DefaultMixedGroupLabel,
		OutcomeRules:      DefaultOutcomeRules(),
		ConsensusWindow:   DefaultConsensusWindow,
		AnomalyWindow:     DefaultAnomalyWindow,
		PartyWindow:       DefaultPartyWindow,
		DeputyWindow:      DefaultDeputyWindow,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ChamberSize <= 0 {
		o.ChamberSize = def.ChamberSize
	}
	if o.GovernmentKeyword == "" {
		o.GovernmentKeyword = def.GovernmentKeyword
	}
	if o.MixedGroupKeyword == "" {
		o.MixedGroupKeyword = def.MixedGroupKeyword
	}
	if o.MixedGroupLabel == "" {
		o.MixedGroupLabel = def.MixedGroupLabel
	}
	if len(o.OutcomeRules) == 0 {
		o.OutcomeRules = def.OutcomeRules
	}
	if o.ConsensusWindow <= 0 {
		o.ConsensusWindow = def.ConsensusWindow
	}
	if o.AnomalyWindow <= 0 {
		o.AnomalyWindow = def.AnomalyWindow
	}
	if o.PartyWindow <= 0 {
		o.PartyWindow = def.PartyWindow
	}
	if o.DeputyWindow <= 0 {
		o.DeputyWindow = def.DeputyWindow
	}
	return o
}

// percent returns round(100*num/den), or 0 when den is 0
func percent(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(num) / float64(den)))
}

// keywordMatcher is a case-insensitive substring test against one keyword.
// It holds a Caser, so each Analyze or Aggregate call builds its own.
type keywordMatcher struct {
	fold    cases.Caser
	keyword string
}

func newKeywordMatcher(keyword string) *keywordMatcher {
	fold := cases.Fold()
	return &keywordMatcher{fold: fold, keyword: fold.String(keyword)}
}

func (m *keywordMatcher) match(s string) bool {
	if m.keyword == "" {
		return false
	}
	return strings.Contains(m.fold.String(s), m.keyword)
}

// topN truncates s to at most n entries
func topN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
