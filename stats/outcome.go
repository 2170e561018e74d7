// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import "github.com/danielhkuo/chamber-stats/models"

// Categorize returns the outcome of the first rule whose keyword appears in
// status, or OutcomePending when none does.
func (a *Analyzer) Categorize(status string) OutcomeCategory {
	for _, rule := range a.opts.OutcomeRules {
		if rule.Matches(status) {
			return rule.Category
		}
	}
	return OutcomePending
}

// Aggregate computes success rates over finalized initiatives, overall and
// split between government and parliamentary-group authors. Pending
// initiatives are left out of every count.
func (a *Analyzer) Aggregate(initiatives []models.Initiative) models.DashboardStats {
	var stats models.DashboardStats
	finalized := 0
	government := newKeywordMatcher(a.opts.GovernmentKeyword)

	for _, ini := range initiatives {
		category := a.Categorize(ini.Status)
		if category == OutcomePending {
			continue
		}
		finalized++

		success := category == OutcomeSuccess
		switch category {
		case OutcomeSuccess:
			stats.Breakdown.Success++
		case OutcomeFailure:
			stats.Breakdown.Failure++
		case OutcomeNeutral:
			stats.Breakdown.Neutral++
		}

		bucket := &stats.AuthorEfficiency.Groups
		if government.match(ini.Author) {
			bucket = &stats.AuthorEfficiency.Gobierno
		}
		bucket.Total++
		if success {
			bucket.Success++
		}
	}

	stats.GlobalSuccessRate = percent(stats.Breakdown.Success, finalized)
	gov := &stats.AuthorEfficiency.Gobierno
	gov.Rate = percent(gov.Success, gov.Total)
	groups := &stats.AuthorEfficiency.Groups
	groups.Rate = percent(groups.Success, groups.Total)

	return stats
}
