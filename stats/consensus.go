// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"slices"
	"sort"

	"github.com/danielhkuo/chamber-stats/models"
)

// consensusBand pairs a predicate over (ratio, no) with the label it yields.
// Bands are evaluated in order and the first match wins.
type consensusBand struct {
	matches func(ratio, no int) bool
	label   string
	color   string
}

var consensusBands = []consensusBand{
	{
		matches: func(ratio, no int) bool { return ratio == 100 && no == 0 },
		label:   models.LabelUnanimous,
		color:   models.ColorStrong,
	},
	{
		matches: func(ratio, _ int) bool { return ratio >= 80 },
		label:   models.LabelStrongAgreement,
		color:   models.ColorPositive,
	},
	{
		matches: func(ratio, _ int) bool { return ratio >= 45 && ratio <= 55 },
		label:   models.LabelCloseSplit,
		color:   models.ColorWarning,
	},
	// Below 45 is still a close split, but the Yes side lost: risk color.
	{
		matches: func(ratio, _ int) bool { return ratio < 45 },
		label:   models.LabelCloseSplit,
		color:   models.ColorRisk,
	},
	{
		matches: func(int, int) bool { return true },
		label:   models.LabelDivision,
		color:   models.ColorCaution,
	},
}

var noVoteMetric = models.ConsensusMetric{
	ConsensusIndex: 0,
	Label:          models.LabelNoVote,
	Color:          models.ColorNeutral,
}

// Classify computes the consensus index of an initiative as the share of Yes
// among Yes+No votes. Abstentions are not part of the ratio.
func (a *Analyzer) Classify(ini models.Initiative) models.ConsensusMetric {
	v := ini.Voting
	if v == nil || !v.Exists {
		return noVoteMetric
	}

	total := v.Yes + v.No
	if total <= 0 {
		return noVoteMetric
	}

	ratio := percent(v.Yes, total)
	ratio = max(0, min(100, ratio))

	for _, band := range consensusBands {
		if band.matches(ratio, v.No) {
			return models.ConsensusMetric{
				ConsensusIndex: ratio,
				Label:          band.label,
				Color:          band.color,
			}
		}
	}
	return noVoteMetric
}

// Rank classifies every initiative with an existing vote and returns the most
// consensual (highest index) and most divisive (closest to 50) windows.
// Ties keep input order.
func (a *Analyzer) Rank(initiatives []models.Initiative) models.ConsensusRanking {
	scored := make([]models.RankedInitiative, 0, len(initiatives))
	for _, ini := range initiatives {
		if ini.Voting == nil || !ini.Voting.Exists {
			continue
		}
		scored = append(scored, models.RankedInitiative{
			Initiative: ini,
			Metric:     a.Classify(ini),
		})
	}

	consensual := slices.Clone(scored)
	sort.SliceStable(consensual, func(i, j int) bool {
		return consensual[i].Metric.ConsensusIndex > consensual[j].Metric.ConsensusIndex
	})

	divisive := slices.Clone(scored)
	sort.SliceStable(divisive, func(i, j int) bool {
		return distanceFromSplit(divisive[i].Metric) < distanceFromSplit(divisive[j].Metric)
	})

	return models.ConsensusRanking{
		TopConsensus: topN(consensual, a.opts.ConsensusWindow),
		TopDivisive:  topN(divisive, a.opts.ConsensusWindow),
	}
}

func distanceFromSplit(m models.ConsensusMetric) int {
	d := m.ConsensusIndex - 50
	if d < 0 {
		return -d
	}
	return d
}
