// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"fmt"
	"sort"

	"github.com/danielhkuo/chamber-stats/models"
)

// Parties with fewer votes than this in one initiative are too small to
// judge block discipline.
const blockNoiseFloor = 5

// A block is broken when its dominant vote is above 4/5 of its members
// and below all of them.
const (
	blockDominanceNum = 4
	blockDominanceDen = 5
)

// Display names for the desglose categories
const (
	categoryYes     = "Yes"
	categoryNo      = "No"
	categoryAbstain = "Abstain"
	categoryNoVote  = "No Vote"
)

// Analyze computes attendance, abstention and absenteeism statistics plus
// the critical-absence and broken-block detectors. Initiatives without any
// vote breakdown are skipped; chamber size comes from the options.
func (a *Analyzer) Analyze(initiatives []models.Initiative) models.ParticipationStats {
	stats := models.ParticipationStats{
		AbsenteeismRanking: []models.PartyAbsence{},
		CriticalAbsences:   []models.CriticalAbsence{},
		BrokenBlocks:       []models.BrokenBlock{},
		DeputyRanking:      []models.DeputyAbsence{},
	}

	partyAbsences := make(map[string]int)
	deputies := newDeputyTally(a.opts)
	counted := 0

	for _, ini := range initiatives {
		result := resultOf(ini)
		if result == nil || (result.Totals == nil && result.Desglose == nil) {
			continue
		}
		counted++
		deputies.add(ini.Voting.AbsentDeputies())

		var totals models.VoteTotals
		if result.Totals != nil {
			totals = *result.Totals
		}

		votesCast := totals.Favor + totals.Against + totals.Abstain
		stats.TotalVoted += votesCast
		stats.TotalAbstentions += totals.Abstain
		stats.TotalPresent += a.presentCount(ini.Voting, totals)

		if len(stats.CriticalAbsences) < a.opts.AnomalyWindow {
			if c, ok := criticalAbsence(ini, totals); ok {
				stats.CriticalAbsences = append(stats.CriticalAbsences, c)
			}
		}

		if d := result.Desglose; d != nil {
			for party, n := range d.NoVote {
				partyAbsences[party] += n
			}
			for _, b := range brokenBlocks(ini, d) {
				if len(stats.BrokenBlocks) >= a.opts.AnomalyWindow {
					break
				}
				stats.BrokenBlocks = append(stats.BrokenBlocks, b)
			}
		}
	}

	stats.TotalPossibleVotes = counted * a.opts.ChamberSize
	stats.GlobalCommitment = percent(stats.TotalVoted, stats.TotalPossibleVotes)
	stats.TotalNoVotes = stats.TotalPossibleVotes - stats.TotalVoted
	stats.AbsenteeismRanking = rankPartyAbsences(partyAbsences, a.opts.PartyWindow)
	stats.DeputyRanking = deputies.ranking(a.opts.DeputyWindow)

	return stats
}

// presentCount prefers the reported attendance and assumes a full chamber
// when none was recorded.
func (a *Analyzer) presentCount(v *models.Voting, totals models.VoteTotals) int {
	if totals.Present != nil {
		return *totals.Present
	}
	if v != nil && v.PresentCount != nil {
		return *v.PresentCount
	}
	return a.opts.ChamberSize
}

func resultOf(ini models.Initiative) *models.VoteBreakdown {
	if ini.Voting == nil {
		return nil
	}
	return ini.Voting.Result
}

// criticalAbsence reports whether the absent members outnumber the margin
// between Yes and No, i.e. they could have reversed the result.
func criticalAbsence(ini models.Initiative, totals models.VoteTotals) (models.CriticalAbsence, bool) {
	margin := totals.Favor - totals.Against
	if margin < 0 {
		margin = -margin
	}
	if totals.NoVoteCount <= 0 || totals.NoVoteCount < margin {
		return models.CriticalAbsence{}, false
	}
	return models.CriticalAbsence{
		Initiative: ini.Name(),
		Margin:     margin,
		Missing:    totals.NoVoteCount,
	}, true
}

// brokenBlocks returns the parties of one initiative whose dominant vote
// falls strictly between 80% and 100% of their votes. Parties are visited
// in code order.
func brokenBlocks(ini models.Initiative, d *models.Desglose) []models.BrokenBlock {
	parties := make(map[string]struct{})
	for _, m := range []map[string]int{d.Yes, d.No, d.Abstention, d.NoVote} {
		for party := range m {
			parties[party] = struct{}{}
		}
	}
	codes := make([]string, 0, len(parties))
	for party := range parties {
		codes = append(codes, party)
	}
	sort.Strings(codes)

	var blocks []models.BrokenBlock
	for _, party := range codes {
		tally := []struct {
			name  string
			count int
		}{
			{categoryYes, d.Yes[party]},
			{categoryNo, d.No[party]},
			{categoryAbstain, d.Abstention[party]},
			{categoryNoVote, d.NoVote[party]},
		}

		total := 0
		for _, t := range tally {
			total += t.count
		}
		if total < blockNoiseFloor {
			continue
		}

		// noVote counts toward the total but never dominates
		dominant := 0
		for i := 1; i < 3; i++ {
			if tally[i].count > tally[dominant].count {
				dominant = i
			}
		}
		maxVote := tally[dominant].count
		if maxVote*blockDominanceDen <= total*blockDominanceNum || maxVote >= total {
			continue
		}

		details := []string{}
		for i, t := range tally {
			if i == dominant || t.count == 0 {
				continue
			}
			details = append(details, fmt.Sprintf("%d %s (majority %s)", t.count, t.name, tally[dominant].name))
		}

		blocks = append(blocks, models.BrokenBlock{
			Initiative: ini.Name(),
			Party:      party,
			Details:    details,
		})
	}
	return blocks
}

func rankPartyAbsences(totals map[string]int, window int) []models.PartyAbsence {
	ranking := make([]models.PartyAbsence, 0, len(totals))
	for party, count := range totals {
		ranking = append(ranking, models.PartyAbsence{Party: party, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Party < ranking[j].Party
	})
	return topN(ranking, window)
}

// deputyTally counts how often each deputy appears in a no-vote list,
// remembering first-seen order for ties.
type deputyTally struct {
	opts    Options
	mixed   *keywordMatcher
	order   []string
	entries map[string]*models.DeputyAbsence
}

func newDeputyTally(opts Options) *deputyTally {
	return &deputyTally{
		opts:    opts,
		mixed:   newKeywordMatcher(opts.MixedGroupKeyword),
		entries: make(map[string]*models.DeputyAbsence),
	}
}

func (t *deputyTally) add(deputies []models.Deputy) {
	for _, dep := range deputies {
		key := dep.ID
		if key == "" {
			key = dep.DisplayName
		}
		if key == "" {
			continue
		}

		entry, ok := t.entries[key]
		if !ok {
			name := dep.DisplayName
			if name == "" {
				name = dep.ID
			}
			entry = &models.DeputyAbsence{Name: name, Party: t.partyLabel(dep)}
			t.entries[key] = entry
			t.order = append(t.order, key)
		}
		entry.Count++
		if entry.Avatar == "" {
			entry.Avatar = dep.Avatar
		}
	}
}

// partyLabel folds every mixed-group spelling into one label and otherwise
// prefers the electoral formation over the parliamentary group.
func (t *deputyTally) partyLabel(dep models.Deputy) string {
	if t.mixed.match(dep.PartyOrGroup) {
		return t.opts.MixedGroupLabel
	}
	if dep.Formation != "" {
		return dep.Formation
	}
	return dep.PartyOrGroup
}

func (t *deputyTally) ranking(window int) []models.DeputyAbsence {
	ranking := make([]models.DeputyAbsence, 0, len(t.order))
	for _, key := range t.order {
		ranking = append(ranking, *t.entries[key])
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return topN(ranking, window)
}
