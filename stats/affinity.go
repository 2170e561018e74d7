// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"strings"

	"github.com/danielhkuo/chamber-stats/models"
)

// Vote categories an actor can be placed in
const (
	voteYes     = "yes"
	voteNo      = "no"
	voteAbstain = "abstain"
)

// Affinity returns the percentage of comparable initiatives on which the
// target and reference actors voted the same way. Actor codes match by
// substring because raw desglose keys often carry prefixes or suffixes.
func (a *Analyzer) Affinity(initiatives []models.Initiative, targetCode, referenceCode string) int {
	comparisons, matches := 0, 0

	for _, ini := range initiatives {
		d := desgloseOf(ini)
		if d == nil {
			continue
		}

		refVote, refOK := actorVote(d, referenceCode)
		targetVote, targetOK := actorVote(d, targetCode)
		if !refOK || !targetOK {
			continue
		}

		comparisons++
		if refVote == targetVote {
			matches++
		}
	}

	return percent(matches, comparisons)
}

// actorVote finds the first category (yes, no, abstain) holding a key that
// contains code. An empty code never matches.
func actorVote(d *models.Desglose, code string) (string, bool) {
	if code == "" {
		return "", false
	}

	categories := []struct {
		name  string
		votes map[string]int
	}{
		{voteYes, d.Yes},
		{voteNo, d.No},
		{voteAbstain, d.Abstention},
	}
	for _, cat := range categories {
		for actor := range cat.votes {
			if strings.Contains(actor, code) {
				return cat.name, true
			}
		}
	}
	return "", false
}

func desgloseOf(ini models.Initiative) *models.Desglose {
	if ini.Voting == nil || ini.Voting.Result == nil {
		return nil
	}
	return ini.Voting.Result.Desglose
}
