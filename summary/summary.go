// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package summary renders a dashboard report as plain text for terminals.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/chamber-stats/models"
)

// Write prints the report for the named chamber
func Write(w io.Writer, chamber string, r models.DashboardReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", chamber, strings.Repeat("=", len(chamber)))

	o := r.Outcomes
	fmt.Fprintf(&b, "Success rate: %d%% (%d approved, %d failed, %d neutral)\n",
		o.GlobalSuccessRate, o.Breakdown.Success, o.Breakdown.Failure, o.Breakdown.Neutral)
	fmt.Fprintf(&b, "  Government: %d%% of %d\n", o.AuthorEfficiency.Gobierno.Rate, o.AuthorEfficiency.Gobierno.Total)
	fmt.Fprintf(&b, "  Groups:     %d%% of %d\n\n", o.AuthorEfficiency.Groups.Rate, o.AuthorEfficiency.Groups.Total)

	p := r.Participation
	fmt.Fprintf(&b, "Commitment: %d%% (%s of %s possible votes cast)\n",
		p.GlobalCommitment, humanize.Comma(int64(p.TotalVoted)), humanize.Comma(int64(p.TotalPossibleVotes)))
	fmt.Fprintf(&b, "  Abstentions: %s\n", humanize.Comma(int64(p.TotalAbstentions)))
	fmt.Fprintf(&b, "  Not voted:   %s\n", humanize.Comma(int64(p.TotalNoVotes)))

	section(&b, "Most absent parties", len(p.AbsenteeismRanking), func(i int) string {
		a := p.AbsenteeismRanking[i]
		return fmt.Sprintf("%s (%s)", a.Party, humanize.Comma(int64(a.Count)))
	})
	section(&b, "Most absent deputies", len(p.DeputyRanking), func(i int) string {
		d := p.DeputyRanking[i]
		return fmt.Sprintf("%s, %s (%s)", d.Name, d.Party, humanize.Comma(int64(d.Count)))
	})
	section(&b, "Critical absences", len(p.CriticalAbsences), func(i int) string {
		c := p.CriticalAbsences[i]
		return fmt.Sprintf("%s: %d missing, margin %d", c.Initiative, c.Missing, c.Margin)
	})
	section(&b, "Broken blocks", len(p.BrokenBlocks), func(i int) string {
		bb := p.BrokenBlocks[i]
		return fmt.Sprintf("%s, %s: %s", bb.Initiative, bb.Party, strings.Join(bb.Details, "; "))
	})
	section(&b, "Most consensual", len(r.Ranking.TopConsensus), func(i int) string {
		return ranked(r.Ranking.TopConsensus[i])
	})
	section(&b, "Most divisive", len(r.Ranking.TopDivisive), func(i int) string {
		return ranked(r.Ranking.TopDivisive[i])
	})

	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string, n int, line func(i int) string) {
	if n == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "  %s %s\n", humanize.Ordinal(i+1), line(i))
	}
}

func ranked(ri models.RankedInitiative) string {
	return fmt.Sprintf("%s: %d%% %s", ri.Initiative.Name(), ri.Metric.ConsensusIndex, ri.Metric.Label)
}
