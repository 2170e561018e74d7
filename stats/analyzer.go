// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import "github.com/danielhkuo/chamber-stats/models"

// Analyzer computes every report for a fixed set of chamber options.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	opts Options
}

// New returns an Analyzer; zero fields in opts take their defaults.
func New(opts Options) *Analyzer {
	return &Analyzer{opts: opts.withDefaults()}
}

// Options returns the effective options after defaulting
func (a *Analyzer) Options() Options {
	return a.opts
}

// Dashboard computes the outcome, participation and consensus reports for
// one dataset. Each report is computed independently of the others.
func (a *Analyzer) Dashboard(initiatives []models.Initiative) models.DashboardReport {
	return models.DashboardReport{
		Outcomes:      a.Aggregate(initiatives),
		Participation: a.Analyze(initiatives),
		Ranking:       a.Rank(initiatives),
	}
}

var defaultAnalyzer = New(DefaultOptions())

// Classify scores a single initiative. See Analyzer.Classify.
func Classify(ini models.Initiative) models.ConsensusMetric {
	return defaultAnalyzer.Classify(ini)
}

// Rank builds the consensus rankings with default windows.
func Rank(initiatives []models.Initiative) models.ConsensusRanking {
	return defaultAnalyzer.Rank(initiatives)
}

// Affinity returns the voting affinity between two actor codes.
func Affinity(initiatives []models.Initiative, targetCode, referenceCode string) int {
	return defaultAnalyzer.Affinity(initiatives, targetCode, referenceCode)
}

// Aggregate computes outcome statistics with the default status rules.
func Aggregate(initiatives []models.Initiative) models.DashboardStats {
	return defaultAnalyzer.Aggregate(initiatives)
}

// Analyze computes participation statistics for a 350-seat chamber.
func Analyze(initiatives []models.Initiative) models.ParticipationStats {
	return defaultAnalyzer.Analyze(initiatives)
}

// Dashboard computes all reports with default options.
func Dashboard(initiatives []models.Initiative) models.DashboardReport {
	return defaultAnalyzer.Dashboard(initiatives)
}
