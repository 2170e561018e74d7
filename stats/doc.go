// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats turns initiative vote records into dashboard reports.

Every function is pure: it reads the initiative slice once (or a small
constant number of times), touches no global state and returns a fresh
report. Missing vote data never produces an error; absent numbers count as
0 and every rate with a zero denominator is 0.

# Consensus

Classify scores one initiative as round(100 * yes / (yes + no)) and labels
it by the first matching band:

	index == 100 and no == 0  → Unanimous
	index >= 80               → Strong Agreement
	45 <= index <= 55         → Close Split (warning color)
	index < 45                → Close Split (risk color)
	otherwise                 → Division

Rank returns the five most consensual initiatives and the five closest to
a 50/50 split.

# Affinity

Affinity compares two actor codes across the desglose of every initiative
and returns the share of initiatives where both voted the same way.

# Outcomes

Aggregate maps free-text statuses through an ordered rule table
(Approved/Ratified, Rejected/Repealed, Withdrawn/Lapsed) and reports
success rates overall and for government versus group authors.

# Participation

Analyze measures commitment against a full chamber (350 seats by default)
and detects critical absences and broken party blocks.

# Options

Package-level functions use DefaultOptions. Use New for another chamber:

	a := stats.New(stats.Options{ChamberSize: 265})
	report := a.Dashboard(initiatives)
*/
package stats
