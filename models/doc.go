// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines input records and report types shared by every layer.

# Input Types

Initiatives arrive as JSON from a file or the initiative table:

  - Initiative: id, reference, title, status, author, voting
  - Voting: exists, yes, no, abstentions, presentCount, result, noVoteList
  - VoteBreakdown: totals and desglose (per-party counts)
  - Deputy: id, displayName, partyOrGroup, formation, avatar

Every nested field is optional. Missing numbers read as 0 and missing
collections as empty.

# Report Types

Field names are camelCase to match the dashboard frontend:

  - ConsensusMetric: consensusIndex, label, color
  - ConsensusRanking: topConsensus, topDivisive
  - DashboardStats: globalSuccessRate, breakdown, authorEfficiency
  - ParticipationStats: globalCommitment, totals, rankings, anomalies
  - DashboardReport: all three reports for one dataset

# Constants

Consensus labels:

	LabelNoVote          = "No Vote"
	LabelUnanimous       = "Unanimous"
	LabelStrongAgreement = "Strong Agreement"
	LabelCloseSplit      = "Close Split"
	LabelDivision        = "Division"

Close Split has two colors: ColorWarning for a 45-55 split and ColorRisk
when Yes fell below 45.
*/
package models
