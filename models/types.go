// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Consensus labels
const (
	LabelNoVote          = "No Vote"
	LabelUnanimous       = "Unanimous"
	LabelStrongAgreement = "Strong Agreement"
	LabelCloseSplit      = "Close Split"
	LabelDivision        = "Division"
)

// Consensus colors
const (
	ColorNeutral  = "#9ca3af"
	ColorStrong   = "#15803d"
	ColorPositive = "#4ade80"
	ColorWarning  = "#f59e0b"
	ColorRisk     = "#ef4444"
	ColorCaution  = "#f97316"
)

// Input types

type Initiative struct {
	ID        string  `json:"id,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Title     string  `json:"title,omitempty"`
	Status    string  `json:"status"`
	Author    string  `json:"author"`
	Voting    *Voting `json:"voting,omitempty"`
}

// Name is the label reports use for the initiative
func (i Initiative) Name() string {
	switch {
	case i.Title != "":
		return i.Title
	case i.Reference != "":
		return i.Reference
	default:
		return i.ID
	}
}

type Voting struct {
	Exists          bool           `json:"exists"`
	Yes             int            `json:"yes"`
	No              int            `json:"no"`
	Abstentions     int            `json:"abstentions"`
	PresentCount    *int           `json:"presentCount,omitempty"`
	Result          *VoteBreakdown `json:"result,omitempty"`
	NoVoteList      []Deputy       `json:"noVoteList,omitempty"`
	MissingDeputies []Deputy       `json:"missingDeputies,omitempty"`
}

// AbsentDeputies returns the individual no-vote list, falling back to
// missingDeputies when noVoteList was not supplied.
func (v *Voting) AbsentDeputies() []Deputy {
	if v == nil {
		return nil
	}
	if v.NoVoteList != nil {
		return v.NoVoteList
	}
	return v.MissingDeputies
}

type VoteBreakdown struct {
	Totals   *VoteTotals `json:"totals,omitempty"`
	Desglose *Desglose   `json:"desglose,omitempty"`
}

type VoteTotals struct {
	Favor       int  `json:"favor"`
	Against     int  `json:"against"`
	Abstain     int  `json:"abstain"`
	Present     *int `json:"present,omitempty"`
	NoVoteCount int  `json:"noVoteCount"`
}

// Desglose holds per-actor vote counts, keyed by party/actor code.
type Desglose struct {
	Yes        map[string]int `json:"yes,omitempty"`
	No         map[string]int `json:"no,omitempty"`
	Abstention map[string]int `json:"abstention,omitempty"`
	NoVote     map[string]int `json:"noVote,omitempty"`
}

type Deputy struct {
	ID           string `json:"id,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	PartyOrGroup string `json:"partyOrGroup,omitempty"`
	Formation    string `json:"formation,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
}

// Consensus types

type ConsensusMetric struct {
	ConsensusIndex int    `json:"consensusIndex"`
	Label          string `json:"label"`
	Color          string `json:"color"`
}

type RankedInitiative struct {
	Initiative Initiative      `json:"initiative"`
	Metric     ConsensusMetric `json:"metric"`
}

type ConsensusRanking struct {
	TopConsensus []RankedInitiative `json:"topConsensus"`
	TopDivisive  []RankedInitiative `json:"topDivisive"`
}

// Outcome types

type OutcomeBreakdown struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Neutral int `json:"neutral"`
}

type AuthorBucket struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Rate    int `json:"rate"`
}

type AuthorEfficiency struct {
	Gobierno AuthorBucket `json:"gobierno"`
	Groups   AuthorBucket `json:"groups"`
}

type DashboardStats struct {
	GlobalSuccessRate int              `json:"globalSuccessRate"`
	Breakdown         OutcomeBreakdown `json:"breakdown"`
	AuthorEfficiency  AuthorEfficiency `json:"authorEfficiency"`
}

// Participation types

type PartyAbsence struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

type CriticalAbsence struct {
	Initiative string `json:"initiative"`
	Margin     int    `json:"margin"`
	Missing    int    `json:"missing"`
}

type BrokenBlock struct {
	Initiative string   `json:"initiative"`
	Party      string   `json:"party"`
	Details    []string `json:"details"`
}

type DeputyAbsence struct {
	Name   string `json:"name"`
	Party  string `json:"party"`
	Count  int    `json:"count"`
	Avatar string `json:"avatar,omitempty"`
}

type ParticipationStats struct {
	GlobalCommitment   int               `json:"globalCommitment"`
	TotalVoted         int               `json:"totalVoted"`
	TotalPossibleVotes int               `json:"totalPossibleVotes"`
	TotalAbstentions   int               `json:"totalAbstentions"`
	TotalNoVotes       int               `json:"totalNoVotes"`
	AbsenteeismRanking []PartyAbsence    `json:"absenteeismRanking"`
	CriticalAbsences   []CriticalAbsence `json:"criticalAbsences"`
	BrokenBlocks       []BrokenBlock     `json:"brokenBlocks"`
	DeputyRanking      []DeputyAbsence   `json:"deputyRanking"`

	// TotalPresent sums reported attendance but has no consumer on the wire yet.
	TotalPresent int `json:"-"`
}

// Combined report

type DashboardReport struct {
	Outcomes      DashboardStats     `json:"outcomes"`
	Participation ParticipationStats `json:"participation"`
	Ranking       ConsensusRanking   `json:"ranking"`
}

// API types

type AffinityResponse struct {
	Target    string `json:"target"`
	Reference string `json:"reference"`
	Affinity  int    `json:"affinity"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
