package model

import "time"

// Operation names a ledger mutation
type Operation string

const (
	OpAcquire     Operation = "acquire"
	OpRevisePrice Operation = "revise_price"
	OpRelease     Operation = "release"
)

// Eligibility is the answer to "may this participant take another player of
// this role?". Reason is set when Allowed is false.
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// RoleStats counts catalog players of one role
type RoleStats struct {
	Total int `json:"total"`
	Owned int `json:"owned"`
	Free  int `json:"free"`
}

// Stats summarises the catalog
type Stats struct {
	Total int                `json:"total"`
	Owned int                `json:"owned"`
	Free  int                `json:"free"`
	Roles map[Role]RoleStats `json:"roles"`
}

// ParticipantSummary is the per-bidder view shown in roster panels and exports
type ParticipantSummary struct {
	Name         string       `json:"name"`
	Budget       int          `json:"budget"`
	TotalPlayers int          `json:"totalPlayers"`
	TotalSpent   int          `json:"totalSpent"`
	RoleCounts   map[Role]int `json:"roleCounts"`
	AveragePrice float64      `json:"averagePrice"`
}

// AuctionResults aggregates the auction for the JSON results export
type AuctionResults struct {
	Timestamp    time.Time            `json:"timestamp"`
	Participants []ParticipantSummary `json:"participants"`
	TotalPlayers int                  `json:"totalPlayers"`
	TotalOwned   int                  `json:"totalOwned"`
	AveragePrice float64              `json:"averagePrice"`
}

// PlayerFilter narrows catalog queries. Zero values match everything.
type PlayerFilter struct {
	Role   Role
	Team   string
	Status PlayerStatus
	Query  string // case-insensitive substring of the name
}
