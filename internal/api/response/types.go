package response

import (
	"time"

	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/services/auction"
)

// Player represents a catalog player in API responses
type Player struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Role               string  `json:"role"`
	RoleDetail         string  `json:"role_detail,omitempty"`
	Team               string  `json:"team"`
	BaseValue          float64 `json:"base_value"`
	BaseValueAlt       float64 `json:"base_value_alt"`
	TrendDelta         float64 `json:"trend_delta"`
	BaseValueMarket    float64 `json:"base_value_market"`
	BaseValueAltMarket float64 `json:"base_value_alt_market"`
	TrendDeltaMarket   float64 `json:"trend_delta_market"`
	MeritValue         float64 `json:"merit_value"`
	MeritValueMarket   float64 `json:"merit_value_market"`
	Tier               *int    `json:"tier,omitempty"`
	Status             string  `json:"status"`
	OwnedBy            *string `json:"owned_by"`
	PaidPrice          *int    `json:"paid_price"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:                 int(p.ID),
		Name:               p.Name,
		Role:               string(p.Role),
		RoleDetail:         p.RoleDetail,
		Team:               p.Team,
		BaseValue:          p.BaseValue,
		BaseValueAlt:       p.BaseValueAlt,
		TrendDelta:         p.TrendDelta,
		BaseValueMarket:    p.BaseValueMarket,
		BaseValueAltMarket: p.BaseValueAltMarket,
		TrendDeltaMarket:   p.TrendDeltaMarket,
		MeritValue:         p.MeritValue,
		MeritValueMarket:   p.MeritValueMarket,
		Tier:               p.Tier,
		Status:             string(p.Status),
		OwnedBy:            p.OwnedBy,
		PaidPrice:          p.PaidPrice,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// RosterEntry represents an acquisition in a participant's roster
type RosterEntry struct {
	PlayerID   int     `json:"player_id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Team       string  `json:"team"`
	BaseValue  float64 `json:"base_value"`
	MeritValue float64 `json:"merit_value"`
	PaidPrice  int     `json:"paid_price"`
}

// Participant represents a bidder with their roster
type Participant struct {
	Name   string        `json:"name"`
	Budget int           `json:"budget"`
	Roster []RosterEntry `json:"roster"`
}

// ParticipantFromModel converts model.Participant
func ParticipantFromModel(p *model.Participant) Participant {
	roster := make([]RosterEntry, len(p.Roster))
	for i, e := range p.Roster {
		roster[i] = RosterEntry{
			PlayerID:   int(e.PlayerID),
			Name:       e.Name,
			Role:       string(e.Role),
			Team:       e.Team,
			BaseValue:  e.BaseValue,
			MeritValue: e.MeritValue,
			PaidPrice:  e.PaidPrice,
		}
	}
	return Participant{
		Name:   p.Name,
		Budget: p.Budget,
		Roster: roster,
	}
}

// Session represents the whole auction state
type Session struct {
	InitialBudget int           `json:"initial_budget"`
	Participants  []Participant `json:"participants"`
	PlayerCount   int           `json:"player_count"`
	OwnedCount    int           `json:"owned_count"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

// SessionFromModel converts model.Session. Players are summarised as counts;
// the catalog itself is served by the players endpoint.
func SessionFromModel(s *model.Session) Session {
	participants := make([]Participant, len(s.Participants))
	for i, p := range s.Participants {
		participants[i] = ParticipantFromModel(p)
	}
	owned := 0
	for _, p := range s.Players {
		if p.IsOwned() {
			owned++
		}
	}
	var updated *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updated = &t
	}
	return Session{
		InitialBudget: s.InitialBudget,
		Participants:  participants,
		PlayerCount:   len(s.Players),
		OwnedCount:    owned,
		UpdatedAt:     updated,
	}
}

// SetupResponse is the response after setting up participants
type SetupResponse struct {
	Created bool    `json:"created"`
	Session Session `json:"session"`
}

// ParticipantDetail is a participant with their spending summary
type ParticipantDetail struct {
	Participant
	TotalSpent   int            `json:"total_spent"`
	AveragePrice float64        `json:"average_price"`
	RoleCounts   map[string]int `json:"role_counts"`
}

// ParticipantDetailFromModel combines a participant and their summary
func ParticipantDetailFromModel(p *model.Participant, s model.ParticipantSummary) ParticipantDetail {
	counts := make(map[string]int, len(s.RoleCounts))
	for role, n := range s.RoleCounts {
		counts[string(role)] = n
	}
	return ParticipantDetail{
		Participant:  ParticipantFromModel(p),
		TotalSpent:   s.TotalSpent,
		AveragePrice: s.AveragePrice,
		RoleCounts:   counts,
	}
}

// Eligibility is the answer to a can-acquire query
type Eligibility struct {
	Participant string `json:"participant"`
	Role        string `json:"role"`
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason,omitempty"`
}

// RoleStats counts players of one role
type RoleStats struct {
	Total int `json:"total"`
	Owned int `json:"owned"`
	Free  int `json:"free"`
}

// Stats summarises the catalog
type Stats struct {
	Total int                  `json:"total"`
	Owned int                  `json:"owned"`
	Free  int                  `json:"free"`
	Roles map[string]RoleStats `json:"roles"`
}

// StatsFromModel converts model.Stats
func StatsFromModel(s model.Stats) Stats {
	roles := make(map[string]RoleStats, len(s.Roles))
	for role, rs := range s.Roles {
		roles[string(role)] = RoleStats(rs)
	}
	return Stats{
		Total: s.Total,
		Owned: s.Owned,
		Free:  s.Free,
		Roles: roles,
	}
}

// Teams lists the clubs in the catalog
type Teams struct {
	Teams []string `json:"teams"`
}

// CatalogLoaded is the response after a catalog upload
type CatalogLoaded struct {
	Players  int      `json:"players"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings"`
}

// CatalogLoadedFromSummary converts auction.CatalogSummary
func CatalogLoadedFromSummary(s *auction.CatalogSummary) CatalogLoaded {
	return CatalogLoaded{
		Players:  s.Players,
		Skipped:  s.Skipped,
		Warnings: s.Warnings,
	}
}

// Imported is the response after a re-import
type Imported struct {
	Participants int        `json:"participants"`
	Players      int        `json:"players"`
	Owned        int        `json:"owned"`
	ExportedAt   *time.Time `json:"exported_at,omitempty"`
	Warnings     []string   `json:"warnings"`
}

// ImportedFromSummary converts auction.ImportSummary
func ImportedFromSummary(s *auction.ImportSummary) Imported {
	var exported *time.Time
	if !s.ExportedAt.IsZero() {
		t := s.ExportedAt
		exported = &t
	}
	return Imported{
		Participants: s.Participants,
		Players:      s.Players,
		Owned:        s.Owned,
		ExportedAt:   exported,
		Warnings:     s.Warnings,
	}
}
