package model

import "strings"

// PlayerID uniquely identifies a player in the catalog.
// It is stable across export and re-import.
type PlayerID int

// Role is the fantasy-football position of a player
type Role string

const (
	RoleGoalkeeper Role = "P"
	RoleDefender   Role = "D"
	RoleMidfielder Role = "C"
	RoleAttacker   Role = "A"
)

// Roles lists the four roles in display order
var Roles = []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleAttacker}

// Valid reports whether r is one of the four known roles
func (r Role) Valid() bool {
	switch r {
	case RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleAttacker:
		return true
	}
	return false
}

// Label returns the plural English label used in export sheets
func (r Role) Label() string {
	switch r {
	case RoleGoalkeeper:
		return "Goalkeepers"
	case RoleDefender:
		return "Defenders"
	case RoleMidfielder:
		return "Midfielders"
	case RoleAttacker:
		return "Attackers"
	}
	return string(r)
}

// ParseRole converts user input ("d", "Defender", "difensore") to a Role.
// Returns false for anything that is not one of the four roles.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "P", "PORTIERE", "GOALKEEPER", "GK":
		return RoleGoalkeeper, true
	case "D", "DIFENSORE", "DEFENDER":
		return RoleDefender, true
	case "C", "CENTROCAMPISTA", "MIDFIELDER":
		return RoleMidfielder, true
	case "A", "ATTACCANTE", "ATTACKER", "FORWARD":
		return RoleAttacker, true
	}
	return "", false
}

// PlayerStatus is the ownership state of a player
type PlayerStatus string

const (
	StatusFree  PlayerStatus = "free"
	StatusOwned PlayerStatus = "owned"
)

// Player is one draftable athlete from the catalog.
// Status, OwnedBy and PaidPrice move together: a player is owned exactly
// when OwnedBy and PaidPrice are both non-nil.
type Player struct {
	ID         PlayerID `json:"id"`
	Name       string   `json:"name"`
	Role       Role     `json:"role"`
	RoleDetail string   `json:"roleDetail,omitempty"` // role text as written in the sheet
	Team       string   `json:"team"`

	BaseValue          float64 `json:"baseValue"`
	BaseValueAlt       float64 `json:"baseValueAlt"`
	TrendDelta         float64 `json:"trendDelta"`
	BaseValueMarket    float64 `json:"baseValueMarket"`
	BaseValueAltMarket float64 `json:"baseValueAltMarket"`
	TrendDeltaMarket   float64 `json:"trendDeltaMarket"`
	MeritValue         float64 `json:"meritValue"`
	MeritValueMarket   float64 `json:"meritValueMarket"`
	Tier               *int    `json:"tier,omitempty"`

	Status    PlayerStatus `json:"status"`
	OwnedBy   *string      `json:"ownedBy"`
	PaidPrice *int         `json:"paidPrice"`
}

// IsOwned reports whether the player has been acquired
func (p *Player) IsOwned() bool {
	return p.Status == StatusOwned
}

// IsOwnedBy reports whether the player is owned by the named participant
func (p *Player) IsOwnedBy(name string) bool {
	return p.IsOwned() && p.OwnedBy != nil && *p.OwnedBy == name
}

// Price returns the paid price, or 0 for free players
func (p *Player) Price() int {
	if p.PaidPrice == nil {
		return 0
	}
	return *p.PaidPrice
}

// Owner returns the owning participant name, or "" for free players
func (p *Player) Owner() string {
	if p.OwnedBy == nil {
		return ""
	}
	return *p.OwnedBy
}

// MarkOwned sets the ownership fields together
func (p *Player) MarkOwned(owner string, price int) {
	p.Status = StatusOwned
	p.OwnedBy = &owner
	p.PaidPrice = &price
}

// MarkFree clears the ownership fields together
func (p *Player) MarkFree() {
	p.Status = StatusFree
	p.OwnedBy = nil
	p.PaidPrice = nil
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	if p.Tier != nil {
		t := *p.Tier
		c.Tier = &t
	}
	if p.OwnedBy != nil {
		o := *p.OwnedBy
		c.OwnedBy = &o
	}
	if p.PaidPrice != nil {
		pp := *p.PaidPrice
		c.PaidPrice = &pp
	}
	return &c
}
