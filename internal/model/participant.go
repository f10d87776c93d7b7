package model

// RosterEntry is a snapshot of a player taken when a participant acquired them
type RosterEntry struct {
	PlayerID   PlayerID `json:"id"`
	Name       string   `json:"name"`
	Role       Role     `json:"role"`
	Team       string   `json:"team"`
	BaseValue  float64  `json:"baseValue"`
	MeritValue float64  `json:"meritValue"`
	PaidPrice  int      `json:"paidPrice"`
}

// NewRosterEntry snapshots a player at the given price
func NewRosterEntry(p *Player, price int) RosterEntry {
	return RosterEntry{
		PlayerID:   p.ID,
		Name:       p.Name,
		Role:       p.Role,
		Team:       p.Team,
		BaseValue:  p.BaseValue,
		MeritValue: p.MeritValue,
		PaidPrice:  price,
	}
}

// Participant is one bidder in the auction.
// Budget always equals the session's initial budget minus the sum of
// PaidPrice over Roster.
type Participant struct {
	Name   string        `json:"name"`
	Budget int           `json:"budget"`
	Roster []RosterEntry `json:"players"`
}

// NewParticipant creates a participant with an empty roster
func NewParticipant(name string, budget int) *Participant {
	return &Participant{
		Name:   name,
		Budget: budget,
		Roster: []RosterEntry{},
	}
}

// RosterIndex returns the position of the player in the roster, or -1
func (p *Participant) RosterIndex(id PlayerID) int {
	for i := range p.Roster {
		if p.Roster[i].PlayerID == id {
			return i
		}
	}
	return -1
}

// RoleCount counts roster entries with the given role
func (p *Participant) RoleCount(role Role) int {
	n := 0
	for _, e := range p.Roster {
		if e.Role == role {
			n++
		}
	}
	return n
}

// TotalSpent sums the paid prices across the roster
func (p *Participant) TotalSpent() int {
	total := 0
	for _, e := range p.Roster {
		total += e.PaidPrice
	}
	return total
}

// Clone returns a deep copy of the participant
func (p *Participant) Clone() *Participant {
	c := *p
	c.Roster = make([]RosterEntry, len(p.Roster))
	copy(c.Roster, p.Roster)
	return &c
}
