package model

import "time"

const (
	// DefaultInitialBudget is used when no budget has been configured
	DefaultInitialBudget = 500
	// MinInitialBudget is the smallest budget accepted at setup or import
	MinInitialBudget = 100
	// MinParticipants is the smallest auction accepted at setup or import
	MinParticipants = 2
)

// RoleCeilings is the maximum number of players of each role per roster
var RoleCeilings = map[Role]int{
	RoleGoalkeeper: 3,
	RoleDefender:   8,
	RoleMidfielder: 8,
	RoleAttacker:   6,
}

// Session is the whole auction: who is bidding and what is on offer.
// Participants keep setup order; the first one is the operator's own team.
type Session struct {
	Participants  []*Participant
	Players       []*Player
	InitialBudget int
	UpdatedAt     time.Time
}

// NewSession returns an empty session with the default budget
func NewSession() *Session {
	return &Session{
		Participants:  []*Participant{},
		Players:       []*Player{},
		InitialBudget: DefaultInitialBudget,
	}
}

// FirstParticipant returns the operator's own team, or nil when empty
func (s *Session) FirstParticipant() *Participant {
	if len(s.Participants) == 0 {
		return nil
	}
	return s.Participants[0]
}

// HasParticipants reports whether setup or import has happened
func (s *Session) HasParticipants() bool {
	return len(s.Participants) > 0
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := &Session{
		Participants:  make([]*Participant, len(s.Participants)),
		Players:       make([]*Player, len(s.Players)),
		InitialBudget: s.InitialBudget,
		UpdatedAt:     s.UpdatedAt,
	}
	for i, p := range s.Participants {
		c.Participants[i] = p.Clone()
	}
	for i, p := range s.Players {
		c.Players[i] = p.Clone()
	}
	return c
}
