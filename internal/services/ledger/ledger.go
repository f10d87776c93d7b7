package ledger

import (
	"fmt"

	"github.com/mcoot/fantasta/internal/model"
)

// Options tunes ledger policy
type Options struct {
	// EnforceRoleCeilings makes Acquire reject a player whose role is already
	// at its ceiling for the bidder. When false the ceiling is advisory and
	// only reported through CanAcquire.
	EnforceRoleCeilings bool
}

// Ledger owns the canonical participants and players of one session and
// applies the three mutations (acquire, revise price, release) atomically:
// each either fully applies or returns a *model.RejectedError with nothing
// changed.
type Ledger struct {
	session      *model.Session
	players      map[model.PlayerID]*model.Player
	participants map[string]*model.Participant
	opts         Options
}

// New wraps a session. The ledger takes ownership of it; callers must not
// mutate the session directly afterwards.
func New(session *model.Session, opts Options) *Ledger {
	if session == nil {
		session = model.NewSession()
	}
	l := &Ledger{
		session:      session,
		players:      make(map[model.PlayerID]*model.Player, len(session.Players)),
		participants: make(map[string]*model.Participant, len(session.Participants)),
		opts:         opts,
	}
	for _, p := range session.Players {
		if _, dup := l.players[p.ID]; !dup {
			l.players[p.ID] = p
		}
	}
	for _, p := range session.Participants {
		if p.Roster == nil {
			p.Roster = []model.RosterEntry{}
		}
		l.participants[p.Name] = p
	}
	return l
}

// Session returns the wrapped session
func (l *Ledger) Session() *model.Session {
	return l.session
}

// Acquire assigns a free player to a participant for price
func (l *Ledger) Acquire(id model.PlayerID, participantName string, price int) error {
	player, ok := l.players[id]
	if !ok {
		return model.Reject(model.OpAcquire, model.ErrPlayerNotFound, "player %d does not exist", id)
	}
	if player.IsOwned() {
		return model.Reject(model.OpAcquire, model.ErrPlayerOwned, "%s is already owned by %s", player.Name, player.Owner())
	}
	participant, ok := l.participants[participantName]
	if !ok {
		return model.Reject(model.OpAcquire, model.ErrParticipantNotFound, "participant %q does not exist", participantName)
	}
	if price < 1 {
		return model.Reject(model.OpAcquire, model.ErrInvalidPrice, "bid must be at least 1, got %d", price)
	}
	if participant.Budget < price {
		return model.Reject(model.OpAcquire, model.ErrInsufficientBudget,
			"%s has %d left, bid was %d", participant.Name, participant.Budget, price)
	}
	if l.opts.EnforceRoleCeilings {
		if e := l.CanAcquire(participantName, player.Role); !e.Allowed {
			return model.Reject(model.OpAcquire, model.ErrRoleCeiling, "%s", e.Reason)
		}
	}

	player.MarkOwned(participant.Name, price)
	participant.Budget -= price
	participant.Roster = append(participant.Roster, model.NewRosterEntry(player, price))
	return nil
}

// RevisePrice corrects the price a participant paid for a player they own.
// A lower price refunds the difference; a higher one charges it.
func (l *Ledger) RevisePrice(id model.PlayerID, participantName string, newPrice int) error {
	player, participant, err := l.ownedPair(model.OpRevisePrice, id, participantName)
	if err != nil {
		return err
	}
	if newPrice < 1 {
		return model.Reject(model.OpRevisePrice, model.ErrInvalidPrice, "price must be at least 1, got %d", newPrice)
	}

	delta := newPrice - player.Price()
	if participant.Budget < delta {
		return model.Reject(model.OpRevisePrice, model.ErrInsufficientBudget,
			"%s has %d left, price increase is %d", participant.Name, participant.Budget, delta)
	}

	player.MarkOwned(participant.Name, newPrice)
	participant.Budget -= delta
	if i := participant.RosterIndex(id); i >= 0 {
		participant.Roster[i].PaidPrice = newPrice
	}
	return nil
}

// Release returns a player to the free pool and refunds the owner in full
func (l *Ledger) Release(id model.PlayerID, participantName string) error {
	player, participant, err := l.ownedPair(model.OpRelease, id, participantName)
	if err != nil {
		return err
	}

	participant.Budget += player.Price()
	player.MarkFree()
	if i := participant.RosterIndex(id); i >= 0 {
		participant.Roster = append(participant.Roster[:i], participant.Roster[i+1:]...)
	}
	return nil
}

// ownedPair resolves a player and the participant that must own it
func (l *Ledger) ownedPair(op model.Operation, id model.PlayerID, participantName string) (*model.Player, *model.Participant, error) {
	player, ok := l.players[id]
	if !ok {
		return nil, nil, model.Reject(op, model.ErrPlayerNotFound, "player %d does not exist", id)
	}
	participant, ok := l.participants[participantName]
	if !ok {
		return nil, nil, model.Reject(op, model.ErrParticipantNotFound, "participant %q does not exist", participantName)
	}
	if !player.IsOwned() {
		return nil, nil, model.Reject(op, model.ErrPlayerNotOwned, "%s is not owned", player.Name)
	}
	if !player.IsOwnedBy(participantName) {
		return nil, nil, model.Reject(op, model.ErrNotOwner, "%s is owned by %s, not %s", player.Name, player.Owner(), participantName)
	}
	return player, participant, nil
}

// CanAcquire checks the role ceiling for a participant. It never mutates.
func (l *Ledger) CanAcquire(participantName string, role model.Role) model.Eligibility {
	participant, ok := l.participants[participantName]
	if !ok {
		return model.Eligibility{Reason: fmt.Sprintf("participant %q does not exist", participantName)}
	}
	ceiling, ok := model.RoleCeilings[role]
	if !ok {
		return model.Eligibility{Allowed: true}
	}
	if n := participant.RoleCount(role); n >= ceiling {
		return model.Eligibility{
			Reason: fmt.Sprintf("%s already has %d/%d %s", participant.Name, n, ceiling, role.Label()),
		}
	}
	return model.Eligibility{Allowed: true}
}

// Statistics counts the catalog per role. Players with an unrecognised
// role count towards the totals only.
func (l *Ledger) Statistics() model.Stats {
	stats := model.Stats{Roles: make(map[model.Role]model.RoleStats, len(model.Roles))}
	for _, r := range model.Roles {
		stats.Roles[r] = model.RoleStats{}
	}

	for _, p := range l.session.Players {
		stats.Total++
		owned := p.IsOwned()
		if owned {
			stats.Owned++
		}
		rs, ok := stats.Roles[p.Role]
		if !ok {
			continue
		}
		rs.Total++
		if owned {
			rs.Owned++
		}
		stats.Roles[p.Role] = rs
	}

	stats.Free = stats.Total - stats.Owned
	for r, rs := range stats.Roles {
		rs.Free = rs.Total - rs.Owned
		stats.Roles[r] = rs
	}
	return stats
}
