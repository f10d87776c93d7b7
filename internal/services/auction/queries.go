package auction

import (
	"context"

	"github.com/mcoot/fantasta/internal/model"
)

// Read-only views. Results are copies; mutating them has no effect on the
// session.

// Session returns a copy of the whole session
func (s *Service) Session(ctx context.Context) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Player returns one catalog player
func (s *Service) Player(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ledger.Player(id)
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return p.Clone(), nil
}

// Players returns the catalog players matching filter
func (s *Service) Players(ctx context.Context, filter model.PlayerFilter) []*model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlayers(s.ledger.Players(filter))
}

// Participants returns every participant in setup order
func (s *Service) Participants(ctx context.Context) []*model.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Participant, len(s.session.Participants))
	for i, p := range s.session.Participants {
		out[i] = p.Clone()
	}
	return out
}

// Participant returns one participant
func (s *Service) Participant(ctx context.Context, name string) (*model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.ledger.Participant(name)
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	return p.Clone(), nil
}

// Roster returns the catalog players a participant owns
func (s *Service) Roster(ctx context.Context, name string) ([]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ledger.Participant(name); !ok {
		return nil, model.ErrParticipantNotFound
	}
	return clonePlayers(s.ledger.Roster(name)), nil
}

// Summary reports a participant's spending
func (s *Service) Summary(ctx context.Context, name string) (model.ParticipantSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.ledger.Summary(name)
	if !ok {
		return model.ParticipantSummary{}, model.ErrParticipantNotFound
	}
	return summary, nil
}

// Summaries reports every participant's spending
func (s *Service) Summaries(ctx context.Context) []model.ParticipantSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Summaries()
}

// CanAcquire checks a participant's role ceiling
func (s *Service) CanAcquire(ctx context.Context, name string, role model.Role) model.Eligibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CanAcquire(name, role)
}

// Statistics counts the catalog per role
func (s *Service) Statistics(ctx context.Context) model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Statistics()
}

// Teams lists the clubs in the catalog
func (s *Service) Teams(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Teams()
}

// History lists purchases, most expensive first
func (s *Service) History(ctx context.Context) []*model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlayers(s.ledger.History())
}

// Results aggregates the auction
func (s *Service) Results(ctx context.Context) model.AuctionResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Results(s.clock.Now())
}

func clonePlayers(players []*model.Player) []*model.Player {
	out := make([]*model.Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
