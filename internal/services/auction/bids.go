package auction

import (
	"context"
	"log/slog"

	"github.com/mcoot/fantasta/internal/model"
)

// Acquire assigns a free player to a participant
func (s *Service) Acquire(ctx context.Context, id model.PlayerID, participant string, price int) error {
	return s.mutate(ctx, model.OpAcquire, id, participant, func() error {
		return s.ledger.Acquire(id, participant, price)
	}, slog.Int("price", price))
}

// RevisePrice corrects the price a participant paid
func (s *Service) RevisePrice(ctx context.Context, id model.PlayerID, participant string, price int) error {
	return s.mutate(ctx, model.OpRevisePrice, id, participant, func() error {
		return s.ledger.RevisePrice(id, participant, price)
	}, slog.Int("price", price))
}

// Release returns a player to the pool with a full refund
func (s *Service) Release(ctx context.Context, id model.PlayerID, participant string) error {
	return s.mutate(ctx, model.OpRelease, id, participant, func() error {
		return s.ledger.Release(id, participant)
	})
}

// mutate runs one ledger operation. On success the pre-operation state
// becomes the undo backup and the new state is saved.
func (s *Service) mutate(ctx context.Context, op model.Operation, id model.PlayerID, participant string, apply func() error, attrs ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.session.Clone()
	err := apply()
	s.metrics.ObserveOperation(string(op), err)

	attrs = append(attrs,
		slog.String("operation", string(op)),
		slog.Int("player_id", int(id)),
		slog.String("participant", participant),
	)
	if err != nil {
		s.logger.Info("operation rejected", append(attrs, slog.String("reason", err.Error()))...)
		return err
	}

	s.persistence.SaveBackup(ctx, before)
	s.session.UpdatedAt = s.clock.Now()
	s.persistence.Save(ctx, s.session)
	s.refreshGauges()

	s.logger.Info("operation applied", attrs...)
	return nil
}
