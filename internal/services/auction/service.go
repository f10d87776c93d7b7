package auction

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/fantasta/internal/dependencies/clock"
	"github.com/mcoot/fantasta/internal/dependencies/random"
	"github.com/mcoot/fantasta/internal/metrics"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/services/ledger"
	"github.com/mcoot/fantasta/internal/services/persistence"
)

// Service is the process-wide handle on the auction session. Every method
// holds one mutex, so operations run strictly one at a time, and every
// successful mutation is followed by a full save.
type Service struct {
	mu      sync.Mutex
	session *model.Session
	ledger  *ledger.Ledger

	persistence *persistence.Service
	clock       clock.Clock
	random      random.Random
	metrics     *metrics.Metrics
	logger      *slog.Logger
	opts        ledger.Options
}

// New creates a service holding an empty session
func New(
	persistence *persistence.Service,
	clock clock.Clock,
	random random.Random,
	metrics *metrics.Metrics,
	logger *slog.Logger,
	opts ledger.Options,
) *Service {
	s := &Service{
		persistence: persistence,
		clock:       clock,
		random:      random,
		metrics:     metrics,
		logger:      logger,
		opts:        opts,
	}
	s.swap(model.NewSession())
	return s
}

// Restore replaces the in-memory session with the stored one, if any.
// It reports whether a stored session was found.
func (s *Service) Restore(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.persistence.Load(ctx)
	if stored == nil {
		s.logger.Info("no stored session, starting empty")
		return false
	}
	s.swap(stored)
	s.logger.Info("session restored",
		slog.Int("participants", len(stored.Participants)),
		slog.Int("players", len(stored.Players)),
		slog.Int("initial_budget", stored.InitialBudget),
	)
	return true
}

// Setup creates the participants. Names are trimmed and must be non-empty
// and unique; at least two are needed. A zero budget selects the default.
// When the session already has participants (after an import or a restore)
// it is kept as is and Setup reports false.
func (s *Service) Setup(ctx context.Context, names []string, budget int) (*model.Session, bool, error) {
	if budget == 0 {
		budget = model.DefaultInitialBudget
	}
	cleaned, err := validateSetup(names, budget)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.HasParticipants() {
		s.logger.Info("setup skipped, session already has participants",
			slog.Int("participants", len(s.session.Participants)),
		)
		return s.session.Clone(), false, nil
	}

	next := s.session.Clone()
	next.InitialBudget = budget
	next.Participants = make([]*model.Participant, 0, len(cleaned))
	for _, name := range cleaned {
		next.Participants = append(next.Participants, model.NewParticipant(name, budget))
	}
	for _, p := range next.Players {
		p.MarkFree()
	}
	s.commit(ctx, next)

	s.logger.Info("auction set up",
		slog.Int("participants", len(cleaned)),
		slog.Int("initial_budget", budget),
	)
	return s.session.Clone(), true, nil
}

func validateSetup(names []string, budget int) ([]string, error) {
	if budget < model.MinInitialBudget {
		return nil, model.ErrBudgetTooLow
	}
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, model.ErrEmptyParticipantName
		}
		if _, dup := seen[n]; dup {
			return nil, model.ErrDuplicateParticipant
		}
		seen[n] = struct{}{}
		cleaned = append(cleaned, n)
	}
	if len(cleaned) < model.MinParticipants {
		return nil, model.ErrTooFewParticipants
	}
	return cleaned, nil
}

// Reset clears the store and starts over with an empty session
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.persistence.Clear(ctx)
	s.swap(model.NewSession())
	s.refreshGauges()
	s.logger.Info("session reset")
}

// Undo restores the state saved before the last successful change. Only
// one level is kept.
func (s *Service) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.persistence.LoadBackup(ctx)
	if backup == nil {
		return model.ErrNoBackup
	}
	s.persistence.DropBackup(ctx)
	s.swap(backup)
	s.session.UpdatedAt = s.clock.Now()
	s.persistence.Save(ctx, s.session)
	s.refreshGauges()

	s.logger.Info("last change undone")
	return nil
}

// swap installs a session and rebuilds the ledger around it. Callers hold mu.
func (s *Service) swap(session *model.Session) {
	s.session = session
	s.ledger = ledger.New(session, s.opts)
}

// commit backs up the current state, installs next and saves it. Callers
// hold mu.
func (s *Service) commit(ctx context.Context, next *model.Session) {
	s.persistence.SaveBackup(ctx, s.session)
	next.UpdatedAt = s.clock.Now()
	s.swap(next)
	s.persistence.Save(ctx, s.session)
	s.refreshGauges()
}

func (s *Service) refreshGauges() {
	stats := s.ledger.Statistics()
	s.metrics.SetCatalog(stats.Total, stats.Owned)
	budgets := make(map[string]int, len(s.session.Participants))
	for _, p := range s.session.Participants {
		budgets[p.Name] = p.Budget
	}
	s.metrics.SetBudgets(budgets)
}
