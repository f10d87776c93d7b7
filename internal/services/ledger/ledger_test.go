package ledger

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fantasta/internal/model"
)

type LedgerSuite struct {
	suite.Suite
	session *model.Session
	ledger  *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.session = newSession(500, "Alice", "Bob")
	s.session.Players = []*model.Player{
		newPlayer(1, "Rossi", model.RoleGoalkeeper, "Inter"),
		newPlayer(7, "Bianchi", model.RoleAttacker, "Milan"),
		newPlayer(8, "Verdi", model.RoleDefender, "Roma"),
		newPlayer(9, "Neri", model.RoleMidfielder, "Inter"),
	}
	s.ledger = New(s.session, Options{})
}

func newSession(budget int, names ...string) *model.Session {
	session := model.NewSession()
	session.InitialBudget = budget
	for _, n := range names {
		session.Participants = append(session.Participants, model.NewParticipant(n, budget))
	}
	return session
}

func newPlayer(id int, name string, role model.Role, team string) *model.Player {
	return &model.Player{
		ID:           model.PlayerID(id),
		Name:         name,
		Role:         role,
		Team:         team,
		BaseValue:    10,
		BaseValueAlt: 10,
		Status:       model.StatusFree,
	}
}

func (s *LedgerSuite) participant(name string) *model.Participant {
	p, ok := s.ledger.Participant(name)
	s.Require().True(ok)
	return p
}

func (s *LedgerSuite) player(id int) *model.Player {
	p, ok := s.ledger.Player(model.PlayerID(id))
	s.Require().True(ok)
	return p
}

// assertConserved checks budget + spent == initial budget for every participant
func (s *LedgerSuite) assertConserved() {
	for _, p := range s.session.Participants {
		s.Equal(s.session.InitialBudget, p.Budget+p.TotalSpent(), "budget not conserved for %s", p.Name)
	}
}

// Acquire tests

func (s *LedgerSuite) TestAcquireSucceeds() {
	err := s.ledger.Acquire(7, "Alice", 120)
	s.Require().NoError(err)

	player := s.player(7)
	alice := s.participant("Alice")
	s.Equal(model.StatusOwned, player.Status)
	s.Equal("Alice", player.Owner())
	s.Equal(120, player.Price())
	s.Equal(380, alice.Budget)
	s.Require().Len(alice.Roster, 1)
	s.Equal(model.PlayerID(7), alice.Roster[0].PlayerID)
	s.Equal(120, alice.Roster[0].PaidPrice)
	s.assertConserved()
}

func (s *LedgerSuite) TestAcquireWholeBudget() {
	// Scenario A
	err := s.ledger.Acquire(7, "Alice", 500)
	s.Require().NoError(err)
	s.Equal(0, s.participant("Alice").Budget)
}

func (s *LedgerSuite) TestAcquireOneOverBudgetLeavesStateUnchanged() {
	err := s.ledger.Acquire(7, "Alice", 501)
	s.ErrorIs(err, model.ErrInsufficientBudget)
	s.True(model.IsRejected(err))

	s.Equal(500, s.participant("Alice").Budget)
	s.Empty(s.participant("Alice").Roster)
	s.False(s.player(7).IsOwned())
}

func (s *LedgerSuite) TestAcquireTwiceIsRejected() {
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 50))
	before := s.session.Clone()

	err := s.ledger.Acquire(7, "Alice", 50)
	s.ErrorIs(err, model.ErrPlayerOwned)
	s.Equal(before, s.session)
}

func (s *LedgerSuite) TestAcquireOwnedPlayerByOtherParticipant() {
	// Scenario D
	session := newSession(100, "Alice", "Bob")
	session.Players = []*model.Player{newPlayer(1, "Rossi", model.RoleGoalkeeper, "Inter")}
	l := New(session, Options{})

	s.Require().NoError(l.Acquire(1, "Alice", 50))
	err := l.Acquire(1, "Bob", 10)
	s.ErrorIs(err, model.ErrPlayerOwned)

	bob, _ := l.Participant("Bob")
	s.Equal(100, bob.Budget)
	s.Empty(bob.Roster)
}

func (s *LedgerSuite) TestAcquireRejections() {
	tests := []struct {
		name        string
		id          model.PlayerID
		participant string
		price       int
		want        error
	}{
		{"unknown player", 99, "Alice", 10, model.ErrPlayerNotFound},
		{"unknown participant", 7, "Carol", 10, model.ErrParticipantNotFound},
		{"zero price", 7, "Alice", 0, model.ErrInvalidPrice},
		{"negative price", 7, "Alice", -5, model.ErrInvalidPrice},
		{"over budget", 7, "Alice", 1000, model.ErrInsufficientBudget},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.ledger.Acquire(tt.id, tt.participant, tt.price)
			s.ErrorIs(err, tt.want)

			var rejected *model.RejectedError
			s.Require().ErrorAs(err, &rejected)
			s.Equal(model.OpAcquire, rejected.Op)
			s.NotEmpty(rejected.Message)
		})
	}
	s.assertConserved()
}

func (s *LedgerSuite) TestAcquireIgnoresCeilingByDefault() {
	for i := 0; i < 3; i++ {
		id := 100 + i
		s.session.Players = append(s.session.Players, newPlayer(id, "Keeper", model.RoleGoalkeeper, "Lazio"))
	}
	s.ledger = New(s.session, Options{})

	s.Require().NoError(s.ledger.Acquire(100, "Alice", 1))
	s.Require().NoError(s.ledger.Acquire(101, "Alice", 1))
	s.Require().NoError(s.ledger.Acquire(102, "Alice", 1))
	s.False(s.ledger.CanAcquire("Alice", model.RoleGoalkeeper).Allowed)

	s.NoError(s.ledger.Acquire(1, "Alice", 1))
	s.Equal(4, s.participant("Alice").RoleCount(model.RoleGoalkeeper))
}

func (s *LedgerSuite) TestAcquireEnforcesCeilingWhenConfigured() {
	for i := 0; i < 3; i++ {
		s.session.Players = append(s.session.Players, newPlayer(100+i, "Keeper", model.RoleGoalkeeper, "Lazio"))
	}
	s.ledger = New(s.session, Options{EnforceRoleCeilings: true})

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.ledger.Acquire(model.PlayerID(100+i), "Alice", 1))
	}

	err := s.ledger.Acquire(1, "Alice", 1)
	s.ErrorIs(err, model.ErrRoleCeiling)
	s.False(s.player(1).IsOwned())
	s.Equal(497, s.participant("Alice").Budget)
}

// RevisePrice tests

func (s *LedgerSuite) TestRevisePriceDecreaseRefunds() {
	// Scenario B
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 500))

	err := s.ledger.RevisePrice(7, "Alice", 300)
	s.Require().NoError(err)

	s.Equal(200, s.participant("Alice").Budget)
	s.Equal(300, s.player(7).Price())
	s.Equal(300, s.participant("Alice").Roster[0].PaidPrice)
	s.assertConserved()
}

func (s *LedgerSuite) TestRevisePriceIncreaseCharges() {
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 100))

	s.Require().NoError(s.ledger.RevisePrice(7, "Alice", 250))
	s.Equal(250, s.participant("Alice").Budget)
	s.assertConserved()
}

func (s *LedgerSuite) TestRevisePriceIncreaseBeyondBudget() {
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 100))

	err := s.ledger.RevisePrice(7, "Alice", 501)
	s.ErrorIs(err, model.ErrInsufficientBudget)
	s.Equal(100, s.player(7).Price())
	s.Equal(400, s.participant("Alice").Budget)

	// Exactly the remaining budget is fine
	s.Require().NoError(s.ledger.RevisePrice(7, "Alice", 500))
	s.Equal(0, s.participant("Alice").Budget)
}

func (s *LedgerSuite) TestRevisePriceRejections() {
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 100))

	s.ErrorIs(s.ledger.RevisePrice(7, "Bob", 50), model.ErrNotOwner)
	s.ErrorIs(s.ledger.RevisePrice(8, "Alice", 50), model.ErrPlayerNotOwned)
	s.ErrorIs(s.ledger.RevisePrice(99, "Alice", 50), model.ErrPlayerNotFound)
	s.ErrorIs(s.ledger.RevisePrice(7, "Carol", 50), model.ErrParticipantNotFound)
	s.ErrorIs(s.ledger.RevisePrice(7, "Alice", 0), model.ErrInvalidPrice)

	s.Equal(100, s.player(7).Price())
	s.assertConserved()
}

// Release tests

func (s *LedgerSuite) TestReleaseRefundsInFull() {
	// Scenario C
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 500))
	s.Require().NoError(s.ledger.RevisePrice(7, "Alice", 300))

	err := s.ledger.Release(7, "Alice")
	s.Require().NoError(err)

	player := s.player(7)
	s.Equal(500, s.participant("Alice").Budget)
	s.Equal(model.StatusFree, player.Status)
	s.Nil(player.OwnedBy)
	s.Nil(player.PaidPrice)
	s.Empty(s.participant("Alice").Roster)
}

func (s *LedgerSuite) TestReleaseKeepsOtherRosterEntriesInOrder() {
	s.Require().NoError(s.ledger.Acquire(1, "Alice", 10))
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 20))
	s.Require().NoError(s.ledger.Acquire(8, "Alice", 30))

	s.Require().NoError(s.ledger.Release(7, "Alice"))

	roster := s.participant("Alice").Roster
	s.Require().Len(roster, 2)
	s.Equal(model.PlayerID(1), roster[0].PlayerID)
	s.Equal(model.PlayerID(8), roster[1].PlayerID)
	s.assertConserved()
}

func (s *LedgerSuite) TestReleaseRejections() {
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 100))

	s.ErrorIs(s.ledger.Release(7, "Bob"), model.ErrNotOwner)
	s.ErrorIs(s.ledger.Release(8, "Alice"), model.ErrPlayerNotOwned)
	s.ErrorIs(s.ledger.Release(99, "Alice"), model.ErrPlayerNotFound)

	s.True(s.player(7).IsOwnedBy("Alice"))
}

func (s *LedgerSuite) TestReleasedPlayerCanBeAcquiredByAnother() {
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 100))
	s.Require().NoError(s.ledger.Release(7, "Alice"))

	s.Require().NoError(s.ledger.Acquire(7, "Bob", 80))
	s.True(s.player(7).IsOwnedBy("Bob"))
	s.Equal(500, s.participant("Alice").Budget)
	s.Equal(420, s.participant("Bob").Budget)
}

func (s *LedgerSuite) TestBudgetConservedAcrossSequence() {
	steps := []func() error{
		func() error { return s.ledger.Acquire(1, "Alice", 40) },
		func() error { return s.ledger.Acquire(7, "Alice", 200) },
		func() error { return s.ledger.Acquire(8, "Bob", 15) },
		func() error { return s.ledger.RevisePrice(7, "Alice", 150) },
		func() error { return s.ledger.Acquire(9, "Alice", 400) }, // rejected
		func() error { return s.ledger.Release(1, "Alice") },
		func() error { return s.ledger.RevisePrice(8, "Bob", 60) },
		func() error { return s.ledger.Acquire(1, "Bob", 5) },
	}
	for _, step := range steps {
		_ = step()
		s.assertConserved()
	}
	s.Equal(350, s.participant("Alice").Budget)
	s.Equal(435, s.participant("Bob").Budget)
}

// Query tests

func (s *LedgerSuite) TestCanAcquire() {
	s.True(s.ledger.CanAcquire("Alice", model.RoleGoalkeeper).Allowed)

	e := s.ledger.CanAcquire("Carol", model.RoleGoalkeeper)
	s.False(e.Allowed)
	s.Contains(e.Reason, "Carol")

	// Unknown roles have no ceiling
	s.True(s.ledger.CanAcquire("Alice", model.Role("?")).Allowed)
}

func (s *LedgerSuite) TestCanAcquireAtCeiling() {
	alice := s.participant("Alice")
	for i := 0; i < model.RoleCeilings[model.RoleAttacker]; i++ {
		alice.Roster = append(alice.Roster, model.RosterEntry{PlayerID: model.PlayerID(200 + i), Role: model.RoleAttacker})
	}

	e := s.ledger.CanAcquire("Alice", model.RoleAttacker)
	s.False(e.Allowed)
	s.Contains(e.Reason, "6/6")
	s.True(s.ledger.CanAcquire("Alice", model.RoleDefender).Allowed)
}

func (s *LedgerSuite) TestStatistics() {
	s.session.Players = append(s.session.Players, newPlayer(50, "Mystery", model.Role("?"), "Como"))
	s.ledger = New(s.session, Options{})
	s.Require().NoError(s.ledger.Acquire(1, "Alice", 10))
	s.Require().NoError(s.ledger.Acquire(9, "Bob", 10))

	stats := s.ledger.Statistics()
	s.Equal(5, stats.Total)
	s.Equal(2, stats.Owned)
	s.Equal(3, stats.Free)
	s.Equal(model.RoleStats{Total: 1, Owned: 1, Free: 0}, stats.Roles[model.RoleGoalkeeper])
	s.Equal(model.RoleStats{Total: 1, Owned: 1, Free: 0}, stats.Roles[model.RoleMidfielder])
	s.Equal(model.RoleStats{Total: 1, Owned: 0, Free: 1}, stats.Roles[model.RoleAttacker])
	s.Len(stats.Roles, 4)
}

func (s *LedgerSuite) TestPlayersFilter() {
	s.Require().NoError(s.ledger.Acquire(9, "Bob", 10))

	s.Len(s.ledger.Players(model.PlayerFilter{}), 4)
	s.Len(s.ledger.Players(model.PlayerFilter{Team: "inter"}), 2)
	s.Len(s.ledger.Players(model.PlayerFilter{Team: "Inter", Status: model.StatusFree}), 1)
	s.Len(s.ledger.Players(model.PlayerFilter{Role: model.RoleDefender}), 1)
	s.Len(s.ledger.Players(model.PlayerFilter{Query: "ER"}), 2)
	s.Len(s.ledger.Players(model.PlayerFilter{Query: "bian"}), 1)
	s.Len(s.ledger.AvailablePlayers(), 3)
}

func (s *LedgerSuite) TestTeamsSortedAndDistinct() {
	s.Equal([]string{"Inter", "Milan", "Roma"}, s.ledger.Teams())
}

func (s *LedgerSuite) TestSummaryAndHistory() {
	s.Require().NoError(s.ledger.Acquire(1, "Alice", 10))
	s.Require().NoError(s.ledger.Acquire(7, "Alice", 30))
	s.Require().NoError(s.ledger.Acquire(8, "Bob", 30))

	summary, ok := s.ledger.Summary("Alice")
	s.Require().True(ok)
	s.Equal(460, summary.Budget)
	s.Equal(2, summary.TotalPlayers)
	s.Equal(40, summary.TotalSpent)
	s.InDelta(20.0, summary.AveragePrice, 0.001)
	s.Equal(1, summary.RoleCounts[model.RoleAttacker])

	_, ok = s.ledger.Summary("Carol")
	s.False(ok)

	history := s.ledger.History()
	s.Require().Len(history, 3)
	s.Equal("Bianchi", history[0].Name)
	s.Equal("Verdi", history[1].Name)
	s.Equal("Rossi", history[2].Name)

	roster := s.ledger.Roster("Alice")
	s.Len(roster, 2)
}

func (s *LedgerSuite) TestResults() {
	s.Require().NoError(s.ledger.Acquire(1, "Alice", 10))
	s.Require().NoError(s.ledger.Acquire(8, "Bob", 30))

	res := s.ledger.Results(s.session.UpdatedAt)
	s.Equal(4, res.TotalPlayers)
	s.Equal(2, res.TotalOwned)
	s.InDelta(20.0, res.AveragePrice, 0.001)
	s.Len(res.Participants, 2)
}
