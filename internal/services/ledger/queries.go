package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/mcoot/fantasta/internal/model"
)

// Player looks up a catalog player by id
func (l *Ledger) Player(id model.PlayerID) (*model.Player, bool) {
	p, ok := l.players[id]
	return p, ok
}

// Participant looks up a bidder by name
func (l *Ledger) Participant(name string) (*model.Participant, bool) {
	p, ok := l.participants[name]
	return p, ok
}

// Players returns catalog players matching the filter, in catalog order
func (l *Ledger) Players(f model.PlayerFilter) []*model.Player {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]*model.Player, 0, len(l.session.Players))
	for _, p := range l.session.Players {
		if f.Role != "" && p.Role != f.Role {
			continue
		}
		if f.Team != "" && !strings.EqualFold(p.Team, f.Team) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AvailablePlayers returns every free player
func (l *Ledger) AvailablePlayers() []*model.Player {
	return l.Players(model.PlayerFilter{Status: model.StatusFree})
}

// Roster returns the catalog players currently owned by the participant
func (l *Ledger) Roster(name string) []*model.Player {
	var out []*model.Player
	for _, p := range l.session.Players {
		if p.IsOwnedBy(name) {
			out = append(out, p)
		}
	}
	return out
}

// Teams returns the distinct club names in the catalog, sorted
func (l *Ledger) Teams() []string {
	seen := make(map[string]struct{})
	for _, p := range l.session.Players {
		if p.Team != "" {
			seen[p.Team] = struct{}{}
		}
	}
	teams := make([]string, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

// Summary reports a participant's spending and roster composition
func (l *Ledger) Summary(name string) (model.ParticipantSummary, bool) {
	p, ok := l.participants[name]
	if !ok {
		return model.ParticipantSummary{}, false
	}
	return summarize(p), true
}

// Summaries returns one summary per participant in setup order
func (l *Ledger) Summaries() []model.ParticipantSummary {
	out := make([]model.ParticipantSummary, 0, len(l.session.Participants))
	for _, p := range l.session.Participants {
		out = append(out, summarize(p))
	}
	return out
}

func summarize(p *model.Participant) model.ParticipantSummary {
	s := model.ParticipantSummary{
		Name:         p.Name,
		Budget:       p.Budget,
		TotalPlayers: len(p.Roster),
		TotalSpent:   p.TotalSpent(),
		RoleCounts:   make(map[model.Role]int, len(model.Roles)),
	}
	for _, r := range model.Roles {
		s.RoleCounts[r] = p.RoleCount(r)
	}
	if s.TotalPlayers > 0 {
		s.AveragePrice = float64(s.TotalSpent) / float64(s.TotalPlayers)
	}
	return s
}

// History lists owned players, most expensive first, ties broken by name
func (l *Ledger) History() []*model.Player {
	owned := l.Players(model.PlayerFilter{Status: model.StatusOwned})
	sort.SliceStable(owned, func(i, j int) bool {
		if owned[i].Price() != owned[j].Price() {
			return owned[i].Price() > owned[j].Price()
		}
		return owned[i].Name < owned[j].Name
	})
	return owned
}

// Results aggregates the auction for the results export
func (l *Ledger) Results(now time.Time) model.AuctionResults {
	res := model.AuctionResults{
		Timestamp:    now,
		Participants: l.Summaries(),
		TotalPlayers: len(l.session.Players),
	}
	spent := 0
	for _, p := range l.session.Players {
		if p.IsOwned() {
			res.TotalOwned++
			spent += p.Price()
		}
	}
	if res.TotalOwned > 0 {
		res.AveragePrice = float64(spent) / float64(res.TotalOwned)
	}
	return res
}
