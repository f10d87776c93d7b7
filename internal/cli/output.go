package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case response.Session:
		o.printSession(v)
	case response.SetupResponse:
		o.printSetup(v)
	case response.Player:
		o.printPlayer(v)
	case []response.Player:
		o.printPlayers(v)
	case response.ParticipantDetail:
		o.printParticipant(v)
	case []response.ParticipantDetail:
		o.printParticipants(v)
	case response.Eligibility:
		o.printEligibility(v)
	case response.Stats:
		o.printStats(v)
	case response.Teams:
		for _, t := range v.Teams {
			fmt.Fprintln(o.w, t)
		}
	case response.CatalogLoaded:
		o.printCatalogLoaded(v)
	case response.Imported:
		o.printImported(v)
	case model.AuctionResults:
		o.printResults(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Server  string `json:"server,omitempty"`
	Latency string `json:"latency,omitempty"`
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Fprintf(o.w, "Server: %s (%s)\n", h.Server, h.Latency)
	}
}

func (o *Output) printSession(s response.Session) {
	fmt.Fprintf(o.w, "Initial budget: %d\n", s.InitialBudget)
	fmt.Fprintf(o.w, "Players: %d (%d owned)\n", s.PlayerCount, s.OwnedCount)
	if s.UpdatedAt != nil {
		fmt.Fprintf(o.w, "Updated: %s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(o.w, "Participants (%d):\n", len(s.Participants))
	for _, p := range s.Participants {
		fmt.Fprintf(o.w, "  - %s: %d credits, %d players\n", p.Name, p.Budget, len(p.Roster))
	}
}

func (o *Output) printSetup(s response.SetupResponse) {
	if s.Created {
		fmt.Fprintln(o.w, "Session created")
	} else {
		fmt.Fprintln(o.w, "Session already exists, left unchanged")
	}
	o.printSession(s.Session)
}

func (o *Output) printPlayer(p response.Player) {
	fmt.Fprintf(o.w, "Player: %s (%d)\n", p.Name, p.ID)
	fmt.Fprintf(o.w, "Role: %s\n", p.Role)
	fmt.Fprintf(o.w, "Team: %s\n", p.Team)
	fmt.Fprintf(o.w, "Value: %g (alt %g, merit %g)\n", p.BaseValue, p.BaseValueAlt, p.MeritValue)
	if p.Tier != nil {
		fmt.Fprintf(o.w, "Tier: %d\n", *p.Tier)
	}
	fmt.Fprintf(o.w, "Status: %s\n", p.Status)
	if p.OwnedBy != nil && p.PaidPrice != nil {
		fmt.Fprintf(o.w, "Owner: %s for %d\n", *p.OwnedBy, *p.PaidPrice)
	}
}

func (o *Output) printPlayers(players []response.Player) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tROLE\tTEAM\tVALUE\tOWNER\tPRICE")
	for _, p := range players {
		owner, price := "-", "-"
		if p.OwnedBy != nil {
			owner = *p.OwnedBy
		}
		if p.PaidPrice != nil {
			price = fmt.Sprint(*p.PaidPrice)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%s\t%s\n", p.ID, p.Name, p.Role, p.Team, p.BaseValue, owner, price)
	}
	_ = tw.Flush()
}

func (o *Output) printParticipant(p response.ParticipantDetail) {
	fmt.Fprintf(o.w, "Participant: %s\n", p.Name)
	fmt.Fprintf(o.w, "Budget: %d\n", p.Budget)
	fmt.Fprintf(o.w, "Spent: %d (average %.1f)\n", p.TotalSpent, p.AveragePrice)
	counts := make([]string, 0, len(model.Roles))
	for _, role := range model.Roles {
		counts = append(counts, fmt.Sprintf("%s %d", role, p.RoleCounts[string(role)]))
	}
	fmt.Fprintf(o.w, "Roles: %s\n", strings.Join(counts, ", "))
	if len(p.Roster) == 0 {
		return
	}
	fmt.Fprintf(o.w, "Roster (%d):\n", len(p.Roster))
	for _, e := range p.Roster {
		fmt.Fprintf(o.w, "  - %s [%s] %s: %d\n", e.Name, e.Role, e.Team, e.PaidPrice)
	}
}

func (o *Output) printParticipants(participants []response.ParticipantDetail) {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBUDGET\tPLAYERS\tSPENT")
	for _, p := range participants {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", p.Name, p.Budget, len(p.Roster), p.TotalSpent)
	}
	_ = tw.Flush()
}

func (o *Output) printEligibility(e response.Eligibility) {
	if e.Allowed {
		fmt.Fprintf(o.w, "%s can acquire a %s\n", e.Participant, e.Role)
		return
	}
	fmt.Fprintf(o.w, "%s cannot acquire a %s: %s\n", e.Participant, e.Role, e.Reason)
}

func (o *Output) printStats(s response.Stats) {
	fmt.Fprintf(o.w, "Players: %d (%d owned, %d free)\n", s.Total, s.Owned, s.Free)
	for _, role := range model.Roles {
		rs := s.Roles[string(role)]
		fmt.Fprintf(o.w, "  %s: %d (%d owned, %d free)\n", role.Label(), rs.Total, rs.Owned, rs.Free)
	}
}

func (o *Output) printCatalogLoaded(c response.CatalogLoaded) {
	fmt.Fprintf(o.w, "Loaded %d players (%d rows skipped)\n", c.Players, c.Skipped)
	for _, w := range c.Warnings {
		fmt.Fprintf(o.w, "Warning: %s\n", w)
	}
}

func (o *Output) printImported(i response.Imported) {
	fmt.Fprintf(o.w, "Imported %d participants and %d players (%d owned)\n", i.Participants, i.Players, i.Owned)
	if i.ExportedAt != nil {
		fmt.Fprintf(o.w, "Exported at: %s\n", i.ExportedAt.Format("2006-01-02 15:04"))
	}
	for _, w := range i.Warnings {
		fmt.Fprintf(o.w, "Warning: %s\n", w)
	}
}

func (o *Output) printResults(r model.AuctionResults) {
	fmt.Fprintf(o.w, "Players owned: %d of %d\n", r.TotalOwned, r.TotalPlayers)
	fmt.Fprintf(o.w, "Average price: %.1f\n", r.AveragePrice)
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBUDGET\tPLAYERS\tSPENT\tAVERAGE")
	for _, p := range r.Participants {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.1f\n", p.Name, p.Budget, p.TotalPlayers, p.TotalSpent, p.AveragePrice)
	}
	_ = tw.Flush()
}
