package tabular

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mcoot/fantasta/internal/model"
)

// Sheet names of the export workbook, in order
const (
	SheetSummary      = "Summary"
	SheetParticipants = "Participants"
	SheetPlayers      = "Players"
	SheetReimport     = "Re-import Data"
)

// Re-import section markers
const (
	MarkerParticipantsCount = "PARTICIPANTS_COUNT"
	MarkerInitialBudget     = "INITIAL_BUDGET"
	MarkerExportDate        = "EXPORT_DATE"
	MarkerParticipantName   = "PARTICIPANT_NAME"
	MarkerPlayerID          = "PLAYER_ID"
)

var reimportPlayerHeader = []any{
	MarkerPlayerID, "NAME", "ROLE", "TEAM", "BASE_VALUE", "BASE_VALUE_ALT", "MERIT_VALUE",
	"STATUS", "OWNED_BY", "PAID_PRICE", "TREND_DELTA", "BASE_VALUE_MARKET",
	"BASE_VALUE_ALT_MARKET", "TREND_DELTA_MARKET", "MERIT_VALUE_MARKET", "TIER", "ROLE_DETAIL",
}

// ExportFileName is the download name for an export taken at now
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("fantasy-auction-%s.xlsx", now.Format(time.DateOnly))
}

// WriteExport writes the export workbook to w
func WriteExport(w io.Writer, session *model.Session, stats model.Stats, now time.Time) error {
	f, err := Export(session, stats, now)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Export builds the four-sheet workbook. Only the last sheet is read back by
// ParseReimport; the others are for people.
func Export(session *model.Session, stats model.Stats, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetParticipants, SheetPlayers, SheetReimport} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
	}

	writers := []struct {
		sheet string
		fill  func(*sheetWriter)
	}{
		{SheetSummary, func(w *sheetWriter) { writeSummary(w, session, stats, now) }},
		{SheetParticipants, func(w *sheetWriter) { writeParticipants(w, session) }},
		{SheetPlayers, func(w *sheetWriter) { writePlayers(w, session) }},
		{SheetReimport, func(w *sheetWriter) { writeReimport(w, session, now) }},
	}
	for _, sw := range writers {
		w := &sheetWriter{f: f, sheet: sw.sheet}
		sw.fill(w)
		if w.err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", sw.sheet, w.err)
		}
	}

	return f, nil
}

// sheetWriter appends rows to one sheet and remembers the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) append(values ...any) {
	w.row++
	if w.err != nil || len(values) == 0 {
		return
	}
	axis, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, axis, &values)
}

func (w *sheetWriter) blank() {
	w.append()
}

func writeSummary(w *sheetWriter, s *model.Session, stats model.Stats, now time.Time) {
	w.append("FANTASY AUCTION SUMMARY")
	w.append("Export date", now.Format(time.DateOnly))
	w.blank()
	w.append("GENERAL STATISTICS")
	w.append("Participants", len(s.Participants))
	w.append("Initial budget", s.InitialBudget)
	w.append("Total players", stats.Total)
	w.append("Owned players", stats.Owned)
	w.append("Free players", stats.Free)
	w.blank()
	w.append("PLAYERS BY ROLE")
	w.append("Role", "Total", "Owned", "Free")
	for _, r := range model.Roles {
		rs := stats.Roles[r]
		w.append(r.Label(), rs.Total, rs.Owned, rs.Free)
	}
}

func writeParticipants(w *sheetWriter, s *model.Session) {
	w.append("PARTICIPANTS AND ROSTERS")
	w.blank()
	w.append("Participant", "Remaining budget", "Players", "Total spent", "P", "D", "C", "A")
	for _, p := range s.Participants {
		w.append(p.Name, p.Budget, len(p.Roster), p.TotalSpent(),
			p.RoleCount(model.RoleGoalkeeper), p.RoleCount(model.RoleDefender),
			p.RoleCount(model.RoleMidfielder), p.RoleCount(model.RoleAttacker))
	}

	w.blank()
	w.append("ROSTER DETAILS")
	for _, p := range s.Participants {
		w.blank()
		w.append("ROSTER OF " + strings.ToUpper(p.Name))
		w.append("Player", "Role", "Team", "Paid price", "Base value")

		roster := make([]model.RosterEntry, len(p.Roster))
		copy(roster, p.Roster)
		c := nameCollator()
		sort.SliceStable(roster, func(i, j int) bool { return c.CompareString(roster[i].Name, roster[j].Name) < 0 })
		for _, e := range roster {
			w.append(e.Name, string(e.Role), e.Team, e.PaidPrice, e.BaseValue)
		}
	}
}

func writePlayers(w *sheetWriter, s *model.Session) {
	w.append("ALL PLAYERS")
	w.blank()
	w.append("Name", "Role", "Team", "Qt.A", "Qt.I", "FVM", "Status", "Owned by", "Paid price")
	for _, p := range sortedByName(s.Players) {
		status := "Free"
		var price any = ""
		if p.IsOwned() {
			status = "Owned"
			price = p.Price()
		}
		w.append(p.Name, string(p.Role), p.Team, p.BaseValue, p.BaseValueAlt, p.MeritValue,
			status, p.Owner(), price)
	}
}

func writeReimport(w *sheetWriter, s *model.Session, now time.Time) {
	w.append("IMPORT DATA - DO NOT EDIT")
	w.blank()
	w.append("=== AUCTION CONFIG ===")
	w.append(MarkerParticipantsCount, len(s.Participants))
	w.append(MarkerInitialBudget, s.InitialBudget)
	w.append(MarkerExportDate, now.UTC().Format(time.RFC3339))
	w.blank()
	w.append("=== PARTICIPANTS ===")
	w.append(MarkerParticipantName, "CURRENT_BUDGET", "PLAYERS_DATA")
	for _, p := range s.Participants {
		roster := p.Roster
		if roster == nil {
			roster = []model.RosterEntry{}
		}
		data, err := json.Marshal(roster)
		if err != nil {
			w.err = fmt.Errorf("failed to encode roster of %s: %w", p.Name, err)
			return
		}
		w.append(p.Name, p.Budget, string(data))
	}
	w.blank()
	w.append("=== PLAYERS ===")
	w.append(reimportPlayerHeader...)
	for _, p := range s.Players {
		var owner, price, tier any = "", "", ""
		if p.IsOwned() {
			owner = p.Owner()
			price = p.Price()
		}
		if p.Tier != nil {
			tier = *p.Tier
		}
		w.append(int(p.ID), p.Name, string(p.Role), p.Team, p.BaseValue, p.BaseValueAlt,
			p.MeritValue, string(p.Status), owner, price, p.TrendDelta, p.BaseValueMarket,
			p.BaseValueAltMarket, p.TrendDeltaMarket, p.MeritValueMarket, tier, p.RoleDetail)
	}
}

func sortedByName(players []*model.Player) []*model.Player {
	out := make([]*model.Player, len(players))
	copy(out, players)
	c := nameCollator()
	sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	return out
}

// nameCollator orders names alphabetically with accented letters next to
// their base letter. A Collator is not safe for concurrent use.
func nameCollator() *collate.Collator {
	return collate.New(language.Italian, collate.IgnoreCase)
}
