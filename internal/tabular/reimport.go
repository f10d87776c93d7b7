package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mcoot/fantasta/internal/dependencies/random"
	"github.com/mcoot/fantasta/internal/model"
)

const (
	minParticipantCells = 2
	minPlayerCells      = 8
)

// ImportResult is a session rebuilt from the re-import sheet
type ImportResult struct {
	Session    *model.Session
	ExportedAt time.Time // zero when the sheet carries no readable date
	OwnedCount int
	Warnings   []string
}

type reimportConfig struct {
	participantsCount int
	initialBudget     int
	budgetSeen        bool
	exportedAt        time.Time
}

// ParseReimport rebuilds a session from the "Re-import Data" sheet of a
// workbook produced by Export. Structural problems yield *model.ParseError;
// data describing an impossible auction yields *model.ImportValidationError.
func ParseReimport(data []byte, rnd random.Random) (*ImportResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &model.ParseError{Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	if !slices.Contains(f.GetSheetList(), SheetReimport) {
		return nil, &model.ParseError{Reason: fmt.Sprintf("sheet %q not found", SheetReimport)}
	}

	cells, err := f.GetRows(SheetReimport, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &model.ParseError{Reason: fmt.Sprintf("cannot read sheet %q", SheetReimport), Err: err}
	}
	rows := make([]RawRow, len(cells))
	for i, c := range cells {
		rows[i] = NewRawRow(c)
	}

	res := &ImportResult{}
	cfg, participantsAt, playersAt := scanSections(rows)
	res.ExportedAt = cfg.exportedAt

	session := model.NewSession()
	session.InitialBudget = cfg.initialBudget
	var unreadable map[string]bool
	if participantsAt > 0 {
		session.Participants, unreadable = res.parseParticipants(rows[participantsAt:])
	}
	if playersAt > 0 {
		session.Players = res.parsePlayers(rows[playersAt:], rnd)
	}

	if err := validateImport(cfg, session); err != nil {
		return nil, err
	}

	res.reconcileOwners(session)
	if err := res.rebuildRosters(session, unreadable); err != nil {
		return nil, err
	}
	res.Session = session
	return res, nil
}

// scanSections locates the config values and the first data row of the
// participant and player sections. Scanning stops at the player header.
func scanSections(rows []RawRow) (cfg reimportConfig, participantsAt, playersAt int) {
	for i, row := range rows {
		switch row.Text(0) {
		case MarkerParticipantsCount:
			cfg.participantsCount = row.Cell(1).Int()
		case MarkerInitialBudget:
			cfg.budgetSeen = true
			cfg.initialBudget = row.Cell(1).Int()
			if cfg.initialBudget == 0 {
				cfg.initialBudget = model.DefaultInitialBudget
			}
		case MarkerExportDate:
			if t, err := time.Parse(time.RFC3339, row.Text(1)); err == nil {
				cfg.exportedAt = t
			}
		case MarkerParticipantName:
			participantsAt = i + 1
		case MarkerPlayerID:
			return cfg, participantsAt, i + 1
		}
	}
	return cfg, participantsAt, 0
}

// parseParticipants reads the participant section. The returned set names
// participants whose roster cell could not be decoded.
func (res *ImportResult) parseParticipants(rows []RawRow) ([]*model.Participant, map[string]bool) {
	var out []*model.Participant
	unreadable := make(map[string]bool)
	for _, row := range rows {
		if len(row) < minParticipantCells || !row.Leading() {
			break
		}
		p := model.NewParticipant(row.Text(0), row.Cell(1).Int())
		if raw := row.Text(2); raw != "" {
			var roster []model.RosterEntry
			if err := json.Unmarshal([]byte(raw), &roster); err != nil {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("roster of %s is unreadable, rebuilding from the player list: %v", p.Name, err))
				unreadable[p.Name] = true
			} else if roster != nil {
				p.Roster = roster
			}
		}
		out = append(out, p)
	}
	return out, unreadable
}

func (res *ImportResult) parsePlayers(rows []RawRow, rnd random.Random) []*model.Player {
	var out []*model.Player
	taken := make(map[model.PlayerID]struct{})
	for _, row := range rows {
		if len(row) < minPlayerCells || !row.Leading() {
			break
		}
		name := row.Text(1)
		if name == "" {
			continue
		}

		p := &model.Player{
			ID:                 model.PlayerID(row.Cell(0).Int()),
			Name:               name,
			Role:               NormalizeRole(row.Text(2)),
			Team:               row.Text(3),
			BaseValue:          row.Number(4),
			BaseValueAlt:       row.Number(5),
			MeritValue:         row.Number(6),
			TrendDelta:         row.Number(10),
			BaseValueMarket:    row.Number(11),
			BaseValueAltMarket: row.Number(12),
			TrendDeltaMarket:   row.Number(13),
			MeritValueMarket:   row.Number(14),
			RoleDetail:         row.Text(16),
			Status:             model.StatusFree,
		}
		if tier := row.Cell(15).Int(); tier != 0 {
			p.Tier = &tier
		}
		if p.ID <= 0 {
			p.ID = model.PlayerID(rnd.Intn(RandomIDSpace))
		}
		if _, dup := taken[p.ID]; dup {
			old := p.ID
			p.ID = uniqueID(taken, rnd)
			res.Warnings = append(res.Warnings, fmt.Sprintf("duplicate player id %d reassigned to %d", old, p.ID))
		}
		taken[p.ID] = struct{}{}

		if isOwnedStatus(row.Text(7)) {
			owner, price := row.Text(8), row.Cell(9).Int()
			if owner != "" && price > 0 {
				p.MarkOwned(owner, price)
			} else {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s is marked owned without owner or price, treating as free", p.Name))
			}
		}
		out = append(out, p)
	}
	return out
}

// reconcileOwners frees players whose owner is not a participant of the
// imported session, keeping ownership pointing at real bidders.
func (res *ImportResult) reconcileOwners(s *model.Session) {
	names := make(map[string]struct{}, len(s.Participants))
	for _, p := range s.Participants {
		names[p.Name] = struct{}{}
	}
	for _, p := range s.Players {
		if !p.IsOwned() {
			continue
		}
		if _, ok := names[p.Owner()]; !ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s is owned by unknown participant %q, treating as free", p.Name, p.Owner()))
			p.MarkFree()
			continue
		}
		res.OwnedCount++
	}
}

// rebuildRosters makes the player section authoritative for ownership.
// Snapshot entries keep their order when they still match an owned player,
// by id and then by name for reassigned ids. Owned players missing from the
// snapshot are appended. Budgets are recomputed from the rebuilt roster.
func (res *ImportResult) rebuildRosters(s *model.Session, unreadable map[string]bool) error {
	owned := make(map[string][]*model.Player, len(s.Participants))
	for _, p := range s.Players {
		if p.IsOwned() {
			owned[p.Owner()] = append(owned[p.Owner()], p)
		}
	}

	for _, part := range s.Participants {
		players := owned[part.Name]
		used := make([]bool, len(players))
		match := func(e model.RosterEntry) int {
			for i, p := range players {
				if !used[i] && p.ID == e.PlayerID {
					return i
				}
			}
			for i, p := range players {
				if !used[i] && p.Name == e.Name {
					return i
				}
			}
			return -1
		}

		roster := make([]model.RosterEntry, 0, len(players))
		for _, e := range part.Roster {
			i := match(e)
			if i < 0 {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s is not owned by %s in the player list, removed from roster", e.Name, part.Name))
				continue
			}
			used[i] = true
			if e.PlayerID != players[i].ID {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("roster entry %s of %s now points at player %d", e.Name, part.Name, players[i].ID))
			}
			e.PlayerID = players[i].ID
			e.PaidPrice = players[i].Price()
			roster = append(roster, e)
		}
		for i, p := range players {
			if used[i] {
				continue
			}
			if !unreadable[part.Name] {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("%s is owned by %s but missing from the roster, added", p.Name, part.Name))
			}
			roster = append(roster, model.NewRosterEntry(p, p.Price()))
		}
		part.Roster = roster

		want := s.InitialBudget - part.TotalSpent()
		if want < 0 {
			return &model.ImportValidationError{
				Reason: fmt.Sprintf("%s spent %d, over the initial budget of %d", part.Name, part.TotalSpent(), s.InitialBudget),
			}
		}
		if part.Budget != want {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("budget of %s recomputed from %d to %d", part.Name, part.Budget, want))
			part.Budget = want
		}
	}
	return nil
}

func validateImport(cfg reimportConfig, s *model.Session) error {
	if cfg.participantsCount < model.MinParticipants {
		return &model.ImportValidationError{
			Reason: fmt.Sprintf("participant count %d is below %d", cfg.participantsCount, model.MinParticipants),
		}
	}
	if !cfg.budgetSeen || cfg.initialBudget < model.MinInitialBudget {
		return &model.ImportValidationError{
			Reason: fmt.Sprintf("initial budget %d is below %d", cfg.initialBudget, model.MinInitialBudget),
		}
	}
	if len(s.Participants) == 0 {
		return &model.ImportValidationError{Reason: "no participants found"}
	}
	if len(s.Players) == 0 {
		return &model.ImportValidationError{Reason: "no players found"}
	}
	seen := make(map[string]struct{}, len(s.Participants))
	for _, p := range s.Participants {
		if _, dup := seen[p.Name]; dup {
			return &model.ImportValidationError{Reason: fmt.Sprintf("duplicate participant name %q", p.Name)}
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// isOwnedStatus accepts the exported status plus the Italian label older
// exports used
func isOwnedStatus(s string) bool {
	switch strings.ToLower(s) {
	case string(model.StatusOwned), "comprato":
		return true
	}
	return false
}
