package testutil

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mcoot/fantasta/internal/model"
)

// CatalogHeaders is the header row of a typical quotation sheet
var CatalogHeaders = []string{
	"Id", "R", "RM", "Nome", "Squadra", "Qt.A", "Qt.I", "Diff.", "Qt.A M", "Qt.I M", "Diff.M", "FVM", "FVM M",
}

// CatalogGenerator creates fake catalogs and sessions for tests
type CatalogGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewCatalogGenerator creates a generator with an optional seed
func NewCatalogGenerator(seed ...int64) *CatalogGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &CatalogGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed in use, for reproducing failures
func (g *CatalogGenerator) Seed() int64 {
	return g.seed
}

// Players creates count free players with ids 1..count. Valuations are
// multiples of 0.5 so they survive a spreadsheet round trip exactly.
func (g *CatalogGenerator) Players(count int) []*model.Player {
	teams := []string{"Atalanta", "Bologna", "Inter", "Juventus", "Lazio", "Milan", "Napoli", "Roma", "Torino"}
	players := make([]*model.Player, count)
	for i := range players {
		base := g.half(1, 60)
		players[i] = &model.Player{
			ID:                 model.PlayerID(i + 1),
			Name:               fmt.Sprintf("%s %d", g.faker.LastName(), i+1),
			Role:               model.Roles[g.faker.Number(0, len(model.Roles)-1)],
			Team:               g.faker.RandomString(teams),
			BaseValue:          base,
			BaseValueAlt:       g.half(1, 60),
			TrendDelta:         g.half(-5, 5),
			BaseValueMarket:    g.half(1, 60),
			BaseValueAltMarket: g.half(1, 60),
			TrendDeltaMarket:   g.half(-5, 5),
			MeritValue:         float64(g.faker.Number(1, 300)),
			MeritValueMarket:   float64(g.faker.Number(1, 300)),
			Status:             model.StatusFree,
		}
	}
	return players
}

func (g *CatalogGenerator) half(lo, hi int) float64 {
	return float64(g.faker.Number(lo*2, hi*2)) / 2
}

// Session creates a session with the given participants and a fake catalog
func (g *CatalogGenerator) Session(budget int, playerCount int, names ...string) *model.Session {
	s := model.NewSession()
	s.InitialBudget = budget
	for _, n := range names {
		s.Participants = append(s.Participants, model.NewParticipant(n, budget))
	}
	s.Players = g.Players(playerCount)
	return s
}

// CatalogRows renders players as a catalog sheet: title, headers, data
func CatalogRows(players []*model.Player) [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	rows := [][]string{{"Quotazioni Fantacalcio"}, CatalogHeaders}
	for _, p := range players {
		rows = append(rows, []string{
			strconv.Itoa(int(p.ID)), string(p.Role), p.RoleDetail, p.Name, p.Team,
			f(p.BaseValue), f(p.BaseValueAlt), f(p.TrendDelta),
			f(p.BaseValueMarket), f(p.BaseValueAltMarket), f(p.TrendDeltaMarket),
			f(p.MeritValue), f(p.MeritValueMarket),
		})
	}
	return rows
}

// BuildXLSX writes rows into the first sheet of a new workbook
func BuildXLSX(t testing.TB, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	writeRows(t, f, sheet, rows)
	return writeWorkbook(t, f)
}

// BuildNamedXLSX writes rows into a workbook whose only sheet is named sheet
func BuildNamedXLSX(t testing.TB, sheet string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet))
	writeRows(t, f, sheet, rows)
	return writeWorkbook(t, f)
}

// CatalogXLSX renders players as a catalog workbook
func CatalogXLSX(t testing.TB, players []*model.Player) []byte {
	t.Helper()
	return BuildXLSX(t, CatalogRows(players))
}

func writeRows(t testing.TB, f *excelize.File, sheet string, rows [][]string) {
	t.Helper()
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		require.NoError(t, f.SetSheetRow(sheet, axis, &cells))
	}
}

func writeWorkbook(t testing.TB, f *excelize.File) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}
