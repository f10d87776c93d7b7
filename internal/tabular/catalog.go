package tabular

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/mcoot/fantasta/internal/dependencies/random"
	"github.com/mcoot/fantasta/internal/model"
)

const (
	// MinCatalogRows is the title row, the header row and one data row
	MinCatalogRows = 3
	// RandomIDSpace bounds the ids generated for rows without one
	RandomIDSpace = 100000

	maxIDDraws = 32
)

// CatalogResult is the outcome of parsing a catalog workbook
type CatalogResult struct {
	Sheet    string
	Players  []*model.Player
	Skipped  int
	Warnings []string
}

// ParseCatalog reads the first sheet of an xlsx catalog: row 0 is a title,
// row 1 holds the headers and data starts at row 2. Every player is free.
func ParseCatalog(data []byte, rnd random.Random) (*CatalogResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &model.ParseError{Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &model.ParseError{Reason: "workbook has no sheets"}
	}

	sheet := sheets[0]
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &model.ParseError{Reason: fmt.Sprintf("cannot read sheet %q", sheet), Err: err}
	}
	if len(rows) < MinCatalogRows {
		return nil, &model.ParseError{
			Reason: fmt.Sprintf("sheet %q has %d rows, need at least %d", sheet, len(rows), MinCatalogRows),
		}
	}

	res := &CatalogResult{Sheet: sheet}

	idx := BuildColumnIndex(rows[1])
	if missing := idx.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = string(m)
		}
		res.Warnings = append(res.Warnings, "missing essential columns: "+strings.Join(names, ", "))
	}

	taken := make(map[model.PlayerID]struct{})
	for i, cells := range rows[2:] {
		row := NewRawRow(cells)
		if !row.Leading() {
			continue
		}
		player, ok := BuildPlayerRecord(row, idx, rnd)
		if !ok {
			res.Skipped++
			continue
		}
		if _, dup := taken[player.ID]; dup {
			old := player.ID
			player.ID = uniqueID(taken, rnd)
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("row %d: duplicate id %d reassigned to %d", i+3, old, player.ID))
		}
		taken[player.ID] = struct{}{}
		res.Players = append(res.Players, &player)
	}

	return res, nil
}

// BuildPlayerRecord builds a free player from a catalog row. It returns false
// when the row has no name.
func BuildPlayerRecord(row RawRow, idx ColumnIndex, rnd random.Random) (model.Player, bool) {
	name := idx.cell(row, FieldName).String()
	if name == "" {
		return model.Player{}, false
	}

	roleText := idx.cell(row, FieldRole).String()
	p := model.Player{
		ID:                 model.PlayerID(idx.cell(row, FieldID).Int()),
		Name:               name,
		Role:               NormalizeRole(roleText),
		RoleDetail:         roleText,
		Team:               idx.cell(row, FieldTeam).String(),
		BaseValue:          idx.cell(row, FieldBaseValue).Float(),
		BaseValueAlt:       idx.cell(row, FieldBaseValueAlt).Float(),
		TrendDelta:         idx.cell(row, FieldTrendDelta).Float(),
		BaseValueMarket:    idx.cell(row, FieldBaseValueMarket).Float(),
		BaseValueAltMarket: idx.cell(row, FieldBaseValueAltMarket).Float(),
		TrendDeltaMarket:   idx.cell(row, FieldTrendDeltaMarket).Float(),
		MeritValue:         idx.cell(row, FieldMeritValue).Float(),
		MeritValueMarket:   idx.cell(row, FieldMeritValueMarket).Float(),
		Status:             model.StatusFree,
	}
	if p.ID <= 0 {
		p.ID = model.PlayerID(rnd.Intn(RandomIDSpace))
	}
	if p.BaseValueAlt == 0 {
		p.BaseValueAlt = p.BaseValue
	}
	if tier := idx.cell(row, FieldTier).Int(); tier != 0 {
		p.Tier = &tier
	}
	return p, true
}

// NormalizeRole maps role text to a role code. Full Italian or English words
// and single letters are recognised in any case; anything else falls back to
// its first letter upper-cased, or "?" when empty.
func NormalizeRole(s string) model.Role {
	if r, ok := model.ParseRole(s); ok {
		return r
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "?"
	}
	first, _ := utf8.DecodeRuneInString(s)
	return model.Role(string(unicode.ToUpper(first)))
}

func uniqueID(taken map[model.PlayerID]struct{}, rnd random.Random) model.PlayerID {
	for i := 0; i < maxIDDraws; i++ {
		id := model.PlayerID(rnd.Intn(RandomIDSpace))
		if _, dup := taken[id]; !dup {
			return id
		}
	}
	highest := model.PlayerID(0)
	for id := range taken {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}
