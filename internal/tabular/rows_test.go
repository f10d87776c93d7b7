package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/fantasta/internal/model"
)

func TestNewCell(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind CellKind
		wantNum  float64
		wantText string
	}{
		{name: "empty", raw: "", wantKind: CellEmpty},
		{name: "whitespace", raw: "   ", wantKind: CellEmpty},
		{name: "integer", raw: "42", wantKind: CellNumber, wantNum: 42, wantText: "42"},
		{name: "dot decimal", raw: "12.5", wantKind: CellNumber, wantNum: 12.5, wantText: "12.5"},
		{name: "comma decimal", raw: "12,5", wantKind: CellNumber, wantNum: 12.5, wantText: "12,5"},
		{name: "negative", raw: "-3", wantKind: CellNumber, wantNum: -3, wantText: "-3"},
		{name: "text", raw: " Lautaro ", wantKind: CellText, wantText: "Lautaro"},
		{name: "nan is text", raw: "NaN", wantKind: CellText, wantText: "NaN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCell(tt.raw)
			assert.Equal(t, tt.wantKind, c.Kind)
			assert.Equal(t, tt.wantNum, c.Float())
			assert.Equal(t, tt.wantText, c.String())
		})
	}
}

func TestCellInt(t *testing.T) {
	assert.Equal(t, 12, NewCell("12,9").Int())
	assert.Equal(t, -2, NewCell("-2.5").Int())
	assert.Equal(t, 0, NewCell("abc").Int())
}

func TestRawRow(t *testing.T) {
	row := NewRawRow([]string{"7", "", "Barella", "8,5"})

	assert.True(t, row.Leading())
	assert.Equal(t, "Barella", row.Text(2))
	assert.Equal(t, 8.5, row.Number(3))
	assert.Equal(t, 0.0, row.Number(2))
	assert.True(t, row.Cell(1).IsEmpty())
	assert.True(t, row.Cell(10).IsEmpty())
	assert.True(t, row.Cell(-1).IsEmpty())

	assert.False(t, NewRawRow([]string{"", "x"}).Leading())
	assert.False(t, NewRawRow(nil).Leading())
}

func TestBuildColumnIndex(t *testing.T) {
	idx := BuildColumnIndex([]string{"Id", "R", "Nome", "Squadra", "Qt. A", "Qt. I", "Diff.", "Qt. A M", "Qt. I M", "Diff. M", "FVM", "FVM M", "Fascia", "Extra"})

	assert.Equal(t, ColumnIndex{
		FieldID:                 0,
		FieldRole:               1,
		FieldName:               2,
		FieldTeam:               3,
		FieldBaseValue:          4,
		FieldBaseValueAlt:       5,
		FieldTrendDelta:         6,
		FieldBaseValueMarket:    7,
		FieldBaseValueAltMarket: 8,
		FieldTrendDeltaMarket:   9,
		FieldMeritValue:         10,
		FieldMeritValueMarket:   11,
		FieldTier:               12,
	}, idx)
	assert.Empty(t, idx.Missing())
}

func TestBuildColumnIndexEnglishAliasesAndMissing(t *testing.T) {
	idx := BuildColumnIndex([]string{"NAME", "name", " Role ", "Tier"})

	assert.Equal(t, 0, idx[FieldName], "first matching column wins")
	assert.Equal(t, 2, idx[FieldRole])
	assert.Equal(t, 3, idx[FieldTier])
	assert.Equal(t, []Field{FieldTeam, FieldBaseValue}, idx.Missing())
}

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want model.Role
	}{
		{"P", model.RoleGoalkeeper},
		{"portiere", model.RoleGoalkeeper},
		{"Difensore", model.RoleDefender},
		{"d", model.RoleDefender},
		{"CENTROCAMPISTA", model.RoleMidfielder},
		{"Attaccante", model.RoleAttacker},
		{"forward", model.RoleAttacker},
		{"trequartista", model.Role("T")},
		{"éx", model.Role("É")},
		{"", model.Role("?")},
		{"  ", model.Role("?")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.in))
		})
	}
}
