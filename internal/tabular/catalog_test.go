package tabular

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mcoot/fantasta/internal/dependencies/mocks"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/testutil"
)

func TestParseCatalogGenerated(t *testing.T) {
	gen := testutil.NewCatalogGenerator()
	players := gen.Players(40)

	res, err := ParseCatalog(testutil.CatalogXLSX(t, players), mocks.NewMockRandom())
	require.NoError(t, err, "seed %d", gen.Seed())

	want := make([]*model.Player, len(players))
	for i, p := range players {
		c := p.Clone()
		c.RoleDetail = string(p.Role)
		want[i] = c
	}
	if diff := cmp.Diff(want, res.Players); diff != "" {
		t.Errorf("players mismatch (-want +got), seed %d:\n%s", gen.Seed(), diff)
	}
	assert.Empty(t, res.Warnings)
	assert.Zero(t, res.Skipped)
}

func TestParseCatalogRowHandling(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(4242)

	data := testutil.BuildXLSX(t, [][]string{
		{"Listone"},
		{"Id", "R", "Nome", "Squadra", "Qt.A", "Qt.I", "FVM", "Fascia"},
		{"101", "Portiere", "Sommer", "Inter", "12,5", "", "30", "2"},
		{"", "D", "Padding", "Roma", "5"},
		{"103", "C", "", "Milan", "8"},
		{"abc", "a", "Lookman", "Atalanta", "20", "22", "abc"},
	})

	res, err := ParseCatalog(data, rnd)
	require.NoError(t, err)
	require.Len(t, res.Players, 2)
	assert.Equal(t, 1, res.Skipped)

	sommer := res.Players[0]
	assert.Equal(t, model.PlayerID(101), sommer.ID)
	assert.Equal(t, model.RoleGoalkeeper, sommer.Role)
	assert.Equal(t, "Portiere", sommer.RoleDetail)
	assert.Equal(t, 12.5, sommer.BaseValue)
	assert.Equal(t, 12.5, sommer.BaseValueAlt, "alt value defaults to base value")
	assert.Equal(t, 30.0, sommer.MeritValue)
	require.NotNil(t, sommer.Tier)
	assert.Equal(t, 2, *sommer.Tier)
	assert.Equal(t, model.StatusFree, sommer.Status)
	assert.Nil(t, sommer.OwnedBy)
	assert.Nil(t, sommer.PaidPrice)

	lookman := res.Players[1]
	assert.Equal(t, model.PlayerID(4242), lookman.ID, "non-numeric id replaced by a random one")
	assert.Equal(t, model.RoleAttacker, lookman.Role)
	assert.Equal(t, 22.0, lookman.BaseValueAlt)
	assert.Equal(t, 0.0, lookman.MeritValue)
	assert.Nil(t, lookman.Tier)
}

func TestParseCatalogIgnoresNumberFormats(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Listone"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Id", "R", "Nome", "Squadra", "Qt.A", "Qt.I", "FVM"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{101, "A", "Lautaro", "Inter", 1234.5, 38, 250}))

	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	currency := "€ #,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currency})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "E3", "E3", thousands))
	require.NoError(t, f.SetCellStyle(sheet, "F3", "G3", money))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	res, err := ParseCatalog(buf.Bytes(), mocks.NewMockRandom())
	require.NoError(t, err)
	require.Len(t, res.Players, 1)

	p := res.Players[0]
	assert.Equal(t, model.PlayerID(101), p.ID)
	assert.Equal(t, 1234.5, p.BaseValue)
	assert.Equal(t, 38.0, p.BaseValueAlt)
	assert.Equal(t, 250.0, p.MeritValue)
}

func TestParseCatalogMissingColumnsWarns(t *testing.T) {
	data := testutil.BuildXLSX(t, [][]string{
		{"Title"},
		{"Nome", "Ruolo"},
		{"Dimarco", "D"},
	})

	res, err := ParseCatalog(data, mocks.NewMockRandom())
	require.NoError(t, err)
	require.Len(t, res.Players, 1)
	assert.Equal(t, "", res.Players[0].Team)
	assert.Equal(t, 0.0, res.Players[0].BaseValue)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "team")
	assert.Contains(t, res.Warnings[0], "baseValue")
}

func TestParseCatalogDuplicateIDs(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(7, 555)

	data := testutil.BuildXLSX(t, [][]string{
		{"Title"},
		{"Id", "Nome", "R", "Squadra", "Qt.A"},
		{"7", "Maignan", "P", "Milan", "15"},
		{"7", "Theo", "D", "Milan", "18"},
	})

	res, err := ParseCatalog(data, rnd)
	require.NoError(t, err)
	require.Len(t, res.Players, 2)
	assert.Equal(t, model.PlayerID(7), res.Players[0].ID)
	assert.Equal(t, model.PlayerID(555), res.Players[1].ID, "colliding random draw is retried")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "duplicate id 7")
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{
			name: "not a workbook",
			data: func(*testing.T) []byte { return []byte("definitely not xlsx") },
		},
		{
			name: "empty input",
			data: func(*testing.T) []byte { return nil },
		},
		{
			name: "title and header only",
			data: func(t *testing.T) []byte {
				return testutil.BuildXLSX(t, [][]string{{"Title"}, {"Nome", "R"}})
			},
		},
		{
			name: "empty sheet",
			data: func(t *testing.T) []byte { return testutil.BuildXLSX(t, nil) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(tt.data(t), mocks.NewMockRandom())
			require.Error(t, err)

			var pe *model.ParseError
			assert.True(t, errors.As(err, &pe), "got %T: %v", err, err)
		})
	}
}
