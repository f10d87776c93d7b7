package e2e_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fantasta/internal/api"
	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/cli"
	"github.com/mcoot/fantasta/internal/factory"
	"github.com/mcoot/fantasta/internal/model"
	"github.com/mcoot/fantasta/internal/services/ledger"
	"github.com/mcoot/fantasta/internal/tabular"
	"github.com/mcoot/fantasta/internal/testutil"
)

// cliRunner executes the CLI root command in-process against a server
type cliRunner struct {
	serverURL string
}

func newCLIRunner(serverURL string) *cliRunner {
	return &cliRunner{serverURL: serverURL}
}

func (r *cliRunner) run(args ...string) (string, error) {
	return r.runFormat("json", args...)
}

func (r *cliRunner) runText(args ...string) (string, error) {
	return r.runFormat("text", args...)
}

func (r *cliRunner) runFormat(format string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", format,
	}, args...)

	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetArgs(fullArgs)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

// startTestServer serves the API over a fresh in-memory application
func startTestServer(t *testing.T) (*httptest.Server, *factory.TestApp) {
	t.Helper()

	app := factory.NewTestApp(ledger.Options{})
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		AuctionService: app.Auction,
		Metrics:        app.Metrics,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, app
}

func decodeOutput[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), output)
	return v
}

// writeCatalog writes a small quotation workbook and returns its path
func writeCatalog(t *testing.T) string {
	t.Helper()

	players := []*model.Player{
		{ID: 1, Name: "Maignan", Role: model.RoleGoalkeeper, Team: "Milan", BaseValue: 18, BaseValueAlt: 18, MeritValue: 60},
		{ID: 2, Name: "Bastoni", Role: model.RoleDefender, Team: "Inter", BaseValue: 16, BaseValueAlt: 15, MeritValue: 55},
		{ID: 3, Name: "Barella", Role: model.RoleMidfielder, Team: "Inter", BaseValue: 20, BaseValueAlt: 19, MeritValue: 90},
		{ID: 4, Name: "Lookman", Role: model.RoleAttacker, Team: "Atalanta", BaseValue: 28, BaseValueAlt: 27, MeritValue: 140},
		{ID: 5, Name: "Kvaratskhelia", Role: model.RoleAttacker, Team: "Napoli", BaseValue: 35, BaseValueAlt: 34, MeritValue: 180},
	}
	path := filepath.Join(t.TempDir(), "Quotazioni_Fantacalcio.xlsx")
	require.NoError(t, os.WriteFile(path, testutil.CatalogXLSX(t, players), 0o644))
	return path
}

func setupAuction(t *testing.T, c *cliRunner) {
	t.Helper()

	output, err := c.run("catalog", "load", writeCatalog(t))
	require.NoError(t, err, "output: %s", output)
	loaded := decodeOutput[response.CatalogLoaded](t, output)
	require.Equal(t, 5, loaded.Players)

	output, err = c.run("session", "setup", "Alice", "Bob", "--budget", "300")
	require.NoError(t, err, "output: %s", output)
	setup := decodeOutput[response.SetupResponse](t, output)
	require.True(t, setup.Created)
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)

	output, err := c.run("health")
	require.NoError(t, err, "output: %s", output)

	resp := decodeOutput[cli.HealthResult](t, output)
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_SessionSetup(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)
	setupAuction(t, c)

	output, err := c.run("session", "show")
	require.NoError(t, err, "output: %s", output)
	session := decodeOutput[response.Session](t, output)
	assert.Equal(t, 300, session.InitialBudget)
	assert.Equal(t, 5, session.PlayerCount)
	require.Len(t, session.Participants, 2)

	// A second setup leaves the session alone
	output, err = c.run("session", "setup", "Carol", "Dave")
	require.NoError(t, err, "output: %s", output)
	setup := decodeOutput[response.SetupResponse](t, output)
	assert.False(t, setup.Created)
	assert.Equal(t, "Alice", setup.Session.Participants[0].Name)

	// Arguments are checked before any request is made
	_, err = c.run("session", "setup", "Solo")
	assert.Error(t, err)
}

func TestCLI_BidCommands(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)
	setupAuction(t, c)

	output, err := c.run("bid", "acquire", "4", "Alice", "40")
	require.NoError(t, err, "output: %s", output)
	player := decodeOutput[response.Player](t, output)
	require.NotNil(t, player.OwnedBy)
	assert.Equal(t, "Alice", *player.OwnedBy)
	assert.Equal(t, 40, *player.PaidPrice)

	output, err = c.run("bid", "revise", "4", "Alice", "55")
	require.NoError(t, err, "output: %s", output)
	player = decodeOutput[response.Player](t, output)
	assert.Equal(t, 55, *player.PaidPrice)

	output, err = c.run("participants", "show", "Alice")
	require.NoError(t, err, "output: %s", output)
	alice := decodeOutput[response.ParticipantDetail](t, output)
	assert.Equal(t, 245, alice.Budget)
	assert.Equal(t, 55, alice.TotalSpent)
	assert.Equal(t, 1, alice.RoleCounts["A"])

	// Rejections surface the server's error code
	_, err = c.run("bid", "acquire", "4", "Bob", "10")
	var reqErr *cli.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "PLAYER_OWNED", reqErr.Code)

	_, err = c.run("bid", "acquire", "5", "Bob", "301")
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "INSUFFICIENT_BUDGET", reqErr.Code)

	output, err = c.run("bid", "release", "4", "Alice")
	require.NoError(t, err, "output: %s", output)
	player = decodeOutput[response.Player](t, output)
	assert.Equal(t, "free", player.Status)
	assert.Nil(t, player.OwnedBy)

	_, err = c.run("bid", "acquire", "abc", "Alice", "1")
	assert.ErrorContains(t, err, "invalid player id")
}

func TestCLI_Queries(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)
	setupAuction(t, c)

	_, err := c.run("bid", "acquire", "2", "Bob", "12")
	require.NoError(t, err)
	_, err = c.run("bid", "acquire", "3", "Alice", "30")
	require.NoError(t, err)

	output, err := c.run("players", "list", "--role", "A")
	require.NoError(t, err, "output: %s", output)
	attackers := decodeOutput[[]response.Player](t, output)
	assert.Len(t, attackers, 2)

	output, err = c.run("players", "list", "--status", "owned", "--team", "Inter")
	require.NoError(t, err, "output: %s", output)
	assert.Len(t, decodeOutput[[]response.Player](t, output), 2)

	output, err = c.run("players", "list", "-q", "kvara")
	require.NoError(t, err, "output: %s", output)
	found := decodeOutput[[]response.Player](t, output)
	require.Len(t, found, 1)
	assert.Equal(t, 5, found[0].ID)

	output, err = c.run("history")
	require.NoError(t, err, "output: %s", output)
	history := decodeOutput[[]response.Player](t, output)
	require.Len(t, history, 2)
	assert.Equal(t, "Barella", history[0].Name, "most expensive purchase first")

	output, err = c.run("teams")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, []string{"Atalanta", "Inter", "Milan", "Napoli"}, decodeOutput[response.Teams](t, output).Teams)

	output, err = c.run("stats")
	require.NoError(t, err, "output: %s", output)
	stats := decodeOutput[response.Stats](t, output)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Owned)

	output, err = c.run("participants", "roster", "Bob")
	require.NoError(t, err, "output: %s", output)
	roster := decodeOutput[[]response.Player](t, output)
	require.Len(t, roster, 1)
	assert.Equal(t, "Bastoni", roster[0].Name)

	_, err = c.run("participants", "roster", "Nobody")
	var reqErr *cli.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "PARTICIPANT_NOT_FOUND", reqErr.Code)

	output, err = c.run("participants", "can-acquire", "Alice", "C")
	require.NoError(t, err, "output: %s", output)
	assert.True(t, decodeOutput[response.Eligibility](t, output).Allowed)

	output, err = c.run("results")
	require.NoError(t, err, "output: %s", output)
	results := decodeOutput[model.AuctionResults](t, output)
	assert.Equal(t, 2, results.TotalOwned)
	assert.Equal(t, 21.0, results.AveragePrice)
}

func TestCLI_UndoAndReset(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)
	setupAuction(t, c)

	_, err := c.run("bid", "acquire", "1", "Bob", "20")
	require.NoError(t, err)

	output, err := c.run("session", "undo")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, 0, decodeOutput[response.Session](t, output).OwnedCount)

	output, err = c.run("session", "reset")
	require.NoError(t, err, "output: %s", output)

	output, err = c.run("session", "show")
	require.NoError(t, err, "output: %s", output)
	session := decodeOutput[response.Session](t, output)
	assert.Empty(t, session.Participants)
	assert.Zero(t, session.PlayerCount)
}

func TestCLI_ExportImport(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)
	setupAuction(t, c)

	_, err := c.run("bid", "acquire", "5", "Alice", "120")
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "auction.xlsx")
	output, err := c.run("export", "xlsx", "--out", exportPath)
	require.NoError(t, err, "output: %s", output)

	f, err := excelize.OpenFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, f.GetSheetList(), tabular.SheetReimport)
	require.NoError(t, f.Close())

	_, err = c.run("session", "reset")
	require.NoError(t, err)

	output, err = c.run("import", exportPath)
	require.NoError(t, err, "output: %s", output)
	imported := decodeOutput[response.Imported](t, output)
	assert.Equal(t, 2, imported.Participants)
	assert.Equal(t, 5, imported.Players)
	assert.Equal(t, 1, imported.Owned)

	output, err = c.run("participants", "show", "Alice")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, 180, decodeOutput[response.ParticipantDetail](t, output).Budget)

	output, err = c.run("export", "json", "--out", "-")
	require.NoError(t, err, "output: %s", output)
	var doc struct {
		Participants []map[string]any `json:"participants"`
		Players      []map[string]any `json:"players"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &doc))
	assert.Len(t, doc.Participants, 2)
	assert.Len(t, doc.Players, 5)
}

func TestCLI_ImportRejectsGarbage(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)

	path := filepath.Join(t.TempDir(), "nope.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	_, err := c.run("import", path)
	var reqErr *cli.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "PARSE_ERROR", reqErr.Code)

	_, err = c.run("catalog", "load", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCLI_TextOutput(t *testing.T) {
	server, _ := startTestServer(t)
	c := newCLIRunner(server.URL)
	setupAuction(t, c)

	_, err := c.run("bid", "acquire", "3", "Bob", "25")
	require.NoError(t, err)

	output, err := c.runText("participants", "list")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "275")

	output, err = c.runText("participants", "can-acquire", "Alice", "X")
	assert.Error(t, err, "output: %s", output)

	output, err = c.runText("players", "show", "3")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Player: Barella (3)")
	assert.Contains(t, output, "Owner: Bob for 25")
}
