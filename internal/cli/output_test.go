package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fantasta/internal/api/response"
	"github.com/mcoot/fantasta/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).Print(response.Teams{Teams: []string{"Inter", "Milan"}})

	var got response.Teams
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"Inter", "Milan"}, got.Teams)
}

func TestOutputMessage(t *testing.T) {
	var text, js bytes.Buffer
	NewOutput("text", &text).PrintMessage("Session reset")
	NewOutput("json", &js).PrintMessage("Session reset")

	assert.Equal(t, "Session reset\n", text.String())
	assert.JSONEq(t, `{"message":"Session reset"}`, js.String())
}

func TestOutputTextPlayers(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print([]response.Player{
		{ID: 4, Name: "Lookman", Role: "A", Team: "Atalanta", BaseValue: 28, Status: "owned", OwnedBy: ptr("Alice"), PaidPrice: ptr(40)},
		{ID: 2, Name: "Bastoni", Role: "D", Team: "Inter", BaseValue: 16.5, Status: "free"},
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "OWNER")
	assert.Contains(t, string(lines[1]), "Alice")
	assert.Contains(t, string(lines[1]), "40")
	assert.Contains(t, string(lines[2]), "16.5")
}

func TestOutputTextStatsListsEveryRole(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(response.Stats{
		Total: 3, Owned: 1, Free: 2,
		Roles: map[string]response.RoleStats{"A": {Total: 3, Owned: 1, Free: 2}},
	})

	out := buf.String()
	assert.Contains(t, out, "Players: 3 (1 owned, 2 free)")
	for _, role := range model.Roles {
		assert.Contains(t, out, role.Label())
	}
}

func TestOutputTextEligibility(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)
	out.Print(response.Eligibility{Participant: "Alice", Role: "P", Allowed: false, Reason: "goalkeeper slots full"})

	assert.Equal(t, "Alice cannot acquire a P: goalkeeper slots full\n", buf.String())
}

func TestOutputUnknownTypeFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf).Print(map[string]int{"a": 1})

	assert.JSONEq(t, `{"a":1}`, buf.String())
}
