package render

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"pokertable/internal/action"
	"pokertable/view"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	m.Run()
}

func TestCommunityRow_PadsToFiveSlots(t *testing.T) {
	cases := []struct {
		codes []string
		want  int // face-down cells
	}{
		{nil, 5},
		{[]string{"A♥", "10♦", "3♣"}, 2},
		{[]string{"A♥", "10♦", "3♣", "K♠"}, 1},
		{[]string{"A♥", "10♦", "3♣", "K♠", "2♦"}, 0},
	}
	for _, tc := range cases {
		row := CommunityRow(tc.codes)
		if got := strings.Count(row, "[??]"); got != tc.want {
			t.Fatalf("codes %v: expected %d placeholders, got %d in %q", tc.codes, tc.want, got, row)
		}
		if got := strings.Count(row, "["); got != 5 {
			t.Fatalf("codes %v: expected 5 cells, got %d", tc.codes, got)
		}
	}
}

func TestCommunityRow_PreservesOrder(t *testing.T) {
	row := CommunityRow([]string{"A♥", "10♦", "3♣"})
	if !strings.HasPrefix(row, "[A♥][10♦][3♣]") {
		t.Fatalf("board order changed: %q", row)
	}
}

func TestCardCell_FaceDownAndInvalid(t *testing.T) {
	for _, code := range []string{"??", "XX", "garbage", ""} {
		if got := CardCell(code); got != "[??]" {
			t.Fatalf("code %q: expected face-down cell, got %q", code, got)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Alice":        "A",
		"alice bob":    "AB",
		"Jean le Carr": "JLC",
		"":             "?",
		"   ":          "?",
	}
	for name, want := range cases {
		if got := Initials(name); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", name, got, want)
		}
	}
}

func tableSnapshot() *view.Snapshot {
	return &view.Snapshot{
		Status:       view.StatusBetting,
		BettingRound: view.RoundFlop,
		Pot:          120,
		CurrentBet:   40,
		HandNumber:   2,
		CommunityCards: []string{
			"A♥", "10♦", "3♣",
		},
		Players: []*view.PlayerView{
			{ID: "me", Name: "Alice", Chips: 960, CurrentBet: 40, Status: view.PlayerActive,
				IsDealer: true, Cards: []string{"A♠", "K♠"}},
			{ID: "p2", Name: "Bob Dole", Chips: 500, Status: view.PlayerFolded, Cards: []string{"??", "??"}},
			nil,
		},
		CurrentPlayerIdx: 0,
		Blinds:           view.Blinds{SmallBlind: 5, BigBlind: 10},
	}
}

func TestComposeTable_SeatContents(t *testing.T) {
	out := ComposeTable(tableSnapshot(), "me")

	for _, want := range []string{
		"Alice (You)", "960 chips", "bet 40", "[A♠][K♠]", "D",
		"Bob Dole", "folded", "[??][??]",
		"Pot 120", "Blinds 5/10",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in render:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "▶") {
		t.Fatal("current turn marker missing")
	}
	if strings.Contains(out, "Seat 3") {
		t.Fatal("empty slot must render nothing")
	}
}

func TestComposeTable_Idempotent(t *testing.T) {
	snap := tableSnapshot()
	first := ComposeTable(snap, "me")
	second := ComposeTable(snap, "me")
	if first != second {
		t.Fatal("rendering the same snapshot twice must produce identical output")
	}
}

func TestComposeTable_FullReplaceNoResidue(t *testing.T) {
	a := tableSnapshot()
	b := &view.Snapshot{
		Status: view.StatusWaiting,
		Players: []*view.PlayerView{
			{ID: "p9", Name: "Zed", Chips: 1000, Status: view.PlayerActive},
		},
		CurrentPlayerIdx: view.NoPlayer,
	}

	_ = ComposeTable(a, "me")
	out := ComposeTable(b, "me")
	for _, stale := range []string{"Alice", "Bob", "Pot 120"} {
		if strings.Contains(out, stale) {
			t.Fatalf("residue %q from superseded snapshot:\n%s", stale, out)
		}
	}
	if !strings.Contains(out, "Zed") {
		t.Fatalf("new snapshot content missing:\n%s", out)
	}
}

func TestComposeActions(t *testing.T) {
	s := action.Surface{
		Visible: true,
		Buttons: []action.Button{
			{Kind: view.ActionCall, Label: "Call 40", Amount: 40},
			{Kind: view.ActionRaise, Label: "Raise", Amount: 20},
		},
		RangeKind: view.ActionRaise,
		Bounds:    action.Bounds{Min: 20, Default: 40, Max: 500, Step: 5},
	}
	out := ComposeActions(s)
	for _, want := range []string{"[Call 40]", "[Raise]", "range 20-500", "default 40"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}

	if ComposeActions(action.Surface{}) != "" {
		t.Fatal("hidden surface must render empty")
	}
}
