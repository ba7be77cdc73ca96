package action

import (
	"encoding/json"
	"errors"
	"testing"

	"pokertable/view"
)

func bettingSnapshot(localChips int, actions map[view.ActionKind]int) *view.Snapshot {
	return &view.Snapshot{
		Status:       view.StatusBetting,
		BettingRound: view.RoundFlop,
		Players: []*view.PlayerView{
			{ID: "me", Name: "Alice", Chips: localChips, Status: view.PlayerActive},
			{ID: "other", Name: "Bob", Chips: 800, Status: view.PlayerActive},
		},
		CurrentPlayerIdx: 0,
		AvailableActions: actions,
		Blinds:           view.Blinds{SmallBlind: 5, BigBlind: 10},
	}
}

func TestDerive_HiddenOutsideBetting(t *testing.T) {
	snap := bettingSnapshot(500, map[view.ActionKind]int{view.ActionCheck: 0})
	snap.Status = view.StatusShowdown
	if Derive(snap, "me").Visible {
		t.Fatal("surface must be hidden outside BETTING")
	}
}

func TestDerive_HiddenWhenNotLocalTurn(t *testing.T) {
	snap := bettingSnapshot(500, map[view.ActionKind]int{view.ActionCheck: 0})
	snap.CurrentPlayerIdx = 1
	if Derive(snap, "me").Visible {
		t.Fatal("surface must be hidden on another player's turn")
	}
	if Derive(nil, "me").Visible {
		t.Fatal("nil snapshot must derive a hidden surface")
	}
}

func TestDerive_OnlyAvailableActionsShown(t *testing.T) {
	s := Derive(bettingSnapshot(500, map[view.ActionKind]int{view.ActionCall: 40}), "me")
	if !s.Visible {
		t.Fatal("expected visible surface")
	}
	if len(s.Buttons) != 1 {
		t.Fatalf("expected exactly one button, got %d", len(s.Buttons))
	}
	b := s.Buttons[0]
	if b.Kind != view.ActionCall || b.Label != "Call 40" || b.Amount != 40 {
		t.Fatalf("unexpected call button: %+v", b)
	}
}

func TestDerive_RaiseBounds(t *testing.T) {
	s := Derive(bettingSnapshot(500, map[view.ActionKind]int{view.ActionRaise: 20}), "me")
	if s.RangeKind != view.ActionRaise {
		t.Fatalf("expected raise range, got %s", s.RangeKind)
	}
	want := Bounds{Min: 20, Default: 40, Max: 500, Step: 5}
	if s.Bounds != want {
		t.Fatalf("expected %+v, got %+v", want, s.Bounds)
	}
}

func TestDerive_BetBoundsUseBigBlindFloor(t *testing.T) {
	s := Derive(bettingSnapshot(500, map[view.ActionKind]int{view.ActionBet: 2}), "me")
	want := Bounds{Min: 10, Default: 20, Max: 500, Step: 5}
	if s.Bounds != want {
		t.Fatalf("expected %+v, got %+v", want, s.Bounds)
	}
}

func TestBounds_ShortStackCollapses(t *testing.T) {
	b := RaiseBounds(100, 35)
	if !b.Fixed() {
		t.Fatal("inverted range must collapse to a fixed control")
	}
	if b.Min != 35 || b.Default != 35 || b.Max != 35 {
		t.Fatalf("expected 35/35/35, got %+v", b)
	}
}

func TestBounds_DefaultCappedByStack(t *testing.T) {
	b := BetBounds(10, 10, 15)
	if b.Default != 15 {
		t.Fatalf("default must not exceed the stack: %+v", b)
	}
}

func TestIntent_RejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []int{0, -5} {
		if _, err := Intent(view.ActionBet, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %d, got %v", amount, err)
		}
		if _, err := Intent(view.ActionRaise, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %d, got %v", amount, err)
		}
	}
}

func TestIntent_Encoding(t *testing.T) {
	frame, err := Intent(view.ActionRaise, 60)
	if err != nil {
		t.Fatalf("Intent err: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(frame, &got); err != nil {
		t.Fatalf("round trip err: %v", err)
	}
	if got["action"] != "RAISE" || got["amount"] != float64(60) {
		t.Fatalf("unexpected frame: %v", got)
	}

	frame, err = Intent(view.ActionFold, 0)
	if err != nil {
		t.Fatalf("Intent err: %v", err)
	}
	var fold map[string]any
	if err := json.Unmarshal(frame, &fold); err != nil {
		t.Fatalf("round trip err: %v", err)
	}
	if _, ok := fold["amount"]; ok {
		t.Fatal("fold must not carry an amount")
	}
}
