package eventlog

import (
	"strings"
	"testing"

	"pokertable/internal/render"
	"pokertable/view"
)

func snapshotAt(status view.Status, round view.BettingRound, cards int) *view.Snapshot {
	codes := []string{"A♥", "10♦", "3♣", "K♠", "2♦"}
	return &view.Snapshot{
		Status:         status,
		BettingRound:   round,
		CommunityCards: codes[:cards],
	}
}

func entryTexts(l *Log) []string {
	entries := l.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func TestObserve_HandLifecycle(t *testing.T) {
	l := New(&render.Buffer{})

	var prev *view.Snapshot
	steps := []*view.Snapshot{
		snapshotAt(view.StatusBetting, view.RoundPreflop, 0),
		snapshotAt(view.StatusBetting, view.RoundFlop, 3),
		snapshotAt(view.StatusBetting, view.RoundTurn, 4),
		snapshotAt(view.StatusBetting, view.RoundRiver, 5),
		snapshotAt(view.StatusShowdown, view.RoundShowdown, 5),
	}
	for _, next := range steps {
		l.Observe(prev, next)
		prev = next
	}

	want := []string{"New hand started", "Flop dealt", "Turn dealt", "River dealt", "Showdown"}
	got := entryTexts(l)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestObserve_RepeatedSnapshotAddsNothing(t *testing.T) {
	l := New(&render.Buffer{})
	snap := snapshotAt(view.StatusBetting, view.RoundFlop, 3)

	l.Observe(nil, snap)
	before := len(l.Entries())
	l.Observe(snap, snap)
	if len(l.Entries()) != before {
		t.Fatal("observing an unchanged snapshot must not append entries")
	}
}

func TestObserve_FirstSnapshotMidHand(t *testing.T) {
	l := New(&render.Buffer{})
	l.Observe(nil, snapshotAt(view.StatusBetting, view.RoundTurn, 4))

	got := entryTexts(l)
	if len(got) != 1 || got[0] != "Turn dealt" {
		t.Fatalf("expected only turn narration, got %v", got)
	}
}

func TestAppend_UpdatesSinkWithTail(t *testing.T) {
	buf := &render.Buffer{}
	l := New(buf)

	l.Append("Connected to table")
	l.Append("New hand started")

	out := buf.Last()
	if !strings.Contains(out, "Connected to table") || !strings.Contains(out, "New hand started") {
		t.Fatalf("log pane missing entries: %q", out)
	}
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h, err := OpenHistory(":memory:")
	if err != nil {
		t.Fatalf("OpenHistory err: %v", err)
	}
	defer h.Close()

	l := New(&render.Buffer{}).WithHistory(h, "g-1")
	l.Append("New hand started")
	l.Append("Flop dealt")

	got, err := h.Recent("g-1", 10)
	if err != nil {
		t.Fatalf("Recent err: %v", err)
	}
	if len(got) != 2 || got[0] != "New hand started" || got[1] != "Flop dealt" {
		t.Fatalf("unexpected history: %v", got)
	}

	other, err := h.Recent("g-2", 10)
	if err != nil {
		t.Fatalf("Recent err: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("history must be scoped per game, got %v", other)
	}
}
