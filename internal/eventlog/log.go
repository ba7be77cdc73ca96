// Package eventlog derives human-readable narration from successive
// snapshots. It is best-effort and non-authoritative: entries are a
// presentation aid, never game state.
package eventlog

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"pokertable/internal/render"
	"pokertable/view"
)

// viewTail is how many entries the log pane shows; the log itself is
// append-only and keeps everything.
const viewTail = 12

type Entry struct {
	At   time.Time
	Text string
}

// Recorder receives entries for durable storage. Optional.
type Recorder interface {
	Record(gameID, text string) error
}

type Log struct {
	mu      sync.Mutex
	entries []Entry
	sink    render.Sink
	history Recorder
	gameID  string
	now     func() time.Time
}

func New(sink render.Sink) *Log {
	if sink == nil {
		sink = render.NewRegistry(nil, nil, nil).Log
	}
	return &Log{sink: sink, now: time.Now}
}

// WithHistory attaches a durable journal for the given game.
func (l *Log) WithHistory(h Recorder, gameID string) *Log {
	l.history = h
	l.gameID = gameID
	return l
}

// Append adds one entry and refreshes the log pane.
func (l *Log) Append(text string) {
	l.mu.Lock()
	l.entries = append(l.entries, Entry{At: l.now(), Text: text})
	tail := l.tailLocked()
	history, gameID := l.history, l.gameID
	l.mu.Unlock()

	l.sink.Update(tail)
	if history != nil {
		if err := history.Record(gameID, text); err != nil {
			log.Printf("[EventLog] History write failed: %v", err)
		}
	}
}

func (l *Log) tailLocked() string {
	start := 0
	if len(l.entries) > viewTail {
		start = len(l.entries) - viewTail
	}
	var b strings.Builder
	for _, e := range l.entries[start:] {
		fmt.Fprintf(&b, "%s  %s\n", e.At.Format("15:04:05"), e.Text)
	}
	return b.String()
}

// Entries returns a copy of everything appended so far.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Observe narrates the transition from the previously applied snapshot to
// the newly applied one. prev is nil on the first snapshot of a session.
func (l *Log) Observe(prev, next *view.Snapshot) {
	if next == nil {
		return
	}

	if next.Status == view.StatusBetting && next.BettingRound == view.RoundPreflop {
		if prev == nil || prev.Status != view.StatusBetting || prev.BettingRound != view.RoundPreflop {
			l.Append("New hand started")
		}
	}

	prevCards := 0
	if prev != nil {
		prevCards = len(prev.CommunityCards)
	}
	cards := len(next.CommunityCards)
	switch {
	case next.BettingRound == view.RoundFlop && cards >= 3 && prevCards < 3:
		l.Append("Flop dealt")
	case next.BettingRound == view.RoundTurn && cards >= 4 && prevCards < 4:
		l.Append("Turn dealt")
	case next.BettingRound == view.RoundRiver && cards >= 5 && prevCards < 5:
		l.Append("River dealt")
	}

	if next.Status == view.StatusShowdown && (prev == nil || prev.Status != view.StatusShowdown) {
		l.Append("Showdown")
	}
}
