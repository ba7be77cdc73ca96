package render

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"pokertable/internal/action"
	"pokertable/view"
)

// ComposeTable renders the whole table from one snapshot. It reads nothing
// but the snapshot and the local identity, so rendering the same snapshot
// twice produces the same output.
func ComposeTable(snap *view.Snapshot, localID string) string {
	if snap == nil {
		return ""
	}

	var b strings.Builder

	round := view.BettingRoundDictionary[snap.BettingRound]
	if round == "" {
		round = string(snap.BettingRound)
	}
	fmt.Fprintf(&b, "%s  ·  %s  ·  Hand %d\n", pterm.Bold.Sprint(string(snap.Status)), round, snap.HandNumber)
	fmt.Fprintf(&b, "Board  %s\n", CommunityRow(snap.CommunityCards))
	fmt.Fprintf(&b, "Pot %d   Bet %d   Blinds %d/%d\n\n",
		snap.Pot, snap.CurrentBet, snap.Blinds.SmallBlind, snap.Blinds.BigBlind)

	_, turnIdx := snap.CurrentPlayer()
	for i, p := range snap.Seats() {
		if p == nil {
			continue // empty slot renders nothing at that position
		}
		b.WriteString(seatLine(i, p, localID, i == turnIdx))
		b.WriteByte('\n')
	}
	return b.String()
}

func seatLine(idx int, p *view.PlayerView, localID string, isTurn bool) string {
	var b strings.Builder

	name := p.Name
	if p.ID == localID {
		name += " (You)"
	}
	fmt.Fprintf(&b, "Seat %d  [%s] %s", idx+1, Initials(p.Name), name)

	if p.IsDealer {
		b.WriteString("  " + pterm.FgYellow.Sprint("D"))
	}
	if p.IsSmallBlind {
		b.WriteString("  " + pterm.FgCyan.Sprint("SB"))
	}
	if p.IsBigBlind {
		b.WriteString("  " + pterm.FgCyan.Sprint("BB"))
	}

	fmt.Fprintf(&b, "  ·  %d chips", p.Chips)
	if p.CurrentBet > 0 {
		fmt.Fprintf(&b, "  ·  bet %d", p.CurrentBet)
	}

	if len(p.Cards) > 0 {
		b.WriteString("  ")
		for _, code := range p.Cards {
			b.WriteString(CardCell(code))
		}
	}

	line := b.String()
	switch p.Status {
	case view.PlayerFolded:
		line = pterm.FgDarkGray.Sprint(line + "  folded")
	case view.PlayerAllIn:
		line = pterm.FgLightMagenta.Sprint(line + "  all in")
	}
	// Turn treatment layers on top of status styling.
	if isTurn {
		line = pterm.FgLightYellow.Sprint("▶ ") + line
	} else {
		line = "  " + line
	}
	return line
}

// ComposeActions renders the action surface pane. A hidden surface renders
// empty, which clears the pane.
func ComposeActions(s action.Surface) string {
	if !s.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(pterm.Bold.Sprint("Your turn") + "  ")
	labels := make([]string, 0, len(s.Buttons))
	for _, btn := range s.Buttons {
		labels = append(labels, "["+btn.Label+"]")
	}
	b.WriteString(strings.Join(labels, " "))

	if s.RangeKind != "" {
		kind := view.ActionKindDictionary[s.RangeKind]
		if s.Bounds.Fixed() {
			fmt.Fprintf(&b, "\n%s fixed at %d (all in)", kind, s.Bounds.Max)
		} else {
			fmt.Fprintf(&b, "\n%s range %d-%d, step %d, default %d",
				kind, s.Bounds.Min, s.Bounds.Max, s.Bounds.Step, s.Bounds.Default)
		}
	}
	return b.String()
}
