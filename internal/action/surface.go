// Package action derives the legal action surface from a snapshot and turns
// user intent into outbound frames. It holds no state of its own; every
// derivation is a pure read of the snapshot it is given.
package action

import (
	"errors"
	"fmt"

	"pokertable/internal/codec"
	"pokertable/view"
)

// ErrInvalidAmount rejects non-positive bet/raise amounts locally; such an
// intent is never transmitted.
var ErrInvalidAmount = errors.New("bet amount must be positive")

// SliderStep is the granularity of the bet/raise range control.
const SliderStep = 5

// Bounds of the shared bet/raise range control.
type Bounds struct {
	Min     int
	Default int
	Max     int
	Step    int
}

// Fixed reports a collapsed control: the short-stack case where the
// computed minimum exceeds the player's chips leaves one legal value.
func (b Bounds) Fixed() bool {
	return b.Min >= b.Max
}

// BetBounds computes the range for an opening bet. Minimum is the larger of
// the big blind and the authority's minimum; default is double the minimum
// capped at the stack.
func BetBounds(minimum, bigBlind, chips int) Bounds {
	return rangeBounds(maxInt(bigBlind, minimum), chips)
}

// RaiseBounds computes the range for a raise from the authority's minimum.
func RaiseBounds(minimum, chips int) Bounds {
	return rangeBounds(maxInt(minimum, 1), chips)
}

func rangeBounds(minimum, chips int) Bounds {
	if chips < minimum {
		// Inverted range: the control collapses to the whole stack.
		return Bounds{Min: chips, Default: chips, Max: chips, Step: SliderStep}
	}
	return Bounds{
		Min:     minimum,
		Default: minInt(2*minimum, chips),
		Max:     chips,
		Step:    SliderStep,
	}
}

// Button is one visible action control.
type Button struct {
	Kind   view.ActionKind
	Label  string
	Amount int
}

// Surface is the currently legal action set. When not Visible all other
// fields are zero; the snapshot's available_actions are honored only while
// betting is on and it is the local player's turn.
type Surface struct {
	Visible   bool
	Buttons   []Button
	RangeKind view.ActionKind
	Bounds    Bounds
}

// buttonOrder fixes the presentation order of the recognized kinds.
var buttonOrder = []view.ActionKind{
	view.ActionFold,
	view.ActionCheck,
	view.ActionCall,
	view.ActionBet,
	view.ActionRaise,
	view.ActionAllIn,
}

// Derive computes the surface for the local player from one snapshot.
func Derive(snap *view.Snapshot, localID string) Surface {
	if snap == nil || snap.Status != view.StatusBetting {
		return Surface{}
	}
	cur, _ := snap.CurrentPlayer()
	if cur == nil || cur.ID != localID {
		return Surface{}
	}

	s := Surface{Visible: true}
	for _, kind := range buttonOrder {
		amount, ok := snap.AvailableActions[kind]
		if !ok {
			continue
		}
		s.Buttons = append(s.Buttons, Button{
			Kind:   kind,
			Label:  buttonLabel(kind, amount),
			Amount: amount,
		})
		switch kind {
		case view.ActionBet:
			s.RangeKind = view.ActionBet
			s.Bounds = BetBounds(amount, snap.Blinds.BigBlind, cur.Chips)
		case view.ActionRaise:
			s.RangeKind = view.ActionRaise
			s.Bounds = RaiseBounds(amount, cur.Chips)
		}
	}
	return s
}

func buttonLabel(kind view.ActionKind, amount int) string {
	if kind == view.ActionCall {
		return fmt.Sprintf("%s %d", view.ActionKindDictionary[kind], amount)
	}
	return view.ActionKindDictionary[kind]
}

// Intent validates and encodes a user action. BET and RAISE carry the range
// control's current value; everything else is amount-less.
func Intent(kind view.ActionKind, amount int) ([]byte, error) {
	switch kind {
	case view.ActionBet, view.ActionRaise:
		if amount <= 0 {
			return nil, ErrInvalidAmount
		}
		return codec.EncodeActionAmount(kind, amount)
	default:
		return codec.EncodeAction(kind)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
