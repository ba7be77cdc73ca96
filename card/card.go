package card

import (
	"fmt"
	"unicode/utf8"
)

// Face-down sentinels the authority uses for cards the viewer may not see.
const (
	CodeHidden    = "??"
	CodeHiddenAlt = "XX"
)

// Card is one parsed card code from a snapshot.
//
// Wire codes are rank characters followed by a single suit glyph, e.g. "A♠"
// or "10♥". Rank length is not fixed.
type Card struct {
	Rank     string
	Suit     Suit
	FaceDown bool
}

var FaceDown = Card{FaceDown: true}

// ParseCode splits a wire code into rank and suit (suit is the last rune).
// The sentinel codes yield a face-down card.
func ParseCode(code string) (Card, error) {
	if code == CodeHidden || code == CodeHiddenAlt {
		return FaceDown, nil
	}

	suitRune, size := utf8.DecodeLastRuneInString(code)
	if size == 0 || suitRune == utf8.RuneError {
		return Card{}, fmt.Errorf("invalid card code: %q", code)
	}
	suit := Suit(suitRune)
	if !validSuit(suit) {
		return Card{}, fmt.Errorf("invalid suit in card code: %q", code)
	}

	rank := code[:len(code)-size]
	if rank == "" {
		return Card{}, fmt.Errorf("missing rank in card code: %q", code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// Color of the card face. Face-down cards report black.
func (c Card) Color() Color {
	if c.FaceDown {
		return Black
	}
	return c.Suit.Color()
}

func (c Card) String() string {
	if c.FaceDown {
		return CodeHidden
	}
	return c.Rank + c.Suit.String()
}
