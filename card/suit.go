package card

// Color is the presentation color of a suit.
type Color byte

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

type Suit rune

const (
	Spade   Suit = '♠'
	Heart   Suit = '♥'
	Club    Suit = '♣'
	Diamond Suit = '♦'
)

func (s Suit) String() string {
	return string(rune(s))
}

// Color maps hearts/diamonds to red and clubs/spades to black.
func (s Suit) Color() Color {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

func validSuit(s Suit) bool {
	switch s {
	case Spade, Heart, Club, Diamond:
		return true
	}
	return false
}
