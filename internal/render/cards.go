package render

import (
	"strings"

	"github.com/pterm/pterm"

	"pokertable/card"
)

// boardSize is the full community board; shorter boards are padded with
// face-down placeholders.
const boardSize = 5

const faceDownCell = "[??]"

// CardCell renders one card code as a table cell. Sentinels and anything
// unparseable render face down; the renderer never fails a frame over one
// bad code.
func CardCell(code string) string {
	c, err := card.ParseCode(code)
	if err != nil || c.FaceDown {
		return pterm.FgDarkGray.Sprint(faceDownCell)
	}
	label := "[" + c.Rank + c.Suit.String() + "]"
	if c.Color() == card.Red {
		return pterm.FgLightRed.Sprint(label)
	}
	return pterm.FgLightWhite.Sprint(label)
}

// CommunityRow renders the board in the authority's order, padded with
// trailing face-down placeholders to exactly five cells.
func CommunityRow(codes []string) string {
	var b strings.Builder
	count := 0
	for _, code := range codes {
		if count == boardSize {
			break
		}
		b.WriteString(CardCell(code))
		count++
	}
	for ; count < boardSize; count++ {
		b.WriteString(pterm.FgDarkGray.Sprint(faceDownCell))
	}
	return b.String()
}

// Initials builds an avatar from the first rune of each name token.
func Initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "?"
	}
	var b strings.Builder
	for _, f := range fields {
		r := []rune(f)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
