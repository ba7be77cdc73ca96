package view

// Status is the table-level game status pushed by the authority.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusStarting Status = "STARTING"
	StatusDealing  Status = "DEALING"
	StatusBetting  Status = "BETTING"
	StatusShowdown Status = "SHOWDOWN"
	StatusFinished Status = "FINISHED"
)

// BettingRound marks the street within a hand.
type BettingRound string

const (
	RoundPreflop  BettingRound = "PREFLOP"
	RoundFlop     BettingRound = "FLOP"
	RoundTurn     BettingRound = "TURN"
	RoundRiver    BettingRound = "RIVER"
	RoundShowdown BettingRound = "SHOWDOWN"
	RoundNone     BettingRound = "NONE"
)

var BettingRoundDictionary = map[BettingRound]string{
	RoundPreflop:  "Pre-Flop",
	RoundFlop:     "Flop",
	RoundTurn:     "Turn",
	RoundRiver:    "River",
	RoundShowdown: "Showdown",
	RoundNone:     "-",
}

// PlayerStatus is the per-seat status within the current hand.
type PlayerStatus string

const (
	PlayerActive     PlayerStatus = "ACTIVE"
	PlayerFolded     PlayerStatus = "FOLDED"
	PlayerAllIn      PlayerStatus = "ALL_IN"
	PlayerSittingOut PlayerStatus = "SITTING_OUT"
	PlayerEliminated PlayerStatus = "ELIMINATED"
)

// ActionKind names a player action on the wire.
type ActionKind string

const (
	ActionFold  ActionKind = "FOLD"
	ActionCheck ActionKind = "CHECK"
	ActionCall  ActionKind = "CALL"
	ActionBet   ActionKind = "BET"
	ActionRaise ActionKind = "RAISE"
	ActionAllIn ActionKind = "ALL_IN"
)

var ActionKindDictionary = map[ActionKind]string{
	ActionFold:  "Fold",
	ActionCheck: "Check",
	ActionCall:  "Call",
	ActionBet:   "Bet",
	ActionRaise: "Raise",
	ActionAllIn: "All In",
}
