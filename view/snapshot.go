package view

import "encoding/json"

// NumSeats is the fixed number of table positions.
const NumSeats = 8

// NoPlayer marks an absent current player index.
const NoPlayer = -1

type Blinds struct {
	SmallBlind int `json:"small_blind"`
	BigBlind   int `json:"big_blind"`
	Ante       int `json:"ante"`
}

type SidePot struct {
	Amount          int      `json:"amount"`
	EligiblePlayers []string `json:"eligible_players"`
}

// PlayerView is one occupied seat as the authority shows it to this viewer.
// Hole cards are real codes only for the viewer's own seat (or at showdown);
// other seats carry face-down markers.
type PlayerView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Position     int          `json:"position"`
	Chips        int          `json:"chips"`
	CurrentBet   int          `json:"current_bet"`
	TotalBet     int          `json:"total_bet"`
	Status       PlayerStatus `json:"status"`
	IsDealer     bool         `json:"is_dealer"`
	IsSmallBlind bool         `json:"is_small_blind"`
	IsBigBlind   bool         `json:"is_big_blind"`
	HasActed     bool         `json:"has_acted"`
	Cards        []string     `json:"cards"`
}

// Snapshot is the authoritative view model of the table at one instant.
// Each snapshot fully supersedes the previous one; nothing is merged.
type Snapshot struct {
	GameID           string             `json:"game_id"`
	Status           Status             `json:"status"`
	BettingRound     BettingRound       `json:"betting_round"`
	Pot              int                `json:"pot"`
	MainPot          int                `json:"main_pot"`
	SidePots         []SidePot          `json:"side_pots"`
	CurrentBet       int                `json:"current_bet"`
	HandNumber       int                `json:"hand_number"`
	CommunityCards   []string           `json:"community_cards"`
	Players          []*PlayerView      `json:"players"`
	CurrentPlayerIdx int                `json:"current_player_idx"`
	AvailableActions map[ActionKind]int `json:"available_actions"`
	Blinds           Blinds             `json:"blinds"`
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type alias Snapshot
	aux := alias{CurrentPlayerIdx: NoPlayer}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Snapshot(aux)
	return nil
}

// Seats returns exactly NumSeats slots. Shorter player arrays are padded
// with empty slots and longer ones truncated; the authority is trusted but
// never allowed to crash the render.
func (s *Snapshot) Seats() []*PlayerView {
	seats := make([]*PlayerView, NumSeats)
	for i := 0; i < NumSeats && i < len(s.Players); i++ {
		seats[i] = s.Players[i]
	}
	return seats
}

// CurrentPlayer resolves current_player_idx to an actionable seat. A bad
// index (out of range, empty slot, folded or otherwise unable to act) is
// treated as "no current player".
func (s *Snapshot) CurrentPlayer() (*PlayerView, int) {
	idx := s.CurrentPlayerIdx
	if idx < 0 || idx >= len(s.Players) || idx >= NumSeats {
		return nil, NoPlayer
	}
	p := s.Players[idx]
	if p == nil {
		return nil, NoPlayer
	}
	switch p.Status {
	case PlayerActive, PlayerAllIn:
		return p, idx
	}
	return nil, NoPlayer
}

// IsTurn reports whether the seat holding playerID is the current player.
func (s *Snapshot) IsTurn(playerID string) bool {
	p, _ := s.CurrentPlayer()
	return p != nil && p.ID == playerID
}

// PlayerByID finds the seat holding playerID, or nil.
func (s *Snapshot) PlayerByID(playerID string) *PlayerView {
	for _, p := range s.Players {
		if p != nil && p.ID == playerID {
			return p
		}
	}
	return nil
}
