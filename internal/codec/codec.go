// Package codec translates between wire frames and the snapshot view model.
// It sits between the transport and the engine the way the server's own
// codec sits between its gateway and the game.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"pokertable/view"
)

const (
	TypeGameState = "game_state"
	TypeAction    = "action"
	TypeStartGame = "start_game"
)

// ErrIgnored reports an inbound frame whose type this client does not
// consume. Such frames are reserved for future extension and dropped.
var ErrIgnored = errors.New("frame type ignored")

type serverEnvelope struct {
	Type  string          `json:"type"`
	State json.RawMessage `json:"state"`
}

// DecodeGameState unwraps a {"type":"game_state"} frame into a snapshot.
// Malformed payloads return an error; they must never take the engine down.
func DecodeGameState(data []byte) (*view.Snapshot, error) {
	var env serverEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if env.Type != TypeGameState {
		return nil, ErrIgnored
	}
	if len(env.State) == 0 || string(env.State) == "null" {
		return nil, fmt.Errorf("game_state frame missing state")
	}

	var snap view.Snapshot
	if err := json.Unmarshal(env.State, &snap); err != nil {
		return nil, fmt.Errorf("malformed state: %w", err)
	}
	return &snap, nil
}

type actionEnvelope struct {
	Type   string          `json:"type"`
	Action view.ActionKind `json:"action"`
	Amount *int            `json:"amount,omitempty"`
}

// EncodeAction builds an amount-less action frame (FOLD, CHECK, CALL, ALL_IN).
func EncodeAction(kind view.ActionKind) ([]byte, error) {
	return json.Marshal(actionEnvelope{Type: TypeAction, Action: kind})
}

// EncodeActionAmount builds a BET or RAISE frame carrying its amount.
func EncodeActionAmount(kind view.ActionKind, amount int) ([]byte, error) {
	return json.Marshal(actionEnvelope{Type: TypeAction, Action: kind, Amount: &amount})
}

type startGameEnvelope struct {
	Type string `json:"type"`
}

// EncodeStartGame builds the start-game request frame.
func EncodeStartGame() ([]byte, error) {
	return json.Marshal(startGameEnvelope{Type: TypeStartGame})
}
