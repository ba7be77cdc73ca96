// Package identity persists the local player identity across sessions.
// Identity is minted by the lobby join flow and is read-only to the engine:
// there is no in-page recovery from a missing identity.
package identity

import (
	"context"
	"errors"
)

// ErrIdentityMissing is fatal for the table session: the caller must route
// the user back through the join flow instead of retrying.
var ErrIdentityMissing = errors.New("no persisted identity")

// Identity is the local player as the lobby registered it.
type Identity struct {
	PlayerID   string
	PlayerName string
}

// Store keeps one identity per game. Save is only ever called by the
// join/create flow; the table session itself never mutates the store.
type Store interface {
	Save(ctx context.Context, gameID string, id Identity) error
	Load(ctx context.Context, gameID string) (Identity, error)
	// Latest returns the most recently saved game and its identity, so
	// "play" can resume the last joined table without arguments.
	Latest(ctx context.Context) (string, Identity, error)
	Close() error
}
