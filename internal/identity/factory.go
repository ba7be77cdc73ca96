package identity

import (
	"fmt"
	"os"
	"strings"
)

const (
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

func modeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("IDENTITY_MODE")))
	switch raw {
	case "", ModeSQLite, "local":
		return ModeSQLite
	case ModePostgres, "postgresql", "pg":
		return ModePostgres
	default:
		return raw
	}
}

// NewStoreFromEnv selects the identity backend via IDENTITY_MODE. The local
// sqlite file is the default; postgres exists for shared installs where one
// identity follows the user across machines.
func NewStoreFromEnv() (Store, string, error) {
	mode := modeFromEnv()

	switch mode {
	case ModeSQLite:
		store, err := NewSQLiteStoreFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return store, mode, nil
	case ModePostgres:
		store, err := NewPostgresStoreFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return store, mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid IDENTITY_MODE %q (supported: %s, %s)", mode, ModeSQLite, ModePostgres)
	}
}
