package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultLocalDBName = "pokertable_local.db"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStoreFromEnv() (*SQLiteStore, error) {
	dbPath, err := localDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(dbPath)
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteIdentitySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, gameID string, id Identity) error {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("empty game id")
	}
	if strings.TrimSpace(id.PlayerID) == "" {
		return fmt.Errorf("empty player id")
	}

	nowMs := time.Now().UTC().UnixMilli()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO identities (game_id, player_id, player_name, created_at_ms, updated_at_ms)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(game_id) DO UPDATE SET
    player_id = excluded.player_id,
    player_name = excluded.player_name,
    updated_at_ms = excluded.updated_at_ms
`, gameID, id.PlayerID, id.PlayerName, nowMs, nowMs)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context, gameID string) (Identity, error) {
	var id Identity
	err := s.db.QueryRowContext(ctx, `
SELECT player_id, player_name
FROM identities
WHERE game_id = ?
`, strings.TrimSpace(gameID)).Scan(&id.PlayerID, &id.PlayerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrIdentityMissing
		}
		return Identity{}, err
	}
	if id.PlayerID == "" || id.PlayerName == "" {
		return Identity{}, ErrIdentityMissing
	}
	return id, nil
}

func (s *SQLiteStore) Latest(ctx context.Context) (string, Identity, error) {
	var gameID string
	var id Identity
	err := s.db.QueryRowContext(ctx, `
SELECT game_id, player_id, player_name
FROM identities
ORDER BY updated_at_ms DESC
LIMIT 1
`).Scan(&gameID, &id.PlayerID, &id.PlayerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", Identity{}, ErrIdentityMissing
		}
		return "", Identity{}, err
	}
	return gameID, id, nil
}

func ensureSQLiteIdentitySchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS identities (
    game_id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    player_name TEXT NOT NULL DEFAULT '',
    created_at_ms INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_identities_updated ON identities(updated_at_ms DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func localDatabasePathFromEnv() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("IDENTITY_DATABASE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate), nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "PokerTable", defaultLocalDBName), nil
}
