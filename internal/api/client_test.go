package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/create_game" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"game_id":"g-42"}`))
	}))
	defer srv.Close()

	gameID, err := New(srv.URL).CreateGame(context.Background())
	if err != nil {
		t.Fatalf("CreateGame err: %v", err)
	}
	if gameID != "g-42" {
		t.Fatalf("expected g-42, got %q", gameID)
	}
}

func TestJoinGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/join_game/g-42") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("player_name"); got != "Alice B" {
			t.Fatalf("unexpected player_name: %q", got)
		}
		w.Write([]byte(`{"player_id":"p-7","game_id":"g-42"}`))
	}))
	defer srv.Close()

	playerID, err := New(srv.URL).JoinGame(context.Background(), "g-42", "Alice B")
	if err != nil {
		t.Fatalf("JoinGame err: %v", err)
	}
	if playerID != "p-7" {
		t.Fatalf("expected p-7, got %q", playerID)
	}
}

func TestJoinGame_LobbyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Table is full"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).JoinGame(context.Background(), "g-42", "Alice")
	if err == nil || !strings.Contains(err.Error(), "Table is full") {
		t.Fatalf("expected lobby error, got %v", err)
	}
}

func TestJoinGame_RejectsEmptyArgs(t *testing.T) {
	c := New("http://localhost:0")
	if _, err := c.JoinGame(context.Background(), "", "Alice"); err == nil {
		t.Fatal("expected error for empty game id")
	}
	if _, err := c.JoinGame(context.Background(), "g-1", "  "); err == nil {
		t.Fatal("expected error for empty player name")
	}
}
