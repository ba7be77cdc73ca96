package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pokertable/internal/action"
	"pokertable/internal/conn"
	"pokertable/internal/engine"
	"pokertable/internal/eventlog"
	"pokertable/internal/identity"
	"pokertable/internal/render"
	"pokertable/view"
)

func newPlayCmd(server *string) *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Connect to a joined game and play",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *server, gameID)
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "", "game id (defaults to the last joined game)")
	return cmd
}

func runPlay(parent context.Context, server, gameID string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, mode, err := identity.NewStoreFromEnv()
	if err != nil {
		return fmt.Errorf("open identity store (%s): %w", mode, err)
	}
	defer store.Close()

	id, gameID, err := resolveIdentity(ctx, store, gameID)
	if err != nil {
		// A missing identity is not recoverable here; route the user back
		// through the join flow instead of connecting anonymously.
		pterm.Error.Printfln("No identity for this game: %v", err)
		pterm.Info.Println("Run: pokertable join --game <id> --name <you>")
		return err
	}

	wsURL, err := tableSocketURL(server, gameID, id.PlayerID)
	if err != nil {
		return err
	}

	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return fmt.Errorf("start live area: %w", err)
	}
	defer area.Stop()

	scr := newScreen(area)
	reg := render.NewRegistry(scr.tablePane(), scr.actionsPane(), scr.logPane())

	lg := eventlog.New(reg.Log)
	if path := strings.TrimSpace(os.Getenv("EVENT_HISTORY_PATH")); path != "" {
		history, err := eventlog.OpenHistory(path)
		if err != nil {
			pterm.Warning.Printfln("Event history disabled: %v", err)
		} else {
			defer history.Close()
			lg = lg.WithHistory(history, gameID)
		}
	}

	manager := conn.New(conn.Config{URL: wsURL})
	defer manager.Close()

	eng := engine.New(engine.Config{
		Identity:  id,
		Transport: manager,
		Registry:  reg,
		Log:       lg,
	})

	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		eng.Run(ctx)
	}()

	manager.Start()
	lg.Append(fmt.Sprintf("Playing as %s", id.PlayerName))

	err = inputLoop(ctx, eng)
	stop()
	manager.Close()
	<-engineDone
	return err
}

// resolveIdentity loads the persisted identity for gameID, or falls back to
// the most recently joined game when no id was given.
func resolveIdentity(ctx context.Context, store identity.Store, gameID string) (identity.Identity, string, error) {
	if gameID != "" {
		id, err := store.Load(ctx, gameID)
		return id, gameID, err
	}
	gameID, id, err := store.Latest(ctx)
	return id, gameID, err
}

// tableSocketURL derives the table websocket endpoint from the lobby base
// URL: the scheme flips to ws(s) and the game/player pair becomes the path.
func tableSocketURL(server, gameID, playerID string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported server scheme %q", u.Scheme)
	}
	u.Path = "/ws/" + url.PathEscape(gameID) + "/" + url.PathEscape(playerID)
	return u.String(), nil
}

// inputLoop blocks on the engine's turn notifications and translates prompt
// answers into submitted actions. Prompts run on this goroutine only; the
// render pass never waits on user input.
func inputLoop(ctx context.Context, eng *engine.Engine) error {
	promptedStart := false

	for {
		var surface action.Surface
		select {
		case <-ctx.Done():
			return nil
		case surface = <-eng.Turns():
		}

		snap := eng.Current()
		if snap != nil && snap.Status == view.StatusWaiting {
			if !promptedStart {
				promptedStart = true
				start, _ := pterm.DefaultInteractiveConfirm.
					WithDefaultText("Waiting for players. Start the game?").Show()
				if start {
					if err := eng.StartGame(); err != nil {
						return err
					}
				}
			}
			continue
		}
		promptedStart = false

		if !surface.Visible {
			continue
		}
		if err := promptAction(eng, surface); err != nil {
			return err
		}
	}
}

func promptAction(eng *engine.Engine, surface action.Surface) error {
	labels := make([]string, len(surface.Buttons))
	byLabel := make(map[string]action.Button, len(surface.Buttons))
	for i, b := range surface.Buttons {
		labels[i] = b.Label
		byLabel[b.Label] = b
	}

	picked, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		WithDefaultText("Your turn").
		Show()
	if err != nil {
		return nil // cancelled prompt; the next snapshot re-prompts
	}
	button, ok := byLabel[picked]
	if !ok {
		return nil
	}

	amount := 0
	if button.Kind == view.ActionBet || button.Kind == view.ActionRaise {
		amount = promptAmount(surface.Bounds)
		if amount <= 0 {
			return nil
		}
	}
	return eng.Submit(button.Kind, amount)
}

// promptAmount asks for a bet/raise amount within bounds. A collapsed range
// has exactly one legal value and asks nothing.
func promptAmount(b action.Bounds) int {
	if b.Fixed() {
		return b.Max
	}
	for {
		raw, err := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(strconv.Itoa(b.Default)).
			WithDefaultText(fmt.Sprintf("Amount (%d to %d)", b.Min, b.Max)).
			Show()
		if err != nil {
			return 0
		}
		amount, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || amount < b.Min || amount > b.Max {
			pterm.Warning.Printfln("Enter a number between %d and %d", b.Min, b.Max)
			continue
		}
		return amount
	}
}

// screen multiplexes the three logical panes onto one pterm live area. Each
// pane update recomposes the whole frame, so stale content cannot linger.
type screen struct {
	mu      sync.Mutex
	area    *pterm.AreaPrinter
	table   string
	actions string
	log     string
}

func newScreen(area *pterm.AreaPrinter) *screen {
	return &screen{area: area}
}

func (s *screen) tablePane() render.Sink   { return paneSink{s: s, slot: paneTable} }
func (s *screen) actionsPane() render.Sink { return paneSink{s: s, slot: paneActions} }
func (s *screen) logPane() render.Sink     { return paneSink{s: s, slot: paneLog} }

type paneID int

const (
	paneTable paneID = iota
	paneActions
	paneLog
)

type paneSink struct {
	s    *screen
	slot paneID
}

func (p paneSink) Update(content string) {
	p.s.mu.Lock()
	switch p.slot {
	case paneTable:
		p.s.table = content
	case paneActions:
		p.s.actions = content
	case paneLog:
		p.s.log = content
	}
	frame := p.s.composeLocked()
	p.s.mu.Unlock()

	if p.s.area != nil {
		p.s.area.Update(frame)
	}
}

func (s *screen) composeLocked() string {
	var b strings.Builder
	b.WriteString(s.table)
	if s.actions != "" {
		b.WriteString("\n")
		b.WriteString(s.actions)
	}
	if s.log != "" {
		b.WriteString("\n")
		b.WriteString(pterm.FgGray.Sprint("── log ──"))
		b.WriteString("\n")
		b.WriteString(s.log)
	}
	return b.String()
}
