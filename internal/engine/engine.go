// Package engine ties the table session together: it owns the current
// snapshot, consumes connection events strictly in sequence, and runs the
// render pass. The event loop is the only writer of the snapshot.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"pokertable/internal/action"
	"pokertable/internal/codec"
	"pokertable/internal/conn"
	"pokertable/internal/eventlog"
	"pokertable/internal/identity"
	"pokertable/internal/render"
	"pokertable/view"
)

// Transport is the slice of the connection manager the engine needs.
type Transport interface {
	Events() <-chan conn.Event
	Send(frame []byte) bool
	State() conn.State
}

type Config struct {
	Identity  identity.Identity
	Transport Transport
	Registry  render.Registry
	Log       *eventlog.Log
}

type Engine struct {
	id  identity.Identity
	tr  Transport
	reg render.Registry
	log *eventlog.Log

	mu      sync.Mutex
	current *view.Snapshot
	surface action.Surface

	turns chan action.Surface
}

func New(cfg Config) *Engine {
	lg := cfg.Log
	if lg == nil {
		lg = eventlog.New(cfg.Registry.Log)
	}
	return &Engine{
		id:    cfg.Identity,
		tr:    cfg.Transport,
		reg:   cfg.Registry,
		log:   lg,
		turns: make(chan action.Surface, 1),
	}
}

// Run drains connection events until the context ends or the transport's
// event channel closes. Events are handled one at a time; a render pass
// completes before the next event is taken.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-e.tr.Events():
			if !ok {
				return nil
			}
			e.handle(ev)
		}
	}
}

func (e *Engine) handle(ev conn.Event) {
	// Failures inside a render pass become log entries, never a crash.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] Render pass panic: %v", r)
			e.log.Append("Internal render error; frame skipped")
		}
	}()

	switch ev.Kind {
	case conn.EventOpen:
		e.log.Append("Connected to table")
	case conn.EventClosed:
		e.log.Append("Connection lost; reconnecting shortly")
	case conn.EventFrame:
		e.handleFrame(ev.Frame)
	}
}

func (e *Engine) handleFrame(data []byte) {
	snap, err := codec.DecodeGameState(data)
	if errors.Is(err, codec.ErrIgnored) {
		return
	}
	if err != nil {
		log.Printf("[Engine] %v", err)
		e.log.Append("Dropped a malformed server frame")
		return
	}
	e.apply(snap)
}

// apply replaces the current snapshot and runs the full render pass:
// table, action surface, then log narration against the superseded
// snapshot. The previous snapshot is retained for nothing else.
func (e *Engine) apply(snap *view.Snapshot) {
	e.mu.Lock()
	prev := e.current
	e.current = snap
	surface := action.Derive(snap, e.id.PlayerID)
	e.surface = surface
	e.mu.Unlock()

	e.reg.Table.Update(render.ComposeTable(snap, e.id.PlayerID))
	e.reg.Actions.Update(render.ComposeActions(surface))
	e.log.Observe(prev, snap)

	e.notifyTurn(surface)
}

// notifyTurn offers the latest surface to the input loop; a stale pending
// value is replaced rather than queued.
func (e *Engine) notifyTurn(s action.Surface) {
	select {
	case e.turns <- s:
	default:
		select {
		case <-e.turns:
		default:
		}
		select {
		case e.turns <- s:
		default:
		}
	}
}

// Turns delivers the action surface derived from each applied snapshot,
// latest wins. The interactive input loop blocks on this.
func (e *Engine) Turns() <-chan action.Surface {
	return e.turns
}

// Surface returns the most recently derived action surface.
func (e *Engine) Surface() action.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surface
}

// Current returns the snapshot the view currently reflects.
func (e *Engine) Current() *view.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Submit validates and sends a user action. Invalid amounts never leave the
// client; sends while disconnected are dropped and noted in the log.
func (e *Engine) Submit(kind view.ActionKind, amount int) error {
	frame, err := action.Intent(kind, amount)
	if err != nil {
		e.log.Append(fmt.Sprintf("Rejected %s: amount must be positive", view.ActionKindDictionary[kind]))
		return err
	}
	if !e.tr.Send(frame) {
		e.log.Append("Not connected; action was dropped")
	}
	return nil
}

// StartGame asks the authority to deal the first hand.
func (e *Engine) StartGame() error {
	frame, err := codec.EncodeStartGame()
	if err != nil {
		return err
	}
	if !e.tr.Send(frame) {
		e.log.Append("Not connected; start request dropped")
	}
	return nil
}
