package render

import (
	"sync"

	"github.com/pterm/pterm"
)

// Sink is a render target. The binary backs sinks with pterm live areas;
// tests use Buffer. Updates replace the previous content wholesale, which
// is what keeps re-renders of the same snapshot idempotent.
type Sink interface {
	Update(content string)
}

// Registry maps the logical screen regions to their sinks. It is built once
// at startup and handed to the engine; nothing re-resolves targets ad hoc.
type Registry struct {
	Table   Sink
	Actions Sink
	Log     Sink
}

func NewRegistry(table, actions, log Sink) Registry {
	if table == nil {
		table = nopSink{}
	}
	if actions == nil {
		actions = nopSink{}
	}
	if log == nil {
		log = nopSink{}
	}
	return Registry{Table: table, Actions: actions, Log: log}
}

type nopSink struct{}

func (nopSink) Update(string) {}

// Buffer retains the last content and an update count.
type Buffer struct {
	mu      sync.Mutex
	last    string
	updates int
}

func (b *Buffer) Update(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = content
	b.updates++
}

func (b *Buffer) Last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *Buffer) Updates() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updates
}

// Area adapts a pterm live area to the Sink interface.
type Area struct {
	area *pterm.AreaPrinter
}

func NewArea(area *pterm.AreaPrinter) *Area {
	return &Area{area: area}
}

func (a *Area) Update(content string) {
	if a.area != nil {
		a.area.Update(content)
	}
}
