// Package conn owns the persistent channel to the table authority: it is
// the only writer of the socket and of the connection state.
package conn

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// State of the persistent channel. Sends are permitted only while OPEN.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

type EventKind int

const (
	EventOpen EventKind = iota
	EventClosed
	EventFrame
)

// Event is delivered on a single channel so the engine can consume the
// connection lifecycle and inbound frames strictly in sequence.
type Event struct {
	Kind  EventKind
	Frame []byte
	Err   error
}

const (
	defaultReconnectDelay = 3 * time.Second
	writeWait             = 10 * time.Second
	pongWait              = 60 * time.Second
	pingPeriod            = 30 * time.Second
	maxFrameSize          = 65536
	sendBufferSize        = 256
)

type Config struct {
	URL            string
	ReconnectDelay time.Duration
	Dialer         *websocket.Dialer
}

// Manager runs the CONNECTING -> OPEN -> CLOSED -> CONNECTING loop. Each
// entry into CLOSED schedules exactly one reconnect attempt; teardown via
// Close is the only terminal exit.
type Manager struct {
	cfg    Config
	events chan Event

	mu        sync.Mutex
	state     State
	ws        *websocket.Conn
	send      chan []byte
	connDone  chan struct{}
	reconnect *time.Timer
	closed    bool
}

func New(cfg Config) *Manager {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	return &Manager{
		cfg:    cfg,
		events: make(chan Event, 64),
		state:  StateClosed,
	}
}

// Events carries lifecycle transitions and inbound frames, in order.
func (m *Manager) Events() <-chan Event {
	return m.events
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start begins the first connection attempt.
func (m *Manager) Start() {
	go m.connect()
}

func (m *Manager) connect() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.mu.Unlock()

	log.Printf("[Conn] Connecting to %s", m.cfg.URL)
	ws, _, err := m.cfg.Dialer.Dial(m.cfg.URL, nil)
	if err != nil {
		log.Printf("[Conn] Dial error: %v", err)
		m.transitionClosed(err)
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		ws.Close()
		return
	}
	m.ws = ws
	m.send = make(chan []byte, sendBufferSize)
	m.connDone = make(chan struct{})
	m.state = StateOpen
	send, connDone := m.send, m.connDone
	m.mu.Unlock()

	log.Printf("[Conn] Connected")
	m.events <- Event{Kind: EventOpen}

	go m.readPump(ws)
	go m.writePump(ws, send, connDone)
}

func (m *Manager) readPump(ws *websocket.Conn) {
	ws.SetReadLimit(maxFrameSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[Conn] Read error: %v", err)
			}
			m.transitionClosed(err)
			return
		}
		m.events <- Event{Kind: EventFrame, Frame: message}
	}
}

func (m *Manager) writePump(ws *websocket.Conn, send <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-send:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return // readPump observes the broken socket
			}
		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Send queues a frame for delivery. Frames offered while the channel is not
// OPEN are dropped, never queued; the caller logs the drop where it matters.
func (m *Manager) Send(frame []byte) bool {
	m.mu.Lock()
	if m.state != StateOpen || m.send == nil {
		m.mu.Unlock()
		log.Printf("[Conn] Not connected; frame dropped")
		return false
	}
	send := m.send
	m.mu.Unlock()

	select {
	case send <- frame:
		return true
	default:
		log.Printf("[Conn] Send buffer full; frame dropped")
		return false
	}
}

func (m *Manager) transitionClosed(cause error) {
	m.mu.Lock()
	if m.closed || m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.state = StateClosed
	if m.ws != nil {
		m.ws.Close()
		m.ws = nil
	}
	if m.connDone != nil {
		close(m.connDone)
		m.connDone = nil
	}
	m.send = nil
	m.mu.Unlock()

	log.Printf("[Conn] Disconnected, retrying in %s", m.cfg.ReconnectDelay)
	m.events <- Event{Kind: EventClosed, Err: cause}

	m.mu.Lock()
	if !m.closed {
		m.reconnect = time.AfterFunc(m.cfg.ReconnectDelay, m.connect)
	}
	m.mu.Unlock()
}

// Close tears the channel down for good. No further events are emitted and
// the pending reconnect, if any, is cancelled.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.state = StateClosed
	if m.reconnect != nil {
		m.reconnect.Stop()
		m.reconnect = nil
	}
	if m.connDone != nil {
		close(m.connDone)
		m.connDone = nil
	}
	ws := m.ws
	m.ws = nil
	m.send = nil
	m.mu.Unlock()

	if ws != nil {
		ws.Close()
	}
}
