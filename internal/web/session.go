// Package web is the browser host: it runs one engine session per
// websocket connection, streaming snapshots out and applying input and
// bonus-choice messages coming back.
package web

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mazecrawl/assets"
	"mazecrawl/internal/engine"
)

const (
	writeWait      = 5 * time.Second
	snapshotPeriod = 50 * time.Millisecond
	tickPeriod     = 33 * time.Millisecond
)

// clientMessage is what the browser sends.
type clientMessage struct {
	Type  string  `json:"type"` // "input", "bonus", "restart", "demo"
	DX    float64 `json:"dx"`
	DY    float64 `json:"dy"`
	Bonus string  `json:"bonus"`
	Demo  string  `json:"demo"`
}

// stateMessage is the per-snapshot frame sent to the browser.
type stateMessage struct {
	Type       string          `json:"type"`
	Snapshot   engine.Snapshot `json:"snapshot"`
	Events     []engine.Event  `json:"events,omitempty"`
	ServerTime int64           `json:"serverTime"`
}

// Handler serves one single-player session per websocket connection.
type Handler struct {
	log      *slog.Logger
	width    int
	height   int
	upgrader websocket.Upgrader
}

// NewHandler creates the websocket handler.
func NewHandler(log *slog.Logger, width, height int) *Handler {
	return &Handler{
		log:    log,
		width:  width,
		height: height,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 8192,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs the session until the client
// goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s := newSession(h.log, conn, h.width, h.height)
	s.run()
}

// session owns one engine and one connection. The engine is only touched
// from the tick goroutine; reader commands are forwarded over a channel.
type session struct {
	log  *slog.Logger
	conn *websocket.Conn
	eng  *engine.Engine

	cmds    chan clientMessage
	closed  chan struct{}
	once    sync.Once
	advance bool
}

func newSession(log *slog.Logger, conn *websocket.Conn, width, height int) *session {
	s := &session{
		log:    log,
		conn:   conn,
		cmds:   make(chan clientMessage, 16),
		closed: make(chan struct{}),
	}
	s.eng = engine.New(engine.Config{
		Width:  width,
		Height: height,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Logger: log,
		Callbacks: engine.Callbacks{
			OnLevelComplete: func() { s.advance = true },
		},
	})
	return s
}

func (s *session) run() {
	defer s.conn.Close()
	go s.readLoop()

	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()
	lastSent := time.Time{}
	last := time.Now()
	first := true

	for {
		select {
		case <-s.closed:
			return
		case msg := <-s.cmds:
			s.apply(msg)
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if first {
				dt = 0
				first = false
			}
			s.eng.Update(dt)
			if s.advance {
				s.advance = false
				s.eng.NextLevel()
			}
			if now.Sub(lastSent) >= snapshotPeriod {
				lastSent = now
				if err := s.send(); err != nil {
					s.log.Info("client gone", "err", err)
					return
				}
			}
		}
	}
}

func (s *session) apply(msg clientMessage) {
	switch msg.Type {
	case "input":
		s.eng.SetInput(msg.DX, msg.DY)
	case "bonus":
		if err := s.eng.ChooseBonus(engine.BonusKind(msg.Bonus)); err != nil {
			s.log.Warn("bonus rejected", "choice", msg.Bonus, "err", err)
		}
	case "restart":
		s.eng.Reset()
	case "demo":
		if err := s.eng.SpawnDemo(assets.Subtype(msg.Demo)); err != nil {
			s.log.Warn("demo spawn rejected", "subtype", msg.Demo, "err", err)
		}
	default:
		s.log.Warn("unknown message type", "type", msg.Type)
	}
}

func (s *session) send() error {
	frame := stateMessage{
		Type:       "state",
		Snapshot:   s.eng.Snapshot(),
		Events:     s.eng.DrainEvents(),
		ServerTime: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *session) readLoop() {
	defer s.once.Do(func() { close(s.closed) })
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.log.Warn("discarding malformed message", "err", err)
			continue
		}
		select {
		case s.cmds <- msg:
		default:
			// Drop input floods rather than blocking the reader.
		}
	}
}
