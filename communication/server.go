package communication

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"reversi/game"
	"reversi/gamemaster"
	"reversi/meta"
	"reversi/player"
	"reversi/searcher"
)

var ErrSessionRunning = errors.New("a session is already running")

type Option func(s *Server)

// WithPacing overrides the pause after every render.
func WithPacing(d time.Duration) Option {
	return func(s *Server) {
		s.pacing = d
	}
}

// Server hosts one game session at a time for the browsers connected to it.
type Server struct {
	hub       *Hub
	human     *player.Interactive
	evaluator searcher.Evaluator
	pacing    time.Duration
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	current *running
	wg      sync.WaitGroup
}

type running struct {
	id     string
	abort  chan struct{}
	undo   chan struct{}
	cancel context.CancelFunc
}

func NewServer(evaluator searcher.Evaluator, options ...Option) *Server {
	if evaluator == nil {
		panic("server needs an evaluator")
	}
	s := &Server{ // Default values
		hub:       NewHub(),
		human:     player.NewInteractive(),
		evaluator: evaluator,
		pacing:    meta.RENDER_PACING,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	for _, option := range options {
		option(s)
	}
	s.hub.Broadcast(Frame{Type: FrameControls, Controls: &gamemaster.Controls{Start: true, Seats: true}})
	return s
}

// Handler wires the routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", s.serveWS)
	r.Post("/api/evaluate", s.evaluate)
	return r
}

// ListenAndServe serves until ctx is done, then ends the running session and
// shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Start seats the two options and runs a new session in the background.
func (s *Server) Start(first, second string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return "", ErrSessionRunning
	}

	p1, err := player.New(first, s.evaluator, s.human)
	if err != nil {
		return "", err
	}
	p2, err := player.New(second, s.evaluator, s.human)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &running{
		id:     uuid.NewString(),
		abort:  make(chan struct{}, 1),
		undo:   make(chan struct{}, meta.UNDO_BACKLOG),
		cancel: cancel,
	}
	view := &webView{hub: s.hub, session: r.id, pacing: s.pacing}
	session := gamemaster.NewSession(p1, p2, view,
		gamemaster.Interrupts{Abort: r.abort, Undo: r.undo},
		gamemaster.WithID(r.id))
	s.current = r

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		out, err := session.Run(ctx)
		s.finished(r, out, err)
	}()
	log.Info().Str("session", r.id).Str("first", first).Str("second", second).Msg("session created")
	return r.id, nil
}

func (s *Server) finished(r *running, out gamemaster.Outcome, err error) {
	s.mu.Lock()
	if s.current == r {
		s.current = nil
	}
	s.mu.Unlock()

	event := log.Info()
	if err != nil {
		event = log.Error().Err(err)
		s.hub.Broadcast(Frame{Type: FrameNotice, Session: r.id, Notice: "Session ended: " + err.Error()})
	}
	if out.Result != nil {
		event = event.Str("result", out.Result.String())
	}
	event.Str("session", r.id).Bool("aborted", out.Aborted).Int("moves", out.Moves).Msg("session finished")
}

// End asks the running session to stop. It reports false when nothing runs.
func (s *Server) End() bool {
	return s.signal(func(r *running) chan struct{} { return r.abort })
}

// Undo asks the running session to take back the last undoable move.
func (s *Server) Undo() bool {
	return s.signal(func(r *running) chan struct{} { return r.undo })
}

func (s *Server) signal(pick func(r *running) chan struct{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	select {
	case pick(s.current) <- struct{}{}:
	default: // backlog full
	}
	return true
}

// Select forwards a board click to the human seat.
func (s *Server) Select(c game.Cell) bool {
	return s.human.Select(c)
}

// Running returns the id of the running session, or "" when idle.
func (s *Server) Running() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.id
}

// Close cancels the running session and waits for it to tear down.
func (s *Server) Close() {
	s.mu.Lock()
	if s.current != nil {
		s.current.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	c := s.hub.register()

	go func() {
		defer conn.Close()
		if err := c.writeLoop(conn); err != nil {
			log.Debug().Err(err).Msg("websocket write")
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.hub.unregister(c)
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			log.Debug().Err(err).Msg("malformed command")
			continue
		}
		s.dispatch(cmd)
	}
}

func (s *Server) dispatch(cmd Command) {
	switch cmd.Type {
	case CommandStart:
		if _, err := s.Start(cmd.First, cmd.Second); err != nil {
			log.Warn().Err(err).Msg("start ignored")
		}
	case CommandSelect:
		s.Select(game.Cell{Row: cmd.Row, Col: cmd.Col})
	case CommandEnd:
		s.End()
	case CommandUndo:
		s.Undo()
	default:
		log.Debug().Str("type", cmd.Type).Msg("unknown command")
	}
}
