package handlers

import (
	"context"
	"errors"
	"net/http"

	"snapdev-task/internal/board"
	"snapdev-task/internal/cache"
	"snapdev-task/internal/pomodoro"
	"snapdev-task/internal/realtime"
	"snapdev-task/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Runner executes fn on the goroutine that owns the board and the timer,
// and calls Server.Tick on it once per interval. *loop.Loop satisfies it.
type Runner interface {
	Do(ctx context.Context, fn func()) error
	// RestartTick starts a fresh interval so the next Tick is a full interval away
	RestartTick()
}

const snapshotKey = "load"

// LoadResponse is the full state the web shell renders
type LoadResponse struct {
	Columns  []board.ColumnView `json:"columns"`
	Dirty    bool               `json:"dirty"`
	Pomodoro pomodoro.Snapshot  `json:"pomodoro"`
}

// Server holds the shell's collaborators. Board and timer are only touched
// inside runner.Do.
type Server struct {
	runner    Runner
	board     *board.Board
	timer     *pomodoro.Timer
	hub       *realtime.Hub
	snapshots *cache.SimpleCache[string, LoadResponse]
}

// New wires board and timer notifications to the websocket hub
func New(runner Runner, b *board.Board, t *pomodoro.Timer, hub *realtime.Hub) *Server {
	s := &Server{
		runner:    runner,
		board:     b,
		timer:     t,
		hub:       hub,
		snapshots: cache.NewSimpleCache[string, LoadResponse](0),
	}

	b.Subscribe(func(evt board.Event) {
		s.snapshots.Clear()
		hub.BroadcastJSON(evt)
	})
	t.OnPhaseComplete(func(phase pomodoro.Phase) {
		s.snapshots.Clear()
		hub.BroadcastJSON(gin.H{
			"type":     "pomodoro_phase_complete",
			"phase":    phase,
			"pomodoro": t.Snapshot(),
		})
	})
	return s
}

// Tick advances the timer; it is the event loop's once-a-second callback
func (s *Server) Tick() {
	if !s.timer.Tick() {
		return
	}
	s.snapshots.Clear()
	s.hub.BroadcastJSON(gin.H{
		"type":     "pomodoro_tick",
		"pomodoro": s.timer.Snapshot(),
	})
}

// do runs fn on the event loop. It writes a 503 and returns false if the
// loop is gone or the request was cancelled.
func (s *Server) do(c *gin.Context, fn func()) bool {
	if err := s.runner.Do(c.Request.Context(), fn); err != nil {
		log.WithError(err).Warn("event loop unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Application is shutting down"})
		return false
	}
	return true
}

// respondError maps board and store errors to HTTP responses
func respondError(c *gin.Context, err error, extra gin.H) {
	status := http.StatusInternalServerError
	msg := "could not save"
	switch {
	case errors.Is(err, board.ErrTaskNotFound):
		status, msg = http.StatusNotFound, "Task not found"
	case errors.Is(err, board.ErrUnknownColumn):
		status, msg = http.StatusBadRequest, "Invalid column"
	case errors.Is(err, pomodoro.ErrInvalidSettings):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrStorage):
		log.WithError(err).Warn("storage failure reported to client")
	default:
		log.WithError(err).Error("unexpected error")
	}

	body := gin.H{"error": msg}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func (s *Server) loadResponse() LoadResponse {
	snap := s.board.Snapshot()
	return LoadResponse{
		Columns:  snap.Columns,
		Dirty:    snap.Dirty,
		Pomodoro: s.timer.Snapshot(),
	}
}

// Load handles GET /api/load
// Returns every column with its tasks plus the pomodoro state.
func (s *Server) Load(c *gin.Context) {
	if resp, ok := s.snapshots.Get(snapshotKey); ok {
		c.JSON(http.StatusOK, resp)
		return
	}

	var resp LoadResponse
	ok := s.do(c, func() {
		resp = s.loadResponse()
		// Stored on the loop so a concurrent invalidation can't be overwritten.
		s.snapshots.Set(snapshotKey, resp)
	})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Save handles POST /api/save
// Writes the whole board to the database in one transaction.
func (s *Server) Save(c *gin.Context) {
	var err error
	if !s.do(c, func() { err = s.board.SaveAll() }) {
		return
	}
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
