package handlers

import (
	"net/http"

	"snapdev-task/internal/pomodoro"

	"github.com/gin-gonic/gin"
)

// GetPomodoro handles GET /api/pomodoro
func (s *Server) GetPomodoro(c *gin.Context) {
	var snap pomodoro.Snapshot
	if !s.do(c, func() { snap = s.timer.Snapshot() }) {
		return
	}
	c.JSON(http.StatusOK, snap)
}

// pomodoroAction builds the handler for a POST /api/pomodoro/<action> endpoint
func (s *Server) pomodoroAction(action func(*pomodoro.Timer)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap pomodoro.Snapshot
		ok := s.do(c, func() {
			wasRunning := s.timer.Running()
			action(s.timer)
			if !wasRunning && s.timer.Running() {
				s.runner.RestartTick()
			}
			s.snapshots.Clear()
			snap = s.timer.Snapshot()
		})
		if !ok {
			return
		}
		s.hub.BroadcastJSON(gin.H{"type": "pomodoro_state", "pomodoro": snap})
		c.JSON(http.StatusOK, snap)
	}
}

// TogglePomodoro handles POST /api/pomodoro/toggle (start/pause)
func (s *Server) TogglePomodoro(c *gin.Context) {
	s.pomodoroAction((*pomodoro.Timer).Toggle)(c)
}

// ResetPomodoro handles POST /api/pomodoro/reset
func (s *Server) ResetPomodoro(c *gin.Context) {
	s.pomodoroAction((*pomodoro.Timer).Reset)(c)
}

// SkipPomodoro handles POST /api/pomodoro/skip
func (s *Server) SkipPomodoro(c *gin.Context) {
	s.pomodoroAction((*pomodoro.Timer).Skip)(c)
}

// UpdatePomodoroSettings handles PUT /api/pomodoro/settings
func (s *Server) UpdatePomodoroSettings(c *gin.Context) {
	var req pomodoro.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		snap pomodoro.Snapshot
		err  error
	)
	ok := s.do(c, func() {
		err = s.timer.SetSettings(req)
		s.snapshots.Clear()
		snap = s.timer.Snapshot()
	})
	if !ok {
		return
	}
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, snap)
}
