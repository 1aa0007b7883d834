package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"snapdev-task/internal/pomodoro"

	"github.com/stretchr/testify/require"
)

func TestPomodoro_ToggleAndTick(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/pomodoro/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap pomodoro.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.True(t, snap.Running)
	require.Equal(t, "working", snap.State)

	env.srv.Tick()
	env.srv.Tick()

	w = env.request(t, http.MethodGet, "/api/pomodoro", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Equal(t, 1498, snap.Remaining)
	require.Equal(t, "24:58", snap.Display)
}

func TestPomodoro_SkipAndReset(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, http.MethodPost, "/api/pomodoro/toggle", nil)

	w := env.request(t, http.MethodPost, "/api/pomodoro/skip", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap pomodoro.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Equal(t, "long_break", snap.State)
	require.Equal(t, 0, snap.Count)

	w = env.request(t, http.MethodPost, "/api/pomodoro/reset", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Equal(t, 900, snap.Remaining)
	require.False(t, snap.Running)
}

func TestPomodoro_Settings(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, "/api/pomodoro/settings", map[string]int{
		"workMinutes": 50, "shortBreakMinutes": 10, "longBreakMinutes": 20,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 3000, env.timer.Remaining())

	w = env.request(t, http.MethodPut, "/api/pomodoro/settings", map[string]int{
		"workMinutes": 0, "shortBreakMinutes": 10, "longBreakMinutes": 20,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPomodoro_SettingsOutOfRange(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []map[string]int{
		{"workMinutes": 307445734561825860, "shortBreakMinutes": 500, "longBreakMinutes": 15},
		{"workMinutes": 61, "shortBreakMinutes": 5, "longBreakMinutes": 15},
		{"workMinutes": 25, "shortBreakMinutes": 31, "longBreakMinutes": 15},
		{"workMinutes": 25, "shortBreakMinutes": 5, "longBreakMinutes": 61},
	} {
		w := env.request(t, http.MethodPut, "/api/pomodoro/settings", body)
		require.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}
	require.Equal(t, pomodoro.DefaultSettings(), env.timer.Settings())

	// the timer still counts down and completes normally
	env.request(t, http.MethodPost, "/api/pomodoro/toggle", nil)
	for i := 0; i < 1500; i++ {
		env.srv.Tick()
	}
	require.Equal(t, pomodoro.ShortBreak, env.timer.State())
	require.Equal(t, 1, env.timer.Count())
}

func TestPomodoro_StartRestartsTickInterval(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, http.MethodPost, "/api/pomodoro/toggle", nil)
	require.Equal(t, 1, env.runner.restarts)

	// pausing, skipping and resetting leave the interval alone
	env.request(t, http.MethodPost, "/api/pomodoro/toggle", nil)
	env.request(t, http.MethodPost, "/api/pomodoro/skip", nil)
	env.request(t, http.MethodPost, "/api/pomodoro/reset", nil)
	require.Equal(t, 1, env.runner.restarts)

	env.request(t, http.MethodPost, "/api/pomodoro/toggle", nil)
	require.Equal(t, 2, env.runner.restarts)
}
