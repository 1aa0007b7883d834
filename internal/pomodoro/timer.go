// Package pomodoro implements the work/break countdown, independent of the board.
//
// The Timer has no clock of its own: the host calls Tick once per second
// from the same goroutine that calls every other method.
package pomodoro

import (
	"errors"
	"fmt"
)

// PomodorosUntilLongBreak is the number of work phases per long break
const PomodorosUntilLongBreak = 4

// ErrInvalidSettings is returned for durations outside their Range
var ErrInvalidSettings = errors.New("invalid pomodoro settings")

// State is the current phase of the timer
type State int

const (
	Idle State = iota
	Working
	ShortBreak
	LongBreak
)

func (s State) String() string {
	switch s {
	case Working:
		return "working"
	case ShortBreak:
		return "short_break"
	case LongBreak:
		return "long_break"
	default:
		return "idle"
	}
}

// Phase is the kind reported when a phase completes
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

func (s State) phase() Phase {
	switch s {
	case ShortBreak:
		return PhaseShortBreak
	case LongBreak:
		return PhaseLongBreak
	default:
		return PhaseWork
	}
}

// Settings holds the phase durations in minutes
type Settings struct {
	WorkMinutes       int `json:"workMinutes" yaml:"work_minutes"`
	ShortBreakMinutes int `json:"shortBreakMinutes" yaml:"short_break_minutes"`
	LongBreakMinutes  int `json:"longBreakMinutes" yaml:"long_break_minutes"`
}

// DefaultSettings returns 25/5/15
func DefaultSettings() Settings {
	return Settings{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 15}
}

// Range is an inclusive bound in minutes
type Range struct{ Min, Max int }

// Contains reports whether minutes lies within r
func (r Range) Contains(minutes int) bool { return minutes >= r.Min && minutes <= r.Max }

// Accepted duration ranges, shared by configuration, HTTP and TUI input
var (
	WorkRange       = Range{Min: 1, Max: 60}
	ShortBreakRange = Range{Min: 1, Max: 30}
	LongBreakRange  = Range{Min: 1, Max: 60}
)

// Validate checks each duration against its Range
func (s Settings) Validate() error {
	checks := []struct {
		name  string
		value int
		r     Range
	}{
		{"work", s.WorkMinutes, WorkRange},
		{"short break", s.ShortBreakMinutes, ShortBreakRange},
		{"long break", s.LongBreakMinutes, LongBreakRange},
	}
	for _, c := range checks {
		if !c.r.Contains(c.value) {
			return fmt.Errorf("%w: %s must be between %d and %d minutes, got %d",
				ErrInvalidSettings, c.name, c.r.Min, c.r.Max, c.value)
		}
	}
	return nil
}

func (s Settings) seconds(state State) int {
	switch state {
	case ShortBreak:
		return s.ShortBreakMinutes * 60
	case LongBreak:
		return s.LongBreakMinutes * 60
	default:
		return s.WorkMinutes * 60
	}
}

// Timer is the Pomodoro state machine
type Timer struct {
	settings  Settings
	state     State
	remaining int
	running   bool
	paused    bool
	count     int
	autoStart bool

	listeners []func(Phase)
}

// Option configures a Timer
type Option func(*Timer)

// WithAutoStart makes the timer keep running into the next phase after a
// phase completes, instead of stopping and waiting for Start.
func WithAutoStart(on bool) Option {
	return func(t *Timer) { t.autoStart = on }
}

// New creates an idle timer showing the work duration
func New(settings Settings, opts ...Option) (*Timer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	t := &Timer{settings: settings, state: Idle}
	for _, opt := range opts {
		opt(t)
	}
	t.remaining = settings.seconds(Idle)
	return t, nil
}

// OnPhaseComplete registers fn to be called, synchronously, whenever a phase
// runs out. Skipped phases are not reported.
func (t *Timer) OnPhaseComplete(fn func(Phase)) {
	t.listeners = append(t.listeners, fn)
}

// Start begins or resumes the countdown. The first start leaves Idle for Working.
func (t *Timer) Start() {
	if t.running {
		return
	}
	if t.state == Idle {
		t.state = Working
		t.remaining = t.settings.seconds(Working)
	}
	t.running = true
	t.paused = false
}

// Pause stops the countdown without changing state
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.running = false
	t.paused = true
}

// Toggle starts a stopped timer and pauses a running one
func (t *Timer) Toggle() {
	if t.running {
		t.Pause()
		return
	}
	t.Start()
}

// Tick advances the countdown by one second if running. Reaching zero
// completes the phase within the same tick. Reports whether anything changed.
func (t *Timer) Tick() bool {
	if !t.running {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.complete()
	}
	return true
}

func (t *Timer) complete() {
	finished := t.state
	if finished == Working {
		t.count++
	}
	t.advance()
	t.running = t.autoStart
	t.paused = false
	for _, fn := range t.listeners {
		fn(finished.phase())
	}
}

// advance moves to the phase that follows the current one
func (t *Timer) advance() {
	switch t.state {
	case Working:
		if t.count%PomodorosUntilLongBreak == 0 {
			t.state = LongBreak
		} else {
			t.state = ShortBreak
		}
	default:
		t.state = Working
	}
	t.remaining = t.settings.seconds(t.state)
}

// Skip stops the countdown and jumps to the next phase. A skipped work phase
// does not count as a completed pomodoro.
func (t *Timer) Skip() {
	t.running = false
	t.paused = false
	t.advance()
}

// Reset stops the countdown and reloads the current phase's full duration
func (t *Timer) Reset() {
	t.running = false
	t.paused = false
	t.remaining = t.settings.seconds(t.state)
}

// Settings returns the current durations
func (t *Timer) Settings() Settings {
	return t.settings
}

// SetSettings replaces the durations. A stopped timer reloads the current
// phase right away; a running one picks them up at the next phase.
func (t *Timer) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.settings = s
	if !t.running {
		t.remaining = s.seconds(t.state)
		t.paused = false
	}
	return nil
}

// State returns the current phase
func (t *Timer) State() State { return t.state }

// Remaining returns the seconds left in the current phase
func (t *Timer) Remaining() int { return t.remaining }

// Running reports whether the countdown is advancing
func (t *Timer) Running() bool { return t.running }

// Count returns the number of completed work phases
func (t *Timer) Count() int { return t.count }

// Snapshot is the timer state prepared for display
type Snapshot struct {
	State     string   `json:"state"`
	Remaining int      `json:"remaining"`
	Display   string   `json:"display"`
	Running   bool     `json:"running"`
	Count     int      `json:"count"`
	Status    string   `json:"status"`
	Settings  Settings `json:"settings"`
}

// Snapshot copies the timer state for rendering
func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		State:     t.state.String(),
		Remaining: t.remaining,
		Display:   FormatClock(t.remaining),
		Running:   t.running,
		Count:     t.count,
		Status:    t.status(),
		Settings:  t.settings,
	}
}

func (t *Timer) status() string {
	switch {
	case t.running && t.state == Working:
		return "Trabalhando"
	case t.running && t.state == ShortBreak:
		return "Pausa curta"
	case t.running && t.state == LongBreak:
		return "Pausa longa"
	case t.paused:
		return "Em pausa"
	case t.state == Working:
		return "Pronto para trabalhar"
	case t.state == ShortBreak:
		return "Pronto para pausa curta"
	case t.state == LongBreak:
		return "Pronto para pausa longa"
	default:
		return "Pronto para começar"
	}
}

// FormatClock renders seconds as MM:SS
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
