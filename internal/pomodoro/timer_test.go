package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTimer(t *testing.T, opts ...Option) *Timer {
	t.Helper()
	timer, err := New(DefaultSettings(), opts...)
	require.NoError(t, err)
	return timer
}

func tickN(timer *Timer, n int) {
	for i := 0; i < n; i++ {
		timer.Tick()
	}
}

func TestNew_StartsIdle(t *testing.T) {
	timer := newTimer(t)
	require.Equal(t, Idle, timer.State())
	require.False(t, timer.Running())
	require.Equal(t, 1500, timer.Remaining())
	require.Equal(t, "25:00", timer.Snapshot().Display)
	require.Equal(t, "Pronto para começar", timer.Snapshot().Status)
}

func TestNew_RejectsNonPositive(t *testing.T) {
	_, err := New(Settings{WorkMinutes: 0, ShortBreakMinutes: 5, LongBreakMinutes: 15})
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSettings_ValidateRanges(t *testing.T) {
	require.NoError(t, Settings{WorkMinutes: 60, ShortBreakMinutes: 30, LongBreakMinutes: 60}.Validate())
	require.NoError(t, Settings{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1}.Validate())

	for _, s := range []Settings{
		{WorkMinutes: 61, ShortBreakMinutes: 5, LongBreakMinutes: 15},
		{WorkMinutes: 25, ShortBreakMinutes: 31, LongBreakMinutes: 15},
		{WorkMinutes: 25, ShortBreakMinutes: 5, LongBreakMinutes: 61},
		{WorkMinutes: 307445734561825860, ShortBreakMinutes: 5, LongBreakMinutes: 15},
	} {
		require.ErrorIs(t, s.Validate(), ErrInvalidSettings, "%+v", s)
	}
}

func TestSetSettings_RejectsOutOfRangeAndKeepsCounting(t *testing.T) {
	timer := newTimer(t)

	err := timer.SetSettings(Settings{WorkMinutes: 307445734561825860, ShortBreakMinutes: 500, LongBreakMinutes: 15})
	require.ErrorIs(t, err, ErrInvalidSettings)
	require.Equal(t, DefaultSettings(), timer.Settings())

	timer.Start()
	tickN(timer, 1500)
	require.Equal(t, ShortBreak, timer.State())
	require.Equal(t, 1, timer.Count())
}

func TestWorkPhase_CompletesAfter1500Ticks(t *testing.T) {
	timer := newTimer(t)
	var phases []Phase
	timer.OnPhaseComplete(func(p Phase) { phases = append(phases, p) })

	timer.Start()
	require.Equal(t, Working, timer.State())

	tickN(timer, 1499)
	require.Equal(t, Working, timer.State())
	require.Equal(t, 1, timer.Remaining())

	timer.Tick()
	require.Equal(t, ShortBreak, timer.State())
	require.Equal(t, 1, timer.Count())
	require.Equal(t, 300, timer.Remaining())
	require.False(t, timer.Running())
	require.Equal(t, []Phase{PhaseWork}, phases)
}

func TestFourthPomodoro_GoesToLongBreak(t *testing.T) {
	timer := newTimer(t)
	var phases []Phase
	timer.OnPhaseComplete(func(p Phase) { phases = append(phases, p) })

	for i := 1; i <= 4; i++ {
		timer.Start()
		require.Equal(t, Working, timer.State())
		tickN(timer, 1500)
		require.Equal(t, i, timer.Count())
		if i < 4 {
			require.Equal(t, ShortBreak, timer.State())
			timer.Start()
			tickN(timer, 300)
		}
	}
	require.Equal(t, LongBreak, timer.State())
	require.Equal(t, 900, timer.Remaining())

	timer.Start()
	tickN(timer, 900)
	require.Equal(t, Working, timer.State())
	require.Equal(t, PhaseLongBreak, phases[len(phases)-1])
}

func TestPauseResume_NoLostOrDoubleTicks(t *testing.T) {
	timer := newTimer(t)
	timer.Start()
	tickN(timer, 10)

	timer.Toggle()
	require.False(t, timer.Running())
	require.Equal(t, Working, timer.State())
	require.Equal(t, "Em pausa", timer.Snapshot().Status)
	require.False(t, timer.Tick())
	tickN(timer, 50)
	require.Equal(t, 1490, timer.Remaining())

	timer.Toggle()
	require.True(t, timer.Running())
	tickN(timer, 1490)
	require.Equal(t, ShortBreak, timer.State())
	require.Equal(t, 1, timer.Count())
}

func TestSkip_DoesNotCountPomodoro(t *testing.T) {
	timer := newTimer(t)
	fired := 0
	timer.OnPhaseComplete(func(Phase) { fired++ })

	timer.Start()
	tickN(timer, 100)
	timer.Skip()
	// count is still 0, and 0 mod 4 picks the long break
	require.Equal(t, LongBreak, timer.State())
	require.Equal(t, 0, timer.Count())
	require.False(t, timer.Running())
	require.Equal(t, 900, timer.Remaining())
	require.Zero(t, fired)

	timer.Skip()
	require.Equal(t, Working, timer.State())
}

func TestSkip_FromIdle(t *testing.T) {
	timer := newTimer(t)
	timer.Skip()
	require.Equal(t, Working, timer.State())
	require.Equal(t, 1500, timer.Remaining())
}

func TestReset_ReloadsCurrentPhase(t *testing.T) {
	timer := newTimer(t)
	timer.Start()
	tickN(timer, 1500)
	timer.Start()
	tickN(timer, 42)

	timer.Reset()
	require.Equal(t, ShortBreak, timer.State())
	require.Equal(t, 300, timer.Remaining())
	require.False(t, timer.Running())
}

func TestSetSettings(t *testing.T) {
	timer := newTimer(t)
	require.NoError(t, timer.SetSettings(Settings{WorkMinutes: 50, ShortBreakMinutes: 10, LongBreakMinutes: 30}))
	require.Equal(t, 3000, timer.Remaining())

	timer.Start()
	tickN(timer, 5)
	require.NoError(t, timer.SetSettings(Settings{WorkMinutes: 1, ShortBreakMinutes: 1, LongBreakMinutes: 1}))
	require.Equal(t, 2995, timer.Remaining(), "running phase keeps its countdown")

	tickN(timer, 2995)
	require.Equal(t, ShortBreak, timer.State())
	require.Equal(t, 60, timer.Remaining())

	require.ErrorIs(t, timer.SetSettings(Settings{}), ErrInvalidSettings)
}

func TestAutoStart_KeepsRunning(t *testing.T) {
	timer := newTimer(t, WithAutoStart(true))
	timer.Start()
	tickN(timer, 1500)
	require.Equal(t, ShortBreak, timer.State())
	require.True(t, timer.Running())
	tickN(timer, 300)
	require.Equal(t, Working, timer.State())
}

func TestFormatClock(t *testing.T) {
	require.Equal(t, "00:00", FormatClock(0))
	require.Equal(t, "01:05", FormatClock(65))
	require.Equal(t, "25:00", FormatClock(1500))
	require.Equal(t, "00:00", FormatClock(-3))
}
