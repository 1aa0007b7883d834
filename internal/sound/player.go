// Package sound plays the alarm when a pomodoro phase completes.
// Playback failures are logged and otherwise ignored.
package sound

import (
	"io"
	"os/exec"
	"strings"

	"snapdev-task/internal/pomodoro"

	log "github.com/sirupsen/logrus"
)

// Player plays the alarm with an external command or the terminal bell
type Player struct {
	enabled bool
	command []string
	bell    io.Writer

	start func(name string, args ...string) error
}

// New creates a player. An empty command rings the bell on w.
func New(enabled bool, command string, w io.Writer) *Player {
	return &Player{
		enabled: enabled,
		command: strings.Fields(command),
		bell:    w,
		start:   startDetached,
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.WithError(err).Debug("alarm command exited with error")
		}
	}()
	return nil
}

// Play is meant to be registered with Timer.OnPhaseComplete
func (p *Player) Play(phase pomodoro.Phase) {
	if p == nil || !p.enabled {
		return
	}
	entry := log.WithField("phase", string(phase))

	if len(p.command) > 0 {
		if err := p.start(p.command[0], p.command[1:]...); err != nil {
			entry.WithError(err).Warn("could not play alarm")
		}
		return
	}
	if p.bell == nil {
		return
	}
	if _, err := io.WriteString(p.bell, "\a"); err != nil {
		entry.WithError(err).Warn("could not ring bell")
	}
}
